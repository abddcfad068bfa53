package physics

// BorderBehavior decides what happens when a body would leave the world
type BorderBehavior int

const (
	// Dismiss lets the body leave; something downstream removes it
	Dismiss BorderBehavior = iota
	// Bounce reverses the velocity
	Bounce
	// BounceSlowdown reverses the velocity and keeps a fifth of it
	BounceSlowdown
)

// String returns the border behavior name
func (b BorderBehavior) String() string {
	switch b {
	case Dismiss:
		return "dismiss"
	case Bounce:
		return "bounce"
	case BounceSlowdown:
		return "bounce_slowdown"
	default:
		return "unknown"
	}
}

// Body is the simulated state shared by the player, missiles and enemies.
// Direction is the velocity; its length is the speed in units per second.
type Body struct {
	Position     Vector2
	Angle        float32 // radians
	Direction    Vector2
	Acceleration Vector2
	MaxVelocity  float32
	Border       BorderBehavior
	Active       bool
}

// NewBody returns an active body at the origin that is dismissed at the border
func NewBody() Body {
	return Body{Border: Dismiss, Active: true}
}

// Velocity returns the current speed
func (b *Body) Velocity() float32 {
	return b.Direction.Len()
}

// Transform places local geometry at the body's position and heading
func (b *Body) Transform() Transform {
	return TranslationV(b.Position).Mul(Rotation(b.Angle))
}

// ScreenTransform is Transform with a screen-space matrix inserted between
// translation and rotation.
func (b *Body) ScreenTransform(screen Transform) Transform {
	return TranslationV(b.Position).Mul(screen).Mul(Rotation(b.Angle))
}

// Integrate advances an active body by numSteps sub-steps of dt seconds
// each, without gravity.
func (b *Body) Integrate(dt float32, numSteps int, worldSize Vector2) {
	if !b.Active {
		return
	}
	for i := 0; i < numSteps; i++ {
		b.step(dt, worldSize)
	}
}

func (b *Body) step(dt float32, worldSize Vector2) {
	// Update velocity
	b.Direction = b.Direction.Add(b.Acceleration.Scale(dt))

	// Limit speed
	b.Direction = b.Direction.ClampLen(b.MaxVelocity)

	// Update position
	next := b.Position.Add(b.Direction.Scale(dt))
	if outside(next, worldSize) {
		switch b.Border {
		case Bounce:
			b.Direction = b.Direction.Scale(-1)
			next = b.Position.Add(b.Direction.Scale(dt))
		case BounceSlowdown:
			b.Direction = b.Direction.Scale(-0.2)
			next = b.Position.Add(b.Direction.Scale(dt))
		}
	}
	b.Position = next
}

func outside(p, worldSize Vector2) bool {
	return p.X < 0 || p.Y < 0 || p.X > worldSize.X || p.Y > worldSize.Y
}
