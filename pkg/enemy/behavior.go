package enemy

import (
	"fmt"
	"math/rand/v2"

	"github.com/EngoEngine/math"

	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// MissileIndex finds missiles near a point
type MissileIndex interface {
	Within(center physics.Vector2, radius float32) []physics.Vector2
}

// Context is the read-only world state an enemy steers by
type Context struct {
	Player      physics.Vector2
	Missiles    MissileIndex // nil means no missiles
	Rand        *rand.Rand   // nil uses the global source
	Catalog     *Catalog
	ForceRadius float32 // missiles further away are ignored
	Repulsion   float32 // push at zero distance
}

// Steering is written back to the enemy's body every tick
type Steering struct {
	Acceleration physics.Vector2
	MaxVelocity  float32
	Angle        float32
}

// Apply writes the steering into a body
func (s Steering) Apply(b *physics.Body) {
	b.Acceleration = s.Acceleration
	b.MaxVelocity = s.MaxVelocity
	b.Angle = s.Angle
}

// Steer computes the next steering for e whose body is self
func Steer(e Enemy, self *physics.Body, ctx *Context) Steering {
	profile := ctx.Catalog.Profile(e.Kind)

	var accel physics.Vector2
	switch e.Kind {
	case Rombus:
		accel = seek(self.Position, ctx.Player, profile.Accel)
	case Rect, SpawningRect, MiniRect:
		accel = seek(self.Position, ctx.Player, profile.Accel).
			Add(repel(self.Position, ctx))
	case Wanderer:
		accel = physics.FromAngle(randomAngle(ctx.Rand), profile.Accel)
	default:
		panic(fmt.Sprintf("unknown enemy kind %d", int(e.Kind)))
	}

	angle := self.Angle
	if !accel.IsZero() {
		angle = accel.Angle()
	}
	return Steering{Acceleration: accel, MaxVelocity: profile.MaxVelocity, Angle: angle}
}

func seek(from, to physics.Vector2, accel float32) physics.Vector2 {
	return to.Sub(from).Normalize().Scale(accel)
}

// repel sums a push away from every missile inside the force radius,
// falling off linearly to zero at the radius.
func repel(pos physics.Vector2, ctx *Context) physics.Vector2 {
	var total physics.Vector2
	if ctx.Missiles == nil || ctx.ForceRadius <= 0 {
		return total
	}
	for _, m := range ctx.Missiles.Within(pos, ctx.ForceRadius) {
		away := pos.Sub(m)
		d := away.Len()
		if d == 0 || d > ctx.ForceRadius {
			continue
		}
		total = total.Add(away.Scale(1 / d).Scale(ctx.Repulsion * (1 - d/ctx.ForceRadius)))
	}
	return total
}

func randomAngle(r *rand.Rand) float32 {
	if r == nil {
		return rand.Float32() * 2 * math.Pi
	}
	return r.Float32() * 2 * math.Pi
}

// MissileField indexes missile positions for repulsion lookups
type MissileField struct {
	tree *physics.QuadTree[physics.Vector2]
}

// NewMissileField covers the world plus margin on every side
func NewMissileField(worldSize physics.Vector2, margin float32) *MissileField {
	boundary := physics.Rect{
		Center: worldSize.Scale(0.5),
		Width:  worldSize.X + 2*margin,
		Height: worldSize.Y + 2*margin,
	}
	return &MissileField{tree: physics.NewQuadTree[physics.Vector2](boundary, 8)}
}

// Reset drops every indexed missile
func (f *MissileField) Reset() {
	f.tree.Clear()
}

// Add indexes a missile position; positions outside the field are dropped
func (f *MissileField) Add(p physics.Vector2) {
	f.tree.Insert(p, p)
}

// Within returns every indexed missile at most radius away from center
func (f *MissileField) Within(center physics.Vector2, radius float32) []physics.Vector2 {
	candidates := f.tree.Query(physics.RectAround(center, radius))
	found := candidates[:0]
	for _, p := range candidates {
		if p.Distance(center) <= radius {
			found = append(found, p)
		}
	}
	return found
}
