package physics

import (
	"iter"

	"github.com/EngoEngine/math"
)

// Integrator advances bodies through fixed sub-steps inside a world of
// size WorldSize with origin at (0,0).
type Integrator struct {
	WorldSize        Vector2
	Gravity          float32
	GravityDirection Vector2
}

// NewIntegrator creates an integrator without gravity
func NewIntegrator(worldSize Vector2) *Integrator {
	return &Integrator{WorldSize: worldSize}
}

// SubSteps returns how many sub-steps an elapsed frame is split into.
// It is never less than one.
func SubSteps(elapsedMs, subStepMs float32) int {
	if subStepMs <= 0 {
		return 1
	}
	n := int(math.Floor(elapsedMs/subStepMs + 0.5))
	if n < 1 {
		return 1
	}
	return n
}

// Step integrates every active body over elapsedMs milliseconds using
// sub-steps of roughly subStepMs each.
func (in *Integrator) Step(elapsedMs, subStepMs float32, bodies iter.Seq[*Body]) {
	n := SubSteps(elapsedMs, subStepMs)
	dt := elapsedMs / float32(n) / 1000
	gravity := in.GravityDirection.Scale(in.Gravity * dt)

	for i := 0; i < n; i++ {
		for b := range bodies {
			if !b.Active {
				continue
			}
			if in.Gravity != 0 {
				b.Direction = b.Direction.Add(gravity)
			}
			b.step(dt, in.WorldSize)
		}
	}
}
