// Package grid simulates the deformable background lattice.
package grid

import "github.com/opd-ai/go-gridwars/pkg/physics"

// Config tunes the spring behaviour of the lattice
type Config struct {
	Spacing         float32 // distance between neighbouring rest positions
	Decay           float32 // velocity multiplier applied every step
	MaxSpeed        float32 // cap on vertex velocity length
	RestoreCap      float32 // offset at which the restoring push saturates
	RestThreshold   float32 // offsets at or below this count as at rest
	ImpulseStrength float32 // push applied by Intersect
	EffectStrength  float32 // force per second of remaining effect life
	MaxForce        float32 // cap on a single effect force
}

// DefaultConfig returns the stock lattice tuning
func DefaultConfig() Config {
	return Config{
		Spacing:         40,
		Decay:           0.5,
		MaxSpeed:        10,
		RestoreCap:      5,
		RestThreshold:   0.01,
		ImpulseStrength: 10,
		EffectStrength:  500,
		MaxForce:        250,
	}
}

// Vertex is one point of the lattice
type Vertex struct {
	Rest     physics.Vector2
	Position physics.Vector2
	Velocity physics.Vector2
}

// NewVertex creates a vertex sitting at its rest position
func NewVertex(rest physics.Vector2) Vertex {
	return Vertex{Rest: rest, Position: rest}
}

// Push adds v to the velocity, capped at maxSpeed
func (v *Vertex) Push(impulse physics.Vector2, maxSpeed float32) {
	v.Velocity = v.Velocity.Add(impulse).ClampLen(maxSpeed)
}

// Offset returns the vector from the current position back to rest
func (v *Vertex) Offset() physics.Vector2 {
	return v.Rest.Sub(v.Position)
}

// Step moves the vertex by its velocity, decays the velocity and pulls
// the vertex back toward rest.
func (v *Vertex) Step(cfg Config) {
	v.Position = v.Position.Add(v.Velocity)
	v.Velocity = v.Velocity.Scale(cfg.Decay)

	offset := v.Offset()
	dist := offset.Len()
	if dist <= cfg.RestThreshold {
		return
	}
	strength := dist / cfg.RestoreCap
	if strength > 1 {
		strength = 1
	}
	v.Push(offset.Normalize().Scale(strength*cfg.RestoreCap), cfg.MaxSpeed)
}
