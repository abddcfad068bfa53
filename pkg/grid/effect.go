package grid

import "github.com/opd-ai/go-gridwars/pkg/physics"

// CircularEffect is an expanding ring that pushes vertices away from its
// center while it lives.
type CircularEffect struct {
	Center         physics.Vector2
	Radius         float32
	TimeToLive     float32 // seconds
	ExpansionSpeed float32 // radius growth per second
}

// Expired reports whether the effect has run out of time
func (e *CircularEffect) Expired() bool {
	return e.TimeToLive <= 0
}

// advance ages the effect by dt seconds and grows it if still alive
func (e *CircularEffect) advance(dt float32) {
	e.TimeToLive -= dt
	if !e.Expired() {
		e.Radius += e.ExpansionSpeed * dt
	}
}

// forceAt returns the push on a vertex at pos, or false if pos is outside
// the ring or exactly at its center.
func (e *CircularEffect) forceAt(pos physics.Vector2, cfg Config) (physics.Vector2, bool) {
	away := pos.Sub(e.Center)
	if away.IsZero() || away.LenSquared() > e.Radius*e.Radius {
		return physics.Vector2{}, false
	}
	magnitude := e.TimeToLive * cfg.EffectStrength
	if magnitude > cfg.MaxForce {
		magnitude = cfg.MaxForce
	}
	return away.Normalize().Scale(magnitude), true
}
