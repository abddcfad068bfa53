package engine

import (
	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/store"
)

// ShipHull is the player's outline in body space, nose along +x
var ShipHull = []physics.Vector2{
	{X: 14, Y: 0},
	{X: -10, Y: 9},
	{X: -5, Y: 0},
	{X: -10, Y: -9},
}

// Snapshot is a read-only view of one frame, in world coordinates
type Snapshot struct {
	State       State
	Score       uint32
	Wave        int
	EnemiesLeft int
	WorldSize   physics.Vector2
	Camera      physics.Transform
	Player      PlayerState
	Enemies     []EnemyState
	Missiles    []MissileState
	Grid        GridState
}

// PlayerState represents the player's ship
type PlayerState struct {
	Position     physics.Vector2
	Angle        float32
	Direction    physics.Vector2
	Acceleration physics.Vector2
	Hull         []physics.Vector2
	Alive        bool
}

// EnemyState represents one enemy
type EnemyState struct {
	ID   store.ID
	Kind enemy.Kind
	Hull []physics.Vector2
}

// MissileState represents one missile in flight
type MissileState struct {
	ID        store.ID
	Position  physics.Vector2
	Direction physics.Vector2
}

// GridState holds the lattice vertices in row-major order
type GridState struct {
	Cols   int
	Points []physics.Vector2
}

// Snapshot returns a copy of everything a renderer needs for this frame
func (w *World) Snapshot() *Snapshot {
	return &Snapshot{
		State:       w.state,
		Score:       w.score,
		Wave:        w.wave,
		EnemiesLeft: len(w.enemies),
		WorldSize:   w.WorldSize(),
		Camera:      w.CameraTransform(),
		Player:      w.getPlayerState(),
		Enemies:     w.getEnemyStates(),
		Missiles:    w.getMissileStates(),
		Grid:        GridState{Cols: w.grid.Cols(), Points: w.grid.Positions()},
	}
}

// getPlayerState captures the player's body and world-space hull.
func (w *World) getPlayerState() PlayerState {
	b := w.bodies.Get(w.player)
	return PlayerState{
		Position:     b.Position,
		Angle:        b.Angle,
		Direction:    b.Direction,
		Acceleration: b.Acceleration,
		Hull:         b.Transform().ApplyAll(ShipHull),
		Alive:        w.state == Running,
	}
}

// getEnemyStates captures every enemy with its hull in world space.
func (w *World) getEnemyStates() []EnemyState {
	states := make([]EnemyState, 0, len(w.enemies))
	for _, e := range w.enemies {
		b := w.bodies.Get(e.EntityID)
		states = append(states, EnemyState{
			ID:   e.EntityID,
			Kind: e.Kind,
			Hull: b.Transform().ApplyAll(e.Hull),
		})
	}
	return states
}

// getMissileStates captures every missile in flight.
func (w *World) getMissileStates() []MissileState {
	return store.FilterMap(w.missiles, func(m *Missile, id store.ID) (MissileState, bool) {
		b := w.bodies.Get(m.EntityID)
		return MissileState{ID: id, Position: b.Position, Direction: b.Direction}, true
	})
}
