package engine

import (
	"github.com/opd-ai/go-gridwars/pkg/store"
)

// updateMissiles ages every missile, retires the expired ones together
// with their bodies and lets the survivors disturb the grid. Missiles that
// left the world expire immediately.
func (w *World) updateMissiles(dt float32) {
	w.missiles.ForEach(func(m *Missile, _ store.ID) {
		m.TimeToLive -= dt
		if !w.inWorld(w.bodies.Get(m.EntityID).Position) {
			m.TimeToLive = 0
		}
	})

	w.retireMissiles(func(m *Missile) bool { return m.TimeToLive <= 0 })

	w.missiles.ForEach(func(m *Missile, _ store.ID) {
		w.grid.Intersect(w.bodies.Get(m.EntityID).Position)
	})
}

// retireMissiles removes every missile matching pred and its body.
func (w *World) retireMissiles(pred func(*Missile) bool) {
	bodies := store.FilterMap(w.missiles, func(m *Missile, _ store.ID) (store.ID, bool) {
		return m.EntityID, pred(m)
	})
	if len(bodies) == 0 {
		return
	}
	w.missiles.GarbageCollectFilter(pred)
	w.bodies.GarbageCollect(store.Set(bodies...))
}
