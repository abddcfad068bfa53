package engine

import (
	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/store"
)

// updateEnemies indexes the missiles, steers every enemy and sweeps
// dismissed enemies that left the world.
func (w *World) updateEnemies(float32) {
	w.missileField.Reset()
	w.missiles.ForEach(func(m *Missile, _ store.ID) {
		w.missileField.Add(w.bodies.Get(m.EntityID).Position)
	})

	ctx := &enemy.Context{
		Player:      w.bodies.Get(w.player).Position,
		Missiles:    w.missileField,
		Rand:        w.rng,
		Catalog:     w.catalog,
		ForceRadius: w.Config.Enemies.ForceRadius,
		Repulsion:   w.Config.Enemies.Repulsion,
	}
	gone := make(map[int]struct{})
	for i, e := range w.enemies {
		w.bodies.With(e.EntityID, func(b *physics.Body) {
			if b.Border == physics.Dismiss && !w.inWorld(b.Position) {
				gone[i] = struct{}{}
				return
			}
			enemy.Steer(e, b, ctx).Apply(b)
		})
	}
	w.removeEnemies(gone)
}
