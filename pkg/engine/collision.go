package engine

import (
	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/event"
	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/store"
)

// ResolveCollisions tests the player and every missile against each
// enemy hull. The first missile inside a hull destroys that enemy and is
// used up; the player inside a hull loses the game. Enemies spawned by
// kills join after the pass.
func (w *World) ResolveCollisions() {
	if len(w.enemies) == 0 {
		return
	}
	player := w.bodies.Get(w.player)

	// keyed by missile body id
	consumed := make(map[store.ID]struct{})
	killed := make(map[int]struct{})
	var splits []split

	for i, e := range w.enemies {
		body := w.bodies.Get(e.EntityID)
		hull := body.Transform().ApplyAll(e.Hull)

		if w.state == Running && physics.HitTest(player.Position, hull) {
			w.loseGame(player.Position)
		}

		missileBody, impact, hit := w.findMissileHit(hull, consumed)
		if !hit {
			continue
		}
		consumed[missileBody] = struct{}{}
		killed[i] = struct{}{}
		splits = append(splits, w.destroyEnemy(e, body.Position, impact)...)
	}

	w.removeEnemies(killed)
	w.retireMissiles(func(m *Missile) bool {
		_, used := consumed[m.EntityID]
		return used
	})

	for _, sp := range splits {
		w.spawnEnemy(sp.order.Kind, sp.order.Position, sp.direction)
	}
}

// split is an enemy born from a kill, moving away from the impact.
type split struct {
	order     enemy.SpawnOrder
	direction physics.Vector2
}

// findMissileHit returns the body id and position of the first unused
// missile inside hull.
func (w *World) findMissileHit(hull []physics.Vector2, consumed map[store.ID]struct{}) (store.ID, physics.Vector2, bool) {
	for _, m := range w.missiles.All() {
		if _, used := consumed[m.EntityID]; used {
			continue
		}
		pos := w.bodies.Get(m.EntityID).Position
		if physics.HitTest(pos, hull) {
			return m.EntityID, pos, true
		}
	}
	return 0, physics.Vector2{}, false
}

// destroyEnemy credits the kill, shakes the grid and returns the enemies
// the kill splits into.
func (w *World) destroyEnemy(e enemy.Enemy, pos, impact physics.Vector2) []split {
	points := e.Kind.Score()
	w.score += points

	ex := w.Config.Explosion
	w.grid.AddCircularEffect(pos, ex.Radius, ex.TimeToLive, ex.ExpansionSpeed)

	w.EventBus.Publish(event.NewEnemyEvent(event.EnemyDestroyed, w, uint64(e.EntityID), e.Kind, pos, points))
	w.EventBus.Publish(event.NewScoreEvent(event.ScoreChanged, w, w.score, points))

	if e.Kind != enemy.SpawningRect {
		return nil
	}
	offset := physics.Vec(w.Config.Enemies.MiniRectOffset, 0)
	speed := w.catalog.Profile(enemy.MiniRect).MaxVelocity / 2
	return []split{
		{order: enemy.SpawnOrder{Kind: enemy.MiniRect, Position: impact.Sub(offset)}, direction: physics.Vec(-speed, 0)},
		{order: enemy.SpawnOrder{Kind: enemy.MiniRect, Position: impact.Add(offset)}, direction: physics.Vec(speed, 0)},
	}
}

// removeEnemies drops the enemies at the given indices and their bodies.
func (w *World) removeEnemies(indices map[int]struct{}) {
	if len(indices) == 0 {
		return
	}
	dead := make(map[store.ID]struct{}, len(indices))
	kept := w.enemies[:0]
	for i, e := range w.enemies {
		if _, ok := indices[i]; ok {
			dead[e.EntityID] = struct{}{}
			continue
		}
		kept = append(kept, e)
	}
	clear(w.enemies[len(kept):])
	w.enemies = kept
	w.bodies.GarbageCollect(dead)
}

// loseGame freezes the player and ends the run.
func (w *World) loseGame(pos physics.Vector2) {
	w.state = Lost
	w.controls = 0
	w.bodies.With(w.player, func(b *physics.Body) {
		b.Active = false
		b.Direction = physics.Vector2{}
		b.Acceleration = physics.Vector2{}
	})

	ex := w.Config.Explosion
	w.grid.AddCircularEffect(pos, ex.DeathRadius, ex.DeathTimeToLive, ex.DeathExpansionSpeed)

	w.EventBus.Publish(event.NewPlayerEvent(event.PlayerDied, w, pos))
	w.EventBus.Publish(event.NewScoreEvent(event.GameLost, w, w.score, 0))
	w.logger.Info(w.ctx, "game lost", "score", w.score, "wave", w.wave)
}
