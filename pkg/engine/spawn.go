package engine

import (
	"errors"
	"math/rand/v2"

	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/event"
	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// Spawner decides the enemies of each wave
type Spawner interface {
	// NextWave returns the spawn orders for wave n, counted from 1
	NextWave(n int, arena enemy.Arena) ([]enemy.SpawnOrder, error)
}

// waveKinds is the unlock order of wave enemies. MiniRects only appear
// when a SpawningRect splits.
var waveKinds = []enemy.Kind{enemy.Rombus, enemy.Rect, enemy.Wanderer, enemy.SpawningRect}

// placementAttempts bounds the search for a spot away from the player
const placementAttempts = 16

// DefaultSpawner spawns n+2 enemies in wave n, cycling through the kinds
// unlocked so far, placed at random away from the player.
type DefaultSpawner struct {
	Rand       *rand.Rand
	SafeRadius float32
}

// NextWave implements Spawner
func (s *DefaultSpawner) NextWave(n int, arena enemy.Arena) ([]enemy.SpawnOrder, error) {
	if n < 1 {
		return nil, errors.New("wave numbers start at 1")
	}
	if arena.Size.X <= 0 || arena.Size.Y <= 0 {
		return nil, errors.New("arena has no area")
	}

	unlocked := waveKinds[:min(n, len(waveKinds))]
	orders := make([]enemy.SpawnOrder, n+2)
	for i := range orders {
		orders[i] = enemy.SpawnOrder{
			Kind:     unlocked[i%len(unlocked)],
			Position: s.place(arena),
		}
	}
	return orders, nil
}

// place picks a random point at least SafeRadius from the player. When
// the arena is too crowded to find one, the last candidate is pushed out
// to the safe radius and kept inside the arena; if that still lands too
// close, the arena corner farthest from the player is used.
func (s *DefaultSpawner) place(arena enemy.Arena) physics.Vector2 {
	var p physics.Vector2
	for range placementAttempts {
		p = physics.Vec(s.Rand.Float32()*arena.Size.X, s.Rand.Float32()*arena.Size.Y)
		if p.Distance(arena.Player) >= s.SafeRadius {
			return p
		}
	}
	away := p.Sub(arena.Player).Normalize()
	if away.IsZero() {
		away = physics.Vec(1, 0)
	}
	pushed := clampToArena(arena.Player.Add(away.Scale(s.SafeRadius)), arena.Size)
	if pushed.Distance(arena.Player) >= s.SafeRadius {
		return pushed
	}
	return farthestCorner(arena)
}

func clampToArena(p, size physics.Vector2) physics.Vector2 {
	return physics.Vec(min(max(p.X, 0), size.X), min(max(p.Y, 0), size.Y))
}

// farthestCorner is the arena point farthest from the player.
func farthestCorner(arena enemy.Arena) physics.Vector2 {
	best := physics.Vec(0, 0)
	for _, c := range []physics.Vector2{
		physics.Vec(arena.Size.X, 0),
		physics.Vec(0, arena.Size.Y),
		arena.Size,
	} {
		if c.Distance(arena.Player) > best.Distance(arena.Player) {
			best = c
		}
	}
	return best
}

// updateWaves starts the next wave once the arena has been empty for the
// configured delay.
func (w *World) updateWaves(dt float32) {
	if !w.Config.Waves.Enabled || w.state != Running || len(w.enemies) > 0 {
		return
	}
	w.waveTimer -= dt
	if w.waveTimer > 0 {
		return
	}
	w.waveTimer = w.Config.Waves.Delay
	w.startWave()
}

// startWave asks the spawner for the next wave and spawns it. A failing
// spawner skips the wave.
func (w *World) startWave() {
	next := w.wave + 1
	arena := enemy.Arena{Size: w.WorldSize(), Player: w.bodies.Get(w.player).Position}

	orders, err := w.spawner.NextWave(next, arena)
	if err != nil {
		w.logger.Error(w.ctx, "wave spawner failed", err, "wave", next)
		return
	}

	w.wave = next
	for _, o := range orders {
		w.SpawnEnemy(o.Kind, o.Position)
	}
	w.EventBus.Publish(event.NewWaveEvent(w, w.wave, len(orders)))
	w.logger.Info(w.ctx, "wave started", "wave", w.wave, "enemies", len(orders))
}
