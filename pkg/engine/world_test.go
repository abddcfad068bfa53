package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/opd-ai/go-gridwars/pkg/config"
	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/event"
	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/store"
)

const epsilon = 1e-3

// testConfig is the default configuration with waves off and the player
// in the middle of a 1000x1000 world.
func testConfig() *config.GameConfig {
	cfg := config.DefaultConfig()
	cfg.World.Width = 1000
	cfg.World.Height = 1000
	cfg.Player.StartX = 500
	cfg.Player.StartY = 500
	cfg.Waves.Enabled = false
	return cfg
}

func newTestWorld(opts ...Option) *World {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return NewWorld(testConfig(), opts...)
}

func TestNewWorld_InitializesState(t *testing.T) {
	w := newTestWorld()

	if w.State() != Running {
		t.Errorf("State() = %v, expected running", w.State())
	}
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount() = %d, expected only the player", w.BodyCount())
	}
	if p := w.Player(); p.Position != physics.Vec(500, 500) || p.Border != physics.BounceSlowdown {
		t.Errorf("player = %+v, expected bounce_slowdown body at (500,500)", p)
	}
	if w.Grid().Cols() != 26 || w.Grid().Rows() != 26 {
		t.Errorf("grid is %dx%d, expected 26x26", w.Grid().Cols(), w.Grid().Rows())
	}
}

func TestWorld_TickPhaseOrder(t *testing.T) {
	w := newTestWorld()
	expected := []string{"control", "physics", "missiles", "enemies", "collisions", "waves", "grid"}
	if got := w.Phases(); !slices.Equal(got, expected) {
		t.Errorf("Phases() = %v, expected %v", got, expected)
	}
}

func TestWorld_Controls(t *testing.T) {
	w := newTestWorld()

	w.ModifyControlBit(BitRight, true)
	w.ModifyControlBit(BitDown, true)
	if w.Controls() != BitRight|BitDown {
		t.Fatalf("Controls() = %08b, expected %08b", w.Controls(), BitRight|BitDown)
	}

	for range 10 {
		w.Tick(16, 2)
	}
	p := w.Player()
	if p.Position.X <= 500 || p.Position.Y <= 500 {
		t.Errorf("player at %v, expected to move right and down", p.Position)
	}
	if p.Velocity() > w.Config.Player.MaxVelocity+epsilon {
		t.Errorf("player speed %v exceeds max %v", p.Velocity(), w.Config.Player.MaxVelocity)
	}

	w.ModifyControlBit(BitRight, false)
	w.ModifyControlBit(BitDown, false)
	if w.Controls() != 0 {
		t.Errorf("Controls() = %08b after release, expected 0", w.Controls())
	}
}

func TestControlBit_Axes(t *testing.T) {
	tests := []struct {
		name     string
		bits     ControlBit
		movement physics.Vector2
		aim      physics.Vector2
	}{
		{"none", 0, physics.Vec(0, 0), physics.Vec(0, 0)},
		{"up_left", BitUp | BitLeft, physics.Vec(-1, -1), physics.Vec(0, 0)},
		{"opposites_cancel", BitUp | BitDown, physics.Vec(0, 0), physics.Vec(0, 0)},
		{"shoot_right", BitShootRight, physics.Vec(0, 0), physics.Vec(1, 0)},
		{"move_and_shoot", BitDown | BitShootUp, physics.Vec(0, 1), physics.Vec(0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bits.Movement(); got != tt.movement {
				t.Errorf("Movement() = %v, expected %v", got, tt.movement)
			}
			if got := tt.bits.Aim(); got != tt.aim {
				t.Errorf("Aim() = %v, expected %v", got, tt.aim)
			}
		})
	}
}

func TestWorld_FiringIsRateLimited(t *testing.T) {
	w := newTestWorld()
	var fired []*event.MissileEvent
	w.EventBus.Subscribe(event.MissileFired, func(e event.Event) {
		fired = append(fired, e.(*event.MissileEvent))
	})

	w.ModifyControlBit(BitShootUp, true)
	w.Tick(16, 2)
	w.Tick(16, 2)

	if w.MissileCount() != 1 {
		t.Fatalf("MissileCount() = %d, expected 1 within the fire interval", w.MissileCount())
	}
	if len(fired) != 1 {
		t.Fatalf("got %d MissileFired events, expected 1", len(fired))
	}
	if fired[0].Direction != physics.Vec(0, -w.Config.Missile.Speed) {
		t.Errorf("missile direction = %v, expected straight up", fired[0].Direction)
	}

	for range 10 {
		w.Tick(16, 2)
	}
	if w.MissileCount() < 2 {
		t.Errorf("MissileCount() = %d, expected another shot after the interval", w.MissileCount())
	}
}

func TestWorld_MissileExpires(t *testing.T) {
	w := newTestWorld()
	id := w.SpawnMissile(physics.Vec(500, 400), physics.Vec(0, 0))
	if w.MissileCount() != 1 || w.BodyCount() != 2 {
		t.Fatalf("after spawn: %d missiles, %d bodies", w.MissileCount(), w.BodyCount())
	}
	if id == 0 {
		t.Error("SpawnMissile returned the zero id")
	}

	w.Tick(w.Config.Missile.TimeToLive*1000+16, 2)

	if w.MissileCount() != 0 {
		t.Errorf("MissileCount() = %d, expected the missile to expire", w.MissileCount())
	}
	if w.BodyCount() != 1 {
		t.Errorf("BodyCount() = %d, expected the missile body to be removed", w.BodyCount())
	}
}

func TestWorld_MissileLeavingWorldIsRemoved(t *testing.T) {
	w := newTestWorld()
	w.SpawnMissile(physics.Vec(999, 500), physics.Vec(600, 0))

	w.Tick(16, 2)

	if w.MissileCount() != 0 || w.BodyCount() != 1 {
		t.Errorf("got %d missiles and %d bodies, expected the missile gone", w.MissileCount(), w.BodyCount())
	}
}

func TestWorld_DismissedEnemyLeavingWorldIsRemoved(t *testing.T) {
	catalog, err := enemy.ParseCatalog([]byte("enemies:\n  - kind: wanderer\n    border: dismiss\n"))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	spawner := &stubSpawner{orders: []enemy.SpawnOrder{
		{Kind: enemy.Wanderer, Position: physics.Vec(300, 300)},
	}}
	w := newTestWorld(WithCatalog(catalog), WithSpawner(spawner))
	w.Config.Waves.Enabled = true
	destroyed := 0
	w.EventBus.Subscribe(event.EnemyDestroyed, func(event.Event) { destroyed++ })

	w.Tick(16, 2)
	if w.Wave() != 1 || w.EnemyCount() != 1 {
		t.Fatalf("wave %d with %d enemies, expected wave 1 with 1", w.Wave(), w.EnemyCount())
	}

	w.bodies.With(w.enemies[0].EntityID, func(b *physics.Body) { b.Position = physics.Vec(5000, 5000) })
	w.Tick(16, 2)

	if w.EnemyCount() != 0 || w.BodyCount() != 1 {
		t.Fatalf("got %d enemies and %d bodies, expected the wanderer swept", w.EnemyCount(), w.BodyCount())
	}
	if w.Score() != 0 || destroyed != 0 {
		t.Errorf("sweep scored %d with %d EnemyDestroyed events, expected no kill", w.Score(), destroyed)
	}

	// the cleared arena lets the next wave start after the delay
	for range 5 {
		w.Tick(500, 2)
	}
	if w.Wave() != 2 {
		t.Errorf("Wave() = %d, expected the second wave", w.Wave())
	}
}

func TestWorld_MissileDisturbsGrid(t *testing.T) {
	w := newTestWorld()
	w.SpawnMissile(physics.Vec(210, 210), physics.Vec(0, 0))

	w.Tick(16, 2)

	v := w.Grid().At(5, 5)
	if v.Offset().IsZero() && v.Velocity.IsZero() {
		t.Error("vertex under the missile did not move")
	}
}

func TestWorld_EnemiesSteer(t *testing.T) {
	w := newTestWorld()
	id := w.SpawnEnemy(enemy.Rombus, physics.Vec(100, 500))

	for range 10 {
		w.Tick(16, 2)
	}
	if x := w.Body(id).Position.X; x <= 100 {
		t.Errorf("rombus at x=%v, expected it to move toward the player", x)
	}
}

func TestWorld_SpawnEnemyClampsIntoWorld(t *testing.T) {
	w := newTestWorld()
	var spawned []*event.EnemyEvent
	w.EventBus.Subscribe(event.EnemySpawned, func(e event.Event) {
		spawned = append(spawned, e.(*event.EnemyEvent))
	})

	id := w.SpawnEnemy(enemy.Rect, physics.Vec(-50, 2000))

	if got := w.Body(id).Position; got != physics.Vec(0, 1000) {
		t.Errorf("position = %v, expected (0,1000)", got)
	}
	if len(spawned) != 1 || spawned[0].Kind != enemy.Rect || spawned[0].EnemyID != uint64(id) {
		t.Errorf("EnemySpawned events = %+v", spawned)
	}
}

func TestWorld_CameraTransform(t *testing.T) {
	w := newTestWorld()
	w.UpdateWindowSize(800, 600)

	cam := w.CameraTransform()
	if got := cam.Apply(w.Player().Position); got != physics.Vec(400, 300) {
		t.Errorf("player maps to %v, expected window center (400,300)", got)
	}
	if got := cam.Apply(physics.Vec(510, 480)); got != physics.Vec(410, 280) {
		t.Errorf("offset point maps to %v, expected (410,280)", got)
	}
}

func TestWorld_Restart(t *testing.T) {
	w := newTestWorld()
	w.SpawnEnemy(enemy.Rect, physics.Vec(100, 100))
	w.SpawnMissile(physics.Vec(100, 100), physics.Vec(0, 0))
	w.ResolveCollisions()
	w.SpawnEnemy(enemy.Rombus, physics.Vec(900, 900))
	w.ModifyControlBit(BitLeft, true)

	w.Restart()

	if w.Score() != 0 || w.EnemyCount() != 0 || w.MissileCount() != 0 {
		t.Errorf("after restart: score %d, %d enemies, %d missiles", w.Score(), w.EnemyCount(), w.MissileCount())
	}
	if w.Controls() != 0 || w.State() != Running || w.BodyCount() != 1 {
		t.Errorf("after restart: controls %08b, state %v, %d bodies", w.Controls(), w.State(), w.BodyCount())
	}
}

func TestWorld_StaleIDPanics(t *testing.T) {
	w := newTestWorld()
	stale := store.NextID()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Body() with a stale id did not panic")
		}
		expected := fmt.Sprintf("Entity with id %d does not exist", stale)
		if msg := fmt.Sprint(r); !strings.Contains(msg, expected) {
			t.Errorf("panic = %q, expected it to contain %q", msg, expected)
		}
	}()
	w.Body(stale)
}

func TestWorld_Snapshot(t *testing.T) {
	w := newTestWorld()
	w.UpdateWindowSize(800, 600)
	id := w.SpawnEnemy(enemy.Rect, physics.Vec(100, 100))
	w.SpawnMissile(physics.Vec(700, 700), physics.Vec(0, 0))

	s := w.Snapshot()

	if s.State != Running || s.EnemiesLeft != 1 || s.WorldSize != physics.Vec(1000, 1000) {
		t.Errorf("snapshot header = %v/%d/%v", s.State, s.EnemiesLeft, s.WorldSize)
	}
	if len(s.Enemies) != 1 || s.Enemies[0].ID != id || s.Enemies[0].Kind != enemy.Rect {
		t.Fatalf("Enemies = %+v", s.Enemies)
	}
	if s.Enemies[0].Hull[0] != physics.Vec(90, 90) {
		t.Errorf("enemy hull[0] = %v, expected world space (90,90)", s.Enemies[0].Hull[0])
	}
	if len(s.Missiles) != 1 || s.Missiles[0].Position != physics.Vec(700, 700) {
		t.Errorf("Missiles = %+v", s.Missiles)
	}
	if len(s.Player.Hull) != len(ShipHull) || !s.Player.Alive {
		t.Errorf("Player = %+v", s.Player)
	}
	if s.Grid.Cols != w.Grid().Cols() || len(s.Grid.Points) != w.Grid().Len() {
		t.Errorf("Grid = %d cols, %d points", s.Grid.Cols, len(s.Grid.Points))
	}
	if got := s.Camera.Apply(s.Player.Position); got != physics.Vec(400, 300) {
		t.Errorf("snapshot camera maps player to %v", got)
	}
}

// stubSpawner returns fixed orders or a fixed error
type stubSpawner struct {
	orders []enemy.SpawnOrder
	err    error
	calls  []int
}

func (s *stubSpawner) NextWave(n int, _ enemy.Arena) ([]enemy.SpawnOrder, error) {
	s.calls = append(s.calls, n)
	return s.orders, s.err
}

func TestWorld_Waves(t *testing.T) {
	spawner := &stubSpawner{orders: []enemy.SpawnOrder{
		{Kind: enemy.Rombus, Position: physics.Vec(100, 100)},
		{Kind: enemy.Wanderer, Position: physics.Vec(900, 900)},
	}}
	w := newTestWorld(WithSpawner(spawner))
	w.Config.Waves.Enabled = true

	var waves []*event.WaveEvent
	w.EventBus.Subscribe(event.WaveStarted, func(e event.Event) {
		waves = append(waves, e.(*event.WaveEvent))
	})

	w.Tick(16, 2)

	if w.Wave() != 1 || w.EnemyCount() != 2 {
		t.Fatalf("wave %d with %d enemies, expected wave 1 with 2", w.Wave(), w.EnemyCount())
	}
	if len(waves) != 1 || waves[0].Wave != 1 || waves[0].Enemies != 2 {
		t.Errorf("WaveStarted events = %+v", waves)
	}

	// the next wave waits for an empty arena
	w.Tick(16, 2)
	if len(spawner.calls) != 1 {
		t.Errorf("spawner called %d times while enemies remain", len(spawner.calls))
	}
}

func TestWorld_WaveDelay(t *testing.T) {
	spawner := &stubSpawner{orders: []enemy.SpawnOrder{{Kind: enemy.Rect, Position: physics.Vec(100, 100)}}}
	w := newTestWorld(WithSpawner(spawner))
	w.Config.Waves.Enabled = true
	w.Config.Waves.Delay = 1

	w.Tick(16, 2)
	w.SpawnMissile(physics.Vec(100, 100), physics.Vec(0, 0))
	w.ResolveCollisions()
	if w.EnemyCount() != 0 {
		t.Fatalf("EnemyCount() = %d, expected the wave cleared", w.EnemyCount())
	}

	w.Tick(500, 2)
	if w.Wave() != 1 {
		t.Errorf("Wave() = %d before the delay elapsed", w.Wave())
	}
	w.Tick(600, 2)
	if w.Wave() != 2 {
		t.Errorf("Wave() = %d, expected the second wave after the delay", w.Wave())
	}
}

func TestWorld_SpawnerErrorSkipsWave(t *testing.T) {
	spawner := &stubSpawner{err: errors.New("script exploded")}
	w := newTestWorld(WithSpawner(spawner))
	w.Config.Waves.Enabled = true

	w.Tick(16, 2)

	if w.Wave() != 0 || w.EnemyCount() != 0 || w.State() != Running {
		t.Errorf("wave %d, %d enemies, state %v after a spawner error", w.Wave(), w.EnemyCount(), w.State())
	}
}
