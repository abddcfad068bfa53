// Package engine owns the simulation state and advances it one frame at a time.
package engine

import (
	"context"
	"math/rand/v2"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-gridwars/pkg/config"
	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/event"
	"github.com/opd-ai/go-gridwars/pkg/grid"
	"github.com/opd-ai/go-gridwars/pkg/logging"
	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/store"
)

// State is the game state
type State int

const (
	Running State = iota
	Lost
)

// String returns the state name
func (s State) String() string {
	if s == Lost {
		return "lost"
	}
	return "running"
}

// Missile links a body to its remaining lifetime
type Missile struct {
	EntityID   store.ID
	TimeToLive float32 // seconds
}

// World ties the body store, missiles, enemies and grid together
type World struct {
	Config   *config.GameConfig
	EventBus *event.Bus

	bodies   *store.Store[physics.Body]
	missiles *store.Store[Missile]
	enemies  []enemy.Enemy
	grid     *grid.Grid

	integrator   *physics.Integrator
	catalog      *enemy.Catalog
	missileField *enemy.MissileField
	spawner      Spawner
	systems      *ecs.World
	logger       *logging.Logger
	ctx          context.Context
	rng          *rand.Rand

	player       store.ID
	controls     ControlBit
	score        uint32
	state        State
	wave         int
	waveTimer    float32
	fireCooldown float32
	window       physics.Vector2
	frame        frameTiming
}

// frameTiming is the input of the tick being run
type frameTiming struct {
	elapsedMs float32
	subStepMs float32
}

// Option customizes a World at construction
type Option func(*World)

// WithEventBus publishes simulation events on bus
func WithEventBus(bus *event.Bus) Option {
	return func(w *World) { w.EventBus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(w *World) { w.logger = logger }
}

// WithContext sets the context carried into log calls
func WithContext(ctx context.Context) Option {
	return func(w *World) { w.ctx = ctx }
}

// WithRand sets the random source used by wanderers and the default spawner
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = r }
}

// WithSpawner replaces the default wave spawner
func WithSpawner(s Spawner) Option {
	return func(w *World) { w.spawner = s }
}

// WithCatalog replaces the built-in enemy catalog
func WithCatalog(c *enemy.Catalog) Option {
	return func(w *World) { w.catalog = c }
}

// NewWorld creates a world from cfg with the player at its start position
func NewWorld(cfg *config.GameConfig, opts ...Option) *World {
	w := &World{
		Config: cfg,
		ctx:    context.Background(),
		window: physics.Vec(float32(cfg.Window.Width), float32(cfg.Window.Height)),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.initDefaults()
	w.initSystems()
	w.reset()

	return w
}

// initDefaults fills in every collaborator no option supplied.
func (w *World) initDefaults() {
	if w.EventBus == nil {
		w.EventBus = event.NewEventBus()
	}
	if w.logger == nil {
		w.logger = logging.Discard()
	}
	if w.rng == nil {
		seed := w.Config.Waves.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if w.catalog == nil {
		w.catalog = enemy.DefaultCatalog()
	}
	if w.spawner == nil {
		w.spawner = &DefaultSpawner{Rand: w.rng, SafeRadius: w.Config.Waves.SafeRadius}
	}
}

// reset rebuilds all simulation state from the configuration.
func (w *World) reset() {
	cfg := w.Config
	size := w.WorldSize()

	w.bodies = store.New(physics.NewBody)
	w.missiles = store.New[Missile](nil)
	w.enemies = nil
	w.grid = grid.New(size.X, size.Y, cfg.GridParams())
	w.integrator = &physics.Integrator{
		WorldSize:        size,
		Gravity:          cfg.Physics.Gravity,
		GravityDirection: physics.Vec(cfg.Physics.GravityX, cfg.Physics.GravityY).Normalize(),
	}
	w.missileField = enemy.NewMissileField(size, cfg.Enemies.ForceRadius)

	w.controls = 0
	w.score = 0
	w.state = Running
	w.wave = 0
	w.waveTimer = 0
	w.fireCooldown = 0

	w.player = w.bodies.CreateWith(func(b *physics.Body, _ store.ID) {
		b.Position = physics.Vec(cfg.Player.StartX, cfg.Player.StartY)
		b.MaxVelocity = cfg.Player.MaxVelocity
		b.Border = physics.BounceSlowdown
	})
}

// Restart throws away the current game and starts a fresh one
func (w *World) Restart() {
	w.reset()
	w.logger.Info(w.ctx, "game restarted")
}

// Tick advances the simulation by elapsedMs, integrating physics in
// sub-steps of about subStepMs.
func (w *World) Tick(elapsedMs, subStepMs float32) {
	w.frame = frameTiming{elapsedMs: elapsedMs, subStepMs: subStepMs}
	w.systems.Update(elapsedMs / 1000)
}

// WorldSize returns the playfield size
func (w *World) WorldSize() physics.Vector2 {
	return physics.Vec(w.Config.World.Width, w.Config.World.Height)
}

// Score returns the points earned so far
func (w *World) Score() uint32 { return w.score }

// State returns whether the game is still running
func (w *World) State() State { return w.state }

// Wave returns the number of the current wave
func (w *World) Wave() int { return w.wave }

// EnemyCount returns how many enemies are alive
func (w *World) EnemyCount() int { return len(w.enemies) }

// MissileCount returns how many missiles are in flight
func (w *World) MissileCount() int { return w.missiles.Len() }

// BodyCount returns the number of bodies in the body store
func (w *World) BodyCount() int { return w.bodies.Len() }

// Grid returns the background lattice
func (w *World) Grid() *grid.Grid { return w.grid }

// Player returns a copy of the player's body
func (w *World) Player() physics.Body {
	return w.bodies.Get(w.player)
}

// Body returns a copy of any body by id
func (w *World) Body(id store.ID) physics.Body {
	return w.bodies.Get(id)
}

// Enemies returns a copy of the enemy list
func (w *World) Enemies() []enemy.Enemy {
	return append([]enemy.Enemy(nil), w.enemies...)
}

// UpdateWindowSize records the viewport size used to center the camera
func (w *World) UpdateWindowSize(width, height float32) {
	w.window = physics.Vec(width, height)
}

// CameraTransform maps world coordinates to window coordinates with the
// player at the center of the window.
func (w *World) CameraTransform() physics.Transform {
	player := w.bodies.Get(w.player).Position
	return physics.TranslationV(w.window.Scale(0.5)).Mul(physics.TranslationV(player.Scale(-1)))
}

// SpawnEnemy adds an enemy of kind at pos and returns its body id
func (w *World) SpawnEnemy(kind enemy.Kind, pos physics.Vector2) store.ID {
	return w.spawnEnemy(kind, pos, physics.Vector2{})
}

// spawnEnemy creates the body and enemy record with an initial velocity.
func (w *World) spawnEnemy(kind enemy.Kind, pos, direction physics.Vector2) store.ID {
	profile := w.catalog.Profile(kind)
	pos = w.clampToWorld(pos)

	id := w.bodies.CreateWith(func(b *physics.Body, _ store.ID) {
		b.Position = pos
		b.Direction = direction.ClampLen(profile.MaxVelocity)
		b.MaxVelocity = profile.MaxVelocity
		b.Border = profile.Border
	})
	w.enemies = append(w.enemies, enemy.Enemy{EntityID: id, Kind: kind, Hull: profile.Hull})

	w.EventBus.Publish(event.NewEnemyEvent(event.EnemySpawned, w, uint64(id), kind, pos, 0))
	return id
}

// SpawnMissile fires a missile from pos with the given velocity and
// returns the missile record id.
func (w *World) SpawnMissile(pos, direction physics.Vector2) store.ID {
	body := w.bodies.CreateWith(func(b *physics.Body, _ store.ID) {
		b.Position = pos
		b.Direction = direction
		b.Angle = direction.Angle()
		b.MaxVelocity = direction.Len()
		b.Border = physics.Dismiss
	})
	id := w.missiles.Insert(Missile{EntityID: body, TimeToLive: w.Config.Missile.TimeToLive})

	w.EventBus.Publish(event.NewMissileEvent(w, uint64(id), pos, direction))
	return id
}

// clampToWorld keeps spawn positions inside the playfield.
func (w *World) clampToWorld(p physics.Vector2) physics.Vector2 {
	size := w.WorldSize()
	p.X = min(max(p.X, 0), size.X)
	p.Y = min(max(p.Y, 0), size.Y)
	return p
}

// inWorld reports whether p lies inside the playfield.
func (w *World) inWorld(p physics.Vector2) bool {
	size := w.WorldSize()
	return p.X >= 0 && p.Y >= 0 && p.X <= size.X && p.Y <= size.Y
}
