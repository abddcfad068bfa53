// pkg/config/config.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/opd-ai/go-gridwars/pkg/grid"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains configuration for a game session
type GameConfig struct {
	World     WorldConfig     `json:"world" toml:"world"`
	Physics   PhysicsConfig   `json:"physics" toml:"physics"`
	Player    PlayerConfig    `json:"player" toml:"player"`
	Missile   MissileConfig   `json:"missile" toml:"missile"`
	Enemies   EnemyConfig     `json:"enemies" toml:"enemies"`
	Grid      GridConfig      `json:"grid" toml:"grid"`
	Explosion ExplosionConfig `json:"explosion" toml:"explosion"`
	Waves     WaveConfig      `json:"waves" toml:"waves"`
	Window    WindowConfig    `json:"window" toml:"window"`
	Audio     AudioConfig     `json:"audio" toml:"audio"`
}

// WorldConfig sizes the playfield; the origin is its top-left corner
type WorldConfig struct {
	Width  float32 `json:"width" toml:"width"`
	Height float32 `json:"height" toml:"height"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	SubStepMs float32 `json:"subStepMs" toml:"sub_step_ms"`
	Gravity   float32 `json:"gravity" toml:"gravity"`
	GravityX  float32 `json:"gravityX" toml:"gravity_x"`
	GravityY  float32 `json:"gravityY" toml:"gravity_y"`
}

// PlayerConfig tunes the player's ship
type PlayerConfig struct {
	StartX       float32 `json:"startX" toml:"start_x"`
	StartY       float32 `json:"startY" toml:"start_y"`
	MaxVelocity  float32 `json:"maxVelocity" toml:"max_velocity"`
	Acceleration float32 `json:"acceleration" toml:"acceleration"`
	Drag         float32 `json:"drag" toml:"drag"`
	FireInterval float32 `json:"fireInterval" toml:"fire_interval"` // seconds between shots
}

// MissileConfig tunes the player's missiles
type MissileConfig struct {
	Speed      float32 `json:"speed" toml:"speed"`
	TimeToLive float32 `json:"timeToLive" toml:"time_to_live"` // seconds
}

// EnemyConfig contains enemy tuning shared by every kind
type EnemyConfig struct {
	ForceRadius    float32 `json:"forceRadius" toml:"force_radius"`
	Repulsion      float32 `json:"repulsion" toml:"repulsion"`
	MiniRectOffset float32 `json:"miniRectOffset" toml:"mini_rect_offset"`
	CatalogPath    string  `json:"catalogPath,omitempty" toml:"catalog_path"`
}

// GridConfig tunes the background lattice
type GridConfig struct {
	Spacing         float32 `json:"spacing" toml:"spacing"`
	Decay           float32 `json:"decay" toml:"decay"`
	MaxSpeed        float32 `json:"maxSpeed" toml:"max_speed"`
	RestoreCap      float32 `json:"restoreCap" toml:"restore_cap"`
	RestThreshold   float32 `json:"restThreshold" toml:"rest_threshold"`
	ImpulseStrength float32 `json:"impulseStrength" toml:"impulse_strength"`
	EffectStrength  float32 `json:"effectStrength" toml:"effect_strength"`
	MaxForce        float32 `json:"maxForce" toml:"max_force"`
}

// ExplosionConfig sizes the grid shock waves for kills and player death
type ExplosionConfig struct {
	Radius              float32 `json:"radius" toml:"radius"`
	TimeToLive          float32 `json:"timeToLive" toml:"time_to_live"`
	ExpansionSpeed      float32 `json:"expansionSpeed" toml:"expansion_speed"`
	DeathRadius         float32 `json:"deathRadius" toml:"death_radius"`
	DeathTimeToLive     float32 `json:"deathTimeToLive" toml:"death_time_to_live"`
	DeathExpansionSpeed float32 `json:"deathExpansionSpeed" toml:"death_expansion_speed"`
}

// WaveConfig controls automatic enemy waves
type WaveConfig struct {
	Enabled    bool    `json:"enabled" toml:"enabled"`
	Delay      float32 `json:"delay" toml:"delay"` // seconds between a cleared arena and the next wave
	SafeRadius float32 `json:"safeRadius" toml:"safe_radius"`
	ScriptPath string  `json:"scriptPath,omitempty" toml:"script_path"`
	Seed       uint64  `json:"seed" toml:"seed"` // zero picks a random seed
}

// WindowConfig sizes the front-end window
type WindowConfig struct {
	Title  string `json:"title" toml:"title"`
	Width  int    `json:"width" toml:"width"`
	Height int    `json:"height" toml:"height"`
}

// AudioConfig controls sound effects and music
type AudioConfig struct {
	Enabled      bool    `json:"enabled" toml:"enabled"`
	SampleRate   int     `json:"sampleRate" toml:"sample_rate"`
	MasterVolume float64 `json:"masterVolume" toml:"master_volume"` // 0..1
	MusicVolume  float64 `json:"musicVolume" toml:"music_volume"`   // 0..1, scaled by the master volume
	Music        bool    `json:"music" toml:"music"`                // start with music playing
}

// LoadConfig loads a configuration from a file. Files ending in .toml are
// read as TOML, everything else as JSON. Missing fields keep their defaults.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isTOML(path) {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file in the format its extension names
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: nil config")
	}

	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(config); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		if data, err = json.MarshalIndent(config, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	g := grid.DefaultConfig()
	return &GameConfig{
		World: WorldConfig{Width: 1600, Height: 1200},
		Physics: PhysicsConfig{
			SubStepMs: 2,
			Gravity:   0,
			GravityY:  1,
		},
		Player: PlayerConfig{
			StartX:       800,
			StartY:       600,
			MaxVelocity:  300,
			Acceleration: 900,
			Drag:         3,
			FireInterval: 0.1,
		},
		Missile: MissileConfig{
			Speed:      600,
			TimeToLive: 5,
		},
		Enemies: EnemyConfig{
			ForceRadius:    120,
			Repulsion:      900,
			MiniRectOffset: 12,
		},
		Grid: GridConfig{
			Spacing:         g.Spacing,
			Decay:           g.Decay,
			MaxSpeed:        g.MaxSpeed,
			RestoreCap:      g.RestoreCap,
			RestThreshold:   g.RestThreshold,
			ImpulseStrength: g.ImpulseStrength,
			EffectStrength:  g.EffectStrength,
			MaxForce:        g.MaxForce,
		},
		Explosion: ExplosionConfig{
			Radius:              10,
			TimeToLive:          0.6,
			ExpansionSpeed:      300,
			DeathRadius:         30,
			DeathTimeToLive:     1.5,
			DeathExpansionSpeed: 500,
		},
		Waves: WaveConfig{
			Enabled:    true,
			Delay:      2,
			SafeRadius: 250,
		},
		Window: WindowConfig{
			Title:  "Grid Wars",
			Width:  1024,
			Height: 768,
		},
		Audio: AudioConfig{
			Enabled:      true,
			SampleRate:   44100,
			MasterVolume: 0.6,
			MusicVolume:  0.4,
			Music:        true,
		},
	}
}

// GridParams converts the grid section for the lattice
func (c *GameConfig) GridParams() grid.Config {
	return grid.Config{
		Spacing:         c.Grid.Spacing,
		Decay:           c.Grid.Decay,
		MaxSpeed:        c.Grid.MaxSpeed,
		RestoreCap:      c.Grid.RestoreCap,
		RestThreshold:   c.Grid.RestThreshold,
		ImpulseStrength: c.Grid.ImpulseStrength,
		EffectStrength:  c.Grid.EffectStrength,
		MaxForce:        c.Grid.MaxForce,
	}
}

// Validate reports every setting the simulation cannot run with
func (c *GameConfig) Validate() error {
	var errs []error
	positive := func(field string, v float32) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, field, v))
		}
	}
	nonNegative := func(field string, v float32) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, field, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("physics.sub_step_ms", c.Physics.SubStepMs)
	nonNegative("physics.gravity", c.Physics.Gravity)
	positive("player.max_velocity", c.Player.MaxVelocity)
	nonNegative("player.acceleration", c.Player.Acceleration)
	nonNegative("player.drag", c.Player.Drag)
	nonNegative("player.fire_interval", c.Player.FireInterval)
	positive("missile.speed", c.Missile.Speed)
	positive("missile.time_to_live", c.Missile.TimeToLive)
	nonNegative("enemies.force_radius", c.Enemies.ForceRadius)
	nonNegative("enemies.repulsion", c.Enemies.Repulsion)
	positive("grid.spacing", c.Grid.Spacing)
	positive("grid.max_speed", c.Grid.MaxSpeed)
	positive("grid.restore_cap", c.Grid.RestoreCap)
	nonNegative("waves.delay", c.Waves.Delay)

	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: audio.sample_rate must be positive, got %d", ErrInvalidConfig, c.Audio.SampleRate))
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 || c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		errs = append(errs, fmt.Errorf("%w: audio volumes must be in [0, 1]", ErrInvalidConfig))
	}
	if c.Grid.Decay < 0 || c.Grid.Decay >= 1 {
		errs = append(errs, fmt.Errorf("%w: grid.decay must be in [0, 1), got %v", ErrInvalidConfig, c.Grid.Decay))
	}
	if c.Player.StartX < 0 || c.Player.StartX > c.World.Width ||
		c.Player.StartY < 0 || c.Player.StartY > c.World.Height {
		errs = append(errs, fmt.Errorf("%w: player start (%v, %v) is outside the world", ErrInvalidConfig, c.Player.StartX, c.Player.StartY))
	}

	return errors.Join(errs...)
}
