// Package app wires configuration, enemy catalog and wave script into a
// ready-to-run World for the front ends.
package app

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/opd-ai/go-gridwars/pkg/config"
	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/engine"
	"github.com/opd-ai/go-gridwars/pkg/event"
	"github.com/opd-ai/go-gridwars/pkg/logging"
	"github.com/opd-ai/go-gridwars/pkg/script"
)

// LoadConfig reads path, falling back to the defaults when the file does
// not exist, then applies GWARS_* overrides and validates the result.
func LoadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var cfg *config.GameConfig

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, logging.WrapError(err, "loading configuration %s", path)
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, logging.WrapError(err, "applying environment configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Game is a World together with the resources it was built from
type Game struct {
	World *engine.World
	Bus   *event.Bus
	waves *script.Waves
}

// NewGame builds a World from cfg. A catalog path replaces the built-in
// enemy tables; a script path replaces the default wave spawner.
func NewGame(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger) (*Game, error) {
	g := &Game{Bus: event.NewEventBus()}
	opts := []engine.Option{
		engine.WithEventBus(g.Bus),
		engine.WithLogger(logger),
		engine.WithContext(ctx),
	}

	if path := cfg.Enemies.CatalogPath; path != "" {
		catalog, err := enemy.LoadCatalog(path)
		if err != nil {
			return nil, logging.WrapError(err, "loading enemy catalog %s", path)
		}
		logger.Info(ctx, "Loaded enemy catalog", "catalog_path", path)
		opts = append(opts, engine.WithCatalog(catalog))
	}

	if path := cfg.Waves.ScriptPath; path != "" {
		waves, err := script.LoadWaves(path, logger)
		if err != nil {
			return nil, logging.WrapError(err, "loading wave script %s", path)
		}
		logger.Info(ctx, "Loaded wave script", "script_path", path)
		g.waves = waves
		opts = append(opts, engine.WithSpawner(waves))
	}

	g.World = engine.NewWorld(cfg, opts...)
	return g, nil
}

// Close releases the wave script interpreter, if any
func (g *Game) Close() {
	if g.waves != nil {
		g.waves.Close()
		g.waves = nil
	}
}
