// cmd/gwars runs the game in a window
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-gridwars/pkg/app"
	"github.com/opd-ai/go-gridwars/pkg/audio"
	"github.com/opd-ai/go-gridwars/pkg/config"
	"github.com/opd-ai/go-gridwars/pkg/logging"
	engorender "github.com/opd-ai/go-gridwars/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSession(context.Background(), logging.NewSessionID())

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	cfg, err := app.LoadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}

	game, err := app.NewGame(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to create game", err)
		os.Exit(1)
	}
	defer game.Close()

	player := audio.NewPlayer(cfg.Audio, logger)
	if err := player.Init(); err != nil {
		logger.Warn(ctx, "Audio unavailable, continuing without sound", "error", err.Error())
	}
	player.Attach(game.Bus)

	scene := engorender.NewGameScene(game.World, player)

	opts := engo.RunOptions{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}

	logger.Info(ctx, "Starting game window",
		"width", cfg.Window.Width,
		"height", cfg.Window.Height,
		"audio", cfg.Audio.Enabled,
	)
	engo.Run(opts, scene)
	logger.Info(ctx, "Game window closed", "score", game.World.Score(), "wave", game.World.Wave())
}
