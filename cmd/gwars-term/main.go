// cmd/gwars-term runs the game in a terminal
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gridwars/pkg/app"
	"github.com/opd-ai/go-gridwars/pkg/audio"
	"github.com/opd-ai/go-gridwars/pkg/engine"
	"github.com/opd-ai/go-gridwars/pkg/logging"
	"github.com/opd-ai/go-gridwars/pkg/render"
)

// Window units per terminal cell; cells are about twice as tall as wide
const (
	cellWidth  = 10
	cellHeight = 20
)

const frameDuration = time.Second / 60

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	logPath := flag.String("log", "", "Write logs to this file (default: discard)")
	mute := flag.Bool("mute", false, "Disable audio")
	flag.Parse()

	if err := run(*configPath, *logPath, *mute); err != nil {
		fmt.Fprintln(os.Stderr, "gwars-term:", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string, mute bool) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.NewLoggerTo(logOut)
	ctx := logging.WithSession(context.Background(), logging.NewSessionID())

	cfg, err := app.LoadConfig(ctx, logger, configPath)
	if err != nil {
		return err
	}
	if mute {
		cfg.Audio.Enabled = false
	}

	game, err := app.NewGame(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	player := audio.NewPlayer(cfg.Audio, logger)
	if err := player.Init(); err != nil {
		logger.Warn(ctx, "Audio unavailable, continuing without sound", "error", err.Error())
	}
	player.Attach(game.Bus)
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	logger.Info(ctx, "Starting terminal client",
		"world_width", cfg.World.Width,
		"world_height", cfg.World.Height,
		"audio", cfg.Audio.Enabled,
	)
	loop(ctx, game.World, screen, player, logger)
	logger.Info(ctx, "Terminal client stopped", "score", game.World.Score(), "wave", game.World.Wave())
	return nil
}

// loop ticks and draws the world at a fixed frame rate until the player
// quits or the process is signalled.
func loop(ctx context.Context, world *engine.World, screen tcell.Screen, player *audio.Player, logger *logging.Logger) {
	renderer := render.NewTerminalRenderer(screen, cellWidth, cellHeight)
	world.UpdateWindowSize(renderer.WindowSize())
	keys := newHeldKeys(holdTimeout)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-sigChan:
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !handleKey(ctx, ev, world, keys, player, logger) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
				world.UpdateWindowSize(renderer.WindowSize())
			}
		case now := <-ticker.C:
			elapsed := min(now.Sub(last), 100*time.Millisecond)
			last = now

			keys.apply(world, now)
			world.Tick(float32(elapsed.Microseconds())/1000, world.Config.Physics.SubStepMs)
			render.DrawFrame(renderer, world.Snapshot())
		}
	}
}

// handleKey applies one key press and reports whether to keep running
func handleKey(ctx context.Context, ev *tcell.EventKey, world *engine.World, keys *heldKeys, player *audio.Player, logger *logging.Logger) bool {
	switch {
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
		return false
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R'):
		if world.State() == engine.Lost {
			keys.reset()
			world.Restart()
		}
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M'):
		playing := player.ToggleMusic()
		logger.Debug(ctx, "Music toggled", "playing", playing)
	default:
		if bit, ok := controlBitFor(ev); ok {
			keys.press(bit, time.Now())
		}
	}
	return true
}
