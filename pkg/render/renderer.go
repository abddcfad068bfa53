// pkg/render/renderer.go
package render

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-gridwars/pkg/engine"
	"github.com/opd-ai/go-gridwars/pkg/enemy"
	"github.com/opd-ai/go-gridwars/pkg/logging"
	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// Color is an opaque RGB color
type Color struct {
	R, G, B uint8
}

// Palette
var (
	ColorGrid    = Color{R: 30, G: 40, B: 110}
	ColorPlayer  = Color{R: 255, G: 255, B: 255}
	ColorMissile = Color{R: 255, G: 230, B: 90}
	ColorHUD     = Color{R: 200, G: 200, B: 200}
)

// EnemyColor returns the outline color of an enemy kind
func EnemyColor(k enemy.Kind) Color {
	switch k {
	case enemy.Rombus:
		return Color{R: 0, G: 220, B: 255}
	case enemy.Rect:
		return Color{R: 255, G: 60, B: 200}
	case enemy.Wanderer:
		return Color{R: 170, G: 80, B: 255}
	case enemy.SpawningRect:
		return Color{R: 255, G: 120, B: 30}
	case enemy.MiniRect:
		return Color{R: 255, G: 170, B: 90}
	default:
		return ColorHUD
	}
}

// Renderer draws one frame in window coordinates
type Renderer interface {
	Clear()
	// DrawGrid draws a lattice given in row-major order, cols vertices per row
	DrawGrid(points []physics.Vector2, cols int)
	// DrawPolygon draws a closed outline
	DrawPolygon(points []physics.Vector2, c Color)
	DrawPoint(p physics.Vector2, c Color)
	DrawHUD(lines []string)
	Present()
}

// DrawFrame draws a snapshot through its camera: grid, enemies,
// missiles, player and finally the HUD.
func DrawFrame(r Renderer, s *engine.Snapshot) {
	cam := s.Camera

	r.Clear()
	r.DrawGrid(cam.ApplyAll(s.Grid.Points), s.Grid.Cols)
	for _, e := range s.Enemies {
		r.DrawPolygon(cam.ApplyAll(e.Hull), EnemyColor(e.Kind))
	}
	for _, m := range s.Missiles {
		r.DrawPoint(cam.Apply(m.Position), ColorMissile)
	}
	if s.Player.Alive {
		r.DrawPolygon(cam.ApplyAll(s.Player.Hull), ColorPlayer)
	}
	r.DrawHUD(HUDLines(s))
	r.Present()
}

// HUDLines formats the player's motion and the game status
func HUDLines(s *engine.Snapshot) []string {
	p := s.Player
	lines := []string{
		fmt.Sprintf("pos (%.0f, %.0f)  dir (%.1f, %.1f)  acc (%.1f, %.1f)  angle %.2f",
			p.Position.X, p.Position.Y, p.Direction.X, p.Direction.Y,
			p.Acceleration.X, p.Acceleration.Y, p.Angle),
		fmt.Sprintf("score %d  enemies %d  wave %d", s.Score, s.EnemiesLeft, s.Wave),
	}
	if s.State == engine.Lost {
		lines = append(lines, "GAME OVER  press R to restart")
	}
	return lines
}

// NullRenderer draws nothing and logs every call at debug level
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a new NullRenderer with structured logging.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Clear implements Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// DrawGrid implements Renderer.
func (d *NullRenderer) DrawGrid(points []physics.Vector2, cols int) {
	d.logger.Debug(context.Background(), "DrawGrid called", "vertices", len(points), "cols", cols)
}

// DrawPolygon implements Renderer.
func (d *NullRenderer) DrawPolygon(points []physics.Vector2, c Color) {
	ctx := context.Background()
	if len(points) == 0 {
		d.logger.Debug(ctx, "DrawPolygon called with no points")
		return
	}
	d.logger.Debug(ctx, "DrawPolygon called",
		"points", len(points),
		"x", points[0].X,
		"y", points[0].Y,
	)
}

// DrawPoint implements Renderer.
func (d *NullRenderer) DrawPoint(p physics.Vector2, c Color) {
	d.logger.Debug(context.Background(), "DrawPoint called", "x", p.X, "y", p.Y)
}

// DrawHUD implements Renderer.
func (d *NullRenderer) DrawHUD(lines []string) {
	d.logger.Debug(context.Background(), "DrawHUD called", "lines", lines)
}

// Present implements Renderer.
func (d *NullRenderer) Present() {
	d.logger.Debug(context.Background(), "Present called")
}
