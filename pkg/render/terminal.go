package render

import (
	"github.com/EngoEngine/math"
	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-gridwars/pkg/physics"
)

// Glyphs used by the terminal renderer
const (
	GlyphGrid    = '·'
	GlyphEdge    = '#'
	GlyphMissile = '*'
)

// TerminalRenderer draws frames on a tcell screen. Window coordinates
// are mapped to cells of cellWidth x cellHeight window units.
type TerminalRenderer struct {
	screen     tcell.Screen
	cellWidth  float32
	cellHeight float32
}

// NewTerminalRenderer draws on screen with the given cell size
func NewTerminalRenderer(screen tcell.Screen, cellWidth, cellHeight float32) *TerminalRenderer {
	return &TerminalRenderer{
		screen:     screen,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
}

// WindowSize is the window extent covered by the screen, for
// World.UpdateWindowSize
func (r *TerminalRenderer) WindowSize() (float32, float32) {
	w, h := r.screen.Size()
	return float32(w) * r.cellWidth, float32(h) * r.cellHeight
}

// toCell converts window coordinates to a cell
func (r *TerminalRenderer) toCell(p physics.Vector2) (int, int) {
	return int(math.Floor(p.X / r.cellWidth)), int(math.Floor(p.Y / r.cellHeight))
}

// set draws one glyph, skipping cells off screen
func (r *TerminalRenderer) set(x, y int, ch rune, style tcell.Style) {
	w, h := r.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func styleOf(c Color) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Clear implements Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// DrawGrid implements Renderer. Only the vertices are drawn; the cell
// resolution is too coarse for the lattice lines.
func (r *TerminalRenderer) DrawGrid(points []physics.Vector2, cols int) {
	style := styleOf(ColorGrid)
	for _, p := range points {
		x, y := r.toCell(p)
		r.set(x, y, GlyphGrid, style)
	}
}

// DrawPolygon implements Renderer
func (r *TerminalRenderer) DrawPolygon(points []physics.Vector2, c Color) {
	style := styleOf(c)
	for i := range points {
		r.line(points[i], points[(i+1)%len(points)], style)
	}
}

// line rasterizes the segment a-b one cell at a time
func (r *TerminalRenderer) line(a, b physics.Vector2, style tcell.Style) {
	x0, y0 := r.toCell(a)
	x1, y1 := r.toCell(b)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy

	for {
		r.set(x0, y0, GlyphEdge, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawPoint implements Renderer
func (r *TerminalRenderer) DrawPoint(p physics.Vector2, c Color) {
	x, y := r.toCell(p)
	r.set(x, y, GlyphMissile, styleOf(c))
}

// DrawHUD implements Renderer. The lines overwrite the top rows.
func (r *TerminalRenderer) DrawHUD(lines []string) {
	w, _ := r.screen.Size()
	style := styleOf(ColorHUD).Reverse(true)
	for y, line := range lines {
		x := 0
		for _, ch := range line {
			if x >= w {
				break
			}
			r.screen.SetContent(x, y, ch, nil, style)
			x++
		}
		for ; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// Present implements Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
