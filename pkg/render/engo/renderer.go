// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"strings"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	emath "github.com/EngoEngine/math"

	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/render"
)

// Line thickness in pixels
const (
	GridLineWidth    float32 = 1
	OutlineLineWidth float32 = 2
	MissileSize      float32 = 4
)

// spriteAdder is the part of common.RenderSystem the renderer needs
type spriteAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// segment is one pooled rectangle entity
type segment struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// LineRenderer implements render.Renderer by drawing every line as a
// thin rotated rectangle. Rectangles are pooled across frames; the ones a
// frame does not use are hidden.
type LineRenderer struct {
	sink     spriteAdder
	segments []*segment
	used     int
	title    string
	hud      string
}

// NewLineRenderer creates a renderer that adds its entities to sink,
// normally the scene's common.RenderSystem.
func NewLineRenderer(sink spriteAdder, title string) *LineRenderer {
	return &LineRenderer{sink: sink, title: title}
}

// Clear implements render.Renderer
func (r *LineRenderer) Clear() {
	r.used = 0
}

// DrawGrid implements render.Renderer
func (r *LineRenderer) DrawGrid(points []physics.Vector2, cols int) {
	if cols <= 0 {
		return
	}
	c := toRGBA(render.ColorGrid)
	for i, p := range points {
		if (i+1)%cols != 0 && i+1 < len(points) {
			r.line(p, points[i+1], GridLineWidth, c)
		}
		if i+cols < len(points) {
			r.line(p, points[i+cols], GridLineWidth, c)
		}
	}
}

// DrawPolygon implements render.Renderer
func (r *LineRenderer) DrawPolygon(points []physics.Vector2, col render.Color) {
	if len(points) < 2 {
		return
	}
	c := toRGBA(col)
	for i, p := range points {
		r.line(p, points[(i+1)%len(points)], OutlineLineWidth, c)
	}
}

// DrawPoint implements render.Renderer
func (r *LineRenderer) DrawPoint(p physics.Vector2, col render.Color) {
	s := r.next()
	s.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: p.X - MissileSize/2, Y: p.Y - MissileSize/2},
		Width:    MissileSize,
		Height:   MissileSize,
	}
	s.Color = toRGBA(col)
}

// DrawHUD implements render.Renderer. The HUD goes to the window title
// so no font asset has to be shipped.
func (r *LineRenderer) DrawHUD(lines []string) {
	r.hud = strings.Join(append([]string{r.title}, lines...), "  |  ")
}

// Present implements render.Renderer
func (r *LineRenderer) Present() {
	for i, s := range r.segments {
		s.Hidden = i >= r.used
	}
}

// HUD returns the text the last frame put in the title bar
func (r *LineRenderer) HUD() string {
	return r.hud
}

// Visible returns how many rectangles the last frame drew
func (r *LineRenderer) Visible() int {
	return r.used
}

// line places the next pooled rectangle between a and b.
func (r *LineRenderer) line(a, b physics.Vector2, width float32, c color.RGBA) {
	s := r.next()
	s.SpaceComponent = segmentSpace(a, b, width)
	s.Color = c
}

// next returns an unused rectangle, growing the pool when needed.
func (r *LineRenderer) next() *segment {
	if r.used == len(r.segments) {
		s := &segment{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{Drawable: common.Rectangle{}}
		r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		r.segments = append(r.segments, s)
	}
	s := r.segments[r.used]
	s.Hidden = false
	r.used++
	return s
}

// segmentSpace returns a rectangle width pixels thick running from a to
// b. Engo rotates a SpaceComponent clockwise in degrees about its
// position, which with y growing down matches atan2 of the segment.
func segmentSpace(a, b physics.Vector2, width float32) common.SpaceComponent {
	d := b.Sub(a)
	return common.SpaceComponent{
		Position: engo.Point{X: a.X, Y: a.Y},
		Width:    d.Len(),
		Height:   width,
		Rotation: d.Angle() * 180 / emath.Pi,
	}
}

// toRGBA converts a palette color to an opaque image color.
func toRGBA(c render.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
