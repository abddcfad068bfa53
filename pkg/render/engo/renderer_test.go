// pkg/render/engo/renderer_test.go
package engo

import (
	"image/color"
	"strings"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/render"
)

const epsilon = 1e-3

// countingSink stands in for common.RenderSystem
type countingSink struct {
	added []*common.RenderComponent
}

func (s *countingSink) Add(basic *ecs.BasicEntity, rc *common.RenderComponent, space *common.SpaceComponent) {
	s.added = append(s.added, rc)
}

func (s *countingSink) hidden() int {
	n := 0
	for _, rc := range s.added {
		if rc.Hidden {
			n++
		}
	}
	return n
}

func approx(a, b float32) bool {
	return a-b < epsilon && b-a < epsilon
}

func TestSegmentSpace(t *testing.T) {
	tests := []struct {
		name     string
		a, b     physics.Vector2
		length   float32
		rotation float32
	}{
		{"right", physics.Vec(0, 0), physics.Vec(10, 0), 10, 0},
		{"down", physics.Vec(5, 5), physics.Vec(5, 25), 20, 90},
		{"left", physics.Vec(10, 0), physics.Vec(0, 0), 10, 180},
		{"diagonal", physics.Vec(0, 0), physics.Vec(3, 4), 5, 53.1301},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := segmentSpace(tt.a, tt.b, 2)
			if s.Position.X != tt.a.X || s.Position.Y != tt.a.Y {
				t.Errorf("Position = %v, expected %v", s.Position, tt.a)
			}
			if !approx(s.Width, tt.length) || s.Height != 2 {
				t.Errorf("size = %vx%v, expected %vx2", s.Width, s.Height, tt.length)
			}
			if !approx(s.Rotation, tt.rotation) {
				t.Errorf("Rotation = %v, expected %v", s.Rotation, tt.rotation)
			}
		})
	}
}

func TestLineRenderer_Polygon(t *testing.T) {
	sink := &countingSink{}
	r := NewLineRenderer(sink, "Grid Wars")

	square := []physics.Vector2{physics.Vec(0, 0), physics.Vec(10, 0), physics.Vec(10, 10), physics.Vec(0, 10)}
	r.Clear()
	r.DrawPolygon(square, render.ColorPlayer)
	r.Present()

	if r.Visible() != 4 || len(sink.added) != 4 {
		t.Fatalf("Visible() = %d with %d entities, expected 4 closed edges", r.Visible(), len(sink.added))
	}
	last := r.segments[3]
	if last.Position.X != 0 || last.Position.Y != 10 || !approx(last.Rotation, -90) {
		t.Errorf("closing edge at %v rotated %v", last.Position, last.Rotation)
	}
	if last.Color != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Color = %v, expected opaque white", last.Color)
	}
}

func TestLineRenderer_Grid(t *testing.T) {
	sink := &countingSink{}
	r := NewLineRenderer(sink, "")

	// 3 columns, 2 rows: 2 horizontal edges per row, 3 vertical edges
	var points []physics.Vector2
	for y := range 2 {
		for x := range 3 {
			points = append(points, physics.Vec(float32(x*10), float32(y*10)))
		}
	}
	r.Clear()
	r.DrawGrid(points, 3)
	r.Present()

	if r.Visible() != 7 {
		t.Errorf("Visible() = %d, expected 7 grid edges", r.Visible())
	}

	r.Clear()
	r.DrawGrid(points, 0)
	r.Present()
	if r.Visible() != 0 {
		t.Errorf("Visible() = %d for a grid with no columns", r.Visible())
	}
}

func TestLineRenderer_PoolReuse(t *testing.T) {
	sink := &countingSink{}
	r := NewLineRenderer(sink, "")
	tri := []physics.Vector2{physics.Vec(0, 0), physics.Vec(10, 0), physics.Vec(5, 8)}

	r.Clear()
	r.DrawPolygon(tri, render.ColorPlayer)
	r.DrawPoint(physics.Vec(50, 50), render.ColorMissile)
	r.Present()
	if len(sink.added) != 4 || sink.hidden() != 0 {
		t.Fatalf("%d entities, %d hidden after the first frame", len(sink.added), sink.hidden())
	}

	r.Clear()
	r.DrawPoint(physics.Vec(60, 60), render.ColorMissile)
	r.Present()
	if len(sink.added) != 4 {
		t.Errorf("second frame created entities: %d total", len(sink.added))
	}
	if sink.hidden() != 3 {
		t.Errorf("%d hidden, expected the 3 unused rectangles", sink.hidden())
	}
	p := r.segments[0]
	if p.Width != MissileSize || p.Position.X != 60-MissileSize/2 {
		t.Errorf("missile rectangle = %+v", p.SpaceComponent)
	}
}

func TestLineRenderer_HUD(t *testing.T) {
	r := NewLineRenderer(&countingSink{}, "Grid Wars")
	r.DrawHUD([]string{"score 10", "wave 1"})

	hud := r.HUD()
	if !strings.HasPrefix(hud, "Grid Wars") || !strings.Contains(hud, "score 10") || !strings.Contains(hud, "wave 1") {
		t.Errorf("HUD() = %q", hud)
	}
}
