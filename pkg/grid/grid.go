package grid

import (
	"github.com/EngoEngine/math"

	"github.com/opd-ai/go-gridwars/pkg/physics"
	"github.com/opd-ai/go-gridwars/pkg/store"
)

// Grid is a regular lattice of spring-restored vertices covering the world
type Grid struct {
	cfg      Config
	size     physics.Vector2
	cols     int
	rows     int
	vertices []Vertex
	forces   []physics.Vector2
	effects  *store.Store[CircularEffect]
}

// New builds a lattice covering width x height with one vertex every
// cfg.Spacing units; the last row and column may lie past the edge.
func New(width, height float32, cfg Config) *Grid {
	cols := int(math.Ceil(width/cfg.Spacing)) + 1
	rows := int(math.Ceil(height/cfg.Spacing)) + 1

	g := &Grid{
		cfg:      cfg,
		size:     physics.Vec(width, height),
		cols:     cols,
		rows:     rows,
		vertices: make([]Vertex, 0, cols*rows),
		forces:   make([]physics.Vector2, cols*rows),
		effects:  store.New[CircularEffect](nil),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rest := physics.Vec(float32(c)*cfg.Spacing, float32(r)*cfg.Spacing)
			g.vertices = append(g.vertices, NewVertex(rest))
		}
	}
	return g
}

// Cols returns the number of vertices per row
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Len returns the total vertex count
func (g *Grid) Len() int { return len(g.vertices) }

// Effects returns the number of live circular effects
func (g *Grid) Effects() int { return g.effects.Len() }

// At returns the vertex at column c and row r
func (g *Grid) At(c, r int) Vertex {
	return g.vertices[r*g.cols+c]
}

// Positions returns the current vertex positions in row-major order
func (g *Grid) Positions() []physics.Vector2 {
	out := make([]physics.Vector2, len(g.vertices))
	for i := range g.vertices {
		out[i] = g.vertices[i].Position
	}
	return out
}

// Intersect disturbs the cell under point and its four neighbours,
// pulling them toward point. Points outside the world are ignored.
func (g *Grid) Intersect(point physics.Vector2) {
	if point.X < 0 || point.Y < 0 || point.X > g.size.X || point.Y > g.size.Y {
		return
	}
	col := int(point.X / g.cfg.Spacing)
	row := int(point.Y / g.cfg.Spacing)

	g.disturb(col, row, point)
	g.disturb(col, row-1, point)
	g.disturb(col, row+1, point)
	g.disturb(col-1, row, point)
	g.disturb(col+1, row, point)
}

func (g *Grid) disturb(col, row int, point physics.Vector2) {
	if col < 0 || row < 0 || col >= g.cols || row >= g.rows {
		return
	}
	v := &g.vertices[row*g.cols+col]
	toward := point.Sub(v.Position)
	if toward.Len() <= g.cfg.RestThreshold {
		return
	}
	v.Push(toward.Normalize().Scale(g.cfg.ImpulseStrength), g.cfg.MaxSpeed)
}

// AddCircularEffect starts an expanding ring at center
func (g *Grid) AddCircularEffect(center physics.Vector2, radius, ttl, expansionSpeed float32) store.ID {
	return g.effects.Insert(CircularEffect{
		Center:         center,
		Radius:         radius,
		TimeToLive:     ttl,
		ExpansionSpeed: expansionSpeed,
	})
}

// Tick ages the effects, applies their forces and steps every vertex once
func (g *Grid) Tick(elapsedMs float32) {
	dt := elapsedMs / 1000

	clear(g.forces)
	g.effects.ForEach(func(e *CircularEffect, _ store.ID) {
		e.advance(dt)
		if e.Expired() {
			return
		}
		g.accumulate(e)
	})
	g.effects.GarbageCollectFilter((*CircularEffect).Expired)

	for i := range g.vertices {
		if !g.forces[i].IsZero() {
			g.vertices[i].Push(g.forces[i].Scale(dt), g.cfg.MaxSpeed)
		}
		g.vertices[i].Step(g.cfg)
	}
}

// accumulate adds e's force to every vertex inside its radius. Only the
// lattice cells around the ring are scanned, with one cell of slack for
// displaced vertices.
func (g *Grid) accumulate(e *CircularEffect) {
	minCol := g.clampCol(int(math.Floor((e.Center.X-e.Radius)/g.cfg.Spacing)) - 1)
	maxCol := g.clampCol(int(math.Ceil((e.Center.X+e.Radius)/g.cfg.Spacing)) + 1)
	minRow := g.clampRow(int(math.Floor((e.Center.Y-e.Radius)/g.cfg.Spacing)) - 1)
	maxRow := g.clampRow(int(math.Ceil((e.Center.Y+e.Radius)/g.cfg.Spacing)) + 1)

	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			i := r*g.cols + c
			if f, ok := e.forceAt(g.vertices[i].Position, g.cfg); ok {
				g.forces[i] = g.forces[i].Add(f)
			}
		}
	}
}

func (g *Grid) clampCol(c int) int {
	return clampInt(c, 0, g.cols-1)
}

func (g *Grid) clampRow(r int) int {
	return clampInt(r, 0, g.rows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
