// pkg/physics/collision.go
package physics

import (
	"fmt"

	"github.com/EngoEngine/math"
)

// edgeEpsilon is how close to a polygon edge a point counts as on the edge
const edgeEpsilon = 1e-4

// parallelEpsilon is the determinant below which two segments are parallel
const parallelEpsilon = 1e-6

// HitTest reports whether point lies strictly inside the closed polygon.
// Points on an edge or vertex are outside. Panics if the polygon has
// fewer than three vertices.
func HitTest(point Vector2, polygon []Vector2) bool {
	if len(polygon) < 3 {
		panic(fmt.Sprintf("hit test needs a polygon with at least 3 vertices, got %d", len(polygon)))
	}

	inside := false
	j := len(polygon) - 1
	for i := range polygon {
		a, b := polygon[j], polygon[i]
		if onSegment(point, a, b) {
			return false
		}
		// Even-odd rule, horizontal ray to +x
		if (b.Y > point.Y) != (a.Y > point.Y) {
			x := (a.X-b.X)*(point.Y-b.Y)/(a.Y-b.Y) + b.X
			if point.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func onSegment(p, a, b Vector2) bool {
	ab := b.Sub(a)
	lenSq := ab.LenSquared()
	if lenSq == 0 {
		return p.Distance(a) <= edgeEpsilon
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 || t > 1 {
		return false
	}
	closest := a.Add(ab.Scale(t))
	return p.Distance(closest) <= edgeEpsilon
}

// Intersect returns the point where segment p1-p2 crosses segment p3-p4.
// Both segments include their endpoints. Parallel and collinear segments
// never intersect.
func Intersect(p1, p2, p3, p4 Vector2) (Vector2, bool) {
	s1 := p2.Sub(p1)
	s2 := p4.Sub(p3)

	det := -s2.X*s1.Y + s1.X*s2.Y
	if math.Abs(det) < parallelEpsilon {
		return Vector2{}, false
	}

	s := (-s1.Y*(p1.X-p3.X) + s1.X*(p1.Y-p3.Y)) / det
	t := (s2.X*(p1.Y-p3.Y) - s2.Y*(p1.X-p3.X)) / det

	if s < 0 || s > 1 || t < 0 || t > 1 {
		return Vector2{}, false
	}
	return p1.Add(s1.Scale(t)), true
}

// DetectCollision returns every segment of the polyline that crosses an
// edge of the closed bounding polygon box.
func DetectCollision(box, polyline []Vector2) [][2]Vector2 {
	var hits [][2]Vector2
	if len(box) < 2 {
		return hits
	}
	for i := 0; i+1 < len(polyline); i++ {
		a, b := polyline[i], polyline[i+1]
		for j := range box {
			c, d := box[j], box[(j+1)%len(box)]
			if _, ok := Intersect(a, b, c, d); ok {
				hits = append(hits, [2]Vector2{a, b})
				break
			}
		}
	}
	return hits
}

// Rect represents a rectangular area
type Rect struct {
	Center Vector2
	Width  float32
	Height float32
}

// RectAround returns the square of half-size radius centred on center
func RectAround(center Vector2, radius float32) Rect {
	return Rect{Center: center, Width: radius * 2, Height: radius * 2}
}

// Contains reports whether point lies inside the rectangle
func (r Rect) Contains(point Vector2) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// QuadTree for spatial partitioning
type QuadTree[T any] struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2
	Objects   []T
	Divided   bool
	NorthWest *QuadTree[T]
	NorthEast *QuadTree[T]
	SouthWest *QuadTree[T]
	SouthEast *QuadTree[T]
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree[T any](boundary Rect, capacity int) *QuadTree[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree[T]{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2, 0, capacity),
		Objects:  make([]T, 0, capacity),
	}
}

// Insert adds an object at point; it returns false if the point is outside
// the tree's boundary.
func (qt *QuadTree[T]) Insert(point Vector2, object T) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.Points) < qt.Capacity && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree[T]) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	nw := Rect{Center: Vector2{X: x - w/2, Y: y + h/2}, Width: w, Height: h}
	ne := Rect{Center: Vector2{X: x + w/2, Y: y + h/2}, Width: w, Height: h}
	sw := Rect{Center: Vector2{X: x - w/2, Y: y - h/2}, Width: w, Height: h}
	se := Rect{Center: Vector2{X: x + w/2, Y: y - h/2}, Width: w, Height: h}

	qt.NorthWest = NewQuadTree[T](nw, qt.Capacity)
	qt.NorthEast = NewQuadTree[T](ne, qt.Capacity)
	qt.SouthWest = NewQuadTree[T](sw, qt.Capacity)
	qt.SouthEast = NewQuadTree[T](se, qt.Capacity)
	qt.Divided = true
}

// Query returns all objects whose points lie inside area
func (qt *QuadTree[T]) Query(area Rect) []T {
	var found []T
	qt.query(area, &found)
	return found
}

func (qt *QuadTree[T]) query(area Rect, found *[]T) {
	if !qt.intersects(area) {
		return
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			*found = append(*found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return
	}

	qt.NorthWest.query(area, found)
	qt.NorthEast.query(area, found)
	qt.SouthWest.query(area, found)
	qt.SouthEast.query(area, found)
}

// Clear empties the tree while keeping its boundary and capacity
func (qt *QuadTree[T]) Clear() {
	qt.Points = qt.Points[:0]
	qt.Objects = qt.Objects[:0]
	qt.Divided = false
	qt.NorthWest, qt.NorthEast, qt.SouthWest, qt.SouthEast = nil, nil, nil, nil
}

func (qt *QuadTree[T]) intersects(area Rect) bool {
	return !(area.Center.X-area.Width/2 > qt.Boundary.Center.X+qt.Boundary.Width/2 ||
		area.Center.X+area.Width/2 < qt.Boundary.Center.X-qt.Boundary.Width/2 ||
		area.Center.Y-area.Height/2 > qt.Boundary.Center.Y+qt.Boundary.Height/2 ||
		area.Center.Y+area.Height/2 < qt.Boundary.Center.Y-qt.Boundary.Height/2)
}
