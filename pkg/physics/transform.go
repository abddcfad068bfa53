package physics

import "github.com/go-gl/mathgl/mgl32"

// Transform is a 2D affine transform stored as a 3x3 homogeneous matrix.
// Points are column vectors, so a.Mul(b) applies b first and then a.
type Transform struct {
	m mgl32.Mat3
}

// Identity returns the transform that leaves every point unchanged
func Identity() Transform {
	return Transform{m: mgl32.Ident3()}
}

// Translation returns a transform moving points by (x, y)
func Translation(x, y float32) Transform {
	return Transform{m: mgl32.Translate2D(x, y)}
}

// TranslationV returns a transform moving points by v
func TranslationV(v Vector2) Transform {
	return Translation(v.X, v.Y)
}

// Rotation returns a counter-clockwise rotation about the origin
func Rotation(angle float32) Transform {
	return Transform{m: mgl32.HomogRotate2D(angle)}
}

// Scaling returns a non-uniform scale about the origin
func Scaling(sx, sy float32) Transform {
	return Transform{m: mgl32.Scale2D(sx, sy)}
}

// Mul composes two transforms; the result applies other first
func (t Transform) Mul(other Transform) Transform {
	return Transform{m: t.m.Mul3(other.m)}
}

// Apply transforms a single point
func (t Transform) Apply(p Vector2) Vector2 {
	r := t.m.Mul3x1(mgl32.Vec3{p.X, p.Y, 1})
	return Vector2{X: r[0], Y: r[1]}
}

// ApplyAll transforms a list of points into a new slice
func (t Transform) ApplyAll(points []Vector2) []Vector2 {
	out := make([]Vector2, len(points))
	for i, p := range points {
		out[i] = t.Apply(p)
	}
	return out
}

// Matrix exposes the underlying column-major matrix for renderers
func (t Transform) Matrix() mgl32.Mat3 {
	return t.m
}
