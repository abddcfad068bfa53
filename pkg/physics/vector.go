// pkg/physics/vector.go
package physics

import "github.com/EngoEngine/math"

// Vector2 represents a 2D vector with x and y components
type Vector2 struct {
	X float32
	Y float32
}

// Vec is shorthand for Vector2{X: x, Y: y}
func Vec(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the difference between two vectors
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Scale multiplies the vector by a scalar value
func (v Vector2) Scale(factor float32) Vector2 {
	return Vector2{
		X: v.X * factor,
		Y: v.Y * factor,
	}
}

// Len returns the magnitude of the vector
func (v Vector2) Len() float32 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSquared returns magnitude squared (optimization for comparisons)
func (v Vector2) LenSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (v Vector2) Normalize() Vector2 {
	length := v.Len()
	if length == 0 {
		return Vector2{}
	}
	return Vector2{
		X: v.X / length,
		Y: v.Y / length,
	}
}

// ClampLen returns v shortened to max if it is longer, keeping its direction
func (v Vector2) ClampLen(max float32) Vector2 {
	if v.Len() > max {
		return v.Normalize().Scale(max)
	}
	return v
}

// IsZero reports whether both components are zero
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Distance returns the distance between two vectors
func (v Vector2) Distance(other Vector2) float32 {
	return v.Sub(other).Len()
}

// Angle returns the angle of the vector in radians
func (v Vector2) Angle() float32 {
	return math.Atan2(v.Y, v.X)
}

// FromAngle creates a vector from an angle and magnitude
func FromAngle(angle float32, magnitude float32) Vector2 {
	return Vector2{
		X: magnitude * math.Cos(angle),
		Y: magnitude * math.Sin(angle),
	}
}

// Dot returns the dot product of two vectors
func (v Vector2) Dot(other Vector2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product
func (v Vector2) Cross(other Vector2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Rotate rotates the vector by angle (in radians)
func (v Vector2) Rotate(angle float32) Vector2 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}
