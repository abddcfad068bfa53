// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-4

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func approxVec(a, b Vector2) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func TestVector2_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2
		v2       Vector2
		expected Vector2
	}{
		{"positive_vectors", Vec(3, 4), Vec(1, 2), Vec(4, 6)},
		{"negative_vectors", Vec(-3, -4), Vec(-1, -2), Vec(-4, -6)},
		{"mixed_signs", Vec(5, -3), Vec(-2, 7), Vec(3, 4)},
		{"zero_vector", Vec(0, 0), Vec(5, -3), Vec(5, -3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Add(tt.v2)
			if result != tt.expected {
				t.Errorf("Add() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2_Sub(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2
		v2       Vector2
		expected Vector2
	}{
		{"positive_result", Vec(5, 7), Vec(2, 3), Vec(3, 4)},
		{"negative_result", Vec(2, 3), Vec(5, 7), Vec(-3, -4)},
		{"same_vectors", Vec(4, 6), Vec(4, 6), Vec(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Sub(tt.v2)
			if result != tt.expected {
				t.Errorf("Sub() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2_Len(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2
		expected float32
	}{
		{"three_four_five", Vec(3, 4), 5},
		{"zero", Vec(0, 0), 0},
		{"negative", Vec(-6, -8), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Len(); !approxEqual(got, tt.expected) {
				t.Errorf("Len() = %v, expected %v", got, tt.expected)
			}
			if got := tt.vector.LenSquared(); !approxEqual(got, tt.expected*tt.expected) {
				t.Errorf("LenSquared() = %v, expected %v", got, tt.expected*tt.expected)
			}
		})
	}
}

func TestVector2_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2
		expected Vector2
	}{
		{"axis_aligned", Vec(10, 0), Vec(1, 0)},
		{"diagonal", Vec(3, 4), Vec(0.6, 0.8)},
		{"zero_vector_stays_zero", Vec(0, 0), Vec(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if !approxVec(result, tt.expected) {
				t.Errorf("Normalize() = %v, expected %v", result, tt.expected)
			}
			if math.IsNaN(float64(result.X)) || math.IsNaN(float64(result.Y)) {
				t.Errorf("Normalize() produced NaN: %v", result)
			}
		})
	}
}

func TestVector2_ClampLen(t *testing.T) {
	if got := Vec(30, 40).ClampLen(5); !approxVec(got, Vec(3, 4)) {
		t.Errorf("ClampLen() = %v, expected (3,4)", got)
	}
	if got := Vec(1, 1).ClampLen(5); got != Vec(1, 1) {
		t.Errorf("ClampLen() changed a short vector: %v", got)
	}
}

func TestVector2_Rotate(t *testing.T) {
	got := Vec(1, 0).Rotate(math.Pi / 2)
	if !approxVec(got, Vec(0, 1)) {
		t.Errorf("Rotate(pi/2) = %v, expected (0,1)", got)
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi, 2)
	if !approxVec(v, Vec(-2, 0)) {
		t.Errorf("FromAngle(pi, 2) = %v, expected (-2,0)", v)
	}
	if !approxEqual(Vec(0, 3).Angle(), math.Pi/2) {
		t.Errorf("Angle() = %v, expected pi/2", Vec(0, 3).Angle())
	}
}

func TestVector2_DotCross(t *testing.T) {
	a, b := Vec(1, 2), Vec(3, 4)
	if got := a.Dot(b); got != 11 {
		t.Errorf("Dot() = %v, expected 11", got)
	}
	if got := a.Cross(b); got != -2 {
		t.Errorf("Cross() = %v, expected -2", got)
	}
}
