package physics

import (
	"math"
	"testing"
)

func TestTransform_Apply(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		point     Vector2
		expected  Vector2
	}{
		{"identity", Identity(), Vec(3, -2), Vec(3, -2)},
		{"translation", Translation(10, 5), Vec(1, 1), Vec(11, 6)},
		{"rotation_quarter_turn", Rotation(math.Pi / 2), Vec(1, 0), Vec(0, 1)},
		{"scaling", Scaling(2, 3), Vec(1, 1), Vec(2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform.Apply(tt.point)
			if !approxVec(got, tt.expected) {
				t.Errorf("Apply() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestTransform_MulOrder(t *testing.T) {
	// translate after rotating: (1,0) -> (0,1) -> (10,1)
	m := Translation(10, 0).Mul(Rotation(math.Pi / 2))
	if got := m.Apply(Vec(1, 0)); !approxVec(got, Vec(10, 1)) {
		t.Errorf("T*R applied to (1,0) = %v, expected (10,1)", got)
	}

	// rotate after translating: (1,0) -> (11,0) -> (0,11)
	m = Rotation(math.Pi / 2).Mul(Translation(10, 0))
	if got := m.Apply(Vec(1, 0)); !approxVec(got, Vec(0, 11)) {
		t.Errorf("R*T applied to (1,0) = %v, expected (0,11)", got)
	}
}

func TestTransform_ApplyAll(t *testing.T) {
	square := []Vector2{Vec(0, 0), Vec(1, 0), Vec(1, 1)}
	moved := Translation(5, 5).ApplyAll(square)
	if len(moved) != len(square) {
		t.Fatalf("ApplyAll() returned %d points, expected %d", len(moved), len(square))
	}
	if moved[2] != Vec(6, 6) {
		t.Errorf("ApplyAll()[2] = %v, expected (6,6)", moved[2])
	}
	if square[2] != Vec(1, 1) {
		t.Errorf("ApplyAll() modified its input: %v", square[2])
	}
}
