package render

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func TestProjectTriangle(t *testing.T) {
	proj := math3d.Projection(90, 1, 0.1, 1000)
	tri := NewTriangle(math3d.V3(0, 0, 1), math3d.V3(1, 1, 2), math3d.V3(-2, 0, 4), ColorWhite)
	tri.T[1] = math3d.V2(1, 1)

	got, err := ProjectTriangle(tri, proj, 100, 100)
	if err != nil {
		t.Fatalf("ProjectTriangle: %v", err)
	}

	tests := []struct {
		i    int
		x, y float64
		w    float64
	}{
		{0, 50, 50, 1},
		{1, 75, 75, 2},
		{2, 25, 50, 4},
	}
	for _, tc := range tests {
		p := got.P[tc.i]
		if math.Abs(p.X-tc.x) > eps || math.Abs(p.Y-tc.y) > eps || math.Abs(p.W-tc.w) > eps {
			t.Errorf("P[%d] = %v, want x=%v y=%v w=%v", tc.i, p, tc.x, tc.y, tc.w)
		}
	}

	if !texelNear(got.T[1], math3d.Vec2{U: 0.5, V: 0.5, W: 0.5}) {
		t.Errorf("T[1] = %v, want (0.5, 0.5, 0.5)", got.T[1])
	}
	if !texelNear(got.T[2], math3d.Vec2{U: 0, V: 0, W: 0.25}) {
		t.Errorf("T[2] = %v, want (0, 0, 0.25)", got.T[2])
	}
}

func TestProjectTriangleDepthRange(t *testing.T) {
	proj := math3d.Projection(90, 1, 0.1, 1000)
	tri := NewTriangle(math3d.V3(0, 0, 0.1), math3d.V3(0, 0, 1000), math3d.V3(0, 0, 1), ColorWhite)

	got, err := ProjectTriangle(tri, proj, 10, 10)
	if err != nil {
		t.Fatalf("ProjectTriangle: %v", err)
	}
	if math.Abs(got.P[0].Z) > 1e-9 {
		t.Errorf("near depth = %v, want 0", got.P[0].Z)
	}
	if math.Abs(got.P[1].Z-1) > 1e-9 {
		t.Errorf("far depth = %v, want 1", got.P[1].Z)
	}
}

func TestProjectTriangleNonPositiveW(t *testing.T) {
	proj := math3d.Projection(90, 1, 0.1, 1000)
	tests := []struct {
		name string
		z    float64
	}{
		{"zero", 0},
		{"behind", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tri := NewTriangle(math3d.V3(0, 0, 1), math3d.V3(1, 0, 1), math3d.V3(0, 1, tc.z), ColorWhite)
			_, err := ProjectTriangle(tri, proj, 10, 10)
			if !errors.Is(err, ErrNonPositiveW) {
				t.Errorf("err = %v, want ErrNonPositiveW", err)
			}
		})
	}
}
