package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestCross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross x", V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{"y cross z", V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"general", V3(1, 2, 3), V3(4, 5, 6), V3(-3, 6, -3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Cross(tc.b)
			if !got.ApproxEqual(tc.expected, eps) {
				t.Errorf("%v × %v = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestNormalizedCrossIsUnit(t *testing.T) {
	pairs := [][2]Vec3{
		{V3(1, 0, 0), V3(0, 1, 0)},
		{V3(3, -2, 7), V3(0.5, 4, -1)},
		{V3(-10, 0.001, 2), V3(1e3, 5, 5)},
		{V3(0.1, 0.2, 0.3), V3(-0.3, 0.2, 0.1)},
	}

	for _, p := range pairs {
		n := p[0].Cross(p[1]).Normalize()
		if math.Abs(n.Len()-1) > 1e-9 {
			t.Errorf("normalize(%v × %v) length = %v, want 1", p[0], p[1], n.Len())
		}
	}
}

func TestNormalizeZero(t *testing.T) {
	n := Zero3().Normalize()
	if n.Len() != 0 {
		t.Errorf("Normalize of zero vector = %v, want zero", n)
	}
}

func TestVectorArithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); !got.ApproxEqual(V3(5, 7, 9), eps) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); !got.ApproxEqual(V3(3, 3, 3), eps) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); !got.ApproxEqual(V3(2, 4, 6), eps) {
		t.Errorf("Scale = %v", got)
	}
	if got := b.Div(2); !got.ApproxEqual(V3(2, 2.5, 3), eps) {
		t.Errorf("Div = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Add(b).W; got != 1 {
		t.Errorf("Add W = %v, want 1", got)
	}
}

func TestMulVecIdentity(t *testing.T) {
	v := V3(3, -4, 5)
	got := Identity().MulVec(v)
	if !got.ApproxEqual(v, eps) || got.W != 1 {
		t.Errorf("identity * %v = %v", v, got)
	}
}

func TestRotateZThenTranslate(t *testing.T) {
	// Row vectors: the left-most matrix in the chain is applied first.
	world := Identity().
		Mul(RotateZ(math.Pi / 2)).
		Mul(RotateX(0)).
		Mul(Translate(V3(0, 0, 5)))

	got := world.MulVec(V3(1, 0, 0))
	want := V3(0, 1, 5)
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("world * (1,0,0) = %v, want %v", got, want)
	}

	// Same result applying the stages one at a time.
	step := RotateZ(math.Pi / 2).MulVec(V3(1, 0, 0))
	step = RotateX(0).MulVec(step)
	step = Translate(V3(0, 0, 5)).MulVec(step)
	if !step.ApproxEqual(want, 1e-9) {
		t.Errorf("stepwise = %v, want %v", step, want)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name     string
		m        Mat4
		in, want Vec3
	}{
		{"x quarter turn", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"y quarter turn", RotateY(math.Pi / 2), V3(0, 0, 1), V3(-1, 0, 0)},
		{"z quarter turn", RotateZ(math.Pi / 2), V3(0, 1, 0), V3(-1, 0, 0)},
		{"y half turn", RotateY(math.Pi), V3(0, 0, 1), V3(0, 0, -1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.m.MulVec(tc.in)
			if !got.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProjection(t *testing.T) {
	m := Projection(90, 0.75, 0.1, 1000)

	if math.Abs(Focal(90)-1) > eps {
		t.Errorf("Focal(90) = %v, want 1", Focal(90))
	}
	if math.Abs(m[0][0]-0.75) > eps {
		t.Errorf("m[0][0] = %v, want 0.75", m[0][0])
	}
	if m[2][3] != 1 || m[3][3] != 0 {
		t.Errorf("w column = %v, %v, want 1, 0", m[2][3], m[3][3])
	}

	// W carries view depth; z/w lands at 0 on the near plane and 1 on the far plane.
	near := m.MulVec(V3(0, 0, 0.1))
	if math.Abs(near.W-0.1) > eps || math.Abs(near.Z/near.W) > 1e-9 {
		t.Errorf("near point projected to %v", near)
	}
	far := m.MulVec(V3(0, 0, 1000))
	if math.Abs(far.Z/far.W-1) > 1e-9 {
		t.Errorf("far point z/w = %v, want 1", far.Z/far.W)
	}
}

func TestPointAtQuickInverse(t *testing.T) {
	t.Run("origin looking down +z is identity", func(t *testing.T) {
		cam := PointAt(Zero3(), V3(0, 0, 1), Up())
		view := QuickInverse(cam)
		for r := range 4 {
			for c := range 4 {
				if math.Abs(view[r][c]-Identity()[r][c]) > eps {
					t.Fatalf("view = %v, want identity", view)
				}
			}
		}
	})

	t.Run("inverse undoes camera transform", func(t *testing.T) {
		pos := V3(3, 2, -5)
		cam := PointAt(pos, pos.Add(RotateY(0.7).MulVec(Forward())), Up())
		view := QuickInverse(cam)
		p := V3(1, -2, 4)
		round := view.MulVec(cam.MulVec(p))
		if !round.ApproxEqual(p, 1e-9) {
			t.Errorf("round trip = %v, want %v", round, p)
		}
		if got := view.MulVec(pos); !got.ApproxEqual(Zero3(), 1e-9) {
			t.Errorf("camera position in view space = %v, want origin", got)
		}
	})
}

func TestMulAssociatesWithMulVec(t *testing.T) {
	a := RotateX(0.3).Mul(Translate(V3(1, 2, 3)))
	b := RotateZ(-1.1).Mul(Scale(V3(2, 0.5, 1)))
	p := V3(0.25, -7, 3)

	got := a.Mul(b).MulVec(p)
	want := b.MulVec(a.MulVec(p))
	if !got.ApproxEqual(want, 1e-9) {
		t.Errorf("(a*b)p = %v, b(a p) = %v", got, want)
	}
}

func TestTexelLerp(t *testing.T) {
	a := V2(0, 0)
	b := Vec2{U: 1, V: 2, W: 3}
	got := a.Lerp(b, 0.5)
	if got.U != 0.5 || got.V != 1 || got.W != 2 {
		t.Errorf("Lerp = %+v", got)
	}
}
