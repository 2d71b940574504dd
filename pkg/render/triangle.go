package render

import (
	"github.com/taigrr/softpipe/pkg/math3d"
)

// Triangle is three vertices with matching texels and a flat color.
// The same type carries a face through every pipeline stage; only the
// meaning of the coordinates changes (model, world, view, screen).
type Triangle struct {
	P     [3]math3d.Vec3
	T     [3]math3d.Vec2
	Color Color
}

// NewTriangle creates a triangle with zero texels (W = 1).
func NewTriangle(p0, p1, p2 math3d.Vec3, c Color) Triangle {
	return Triangle{
		P:     [3]math3d.Vec3{p0, p1, p2},
		T:     [3]math3d.Vec2{math3d.V2(0, 0), math3d.V2(0, 0), math3d.V2(0, 0)},
		Color: c,
	}
}

// Transform returns the triangle with every vertex multiplied by m.
// Texels and color are carried over unchanged.
func (t Triangle) Transform(m math3d.Mat4) Triangle {
	out := t
	for i := range t.P {
		out.P[i] = m.MulVec(t.P[i])
	}
	return out
}

// Normal returns the unit face normal (p1-p0) × (p2-p0).
// ok is false for a degenerate triangle whose edges are parallel.
func (t Triangle) Normal() (n math3d.Vec3, ok bool) {
	line1 := t.P[1].Sub(t.P[0])
	line2 := t.P[2].Sub(t.P[0])
	n = line1.Cross(line2)
	if n.LenSq() == 0 {
		return math3d.Zero3(), false
	}
	return n.Normalize(), true
}
