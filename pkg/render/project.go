package render

import (
	"errors"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// ErrNonPositiveW is returned when a vertex reaches projection with w <= 0.
// Near-plane clipping guarantees w >= NearClipZ for correct input, so this
// signals a pipeline bug rather than bad geometry.
var ErrNonPositiveW = errors.New("render: non-positive w after clipping")

// ProjectTriangle applies proj, divides by w and maps the result to a
// width x height screen with the origin at the bottom-left.
//
// The pre-division w is kept in P[i].W. Texels are replaced by
// (u/w, v/w, 1/w) for perspective-correct interpolation.
func ProjectTriangle(tri Triangle, proj math3d.Mat4, width, height int) (Triangle, error) {
	out := tri
	for i := range tri.P {
		p := proj.MulVec(tri.P[i])
		w := p.W
		if w <= 0 {
			return Triangle{}, ErrNonPositiveW
		}

		x := p.X / w
		y := p.Y / w
		z := p.Z / w

		out.P[i] = math3d.Vec3{
			X: (x + 1) * 0.5 * float64(width),
			Y: (y + 1) * 0.5 * float64(height),
			Z: z,
			W: w,
		}
		out.T[i] = math3d.Vec2{
			U: tri.T[i].U / w,
			V: tri.T[i].V / w,
			W: 1 / w,
		}
	}
	return out, nil
}
