package render

import (
	"fmt"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// NearClipZ is the view-space depth of the plane triangles are clipped
// against before projection.
const NearClipZ = 0.1

// Plane is an oriented plane through Point. Points on the Normal side are
// inside.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// NearPlane is the view-space near clipping plane.
var NearPlane = Plane{
	Point:  math3d.V3(0, 0, NearClipZ),
	Normal: math3d.V3(0, 0, 1),
}

// SignedDistance returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
// The normal is assumed to be unit length.
func (p Plane) SignedDistance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) - p.Normal.Dot(p.Point)
}

// Intersect returns where the segment start→end crosses the plane and the
// parameter t of that point along the segment.
func (p Plane) Intersect(start, end math3d.Vec3) (math3d.Vec3, float64) {
	n := p.Normal.Normalize()
	planeD := -n.Dot(p.Point)
	ad := start.Dot(n)
	bd := end.Dot(n)
	t := (-planeD - ad) / (bd - ad)
	return start.Add(end.Sub(start).Scale(t)), t
}

// clipVertex is a position and its texel, classified together.
type clipVertex struct {
	p math3d.Vec3
	t math3d.Vec2
}

// crossing returns the vertex where the edge in→out meets the plane, with the
// texel interpolated by the same parameter.
func (p Plane) crossing(in, out clipVertex) clipVertex {
	pos, t := p.Intersect(in.p, out.p)
	return clipVertex{p: pos, t: in.t.Lerp(out.t, t)}
}

// ClipTriangle clips tri against the plane and returns up to two triangles
// covering the part on the inside. Only out[:n] is populated.
//
// Color is copied to every output. Vertex order of a fully inside triangle
// is preserved.
func ClipTriangle(plane Plane, tri Triangle) (out [2]Triangle, n int) {
	plane.Normal = plane.Normal.Normalize()

	var inside, outside [3]clipVertex
	var nIn, nOut int
	for i := range tri.P {
		v := clipVertex{p: tri.P[i], t: tri.T[i]}
		if plane.SignedDistance(v.p) >= 0 {
			inside[nIn] = v
			nIn++
		} else {
			outside[nOut] = v
			nOut++
		}
	}

	emit := func(a, b, c clipVertex) {
		out[n] = Triangle{
			P:     [3]math3d.Vec3{a.p, b.p, c.p},
			T:     [3]math3d.Vec2{a.t, b.t, c.t},
			Color: tri.Color,
		}
		n++
	}

	switch nIn {
	case 0:
		return out, 0
	case 3:
		out[0] = tri
		return out, 1
	case 1:
		emit(inside[0],
			plane.crossing(inside[0], outside[0]),
			plane.crossing(inside[0], outside[1]))
		return out, n
	case 2:
		a := plane.crossing(inside[0], outside[0])
		emit(inside[0], inside[1], a)
		emit(inside[1], a, plane.crossing(inside[1], outside[0]))
		return out, n
	default:
		panic(fmt.Sprintf("render: clip classified %d inside vertices", nIn))
	}
}
