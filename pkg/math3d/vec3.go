// Package math3d provides the homogeneous vector and matrix primitives used by
// the softpipe geometry pipeline.
//
// Matrices follow the row-vector convention: a point is multiplied on the left
// (v' = v * M), so a chain A.Mul(B) applies A first and B second.
package math3d

import "math"

// Vec3 is a point or direction in homogeneous 3D space.
// W is 1 for ordinary points and becomes the perspective divisor after a
// projection matrix has been applied.
type Vec3 struct {
	X, Y, Z, W float64
}

// V3 creates a new point with W = 1.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z, 1}
}

// Zero3 returns the origin.
func Zero3() Vec3 {
	return Vec3{W: 1}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return V3(0, 1, 0)
}

// Forward returns the camera's default look direction (0, 0, 1).
func Forward() Vec3 {
	return V3(0, 0, 1)
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return V3(a.X+b.X, a.Y+b.Y, a.Z+b.Z)
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return V3(a.X-b.X, a.Y-b.Y, a.Z-b.Z)
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return V3(a.X*s, a.Y*s, a.Z*s)
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float64) Vec3 {
	return V3(a.X/s, a.Y/s, a.Z/s)
}

// Dot returns the dot product a · b. W is ignored.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
// The operand order fixes the handedness of face normals.
func (a Vec3) Cross(b Vec3) Vec3 {
	return V3(
		a.Y*b.Z-a.Z*b.Y,
		a.Z*b.X-a.X*b.Z,
		a.X*b.Y-a.Y*b.X,
	)
}

// Len returns the length of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length.
func (a Vec3) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction.
// A zero vector has no direction and normalizes to the origin, so callers
// that need a real unit vector must check Len first.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Zero3()
	}
	return V3(a.X/l, a.Y/l, a.Z/l)
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return V3(-a.X, -a.Y, -a.Z)
}

// Lerp returns a + (b-a)*t on all four components.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		a.W + (b.W-a.W)*t,
	}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return V3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z))
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return V3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z))
}

// ApproxEqual reports whether the X, Y and Z components differ by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps &&
		math.Abs(a.Y-b.Y) <= eps &&
		math.Abs(a.Z-b.Z) <= eps
}
