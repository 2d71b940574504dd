package math3d

import "math"

// Mat4 is a 4x4 matrix addressed as m[row][col].
// Vectors are rows: a transformed component is v' [k] = Σ v[i] * m[i][k].
//
// For an affine transform the layout is:
// | Xx Xy Xz 0 |   X,Y,Z = basis vectors (rotation/scale)
// | Yx Yy Yz 0 |   T = translation
// | Zx Zy Zz 0 |
// | Tx Ty Tz 1 |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[3][0] = v.X
	m[3][1] = v.Y
	m[3][2] = v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Focal returns 1/tan(fov/2) for a field of view given in degrees.
func Focal(fovDegrees float64) float64 {
	return 1.0 / math.Tan(fovDegrees*0.5/180.0*math.Pi)
}

// Projection creates a left-handed perspective projection matrix.
// fovDegrees is the field of view in degrees and aspect is height / width.
// After MulVec the W component holds the view-space depth.
func Projection(fovDegrees, aspect, near, far float64) Mat4 {
	f := Focal(fovDegrees)
	var m Mat4
	m[0][0] = aspect * f
	m[1][1] = f
	m[2][2] = far / (far - near)
	m[3][2] = (-far * near) / (far - near)
	m[2][3] = 1
	m[3][3] = 0
	return m
}

// Mul multiplies two matrices: a * b. With row vectors the result applies a
// first and b second.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for r := range 4 {
		for c := range 4 {
			var sum float64
			for i := range 4 {
				sum += a[r][i] * b[i][c]
			}
			m[r][c] = sum
		}
	}
	return m
}

// MulVec transforms v by m using all four components, including W.
// No perspective division is performed; that is the projection stage's job.
func (m Mat4) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		W: v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

// MulDir transforms v as a direction (ignoring translation).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return V3(
		v.X*m[0][0]+v.Y*m[1][0]+v.Z*m[2][0],
		v.X*m[0][1]+v.Y*m[1][1]+v.Z*m[2][1],
		v.X*m[0][2]+v.Y*m[1][2]+v.Z*m[2][2],
	)
}

// PointAt builds the camera-to-world matrix for an eye at pos looking at
// target. up is re-orthogonalised against the forward direction.
func PointAt(pos, target, up Vec3) Mat4 {
	forward := target.Sub(pos).Normalize()

	a := forward.Scale(up.Dot(forward))
	newUp := up.Sub(a).Normalize()

	right := newUp.Cross(forward)

	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{newUp.X, newUp.Y, newUp.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{pos.X, pos.Y, pos.Z, 1},
	}
}

// QuickInverse inverts a matrix whose upper 3x3 block is orthonormal and whose
// last row is a translation, as produced by PointAt. It transposes the
// rotation and rotates the negated translation.
func QuickInverse(m Mat4) Mat4 {
	var inv Mat4
	for r := range 3 {
		for c := range 3 {
			inv[r][c] = m[c][r]
		}
	}
	for c := range 3 {
		inv[3][c] = -(m[3][0]*inv[0][c] + m[3][1]*inv[1][c] + m[3][2]*inv[2][c])
	}
	inv[3][3] = 1
	return inv
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for r := range 4 {
		for c := range 4 {
			t[r][c] = m[c][r]
		}
	}
	return t
}

// Translation extracts the translation row.
func (m Mat4) Translation() Vec3 {
	return V3(m[3][0], m[3][1], m[3][2])
}
