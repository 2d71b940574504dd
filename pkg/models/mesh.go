// Package models provides mesh construction and model loading for softpipe.
package models

import (
	"errors"
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// ErrNoGeometry is returned by loaders when a file parses but yields no
// triangles.
var ErrNoGeometry = errors.New("models: no triangles")

// Mesh is a list of triangles plus the per-frame placement the scene
// animates. The pipeline only ever reads Triangles; it draws transformed
// copies.
type Mesh struct {
	Name      string
	Triangles []render.Triangle

	// Texture is sampled when set; otherwise triangles use their flat color.
	Texture *render.Texture

	// Rotation holds Euler angles in radians. Only X and Z are applied,
	// Z first.
	Rotation    math3d.Vec3
	Translation math3d.Vec3

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:        name,
		Triangles:   make([]render.Triangle, 0),
		Rotation:    math3d.Zero3(),
		Translation: math3d.Zero3(),
		BoundsMin:   math3d.Zero3(),
		BoundsMax:   math3d.Zero3(),
	}
}

// AddTriangle appends a triangle.
func (m *Mesh) AddTriangle(t render.Triangle) {
	m.Triangles = append(m.Triangles, t)
}

// AddTriangles appends several triangles.
func (m *Mesh) AddTriangles(ts ...render.Triangle) {
	m.Triangles = append(m.Triangles, ts...)
}

// WorldMatrix returns RotateZ · RotateX · Translate for the current
// rotation and translation.
func (m *Mesh) WorldMatrix() math3d.Mat4 {
	return math3d.Identity().
		Mul(math3d.RotateZ(m.Rotation.Z)).
		Mul(math3d.RotateX(m.Rotation.X)).
		Mul(math3d.Translate(m.Translation))
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		return
	}

	m.BoundsMin = m.Triangles[0].P[0]
	m.BoundsMax = m.Triangles[0].P[0]

	for _, t := range m.Triangles {
		for _, p := range t.P {
			m.BoundsMin = m.BoundsMin.Min(p)
			m.BoundsMax = m.BoundsMax.Max(p)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
// Implements render.MeshRenderer interface.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// GetTriangle returns triangle i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetTriangle(i int) render.Triangle {
	return m.Triangles[i]
}

// SetColor sets the flat color of every triangle.
func (m *Mesh) SetColor(c render.Color) {
	for i := range m.Triangles {
		m.Triangles[i].Color = c
	}
}

// Transform bakes mat into the triangle positions.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i] = m.Triangles[i].Transform(mat)
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it uniformly so the
// largest bounding box dimension equals size.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := math.Max(dims.X, math.Max(dims.Y, dims.Z))
	if maxDim <= 0 {
		return
	}
	scale := size / maxDim
	m.Transform(math3d.Translate(m.Center().Negate()).Mul(math3d.ScaleUniform(scale)))
}

// Clone creates a deep copy of the mesh. The texture is shared.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Triangles = make([]render.Triangle, len(m.Triangles))
	copy(clone.Triangles, m.Triangles)
	return &clone
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
