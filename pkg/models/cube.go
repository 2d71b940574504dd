package models

import (
	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/render"
)

// Face colors of the cube returned by NewCube.
var (
	CubeSouth  = render.ColorGreen  // -Z
	CubeEast   = render.ColorBlue   // +X
	CubeNorth  = render.ColorRed    // +Z
	CubeWest   = render.ColorOrange // -X
	CubeTop    = render.ColorYellow // +Y
	CubeBottom = render.ColorBlack  // -Y
)

// NewCube returns an axis-aligned cube with side length size centered on the
// origin: 12 triangles, two per face, each face in its own color. Faces are
// wound clockwise when seen from outside and carry texels covering the full
// texture.
func NewCube(size float64) *Mesh {
	h := size / 2
	v := func(x, y, z float64) math3d.Vec3 {
		return math3d.V3(x*size-h, y*size-h, z*size-h)
	}

	// Each face lists bottom-left, top-left, top-right, bottom-right as seen
	// from outside.
	faces := []struct {
		name    string
		corners [4]math3d.Vec3
		color   render.Color
	}{
		{"south", [4]math3d.Vec3{v(0, 0, 0), v(0, 1, 0), v(1, 1, 0), v(1, 0, 0)}, CubeSouth},
		{"east", [4]math3d.Vec3{v(1, 0, 0), v(1, 1, 0), v(1, 1, 1), v(1, 0, 1)}, CubeEast},
		{"north", [4]math3d.Vec3{v(1, 0, 1), v(1, 1, 1), v(0, 1, 1), v(0, 0, 1)}, CubeNorth},
		{"west", [4]math3d.Vec3{v(0, 0, 1), v(0, 1, 1), v(0, 1, 0), v(0, 0, 0)}, CubeWest},
		{"top", [4]math3d.Vec3{v(0, 1, 0), v(0, 1, 1), v(1, 1, 1), v(1, 1, 0)}, CubeTop},
		{"bottom", [4]math3d.Vec3{v(1, 0, 1), v(0, 0, 1), v(0, 0, 0), v(1, 0, 0)}, CubeBottom},
	}

	// Texture rows run top to bottom, so v=0 is the top edge.
	bl, tl, tr, br := math3d.V2(0, 1), math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1)

	mesh := NewMesh("cube")
	for _, f := range faces {
		c := f.corners
		mesh.AddTriangle(render.Triangle{
			P:     [3]math3d.Vec3{c[0], c[1], c[2]},
			T:     [3]math3d.Vec2{bl, tl, tr},
			Color: f.color,
		})
		mesh.AddTriangle(render.Triangle{
			P:     [3]math3d.Vec3{c[0], c[2], c[3]},
			T:     [3]math3d.Vec2{bl, tr, br},
			Color: f.color,
		})
	}
	mesh.CalculateBounds()
	return mesh
}
