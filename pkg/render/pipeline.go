package render

import (
	"fmt"
	"math"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// MinAmbient is the lowest shade a lit face receives.
const MinAmbient = 0.3

// DefaultLight points from the viewer into the scene.
var DefaultLight = math3d.V3(0, 0, -1)

// MeshRenderer is implemented by models.Mesh.
// This interface allows drawing meshes without importing the models package.
type MeshRenderer interface {
	TriangleCount() int
	GetTriangle(i int) Triangle
}

// DrawMesh runs every triangle of mesh through the pipeline: world
// transform, back-face cull, flat shading, view transform, near-plane clip,
// projection and scanline fill. tex may be nil.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, world math3d.Mat4, tex *Texture, lightDir math3d.Vec3) {
	if r.fb == nil {
		return
	}
	r.Stats.MeshesDrawn++

	view := r.camera.ViewMatrix()
	proj := r.camera.ProjectionMatrix()
	light := lightDir.Normalize()

	for i := 0; i < mesh.TriangleCount(); i++ {
		r.DrawTriangle(mesh.GetTriangle(i).Transform(world), view, proj, tex, light)
	}
}

// DrawTriangle processes one world-space triangle. light must be normalized.
func (r *Rasterizer) DrawTriangle(tri Triangle, view, proj math3d.Mat4, tex *Texture, light math3d.Vec3) {
	r.Stats.TrianglesTested++

	normal, ok := tri.Normal()
	if !ok {
		r.Stats.TrianglesDegenerate++
		return
	}

	ray := tri.P[0].Sub(r.camera.Position)
	if normal.Dot(ray) >= 0 {
		r.Stats.TrianglesCulled++
		return
	}

	shade := math.Max(MinAmbient, normal.Dot(light))
	tri.Color = Shade(tri.Color, shade)

	clipped, n := ClipTriangle(NearPlane, tri.Transform(view))
	switch n {
	case 0:
		r.Stats.TrianglesClipped++
		return
	case 2:
		r.Stats.TrianglesSplit++
	}

	for _, c := range clipped[:n] {
		projected, err := ProjectTriangle(c, proj, r.fb.Width, r.fb.Height)
		if err != nil {
			if r.Strict {
				panic(fmt.Sprintf("render: project triangle: %v", err))
			}
			Logger().Warn("skipping triangle", "error", err)
			r.Stats.TrianglesSkipped++
			continue
		}

		r.FillTriangle(projected, tex)
		if r.Wireframe {
			r.fb.DrawTriangleOutline(projected, r.WireframeColor)
		}
		r.Stats.TrianglesDrawn++
	}
}
