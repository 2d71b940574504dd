package render

import (
	"math"
)

// Rasterizer fills screen-space triangles into a Framebuffer and drives the
// per-triangle pipeline (see DrawMesh).
type Rasterizer struct {
	camera *Camera
	fb     *Framebuffer

	Stats Stats // Statistics for debugging/benchmarking

	// Wireframe outlines every rasterized triangle after it is filled.
	Wireframe      bool
	WireframeColor Color

	// DisableTextures ignores bound textures and fills with flat color.
	DisableTextures bool

	// Strict panics on pipeline invariant violations instead of logging
	// and skipping the offending triangle.
	Strict bool
}

// Stats tracks what happened to triangles during a frame.
type Stats struct {
	MeshesDrawn         int // Meshes submitted to DrawMesh
	TrianglesTested     int // Triangles entering the pipeline
	TrianglesDegenerate int // Culled for having no face normal
	TrianglesCulled     int // Culled as back-facing
	TrianglesClipped    int // Removed entirely by the near plane
	TrianglesSplit      int // Clipped into two triangles
	TrianglesSkipped    int // Dropped after a projection error
	TrianglesDrawn      int // Screen-space triangles rasterized
	PixelsWritten       int // Pixels that passed the depth test
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		camera:         camera,
		fb:             fb,
		WireframeColor: ColorBlack,
	}
}

// Camera returns the camera used for culling and view transforms.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// Framebuffer returns the current render target.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// SetFramebuffer switches the render target, e.g. after a terminal resize.
func (r *Rasterizer) SetFramebuffer(fb *Framebuffer) {
	r.fb = fb
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ResetStats resets the statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// BeginFrame clears the framebuffer to bg, resets depth and statistics.
func (r *Rasterizer) BeginFrame(bg Color) {
	r.ResetStats()
	if r.fb != nil {
		r.fb.Clear(bg)
	}
}

// scanVertex is a screen-space vertex as seen by the scanline filler:
// floored position plus u/w, v/w and 1/w.
type scanVertex struct {
	x, y    float64
	u, v, w float64
}

// edge holds per-scanline increments along one triangle edge.
type edge struct {
	dx, du, dv, dw float64
}

func newEdge(a, b scanVertex) edge {
	dy := math.Abs(b.y - a.y)
	if dy == 0 {
		return edge{}
	}
	return edge{
		dx: (b.x - a.x) / dy,
		du: (b.u - a.u) / dy,
		dv: (b.v - a.v) / dy,
		dw: (b.w - a.w) / dy,
	}
}

// at returns the point on the edge starting at a, n scanlines down.
func (e edge) at(a scanVertex, n float64) scanVertex {
	return scanVertex{
		x: a.x + n*e.dx,
		u: a.u + n*e.du,
		v: a.v + n*e.dv,
		w: a.w + n*e.dw,
	}
}

// FillTriangle rasterizes a screen-space triangle as produced by
// ProjectTriangle: P holds pixel coordinates with y = 0 at the bottom and T
// holds (u/w, v/w, 1/w).
//
// Pixels pass the depth test when their interpolated 1/w is greater than
// the stored value. tex may be nil, in which case tri.Color is used.
func (r *Rasterizer) FillTriangle(tri Triangle, tex *Texture) {
	if r.fb == nil {
		return
	}
	if r.DisableTextures {
		tex = nil
	}

	var vs [3]scanVertex
	for i := range vs {
		vs[i] = scanVertex{
			x: math.Floor(tri.P[i].X),
			y: math.Floor(tri.P[i].Y),
			u: tri.T[i].U,
			v: tri.T[i].V,
			w: tri.T[i].W,
		}
	}

	// Sort by y; each swap moves position and texel together
	if vs[1].y < vs[0].y {
		vs[0], vs[1] = vs[1], vs[0]
	}
	if vs[2].y < vs[0].y {
		vs[0], vs[2] = vs[2], vs[0]
	}
	if vs[2].y < vs[1].y {
		vs[1], vs[2] = vs[2], vs[1]
	}
	top, mid, bot := vs[0], vs[1], vs[2]

	long := newEdge(top, bot)

	// Scanlines outside the surface produce nothing; clamp the loops so
	// far off-screen geometry costs nothing either.
	maxY := float64(r.fb.Height - 1)

	if mid.y != top.y {
		upper := newEdge(top, mid)
		for y := math.Max(top.y, 0); y <= math.Min(mid.y, maxY); y++ {
			n := y - top.y
			r.fillSpan(int(y), upper.at(top, n), long.at(top, n), tex, tri.Color)
		}
	}

	if bot.y != mid.y {
		lower := newEdge(mid, bot)
		for y := math.Max(mid.y, 0); y <= math.Min(bot.y, maxY); y++ {
			r.fillSpan(int(y), lower.at(mid, y-mid.y), long.at(top, y-top.y), tex, tri.Color)
		}
	}
}

// fillSpan draws one scanline from a to b, left edge inclusive and right
// edge exclusive.
func (r *Rasterizer) fillSpan(y int, a, b scanVertex, tex *Texture, c Color) {
	ax := math.Floor(a.x)
	bx := math.Floor(b.x)
	if ax > bx {
		a, b = b, a
		ax, bx = bx, ax
	}
	if bx == ax {
		return
	}

	tstep := 1.0 / (bx - ax)
	start := math.Max(ax, 0)
	end := math.Min(bx, float64(r.fb.Width))
	t := (start - ax) * tstep

	for x := int(start); x < int(end); x++ {
		w := (1-t)*a.w + t*b.w
		if w > r.fb.DepthAt(x, y) {
			px := c
			if tex != nil {
				u := (1-t)*a.u + t*b.u
				v := (1-t)*a.v + t*b.v
				px = tex.Sample(u/w, v/w)
			}
			r.fb.PutPixel(x, y, px)
			r.fb.SetDepth(x, y, w)
			r.Stats.PixelsWritten++
		}
		t += tstep
	}
}
