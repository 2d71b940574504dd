package render

import (
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

func BenchmarkFillTriangle(b *testing.B) {
	r, fb := createTestRasterizer(640, 480)
	tri := screenTri(10, 10, 600, 40, 300, 470, 0.5, ColorRed)

	for b.Loop() {
		fb.ClearDepth()
		r.FillTriangle(tri, nil)
	}
}

func BenchmarkFillTriangleTextured(b *testing.B) {
	r, fb := createTestRasterizer(640, 480)
	tex := NewTestTexture(64, 64)
	tri := screenTri(10, 10, 600, 40, 300, 470, 0.5, ColorRed)
	tri.T[1].U = 0.5
	tri.T[2].V = 0.5

	for b.Loop() {
		fb.ClearDepth()
		r.FillTriangle(tri, tex)
	}
}

func BenchmarkDrawMesh(b *testing.B) {
	r, _ := createTestRasterizer(640, 480)
	quad := facingQuad(3, ColorRed)

	for b.Loop() {
		r.BeginFrame(ColorBackground)
		r.DrawMesh(quad, math3d.Identity(), nil, DefaultLight)
	}
}

func BenchmarkClear(b *testing.B) {
	fb := NewFramebuffer(640, 480)
	for b.Loop() {
		fb.Clear(ColorBackground)
	}
}
