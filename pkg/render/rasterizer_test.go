package render

import (
	"math"
	"slices"
	"testing"

	"github.com/taigrr/softpipe/pkg/math3d"
)

// createTestRasterizer creates a rasterizer for testing.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	fb.Clear(ColorBackground)
	camera := NewCamera()
	camera.SetViewport(width, height)
	return NewRasterizer(camera, fb), fb
}

// screenTri builds a screen-space triangle with a constant 1/w.
func screenTri(x0, y0, x1, y1, x2, y2, invW float64, c Color) Triangle {
	tri := NewTriangle(math3d.V3(x0, y0, 0), math3d.V3(x1, y1, 0), math3d.V3(x2, y2, 0), c)
	for i := range tri.T {
		tri.T[i].W = invW
	}
	return tri
}

func countColor(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestFillTriangleCoverage(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.FillTriangle(screenTri(0, 0, 10, 0, 0, 10, 1, ColorRed), nil)

	tests := []struct {
		name string
		x, y int
		want Color
	}{
		{"inside near corner", 1, 1, ColorRed},
		{"inside on left edge", 0, 5, ColorRed},
		{"outside hypotenuse", 9, 9, ColorBackground},
		{"right edge excluded", 9, 1, ColorBackground},
		{"beyond triangle", 15, 15, ColorBackground},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Screen y is flipped into buffer rows.
			if got := fb.GetPixel(tc.x, fb.Height-tc.y-1); got != tc.want {
				t.Errorf("pixel (%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}

	if r.Stats.PixelsWritten != countColor(fb, ColorRed) {
		t.Errorf("PixelsWritten = %d, counted %d", r.Stats.PixelsWritten, countColor(fb, ColorRed))
	}
}

func TestFillTriangleRowFlip(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.FillTriangle(screenTri(0, 0, 10, 0, 0, 10, 1, ColorRed), nil)

	if got := fb.GetPixel(1, 18); got != ColorRed {
		t.Errorf("buffer row 18 = %v, want red", got)
	}
	if got := fb.GetPixel(1, 1); got != ColorBackground {
		t.Errorf("buffer row 1 = %v, want background", got)
	}
}

func TestFillTriangleVertexOrder(t *testing.T) {
	orders := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	pts := [3][2]float64{{2, 1}, {17, 6}, {6, 15}}

	var want []Color
	for _, o := range orders {
		r, fb := createTestRasterizer(20, 20)
		a, b, c := pts[o[0]], pts[o[1]], pts[o[2]]
		r.FillTriangle(screenTri(a[0], a[1], b[0], b[1], c[0], c[1], 1, ColorGreen), nil)

		if want == nil {
			want = slices.Clone(fb.Pixels)
			if countColor(fb, ColorGreen) == 0 {
				t.Fatal("triangle produced no pixels")
			}
			continue
		}
		if !slices.Equal(fb.Pixels, want) {
			t.Errorf("order %v produced different pixels", o)
		}
	}
}

func TestFillTriangleDepthOrderIndependent(t *testing.T) {
	near := screenTri(0, 0, 30, 0, 0, 30, 0.5, ColorRed)
	far := screenTri(0, 0, 30, 0, 30, 30, 0.25, ColorBlue)

	r1, fb1 := createTestRasterizer(20, 20)
	r1.FillTriangle(near, nil)
	r1.FillTriangle(far, nil)

	r2, fb2 := createTestRasterizer(20, 20)
	r2.FillTriangle(far, nil)
	r2.FillTriangle(near, nil)

	if !slices.Equal(fb1.Pixels, fb2.Pixels) {
		t.Error("draw order changed the result")
	}
	if !slices.Equal(fb1.Depth, fb2.Depth) {
		t.Error("draw order changed the depth buffer")
	}
	if got := fb1.GetPixel(2, fb1.Height-3); got != ColorRed {
		t.Errorf("overlap pixel = %v, want nearer red", got)
	}
	if got := fb1.DepthAt(2, 2); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("overlap depth = %v, want 0.5", got)
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
	}{
		{"flat in y", screenTri(0, 5, 10, 5, 15, 5, 1, ColorRed)},
		{"flat in x", screenTri(5, 0, 5, 10, 5, 15, 1, ColorRed)},
		{"single point", screenTri(3, 3, 3, 3, 3, 3, 1, ColorRed)},
		{"sub-pixel sliver", screenTri(4.1, 0, 4.9, 0, 4.5, 10, 1, ColorRed)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(20, 20)
			r.FillTriangle(tc.tri, nil)
			if r.Stats.PixelsWritten != 0 || countColor(fb, ColorRed) != 0 {
				t.Errorf("degenerate triangle wrote %d pixels", r.Stats.PixelsWritten)
			}
		})
	}
}

func TestFillTriangleOffscreen(t *testing.T) {
	r, fb := createTestRasterizer(10, 10)
	r.FillTriangle(screenTri(-1000, -1000, 3000, -1000, -1000, 3000, 1, ColorRed), nil)

	if got := countColor(fb, ColorRed); got != 100 {
		t.Errorf("covered %d pixels, want all 100", got)
	}
}

func TestFillTriangleTextured(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	tex := NewSolidTexture(4, 4, ColorGreen)

	tri := screenTri(0, 0, 20, 0, 0, 20, 1, ColorRed)
	tri.T[1].U = 1
	tri.T[2].V = 1
	r.FillTriangle(tri, tex)

	if got := fb.GetPixel(2, fb.Height-3); got != ColorGreen {
		t.Errorf("textured pixel = %v, want green", got)
	}
	if countColor(fb, ColorRed) != 0 {
		t.Error("flat color used despite bound texture")
	}

	r2, fb2 := createTestRasterizer(20, 20)
	r2.DisableTextures = true
	r2.FillTriangle(tri, tex)
	if got := fb2.GetPixel(2, fb2.Height-3); got != ColorRed {
		t.Errorf("pixel with textures disabled = %v, want red", got)
	}
}

func TestFillTrianglePerspectiveCorrect(t *testing.T) {
	// Left half red, right half blue.
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, ColorRed)
	tex.SetPixel(1, 0, ColorBlue)

	// A quad spanning the screen where the right edge is four times as far
	// away: the texture midpoint u=0.5 lands at 80% of the width.
	r, fb := createTestRasterizer(100, 4)
	left := math3d.Vec2{U: 0, V: 0.5, W: 1}
	right := math3d.Vec2{U: 1.0 / 4, V: 0.5 / 4, W: 1.0 / 4}

	a := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(0, 4, 0), math3d.V3(100, 4, 0), ColorWhite)
	a.T = [3]math3d.Vec2{left, left, right}
	b := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(100, 4, 0), math3d.V3(100, 0, 0), ColorWhite)
	b.T = [3]math3d.Vec2{left, right, right}

	r.FillTriangle(a, tex)
	r.FillTriangle(b, tex)

	row := fb.Height - 2 // screen y = 1
	if got := fb.GetPixel(10, row); got != ColorRed {
		t.Errorf("pixel at 10%% = %v, want red", got)
	}
	if got := fb.GetPixel(60, row); got != ColorRed {
		t.Errorf("pixel at 60%% = %v, want red (affine mapping would give blue)", got)
	}
	if got := fb.GetPixel(90, row); got != ColorBlue {
		t.Errorf("pixel at 90%% = %v, want blue", got)
	}
}
