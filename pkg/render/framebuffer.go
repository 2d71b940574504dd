// Package render implements the softpipe per-frame pipeline: camera, face
// culling and flat lighting, near-plane clipping, projection, and a
// perspective-correct, depth-tested scanline rasterizer writing into a
// Framebuffer.
package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// FarDepth is the value the depth buffer is cleared to. Depth entries hold
// 1/w, so larger values are nearer to the camera and any visible fragment
// passes a test against a cleared entry.
const FarDepth = 0.0

var inf = math.Inf(1)

// Framebuffer is a color buffer plus a matching depth buffer.
//
// Pixels is stored with row 0 at the top so it can be handed to image
// encoders and presenters directly. Rasterizer output uses a bottom-left
// origin; PutPixel performs the row flip.
type Framebuffer struct {
	Width  int     // Width in pixels
	Height int     // Height in pixels
	Pixels []Color // Row-major pixel data, top row first
	Depth  []float64
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// The depth buffer starts cleared.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
		Depth:  make([]float64, width*height),
	}
	fb.ClearDepth()
	return fb
}

// Clear fills the color buffer with c and resets the depth buffer.
func (fb *Framebuffer) Clear(c Color) {
	if len(fb.Pixels) == 0 {
		return
	}
	// Fill using copy-doubling
	fb.Pixels[0] = c
	for filled := 1; filled < len(fb.Pixels); filled *= 2 {
		copy(fb.Pixels[filled:], fb.Pixels[:filled])
	}
	fb.ClearDepth()
}

// ClearDepth resets every depth entry to FarDepth.
func (fb *Framebuffer) ClearDepth() {
	if len(fb.Depth) == 0 {
		return
	}
	fb.Depth[0] = FarDepth
	for filled := 1; filled < len(fb.Depth); filled *= 2 {
		copy(fb.Depth[filled:], fb.Depth[:filled])
	}
}

// PutPixel writes c at screen position (x, y), where y = 0 is the bottom row.
// Out-of-range writes are ignored.
func (fb *Framebuffer) PutPixel(x, y int, c Color) {
	fb.SetPixel(x, fb.Height-y-1, c)
}

// SetPixel sets the pixel at buffer position (x, row), row 0 being the top.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, row int, c Color) {
	if x < 0 || x >= fb.Width || row < 0 || row >= fb.Height {
		return
	}
	fb.Pixels[row*fb.Width+x] = c
}

// GetPixel returns the color at buffer position (x, row).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, row int) Color {
	if x < 0 || x >= fb.Width || row < 0 || row >= fb.Height {
		return Color{}
	}
	return fb.Pixels[row*fb.Width+x]
}

// DepthAt returns the stored 1/w for screen position (x, y), y = 0 at the
// bottom like PutPixel. Out-of-range reads return +Inf so nothing passes.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	row := fb.Height - y - 1
	if x < 0 || x >= fb.Width || row < 0 || row >= fb.Height {
		return inf
	}
	return fb.Depth[row*fb.Width+x]
}

// SetDepth stores 1/w for screen position (x, y).
func (fb *Framebuffer) SetDepth(x, y int, d float64) {
	row := fb.Height - y - 1
	if x < 0 || x >= fb.Width || row < 0 || row >= fb.Height {
		return
	}
	fb.Depth[row*fb.Width+x] = d
}

// DrawLine draws a line from (x0, y0) to (x1, y1) in buffer coordinates
// using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawTexture blits tex unscaled with its top-left corner at buffer position
// (x, row). Pixels falling outside the framebuffer are dropped.
func (fb *Framebuffer) DrawTexture(tex *Texture, x, row int) {
	for ty := range tex.Height {
		for tx := range tex.Width {
			fb.SetPixel(x+tx, row+ty, tex.GetPixel(tx, ty))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
