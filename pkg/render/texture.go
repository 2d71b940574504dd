package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"math"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Texture holds a 2D image for texture mapping.
// Pixels are row-major with row 0 at the top of the image.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []Color
}

// NewTexture creates an empty (transparent black) texture.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// NewSolidTexture creates a texture filled with a single color.
func NewSolidTexture(width, height int, c Color) *Texture {
	tex := NewTexture(width, height)
	for i := range tex.Pixels {
		tex.Pixels[i] = c
	}
	return tex
}

// LoadTexture loads a texture from an image file (PNG, JPEG, BMP, TIFF, WebP).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	tex, err := DecodeTexture(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", filepath.Base(path), err)
	}
	tex.Name = filepath.Base(path)
	return tex, nil
}

// DecodeTexture decodes any registered image format into a texture.
func DecodeTexture(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts any image into a texture. Colors come out
// alpha-premultiplied, as image.RGBA stores them.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) || rgba.Stride != 4*bounds.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	}

	tex := NewTexture(bounds.Dx(), bounds.Dy())
	for i := range tex.Pixels {
		p := rgba.Pix[i*4 : i*4+4 : i*4+4]
		tex.Pixels[i] = Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// NewTestTexture creates a debugging texture: colored borders (red left,
// green top, blue right, orange bottom), black corners and a black diagonal,
// on white. It makes orientation and clamping mistakes easy to spot.
func NewTestTexture(width, height int) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			c := ColorWhite
			switch {
			case x == 0 && y != 0:
				c = ColorRed
			case y == 0 && x != 0:
				c = ColorGreen
			}
			if x == width-1 && y != 0 {
				c = ColorBlue
			}
			if y == height-1 && x != 0 {
				c = ColorOrange
			}
			corner := (x == 0 || x == width-1) && (y == 0 || y == height-1)
			if corner || x == y || (x == 2 && y == 1) || (x == 1 && y == 2) {
				c = ColorBlack
			}
			tex.SetPixel(x, y, c)
		}
	}
	return tex
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) with bounds checking.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	return t.Pixels[y*t.Width+x]
}

// Sample returns the nearest pixel for normalized coordinates (u, v).
//
// The row is computed as floor(v*height - 1), one row above the exact
// nearest texel. This offset is kept for pixel-exact output compatibility;
// both coordinates are then clamped into the pixel grid.
func (t *Texture) Sample(u, v float64) Color {
	sx := int(math.Floor(u * float64(t.Width)))
	sy := int(math.Floor(v*float64(t.Height) - 1.0))
	sx = max(0, min(sx, t.Width-1))
	sy = max(0, min(sy, t.Height-1))

	return t.GetPixel(sx, sy)
}
