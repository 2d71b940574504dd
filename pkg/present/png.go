package present

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/taigrr/softpipe/pkg/render"
	"golang.org/x/image/draw"
)

// PNG keeps the most recent frame and writes it to Path on Close.
type PNG struct {
	Path  string
	Scale int // integer upscale factor; values below 1 mean 1

	last   *image.RGBA
	frames int
}

// NewPNG creates a PNG presenter.
func NewPNG(path string, scale int) *PNG {
	return &PNG{Path: path, Scale: scale}
}

// Present copies the frame.
func (p *PNG) Present(fb *render.Framebuffer) error {
	p.last = fb.ToImage()
	p.frames++
	return nil
}

// Frames returns how many frames were presented.
func (p *PNG) Frames() int {
	return p.frames
}

// Last returns the most recent frame, or nil.
func (p *PNG) Last() *image.RGBA {
	return p.last
}

// Close writes the last frame.
func (p *PNG) Close() error {
	if p.last == nil {
		return ErrNoFrame
	}
	if err := WritePNG(p.Path, p.last, p.Scale); err != nil {
		return err
	}
	render.Logger().Info("wrote frame", "path", p.Path, "frames", p.frames)
	return nil
}

// ScaleImage enlarges src by an integer factor with nearest-neighbour
// sampling, keeping pixel edges hard.
func ScaleImage(src image.Image, scale int) *image.RGBA {
	b := src.Bounds()
	if scale < 1 {
		scale = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img, upscaled by scale, to path.
func WritePNG(path string, img image.Image, scale int) error {
	if scale > 1 {
		img = ScaleImage(img, scale)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
