// Package scene drives the render pipeline frame by frame: it owns the
// camera, the framebuffer and the loaded meshes, applies input and
// animation, and hands finished frames to a Presenter.
package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/softpipe/pkg/render"
)

// Config holds the validated settings for an Engine.
type Config struct {
	Width, Height int

	FOV  float64 // degrees
	Near float64
	Far  float64

	Background render.Color

	FPS    int // frame rate for ticker-paced loops
	Frames int // stop after this many frames; 0 runs until cancelled

	Wireframe bool
	Spin      bool // animate demo meshes
	Strict    bool // panic on pipeline invariant violations
}

// DefaultConfig returns the 640x480, 90 degree setup with the grey
// background.
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     480,
		FOV:        render.DefaultFOV,
		Near:       render.DefaultNear,
		Far:        render.DefaultFar,
		Background: render.ColorBackground,
		FPS:        60,
		Spin:       true,
	}
}

// Validate reports the first setting that cannot drive a render.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("invalid fov %v: must be between 0 and 180", c.FOV)
	case c.Near <= 0:
		return fmt.Errorf("invalid near plane %v: must be positive", c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("invalid far plane %v: must be beyond near plane %v", c.Far, c.Near)
	case c.FPS <= 0:
		return fmt.Errorf("invalid fps %d", c.FPS)
	case c.Frames < 0:
		return errors.New("frame count must not be negative")
	}
	return nil
}

// ParseColor parses an "R,G,B" triple such as "204,204,204".
func ParseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("parse color %q: want R,G,B", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}
