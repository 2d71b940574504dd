//go:build !cgo

package present

import "github.com/taigrr/softpipe/pkg/scene"

// RunWindow reports ErrNoWindow: ebiten needs cgo on this platform.
func RunWindow(e *scene.Engine, title string, scale int) error {
	return ErrNoWindow
}
