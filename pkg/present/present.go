// Package present delivers finished frames: to PNG files, to the terminal
// and, when built with cgo, to a desktop window.
package present

import "errors"

// ErrNoWindow is returned by RunWindow when the binary was built without
// window support.
var ErrNoWindow = errors.New("present: window support not compiled in (build with cgo)")

// ErrNoFrame is returned by PNG.Close when no frame was presented.
var ErrNoFrame = errors.New("present: no frame to write")
