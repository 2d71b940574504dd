package present

import (
	"context"
	"errors"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/softpipe/pkg/render"
	"github.com/taigrr/softpipe/pkg/scene"
)

// KeyHold is how long a terminal key press counts as held. Terminals send
// repeats while a key is down but usually no release.
const KeyHold = 150 * time.Millisecond

// binding maps key names, as accepted by uv.Key.MatchString, to a control.
type binding struct {
	names []string
	key   scene.Key
}

var terminalBindings = []binding{
	{[]string{"up"}, scene.KeyUp},
	{[]string{"down"}, scene.KeyDown},
	{[]string{"left"}, scene.KeyLeft},
	{[]string{"right"}, scene.KeyRight},
	{[]string{"w"}, scene.KeyForward},
	{[]string{"s"}, scene.KeyBack},
	{[]string{"a"}, scene.KeyYawLeft},
	{[]string{"d"}, scene.KeyYawRight},
}

// Toggler is the part of scene.Engine the input handlers drive.
type Toggler interface {
	ToggleWireframe() bool
	ToggleTextures() bool
}

// Terminal draws frames as half-block cells: each cell shows two
// framebuffer rows, the top one as foreground and the bottom as background.
type Terminal struct {
	term *uv.Terminal
	keys *scene.KeySet
}

// NewTerminal creates a presenter on the process's terminal. keys receives
// the camera controls.
func NewTerminal(keys *scene.KeySet) *Terminal {
	return &Terminal{
		term: uv.DefaultTerminal(),
		keys: keys,
	}
}

// Start switches to the alternate screen and returns the framebuffer size
// that fills it.
func (t *Terminal) Start() (width, height int, err error) {
	cols, rows, err := t.term.GetSize()
	if err != nil {
		return 0, 0, fmt.Errorf("get terminal size: %w", err)
	}
	if err := t.term.Start(); err != nil {
		return 0, 0, fmt.Errorf("start terminal: %w", err)
	}
	t.term.EnterAltScreen()
	t.term.HideCursor()
	if err := t.term.Resize(cols, rows); err != nil {
		return 0, 0, fmt.Errorf("resize terminal: %w", err)
	}
	return FramebufferSize(cols, rows)
}

// FramebufferSize returns the pixel size covering a cols x rows terminal.
func FramebufferSize(cols, rows int) (width, height int, err error) {
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("terminal too small: %dx%d", cols, rows)
	}
	return cols, rows * 2, nil
}

// Present draws the frame and flushes it to the terminal.
func (t *Terminal) Present(fb *render.Framebuffer) error {
	t.term.Draw(fb)
	if err := t.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.term.ExitAltScreen()
	t.term.ShowCursor()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return t.term.Shutdown(ctx)
}

// HandleEvent applies one terminal event: camera keys go to keys, T and X
// toggle textures and wireframe. It reports whether the user asked to quit.
func HandleEvent(ev uv.Event, keys *scene.KeySet, tg Toggler) (quit bool) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("esc", "ctrl+c", "q"):
			return true
		case ev.MatchString("t"):
			render.Logger().Debug("textures toggled", "enabled", tg.ToggleTextures())
			return false
		case ev.MatchString("x"):
			render.Logger().Debug("wireframe toggled", "enabled", tg.ToggleWireframe())
			return false
		}
		for _, b := range terminalBindings {
			if ev.MatchString(b.names...) {
				keys.Press(b.key)
			}
		}

	case uv.KeyReleaseEvent:
		for _, b := range terminalBindings {
			if ev.MatchString(b.names...) {
				keys.Release(b.key)
			}
		}
	}
	return false
}

// RunTerminal renders e into the terminal until the user quits or ctx is
// cancelled. Terminal resizes reallocate the framebuffer.
func RunTerminal(ctx context.Context, e *scene.Engine) error {
	keys := scene.NewKeySet(KeyHold)
	t := NewTerminal(keys)

	width, height, err := t.Start()
	if err != nil {
		return err
	}
	defer t.Close()

	e.Resize(width, height)
	e.SetPresenter(t)
	e.SetInput(keys, scene.NewSmoothCameraController(e.Config().FPS))
	render.Logger().Info("terminal presenter started", "width", width, "height", height)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for ev := range t.term.Events() {
			if size, ok := ev.(uv.WindowSizeEvent); ok {
				t.term.Erase()
				if err := t.term.Resize(size.Width, size.Height); err != nil {
					render.Logger().Warn("resize terminal", "error", err)
					continue
				}
				if w, h, err := FramebufferSize(size.Width, size.Height); err == nil {
					e.Resize(w, h)
				}
				continue
			}
			if HandleEvent(ev, keys, e) {
				cancel()
				return
			}
		}
	}()

	err = e.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
