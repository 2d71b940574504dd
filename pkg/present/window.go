//go:build cgo

package present

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/softpipe/pkg/render"
	"github.com/taigrr/softpipe/pkg/scene"
)

var windowBindings = []struct {
	key  ebiten.Key
	ctrl scene.Key
}{
	{ebiten.KeyArrowUp, scene.KeyUp},
	{ebiten.KeyArrowDown, scene.KeyDown},
	{ebiten.KeyArrowLeft, scene.KeyLeft},
	{ebiten.KeyArrowRight, scene.KeyRight},
	{ebiten.KeyW, scene.KeyForward},
	{ebiten.KeyS, scene.KeyBack},
	{ebiten.KeyA, scene.KeyYawLeft},
	{ebiten.KeyD, scene.KeyYawRight},
}

// window is an ebiten.Game that renders one engine frame per tick.
type window struct {
	engine *scene.Engine
	keys   *scene.KeySet

	img    *ebiten.Image
	pix    []byte
	width  int
	height int
}

// RunWindow opens a desktop window showing e, scaled by scale, and blocks
// until it is closed or Esc is pressed.
func RunWindow(e *scene.Engine, title string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	fb := e.Framebuffer()
	w := &window{
		engine: e,
		keys:   scene.NewKeySet(0),
		width:  fb.Width,
		height: fb.Height,
	}

	fps := e.Config().FPS
	e.SetPresenter(w)
	e.SetInput(w.keys, scene.NewSmoothCameraController(fps))

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.Width*scale, fb.Height*scale)
	ebiten.SetTPS(fps)
	render.Logger().Info("window presenter started", "width", fb.Width, "height", fb.Height, "scale", scale)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		render.Logger().Debug("textures toggled", "enabled", w.engine.ToggleTextures())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		render.Logger().Debug("wireframe toggled", "enabled", w.engine.ToggleWireframe())
	}
	for _, b := range windowBindings {
		w.keys.Set(b.ctrl, ebiten.IsKeyPressed(b.key))
	}
	return w.engine.Tick(time.Now())
}

// Present copies the frame into the pixel buffer Draw uploads.
func (w *window) Present(fb *render.Framebuffer) error {
	if len(w.pix) != len(fb.Pixels)*4 {
		w.pix = make([]byte, len(fb.Pixels)*4)
	}
	for i, c := range fb.Pixels {
		j := i * 4
		w.pix[j+0] = c.R
		w.pix[j+1] = c.G
		w.pix[j+2] = c.B
		w.pix[j+3] = 0xFF
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	if w.pix == nil {
		return
	}
	if w.img == nil {
		w.img = ebiten.NewImage(w.width, w.height)
	}
	w.img.WritePixels(w.pix)
	screen.DrawImage(w.img, nil)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.1f", ebiten.ActualFPS()))
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
