package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/taigrr/softpipe/pkg/render"
)

// Presenter receives each finished frame. The framebuffer is reused for the
// next frame, so implementations must copy what they keep.
type Presenter interface {
	Present(fb *render.Framebuffer) error
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(fb *render.Framebuffer) error

// Present implements Presenter.
func (f PresenterFunc) Present(fb *render.Framebuffer) error { return f(fb) }

// ErrNotInitialized is returned by Frame before Initialize.
var ErrNotInitialized = errors.New("scene: engine not initialized")

// Engine runs the per-frame sequence: input, scene update, clear, draw every
// mesh, present. Frame and the setters are safe to call from different
// goroutines; frames themselves never overlap.
type Engine struct {
	mu sync.Mutex

	cfg        Config
	camera     *render.Camera
	fb         *render.Framebuffer
	rasterizer *render.Rasterizer
	presenter  Presenter
	scene      *Scene

	keys       KeyState
	controller *CameraController

	frames int
	last   time.Time
}

// NewEngine allocates the framebuffer and camera for cfg. p may be nil and
// set later with SetPresenter.
func NewEngine(cfg Config, p Presenter) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cam := render.NewCamera()
	cam.FOV = cfg.FOV
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.SetViewport(cfg.Width, cfg.Height)

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	r := render.NewRasterizer(cam, fb)
	r.Wireframe = cfg.Wireframe
	r.Strict = cfg.Strict

	return &Engine{
		cfg:        cfg,
		camera:     cam,
		fb:         fb,
		rasterizer: r,
		presenter:  p,
	}, nil
}

// Initialize installs the scene. It must be called once before Frame.
func (e *Engine) Initialize(s *Scene) error {
	if s == nil {
		return errors.New("initialize engine: nil scene")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene = s
	e.frames = 0
	render.Logger().Info("engine initialized",
		"scene", s.Name,
		"width", e.fb.Width,
		"height", e.fb.Height)
	return nil
}

// SetPresenter replaces the frame sink.
func (e *Engine) SetPresenter(p Presenter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.presenter = p
}

// SetInput attaches keyboard state and the controller that applies it to
// the camera. Either may be nil to disable camera control.
func (e *Engine) SetInput(keys KeyState, c *CameraController) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.keys = keys
	e.controller = c
}

// Resize reallocates the framebuffer and updates the camera aspect.
func (e *Engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fb.Width == width && e.fb.Height == height {
		return
	}
	e.fb = render.NewFramebuffer(width, height)
	e.rasterizer.SetFramebuffer(e.fb)
	e.camera.SetViewport(width, height)
	render.Logger().Debug("framebuffer resized", "width", width, "height", height)
}

// ToggleWireframe flips the outline overlay and reports the new state.
func (e *Engine) ToggleWireframe() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rasterizer.Wireframe = !e.rasterizer.Wireframe
	return e.rasterizer.Wireframe
}

// ToggleTextures switches between textured and flat fill and reports
// whether textures are now enabled.
func (e *Engine) ToggleTextures() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rasterizer.DisableTextures = !e.rasterizer.DisableTextures
	return !e.rasterizer.DisableTextures
}

// Config returns the settings the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Camera returns the engine camera. Mutate it only between frames.
func (e *Engine) Camera() *render.Camera {
	return e.camera
}

// Framebuffer returns the current render target.
func (e *Engine) Framebuffer() *render.Framebuffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fb
}

// Stats returns the statistics of the last frame.
func (e *Engine) Stats() render.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rasterizer.Stats
}

// Frames returns how many frames have been rendered.
func (e *Engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Frame renders one frame. dt is the time since the previous frame in
// seconds.
func (e *Engine) Frame(now time.Time, dt float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.scene == nil {
		return ErrNotInitialized
	}

	if e.controller != nil {
		e.controller.Update(e.camera, e.keys, dt)
	}
	if e.scene.Update != nil {
		e.scene.Update(e.scene, now, dt)
	}

	e.rasterizer.BeginFrame(e.cfg.Background)
	for _, m := range e.scene.Meshes {
		e.rasterizer.DrawMesh(m, m.WorldMatrix(), m.Texture, e.scene.Light)
	}
	e.frames++

	st := e.rasterizer.Stats
	render.Logger().Debug("frame",
		"n", e.frames,
		"tested", st.TrianglesTested,
		"culled", st.TrianglesCulled,
		"clipped", st.TrianglesClipped,
		"split", st.TrianglesSplit,
		"drawn", st.TrianglesDrawn,
		"pixels", st.PixelsWritten)

	if e.presenter == nil {
		return nil
	}
	if err := e.presenter.Present(e.fb); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

// Tick renders a frame timed from the previous Tick. The first call uses
// one nominal frame interval as dt. Large gaps are clamped to 100ms so a
// stall does not teleport the camera.
func (e *Engine) Tick(now time.Time) error {
	dt := 1 / float64(e.cfg.FPS)
	if !e.last.IsZero() {
		dt = min(now.Sub(e.last).Seconds(), 0.1)
	}
	e.last = now
	return e.Frame(now, dt)
}

// Run renders frames on a ticker at cfg.FPS until the context is cancelled
// or cfg.Frames frames have been drawn. Cancellation returns ctx.Err().
func (e *Engine) Run(ctx context.Context) error {
	d := time.Second / time.Duration(e.cfg.FPS)
	if d <= 0 {
		return fmt.Errorf("invalid fps: %d", e.cfg.FPS)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if err := e.Tick(now); err != nil {
				return err
			}
			if e.cfg.Frames > 0 && e.Frames() >= e.cfg.Frames {
				return nil
			}
		}
	}
}

// RunFrames renders n frames back to back with a fixed dt of one frame
// interval, without waiting on a clock. It is used for offline rendering.
func (e *Engine) RunFrames(ctx context.Context, n int) error {
	dt := 1 / float64(e.cfg.FPS)
	now := time.Now()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		now = now.Add(time.Duration(dt * float64(time.Second)))
		if err := e.Frame(now, dt); err != nil {
			return err
		}
	}
	return nil
}
