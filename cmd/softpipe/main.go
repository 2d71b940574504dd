// softpipe - software 3D renderer
// Renders OBJ and GLB models (or a demo cube) without a GPU, to PNG files,
// the terminal or a desktop window.
//
// Controls (view and term):
//
//	Arrows  - Move camera up/down/left/right
//	W/S     - Move forward/back
//	A/D     - Turn left/right
//	T       - Toggle texture on/off
//	X       - Toggle wireframe
//	Esc     - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/softpipe/pkg/present"
	"github.com/taigrr/softpipe/pkg/render"
	"github.com/taigrr/softpipe/pkg/scene"
)

// options holds the flag values shared by every command.
type options struct {
	width, height  int
	fov, near, far float64
	texture        string
	bg             string
	fps            int
	frames         int
	out            string
	scale          int
	wireframe      bool
	debug          bool
	spin           bool
	strict         bool
}

func main() {
	root := newRootCmd()
	if err := fang.Execute(context.Background(), root,
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	def := scene.DefaultConfig()

	root := &cobra.Command{
		Use:   "softpipe",
		Short: "Software 3D renderer",
		Long: "softpipe runs triangle meshes through a CPU rendering pipeline: " +
			"transform, back-face culling, near-plane clipping, projection and " +
			"perspective-correct textured scanline fill.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.debug)
		},
	}

	f := root.PersistentFlags()
	f.IntVar(&opts.width, "width", def.Width, "framebuffer width in pixels")
	f.IntVar(&opts.height, "height", def.Height, "framebuffer height in pixels")
	f.Float64Var(&opts.fov, "fov", def.FOV, "field of view in degrees")
	f.Float64Var(&opts.near, "near", def.Near, "near clipping distance")
	f.Float64Var(&opts.far, "far", def.Far, "far plane distance")
	f.StringVar(&opts.texture, "texture", "", "texture image (PNG/JPEG/BMP/TIFF/WebP)")
	f.StringVar(&opts.bg, "bg", "204,204,204", "background color (R,G,B)")
	f.IntVar(&opts.fps, "fps", def.FPS, "target frames per second")
	f.IntVar(&opts.frames, "frames", 0, "stop after N frames (0 = until quit)")
	f.StringVarP(&opts.out, "out", "o", "softpipe.png", "output PNG path")
	f.IntVar(&opts.scale, "scale", 1, "integer upscale factor for PNG output and the window")
	f.BoolVar(&opts.wireframe, "wireframe", false, "outline every triangle")
	f.BoolVar(&opts.debug, "debug", false, "log per-frame pipeline statistics")
	f.BoolVar(&opts.spin, "spin", true, "spin the model")
	f.BoolVar(&opts.strict, "strict", false, "panic on pipeline invariant violations")

	root.AddCommand(
		newRenderCmd(opts),
		newViewCmd(opts),
		newTermCmd(opts),
		newTextureCmd(opts),
	)
	return root
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// config validates the flags into an engine configuration.
func (o *options) config() (scene.Config, error) {
	bg, err := scene.ParseColor(o.bg)
	if err != nil {
		return scene.Config{}, err
	}
	cfg := scene.Config{
		Width:      o.width,
		Height:     o.height,
		FOV:        o.fov,
		Near:       o.near,
		Far:        o.far,
		Background: bg,
		FPS:        o.fps,
		Frames:     o.frames,
		Wireframe:  o.wireframe,
		Spin:       o.spin,
		Strict:     o.strict,
	}
	return cfg, cfg.Validate()
}

// newEngine loads the scene for args and returns an initialized engine.
func (o *options) newEngine(args []string, p scene.Presenter) (*scene.Engine, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	var modelPath string
	if len(args) > 0 {
		modelPath = args[0]
	}
	load := scene.NewLoader(scene.Options{
		ModelPath:   modelPath,
		TexturePath: o.texture,
		Spin:        cfg.Spin,
		FPS:         cfg.FPS,
	})
	s, err := load()
	if err != nil {
		return nil, err
	}

	e, err := scene.NewEngine(cfg, p)
	if err != nil {
		return nil, err
	}
	if err := e.Initialize(s); err != nil {
		return nil, err
	}
	return e, nil
}

func newRenderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render [model.obj|model.glb]",
		Short: "Render frames headlessly and write the last one to a PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := present.NewPNG(opts.out, opts.scale)
			e, err := opts.newEngine(args, out)
			if err != nil {
				return err
			}

			frames := max(opts.frames, 1)
			if err := e.RunFrames(cmd.Context(), frames); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return out.Close()
		},
	}
}

func newViewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view [model.obj|model.glb]",
		Short: "Open a window with keyboard camera controls",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEngine(args, nil)
			if err != nil {
				return err
			}
			title := "softpipe"
			if len(args) > 0 {
				title += " - " + filepath.Base(args[0])
			}
			return present.RunWindow(e, title, opts.scale)
		},
	}
}

func newTermCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "term [model.obj|model.glb]",
		Short: "Render into the terminal with half-block characters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal size replaces --width/--height once it starts.
			e, err := opts.newEngine(args, nil)
			if err != nil {
				return err
			}
			return present.RunTerminal(cmd.Context(), e)
		},
	}
}

func newTextureCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "texture [image]",
		Short: "Load a texture and write it back out as a PNG (debug pattern without an image)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tex := render.NewTestTexture(64, 64)
			if len(args) > 0 {
				var err error
				if tex, err = render.LoadTexture(args[0]); err != nil {
					return err
				}
			}

			bg, err := scene.ParseColor(opts.bg)
			if err != nil {
				return err
			}
			fb := render.NewFramebuffer(tex.Width, tex.Height)
			fb.Clear(bg)
			fb.DrawTexture(tex, 0, 0)

			if err := present.WritePNG(opts.out, fb.ToImage(), opts.scale); err != nil {
				return err
			}
			render.Logger().Info("wrote texture", "path", opts.out, "width", tex.Width, "height", tex.Height)
			return nil
		},
	}
}
