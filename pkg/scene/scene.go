package scene

import (
	"fmt"
	"time"

	"github.com/taigrr/softpipe/pkg/math3d"
	"github.com/taigrr/softpipe/pkg/models"
	"github.com/taigrr/softpipe/pkg/render"
)

// Scene is the set of meshes an Engine draws each frame.
type Scene struct {
	Name   string
	Meshes []*models.Mesh

	// Light is the direction light travels; it does not need to be
	// normalized.
	Light math3d.Vec3

	// Update, when set, animates the scene once per frame before drawing.
	// dt is the frame duration in seconds.
	Update func(s *Scene, now time.Time, dt float64)
}

// Loader builds a scene before the frame loop starts. Assets are read once;
// the loop never loads anything.
type Loader func() (*Scene, error)

// New creates an empty scene lit from the viewer.
func New(name string) *Scene {
	return &Scene{
		Name:  name,
		Light: render.DefaultLight,
	}
}

// Add appends a mesh.
func (s *Scene) Add(m *models.Mesh) {
	s.Meshes = append(s.Meshes, m)
}

// TriangleCount returns the number of source triangles in the scene.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.TriangleCount()
	}
	return n
}

// Placement of demo meshes in front of the default camera.
const (
	CubeDistance  = 3.0
	ModelDistance = 5.0
	ModelSize     = 2.0
)

// Options selects what Load puts in a scene.
type Options struct {
	ModelPath   string // empty for the cube demo
	TexturePath string // optional override for the mesh texture
	Spin        bool
	FPS         int // spring step rate for the spin
}

// NewLoader returns a Loader for opts.
func NewLoader(opts Options) Loader {
	return func() (*Scene, error) {
		return Load(opts)
	}
}

// Load builds the demo scene: the model at ModelPath scaled to ModelSize
// and pushed ModelDistance into the screen, or the unit cube at
// CubeDistance when no path is given. A texture that fails to load is
// logged and the mesh keeps its flat colors.
func Load(opts Options) (*Scene, error) {
	var mesh *models.Mesh
	if opts.ModelPath == "" {
		mesh = models.NewCube(1)
		mesh.Translation.Z = CubeDistance
	} else {
		var err error
		mesh, err = models.Load(opts.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh.Normalize(ModelSize)
		mesh.Translation.Z = ModelDistance
	}

	if opts.TexturePath != "" {
		tex, err := render.LoadTexture(opts.TexturePath)
		if err != nil {
			render.Logger().Warn("using flat colors", "texture", opts.TexturePath, "error", err)
		} else {
			mesh.Texture = tex
		}
	}

	s := New(mesh.Name)
	s.Add(mesh)

	if opts.Spin {
		fps := opts.FPS
		if fps <= 0 {
			fps = 60
		}
		spin := NewSpinner(fps, DefaultSpinRate)
		s.Update = func(s *Scene, _ time.Time, dt float64) {
			spin.Update(dt)
			for _, m := range s.Meshes {
				spin.Apply(m)
			}
		}
	}

	render.Logger().Info("scene loaded",
		"name", s.Name,
		"meshes", len(s.Meshes),
		"triangles", s.TriangleCount(),
		"textured", mesh.Texture != nil)
	return s, nil
}
