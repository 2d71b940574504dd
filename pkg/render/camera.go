package render

import (
	"github.com/taigrr/softpipe/pkg/math3d"
)

// Default camera settings.
const (
	DefaultFOV    = 90.0 // degrees
	DefaultAspect = 480.0 / 640.0
	DefaultNear   = 0.1
	DefaultFar    = 1000.0
)

// Camera represents the viewer: a position and a yaw around the Y axis,
// plus the projection parameters.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Yaw is the rotation around the Y axis in radians. Zero looks down +Z.
	Yaw float64

	// Projection parameters
	FOV    float64 // Field of view in degrees
	Aspect float64 // Height / Width
	Near   float64 // Near clipping plane
	Far    float64 // Far clipping plane
}

// NewCamera creates a camera at the origin looking down +Z.
func NewCamera() *Camera {
	return &Camera{
		Position: math3d.Zero3(),
		FOV:      DefaultFOV,
		Aspect:   DefaultAspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// SetViewport sets the aspect ratio from a framebuffer size.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float64(height) / float64(width)
}

// LookDir returns the forward direction: (0, 0, 1) rotated by Yaw.
func (c *Camera) LookDir() math3d.Vec3 {
	return math3d.RotateY(c.Yaw).MulVec(math3d.Forward())
}

// ViewMatrix returns the world-to-view matrix for the current position and yaw.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	target := c.Position.Add(c.LookDir())
	return math3d.QuickInverse(math3d.PointAt(c.Position, target, math3d.Up()))
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Projection(c.FOV, c.Aspect, c.Near, c.Far)
}

// MoveForward moves the camera along its look direction (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.LookDir().Scale(distance))
}

// MoveRight moves the camera along world +X (or -X if negative).
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(math3d.V3(distance, 0, 0))
}

// MoveUp moves the camera up (or down if negative).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Turn adds delta radians to the yaw.
func (c *Camera) Turn(delta float64) {
	c.Yaw += delta
}
