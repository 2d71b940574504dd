package scene

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/softpipe/pkg/models"
)

// DefaultSpinRate is the demo spin speed in radians per second.
const DefaultSpinRate = 1.0

// SpinAxis tracks the angle and angular velocity of one rotation axis.
// The velocity is pulled toward Rate by a spring, so starting, stopping
// and reversing ease in instead of snapping.
type SpinAxis struct {
	Angle    float64
	Velocity float64
	Rate     float64 // target velocity in radians per second

	spring harmonica.Spring
	accel  float64 // internal spring velocity (for animating Velocity toward Rate)
}

// NewSpinAxis creates an axis at rest that spins up to rate.
func NewSpinAxis(fps int, rate float64) SpinAxis {
	return SpinAxis{
		Rate: rate,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the spring one frame and integrates the angle over dt.
func (a *SpinAxis) Update(dt float64) {
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, a.Rate)
	a.Angle += a.Velocity * dt
}

// Spinner turns a mesh about its X and Z axes, the two angles the world
// matrix applies.
type Spinner struct {
	X, Z SpinAxis
	fps  int
}

// NewSpinner creates a spinner whose axes ramp up to rate.
func NewSpinner(fps int, rate float64) *Spinner {
	return &Spinner{
		X:   NewSpinAxis(fps, rate),
		Z:   NewSpinAxis(fps, rate),
		fps: fps,
	}
}

// SetRate changes the target rate of both axes.
func (s *Spinner) SetRate(rate float64) {
	s.X.Rate = rate
	s.Z.Rate = rate
}

// Reset stops both axes and zeroes their angles.
func (s *Spinner) Reset() {
	s.X = NewSpinAxis(s.fps, s.X.Rate)
	s.Z = NewSpinAxis(s.fps, s.Z.Rate)
}

// Update advances both axes.
func (s *Spinner) Update(dt float64) {
	s.X.Update(dt)
	s.Z.Update(dt)
}

// Apply writes the current angles into the mesh rotation.
func (s *Spinner) Apply(m *models.Mesh) {
	m.Rotation.X = s.X.Angle
	m.Rotation.Z = s.Z.Angle
}
