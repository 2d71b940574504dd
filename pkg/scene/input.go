package scene

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/softpipe/pkg/render"
)

// Key is a logical camera control, independent of the physical binding.
type Key int

const (
	KeyUp       Key = iota // arrow up: move camera up
	KeyDown                // arrow down: move camera down
	KeyLeft                // arrow left: move camera along -X
	KeyRight               // arrow right: move camera along +X
	KeyForward             // W: move along the look direction
	KeyBack                // S: move against the look direction
	KeyYawLeft             // A: turn left
	KeyYawRight            // D: turn right

	keyCount
)

var keyNames = [keyCount]string{"up", "down", "left", "right", "forward", "back", "yaw-left", "yaw-right"}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// KeyState reports which controls are held.
type KeyState interface {
	Pressed(k Key) bool
}

// KeySet is a KeyState that input adapters write from their own goroutine.
//
// Terminals report key repeats but rarely key releases, so a KeySet with a
// non-zero Hold treats a key as released once Hold has passed since its last
// press.
type KeySet struct {
	Hold time.Duration

	now     func() time.Time
	pressed [keyCount]atomic.Int64 // unix nanos of the last press, 0 when up
}

// NewKeySet creates a key set. hold of zero keeps keys down until Release.
func NewKeySet(hold time.Duration) *KeySet {
	return &KeySet{Hold: hold, now: time.Now}
}

// Press marks k as held.
func (s *KeySet) Press(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	s.pressed[k].Store(s.clock().UnixNano())
}

// Release marks k as up.
func (s *KeySet) Release(k Key) {
	if k < 0 || k >= keyCount {
		return
	}
	s.pressed[k].Store(0)
}

// Set presses or releases k.
func (s *KeySet) Set(k Key, down bool) {
	if down {
		s.Press(k)
	} else {
		s.Release(k)
	}
}

// Reset releases every key.
func (s *KeySet) Reset() {
	for k := range s.pressed {
		s.pressed[k].Store(0)
	}
}

// Pressed implements KeyState.
func (s *KeySet) Pressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	t := s.pressed[k].Load()
	if t == 0 {
		return false
	}
	if s.Hold <= 0 {
		return true
	}
	return s.clock().UnixNano()-t < int64(s.Hold)
}

func (s *KeySet) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Camera movement defaults, in world units and radians per second.
const (
	DefaultMoveSpeed = 8.0
	DefaultTurnRate  = 2.0
)

// CameraController moves a camera from held keys. Arrow keys translate the
// camera along world Y and X, forward/back follow the look direction and
// the yaw keys turn it.
type CameraController struct {
	Speed    float64
	TurnRate float64

	// Turning springs toward the target rate instead of jumping to it.
	smooth   bool
	spring   harmonica.Spring
	yawVel   float64
	yawAccel float64
}

// NewCameraController returns a controller with the default speed and turn
// rate. Yaw changes take effect immediately.
func NewCameraController() *CameraController {
	return &CameraController{
		Speed:    DefaultMoveSpeed,
		TurnRate: DefaultTurnRate,
	}
}

// NewSmoothCameraController returns a controller whose turn rate eases in
// and out through a critically damped spring stepped once per frame at fps.
func NewSmoothCameraController(fps int) *CameraController {
	c := NewCameraController()
	c.smooth = true
	c.spring = harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)
	return c
}

// Update applies one frame of input lasting dt seconds.
func (c *CameraController) Update(cam *render.Camera, keys KeyState, dt float64) {
	if cam == nil || keys == nil {
		return
	}

	step := c.Speed * dt
	if keys.Pressed(KeyUp) {
		cam.MoveUp(step)
	}
	if keys.Pressed(KeyDown) {
		cam.MoveUp(-step)
	}
	if keys.Pressed(KeyLeft) {
		cam.MoveRight(-step)
	}
	if keys.Pressed(KeyRight) {
		cam.MoveRight(step)
	}
	if keys.Pressed(KeyForward) {
		cam.MoveForward(step)
	}
	if keys.Pressed(KeyBack) {
		cam.MoveForward(-step)
	}

	var target float64
	if keys.Pressed(KeyYawLeft) {
		target += c.TurnRate
	}
	if keys.Pressed(KeyYawRight) {
		target -= c.TurnRate
	}

	if c.smooth {
		c.yawVel, c.yawAccel = c.spring.Update(c.yawVel, c.yawAccel, target)
	} else {
		c.yawVel = target
	}
	cam.Turn(c.yawVel * dt)
}
