package camera

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// Pointer sensitivities, in state units per pixel.
const (
	rotateSpeed = 0.01
	wheelSpeed  = 0.01
	panFactor   = 0.002 // scaled by distance so panning tracks the cursor
)

// clickTravelLimit is the total pointer travel, in pixels, under which a
// press-release pair still counts as a click rather than a drag.
const clickTravelLimit = 5.0

// Mode is the controller's input state.
type Mode int

const (
	Idle Mode = iota
	DragRotate
	DragPan
	Animating
)

// Controller turns pointer events into camera state changes. It is a plain
// state machine driven from the event loop; it is not safe for concurrent
// use.
type Controller struct {
	state State
	mode  Mode

	lastX, lastY float64
	travel       float64

	anim *animation

	// OnPresetDone, if set, fires when a preset animation reaches its
	// target pose. An animation cut short by a drag does not fire it.
	OnPresetDone func(Preset)
}

type animation struct {
	preset   Preset
	from, to State
	elapsed  float64
	duration float64
}

// NewController creates a controller at the home pose.
func NewController() *Controller {
	return &Controller{state: DefaultState()}
}

// State returns the current camera pose.
func (c *Controller) State() State { return c.state }

// SetState jumps the camera to a pose without animating, cancelling any
// running animation.
func (c *Controller) SetState(s State) {
	c.anim = nil
	if c.mode == Animating {
		c.mode = Idle
	}
	c.state = s.normalize()
}

// Mode returns the controller's current input mode.
func (c *Controller) Mode() Mode { return c.mode }

// PointerDown starts a drag gesture. pan selects panning instead of
// rotation (secondary button or modifier, per the frontend's mapping). A
// press interrupts any running preset animation mid-flight.
func (c *Controller) PointerDown(x, y float64, pan bool) {
	c.anim = nil
	if pan {
		c.mode = DragPan
	} else {
		c.mode = DragRotate
	}
	c.lastX, c.lastY = x, y
	c.travel = 0
}

// PointerMove applies pointer motion to the active gesture. Motion outside
// a gesture is ignored; hover handling lives with the picker, not here.
func (c *Controller) PointerMove(x, y float64) {
	if c.mode != DragRotate && c.mode != DragPan {
		return
	}

	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	c.travel += math.Hypot(dx, dy)

	switch c.mode {
	case DragRotate:
		c.state.Azimuth = math3d.WrapAngle(c.state.Azimuth + dx*rotateSpeed)
		c.state.Elevation = math3d.Clamp(
			c.state.Elevation-dy*rotateSpeed, -elevationLimit, elevationLimit)
	case DragPan:
		// Screen-right drags the world left, so the pan moves opposite the
		// pointer. Scaling by distance keeps the world pinned under the
		// cursor at any zoom.
		k := c.state.Distance * panFactor
		c.state.Pan.X -= dx * k
		c.state.Pan.Y += dy * k
	}
}

// PointerUp ends the gesture. It reports true when the press-release pair
// stayed within the click travel limit, in which case the caller should run
// a pick at the release position instead of treating it as a completed drag.
func (c *Controller) PointerUp() (clicked bool) {
	if c.mode != DragRotate && c.mode != DragPan {
		return false
	}
	c.mode = Idle
	return c.travel < clickTravelLimit
}

// Wheel applies scroll-wheel zoom. Positive delta zooms out.
func (c *Controller) Wheel(delta float64) {
	c.state.Distance = math3d.Clamp(
		c.state.Distance+delta*wheelSpeed, MinDistance, MaxDistance)
}

// Advance steps a running preset animation by dt seconds. It is a no-op in
// every other mode. The final step snaps exactly to the target pose and
// fires OnPresetDone.
func (c *Controller) Advance(dt float64) {
	if c.mode != Animating || c.anim == nil {
		return
	}

	a := c.anim
	a.elapsed += dt
	if a.elapsed >= a.duration {
		c.state = a.to
		c.anim = nil
		c.mode = Idle
		if c.OnPresetDone != nil {
			c.OnPresetDone(a.preset)
		}
		return
	}

	t := math3d.SmoothStep(a.elapsed / a.duration)
	c.state = lerp(a.from, a.to, t)
}
