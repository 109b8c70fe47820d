// Package camera implements the orbit camera: spherical state around a
// pannable target, pointer-driven control with click/drag discrimination,
// and animated view presets.
package camera

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// Zoom limits, matching the wheel clamp.
const (
	MinDistance = 2.0
	MaxDistance = 50.0
)

// elevationLimit keeps the camera off the poles so the view basis stays
// well-conditioned.
const elevationLimit = 1.5

// State is the orbit camera's full pose: spherical coordinates around a
// target that pans in the camera plane. Distance is in world units, angles
// in radians. Azimuth is kept wrapped to [0, 2pi); Elevation is clamped to
// +-1.5.
type State struct {
	Distance  float64
	Azimuth   float64
	Elevation float64

	// Pan offsets the orbit target from the origin, expressed in the
	// camera-plane basis (right, up) so panning follows the screen.
	Pan math3d.Vec2
}

// DefaultState is the home view: zoomed out over the whole topology,
// looking down from the upper quadrant.
func DefaultState() State {
	return State{
		Distance:  18.0,
		Azimuth:   math3d.WrapAngle(-0.785),
		Elevation: 1.047,
	}
}

// normalize wraps the azimuth and clamps elevation and distance into their
// legal ranges.
func (s State) normalize() State {
	s.Azimuth = math3d.WrapAngle(s.Azimuth)
	s.Elevation = math3d.Clamp(s.Elevation, -elevationLimit, elevationLimit)
	s.Distance = math3d.Clamp(s.Distance, MinDistance, MaxDistance)
	return s
}

// basis returns the camera-plane right and up vectors for the current
// angles. These depend only on the angles, so the pan target is independent
// of itself.
func (s State) basis() (right, up math3d.Vec3) {
	offset := s.offset()
	forward := offset.Negate().Normalize() // toward the target
	right = forward.Cross(math3d.Up()).Normalize()
	up = right.Cross(forward)
	return right, up
}

// offset is the eye position relative to the target.
func (s State) offset() math3d.Vec3 {
	ce := math.Cos(s.Elevation)
	return math3d.V3(
		s.Distance*ce*math.Cos(s.Azimuth),
		s.Distance*ce*math.Sin(s.Azimuth),
		s.Distance*math.Sin(s.Elevation),
	)
}

// Target returns the world-space point the camera orbits.
func (s State) Target() math3d.Vec3 {
	right, up := s.basis()
	return right.Scale(s.Pan.X).Add(up.Scale(s.Pan.Y))
}

// Eye returns the world-space camera position.
func (s State) Eye() math3d.Vec3 {
	return s.Target().Add(s.offset())
}

// ViewMatrix returns the world-to-camera transform for this pose.
func (s State) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(s.Eye(), s.Target(), math3d.Up())
}

// lerp interpolates between two poses, taking the shortest arc for azimuth.
func lerp(a, b State, t float64) State {
	return State{
		Distance:  a.Distance + (b.Distance-a.Distance)*t,
		Azimuth:   math3d.LerpAngle(a.Azimuth, b.Azimuth, t),
		Elevation: a.Elevation + (b.Elevation-a.Elevation)*t,
		Pan:       a.Pan.Lerp(b.Pan, t),
	}
}
