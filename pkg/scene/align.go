package scene

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// AlignTo returns the rotation carrying unit vector from onto unit vector to.
// Parallel inputs rotate by nothing; anti-parallel inputs rotate half a turn
// about an arbitrary perpendicular, since the rotation axis is then
// underdetermined.
func AlignTo(from, to math3d.Vec3) math3d.Mat4 {
	d := math3d.Clamp(from.Dot(to), -1, 1)

	if d > 1-1e-9 {
		return math3d.Identity()
	}
	if d < -1+1e-9 {
		return math3d.Rotate(from.Perpendicular(), math.Pi)
	}

	axis := from.Cross(to).Normalize()
	return math3d.Rotate(axis, math.Acos(d))
}
