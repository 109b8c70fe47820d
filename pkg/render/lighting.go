package render

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// DirectionalLight is an infinitely distant light. Dir points from the light
// toward the scene and must be unit length.
type DirectionalLight struct {
	Dir       math3d.Vec3
	Intensity float64
}

// LightSet is the per-frame lighting rig: a uniform ambient term plus any
// number of directional lights. The compositor rebuilds it from the current
// visual settings on every frame, so intensity changes are live.
type LightSet struct {
	Ambient      float64
	Directionals []DirectionalLight
}

// Intensity evaluates the rig for a unit surface normal. Each directional
// contributes its Lambert term; the sum is left unclamped above 1 so strong
// rigs can overbright, and the color multiply saturates at white.
func (ls LightSet) Intensity(normal math3d.Vec3) float64 {
	total := ls.Ambient
	for _, d := range ls.Directionals {
		total += d.Intensity * math.Max(0, normal.Dot(d.Dir.Negate()))
	}
	return total
}

// AmbientOnly is a rig with no directional lights; every surface gets the
// same intensity regardless of orientation.
func AmbientOnly(intensity float64) LightSet {
	return LightSet{Ambient: intensity}
}
