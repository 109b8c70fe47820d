package camera

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
	"github.com/taigrr/topoview/pkg/scene"
)

// Preset identifies a named camera pose.
type Preset int

const (
	PresetTop Preset = iota
	PresetFront
	PresetSide
	PresetIsometric
	PresetFitAll
)

// String returns the preset's display name.
func (p Preset) String() string {
	switch p {
	case PresetTop:
		return "top"
	case PresetFront:
		return "front"
	case PresetSide:
		return "side"
	case PresetIsometric:
		return "isometric"
	case PresetFitAll:
		return "fit"
	default:
		return "unknown"
	}
}

// presetDuration is how long a preset transition animates.
const presetDuration = 0.6

// ApplyPreset starts an animated transition to the named pose. Fixed-angle
// presets keep the current distance and pan; FitAll instead keeps the
// current angles and re-frames the whole scene. The transition eases both
// ways and can be interrupted by a drag at any point.
func (c *Controller) ApplyPreset(p Preset, sc *scene.Scene, fovy float64) {
	target := c.state

	switch p {
	case PresetTop:
		target.Elevation = elevationLimit
	case PresetFront:
		target.Azimuth = math3d.WrapAngle(-math.Pi / 2)
		target.Elevation = 0
	case PresetSide:
		target.Azimuth = 0
		target.Elevation = 0
	case PresetIsometric:
		home := DefaultState()
		target.Azimuth = home.Azimuth
		target.Elevation = home.Elevation
	case PresetFitAll:
		if sc == nil {
			return
		}
		d := sc.FitDistance(fovy)
		if d == 0 {
			return // empty scene, nothing to frame
		}
		target.Distance = math3d.Clamp(d, MinDistance, MaxDistance)
		// Re-center on the scene by projecting its centroid onto the
		// camera plane. The forward component has no effect on an orbit
		// target, so it is dropped.
		right, up := target.basis()
		center := sc.Center()
		target.Pan = math3d.V2(center.Dot(right), center.Dot(up))
	}

	c.anim = &animation{
		preset:   p,
		from:     c.state,
		to:       target.normalize(),
		duration: presetDuration,
	}
	c.mode = Animating
}
