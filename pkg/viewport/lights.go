// Package viewport composes frames: it owns the per-viewport framebuffer,
// drives the rasterizer from the orbit camera, resolves materials and
// lighting from the live visual settings, and routes picking results to the
// frontend.
package viewport

import (
	"github.com/taigrr/topoview/pkg/math3d"
	"github.com/taigrr/topoview/pkg/render"
	"github.com/taigrr/topoview/pkg/topo"
)

// The three-point rig's fixed directions (from light toward the scene).
// Key from high front-left, fill low from the right, rim from behind.
var (
	keyDir  = math3d.V3(0.4, 0.6, -0.8).Normalize()
	fillDir = math3d.V3(-0.7, 0.4, 0.2).Normalize()
	rimDir  = math3d.V3(0.1, -0.9, -0.4).Normalize()
)

// BuildLights assembles the frame's lighting rig from the current settings.
// It is called fresh every frame, so slider changes land on the very next
// frame with no invalidation protocol. Environment mode replaces the whole
// rig with a single ambient term.
func BuildLights(s topo.VisualSettings) render.LightSet {
	if s.EnvironmentLighting {
		return render.AmbientOnly(s.AmbientIntensity)
	}
	return render.LightSet{
		Ambient: s.AmbientIntensity,
		Directionals: []render.DirectionalLight{
			{Dir: keyDir, Intensity: s.KeyLightIntensity},
			{Dir: fillDir, Intensity: s.FillLightIntensity},
			{Dir: rimDir, Intensity: s.RimLightIntensity},
		},
	}
}
