package scene

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// fitMargin pads the fitted bounds so geometry does not touch the viewport
// edges.
const fitMargin = 1.2

// Bounds returns the axis-aligned box enclosing all visible nodes, each
// padded by its pick radius. The second return is false for an empty scene.
func (s *Scene) Bounds() (mn, mx math3d.Vec3, ok bool) {
	if len(s.Nodes) == 0 {
		return math3d.Zero3(), math3d.Zero3(), false
	}

	mn = math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	mx = mn.Negate()
	for _, n := range s.Nodes {
		r := math3d.V3(n.Radius, n.Radius, n.Radius)
		mn = mn.Min(n.Position.Sub(r))
		mx = mx.Max(n.Position.Add(r))
	}
	return mn, mx, true
}

// Center returns the centroid of the visible-node bounds, or the origin for
// an empty scene.
func (s *Scene) Center() math3d.Vec3 {
	mn, mx, ok := s.Bounds()
	if !ok {
		return math3d.Zero3()
	}
	return mn.Add(mx).Scale(0.5)
}

// FitDistance returns the camera distance at which the scene's bounds fill a
// viewport with the given vertical field of view (radians). An empty scene
// yields 0; callers clamp the result to their zoom limits anyway.
func (s *Scene) FitDistance(fovy float64) float64 {
	mn, mx, ok := s.Bounds()
	if !ok {
		return 0
	}
	extent := mx.Sub(mn).MaxComponent()
	return (extent * fitMargin / 2) / math.Tan(fovy/2)
}
