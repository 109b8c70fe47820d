// Package traffic animates flow particles along topology edges. Particle
// density, speed, and color come from each connection's utilization tier;
// the engine's lifecycle uses a generation counter so a restarted animation
// can never double-run.
package traffic

import "image/color"

// Tier buckets link utilization into visual intensity levels.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// String returns the tier's display name.
func (t Tier) String() string {
	switch t {
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "low"
	}
}

// tierSpec fixes the look of one tier: how many particles ride the edge,
// the speed band they are drawn from (edge lengths per second), and their
// color.
type tierSpec struct {
	count    int
	minSpeed float64
	maxSpeed float64
	color    color.RGBA
}

var tierSpecs = [3]tierSpec{
	TierLow:    {count: 2, minSpeed: 0.15, maxSpeed: 0.30, color: color.RGBA{R: 34, G: 197, B: 94, A: 255}},
	TierMedium: {count: 4, minSpeed: 0.30, maxSpeed: 0.55, color: color.RGBA{R: 245, G: 158, B: 11, A: 255}},
	TierHigh:   {count: 7, minSpeed: 0.55, maxSpeed: 0.90, color: color.RGBA{R: 239, G: 68, B: 68, A: 255}},
}

// TierFor buckets a utilization percentage. Below 40 is low, 40 to 70 is
// medium, above 70 is high.
func TierFor(utilizationPercent float64) Tier {
	switch {
	case utilizationPercent > 70:
		return TierHigh
	case utilizationPercent >= 40:
		return TierMedium
	default:
		return TierLow
	}
}

// Color returns the particle color for this tier.
func (t Tier) Color() color.RGBA {
	return tierSpecs[t].color
}

// ParticleCount returns how many particles this tier puts on an edge.
func (t Tier) ParticleCount() int {
	return tierSpecs[t].count
}
