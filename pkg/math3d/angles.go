package math3d

import "math"

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// Radians converts an angle in degrees to radians.
//
// Topology records store node rotations in degrees; everything inside the
// engine works in radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts an angle in radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// WrapAngle wraps an angle in radians to [0, 2π).
func WrapAngle(rad float64) float64 {
	rad = math.Mod(rad, Tau)
	if rad < 0 {
		rad += Tau
	}
	return rad
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SmoothStep is the ease-in/ease-out curve 3t²-2t³ for t in [0, 1].
// Values outside [0, 1] are clamped.
func SmoothStep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// LerpAngle interpolates between two angles in radians along the shortest
// arc, so a transition from 0.1 to 2π-0.1 turns through 0 rather than almost
// a full circle.
func LerpAngle(a, b, t float64) float64 {
	diff := math.Mod(b-a, Tau)
	if diff > math.Pi {
		diff -= Tau
	}
	if diff < -math.Pi {
		diff += Tau
	}
	return a + diff*t
}
