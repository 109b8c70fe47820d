// Package render provides the software rasterization pipeline: framebuffer,
// depth-buffered triangle drawing, texture sampling, lighting, and the
// terminal cell presenter.
package render

import (
	"image/color"
	"math"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// lerpColor linearly interpolates between two colors.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// MultiplyColor multiplies a color by a scalar (for lighting).
func MultiplyColor(c Color, intensity float64) Color {
	return Color{
		R: uint8(math.Min(255, float64(c.R)*intensity)),
		G: uint8(math.Min(255, float64(c.G)*intensity)),
		B: uint8(math.Min(255, float64(c.B)*intensity)),
		A: c.A,
	}
}

// LinearToSRGB applies the piecewise sRGB transfer function to one linear
// channel in [0, 1].
func LinearToSRGB(x float64) float64 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math.Pow(x, 1/2.4) - 0.055
}

// SRGBToLinear inverts LinearToSRGB.
func SRGBToLinear(x float64) float64 {
	if x <= 0.04045 {
		return x / 12.92
	}
	return math.Pow((x+0.055)/1.055, 2.4)
}

// LinearColor converts a linear-space RGBA quad (glTF material factors) to a
// display-space color. Texture pixels arrive display-ready and skip this.
func LinearColor(c [4]float64) Color {
	clamp01 := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }
	return Color{
		R: uint8(math.Round(LinearToSRGB(clamp01(c[0])) * 255)),
		G: uint8(math.Round(LinearToSRGB(clamp01(c[1])) * 255)),
		B: uint8(math.Round(LinearToSRGB(clamp01(c[2])) * 255)),
		A: uint8(math.Round(clamp01(c[3]) * 255)),
	}
}
