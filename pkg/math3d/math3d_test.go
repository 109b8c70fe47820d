package math3d

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecAlmostEqual(a, b Vec3) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", 1.5, 1.5},
		{"full turn", Tau, 0},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"two turns plus", 2*Tau + 0.25, 0.25},
		{"large negative", -3*Tau - 0.5, Tau - 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WrapAngle(tc.in)
			if !almostEqual(got, tc.expected) {
				t.Errorf("WrapAngle(%v) = %v, want %v", tc.in, got, tc.expected)
			}
			if got < 0 || got >= Tau {
				t.Errorf("WrapAngle(%v) = %v, outside [0, 2π)", tc.in, got)
			}
		})
	}
}

func TestLerpAngleShortestArc(t *testing.T) {
	// Crossing zero: 0.1 -> 2π-0.1 should move backwards through 0.
	got := LerpAngle(0.1, Tau-0.1, 0.5)
	if !almostEqual(WrapAngle(got), 0) {
		t.Errorf("midpoint = %v, want 0 (mod 2π)", got)
	}

	// Endpoints are exact.
	if !almostEqual(LerpAngle(1, 2, 0), 1) {
		t.Errorf("t=0 should return start angle")
	}
	if !almostEqual(LerpAngle(1, 2, 1), 2) {
		t.Errorf("t=1 should return end angle")
	}
}

func TestSmoothStep(t *testing.T) {
	if SmoothStep(0) != 0 || SmoothStep(1) != 1 {
		t.Errorf("SmoothStep must fix endpoints")
	}
	if !almostEqual(SmoothStep(0.5), 0.5) {
		t.Errorf("SmoothStep(0.5) = %v, want 0.5", SmoothStep(0.5))
	}
	if SmoothStep(-2) != 0 || SmoothStep(3) != 1 {
		t.Errorf("SmoothStep must clamp out-of-range input")
	}
	// Ease-in: slower than linear near 0.
	if SmoothStep(0.1) >= 0.1 {
		t.Errorf("SmoothStep(0.1) = %v, want < 0.1", SmoothStep(0.1))
	}
}

func TestRadiansDegreesRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, -30, 360, 720.5} {
		if !almostEqual(Degrees(Radians(deg)), deg) {
			t.Errorf("round trip failed for %v degrees", deg)
		}
	}
	if !almostEqual(Radians(180), math.Pi) {
		t.Errorf("Radians(180) = %v, want π", Radians(180))
	}
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := Translate(V3(3, -2, 7)).
		Mul(Rotate(V3(1, 2, 3), 0.8)).
		Mul(ScaleUniform(2.5))

	id := m.Mul(m.Inverse())
	want := Identity()
	for i := range id {
		if math.Abs(id[i]-want[i]) > 1e-9 {
			t.Fatalf("m * m⁻¹ element %d = %v, want %v", i, id[i], want[i])
		}
	}
}

func TestRotateMapsAxis(t *testing.T) {
	// 90° around Z maps +X to +Y.
	m := Rotate(V3(0, 0, 1), math.Pi/2)
	got := m.MulVec3Dir(V3(1, 0, 0))
	if !vecAlmostEqual(got, V3(0, 1, 0)) {
		t.Errorf("rotated +X = %v, want +Y", got)
	}
}

func TestLookAtCentersTarget(t *testing.T) {
	view := LookAt(V3(0, -10, 0), Zero3(), Up())
	p := view.MulVec3(Zero3())
	// Target should land on the view-space -Z axis.
	if !almostEqual(p.X, 0) || !almostEqual(p.Y, 0) {
		t.Errorf("target in view space = %v, want on -Z axis", p)
	}
	if p.Z >= 0 {
		t.Errorf("target should be in front of the camera (negative Z), got %v", p.Z)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	v := V4(2, 4, 6, 2)
	got := v.PerspectiveDivide()
	if !vecAlmostEqual(got, V3(1, 2, 3)) {
		t.Errorf("PerspectiveDivide = %v, want (1, 2, 3)", got)
	}

	// W=0 passes through unchanged.
	v = V4(1, 2, 3, 0)
	if !vecAlmostEqual(v.PerspectiveDivide(), V3(1, 2, 3)) {
		t.Errorf("PerspectiveDivide with W=0 should not divide")
	}
}

func TestPerpendicular(t *testing.T) {
	for _, v := range []Vec3{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), V3(1, 2, 3), V3(-4, 0.5, 2)} {
		p := v.Perpendicular()
		if !almostEqual(p.Len(), 1) {
			t.Errorf("Perpendicular(%v) not unit length: %v", v, p.Len())
		}
		if !almostEqual(p.Dot(v), 0) {
			t.Errorf("Perpendicular(%v) = %v, not perpendicular", v, p)
		}
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Rotate(V3(1, 1, 0), 0.5)
	m2 := Translate(V3(1, 2, 3))
	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(3, -2, 7)).Mul(Rotate(V3(1, 2, 3), 0.8))
	for b.Loop() {
		_ = m.Inverse()
	}
}
