// Package pick implements ray-based selection: viewport rays unprojected
// through the camera matrices, analytic sphere and cylinder intersection,
// and nearest-hit resolution over a scene.
package pick

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// Ray is a world-space half-line.
type Ray struct {
	Origin math3d.Vec3
	Dir    math3d.Vec3 // unit length
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) math3d.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// ViewportRay builds the world-space ray under a viewport pixel by
// unprojecting the pixel through the inverse view-projection matrix at the
// near and far planes. px, py are pixel coordinates with the origin at the
// top left.
func ViewportRay(px, py, width, height float64, invViewProj math3d.Mat4) Ray {
	// Pixel -> normalized device coordinates. NDC Y points up, pixels
	// point down.
	nx := 2*px/width - 1
	ny := 1 - 2*py/height

	near := invViewProj.MulVec4(math3d.V4(nx, ny, -1, 1)).PerspectiveDivide()
	far := invViewProj.MulVec4(math3d.V4(nx, ny, 1, 1)).PerspectiveDivide()

	return Ray{
		Origin: near,
		Dir:    far.Sub(near).Normalize(),
	}
}

// RaySphere returns the nearest positive ray parameter at which the ray
// enters a sphere, or false when the ray misses it entirely or the sphere
// lies behind the origin. A ray starting inside the sphere reports the exit
// point.
func RaySphere(r Ray, center math3d.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := 2 * oc.Dot(r.Dir)
	c := oc.LenSq() - radius*radius

	disc := b*b - 4*c // a == 1 for a unit direction
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	if t := (-b - sq) / 2; t > 0 {
		return t, true
	}
	if t := (-b + sq) / 2; t > 0 {
		return t, true
	}
	return 0, false
}

// RayCylinder intersects the ray with a finite open cylinder of the given
// radius around the segment from a to b. It returns the nearest positive
// parameter whose hit point projects onto the segment, or false. End caps
// are not tested; a ray that only crosses a cap plane misses.
func RayCylinder(r Ray, a, b math3d.Vec3, radius float64) (float64, bool) {
	axis := b.Sub(a)
	axisLen := axis.Len()
	if axisLen == 0 {
		return 0, false
	}
	axis = axis.Scale(1 / axisLen)

	// Work with the components perpendicular to the axis; the quadratic
	// is then a plain circle intersection.
	oc := r.Origin.Sub(a)
	dPerp := r.Dir.Sub(axis.Scale(r.Dir.Dot(axis)))
	ocPerp := oc.Sub(axis.Scale(oc.Dot(axis)))

	qa := dPerp.LenSq()
	if qa < 1e-12 {
		return 0, false // ray parallel to the axis
	}
	qb := 2 * dPerp.Dot(ocPerp)
	qc := ocPerp.LenSq() - radius*radius

	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	for _, t := range [2]float64{(-qb - sq) / (2 * qa), (-qb + sq) / (2 * qa)} {
		if t <= 0 {
			continue
		}
		along := r.At(t).Sub(a).Dot(axis)
		if along >= 0 && along <= axisLen {
			return t, true
		}
	}
	return 0, false
}
