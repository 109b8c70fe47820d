package models

import (
	"math"

	"github.com/taigrr/topoview/pkg/math3d"
)

// PrimitiveAxis is the intrinsic axis that procedural cylinders are authored
// along. Edge geometry is oriented by rotating this axis onto the edge
// direction.
var PrimitiveAxis = math3d.V3(0, 1, 0)

// UVSphere builds a unit-radius sphere centered at the origin from
// latitude/longitude bands. Normals point outward; UVs follow the standard
// equirectangular mapping.
func UVSphere(segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	mesh := NewMesh("sphere")

	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			theta := math3d.Tau * float64(s) / float64(segments)
			p := math3d.V3(
				math.Sin(phi)*math.Cos(theta),
				math.Cos(phi),
				math.Sin(phi)*math.Sin(theta),
			)
			mesh.Vertices = append(mesh.Vertices, MeshVertex{
				Position: p,
				Normal:   p,
				UV:       math3d.V2(float64(s)/float64(segments), 1-float64(r)/float64(rings)),
			})
		}
	}

	cols := segments + 1
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			i0 := r*cols + s
			i1 := i0 + 1
			i2 := i0 + cols
			i3 := i2 + 1
			// Wound for the rasterizer's screen-space convention, same
			// as the glTF loader's CCW to CW flip.
			mesh.Faces = append(mesh.Faces,
				Face{V: [3]int{i0, i2, i1}, Material: -1},
				Face{V: [3]int{i1, i2, i3}, Material: -1},
			)
		}
	}

	mesh.CalculateBounds()
	return mesh
}

// Cylinder builds an open-ended cylinder of the given radius and length,
// centered at the origin and authored along PrimitiveAxis (+Y).
func Cylinder(radius, length float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	mesh := NewMesh("cylinder")
	half := length / 2

	for s := 0; s <= segments; s++ {
		theta := math3d.Tau * float64(s) / float64(segments)
		nx, nz := math.Cos(theta), math.Sin(theta)
		n := math3d.V3(nx, 0, nz)
		u := float64(s) / float64(segments)

		mesh.Vertices = append(mesh.Vertices,
			MeshVertex{
				Position: math3d.V3(nx*radius, -half, nz*radius),
				Normal:   n,
				UV:       math3d.V2(u, 0),
			},
			MeshVertex{
				Position: math3d.V3(nx*radius, half, nz*radius),
				Normal:   n,
				UV:       math3d.V2(u, 1),
			},
		)
	}

	for s := 0; s < segments; s++ {
		b0 := s * 2
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b1 + 1
		mesh.Faces = append(mesh.Faces,
			Face{V: [3]int{b0, b1, t0}, Material: -1},
			Face{V: [3]int{t0, b1, t1}, Material: -1},
		)
	}

	mesh.CalculateBounds()
	return mesh
}
