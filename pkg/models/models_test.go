package models

import (
	"math"
	"testing"

	"github.com/taigrr/topoview/pkg/math3d"
	"github.com/taigrr/topoview/pkg/topo"
)

func TestUVSphereVerticesOnUnitSphere(t *testing.T) {
	mesh := UVSphere(12, 6)

	if mesh.TriangleCount() == 0 {
		t.Fatal("sphere has no faces")
	}

	for i, v := range mesh.Vertices {
		if r := v.Position.Len(); math.Abs(r-1.0) > 1e-9 {
			t.Errorf("vertex %d at radius %f, want 1", i, r)
		}
		// Outward normals on a unit sphere equal the position.
		if d := v.Normal.Sub(v.Position).Len(); d > 1e-9 {
			t.Errorf("vertex %d normal deviates from position by %f", i, d)
		}
	}
}

func TestCylinderExtents(t *testing.T) {
	mesh := Cylinder(0.15, 4.0, 8)

	if math.Abs(mesh.BoundsMin.Y+2.0) > 1e-9 || math.Abs(mesh.BoundsMax.Y-2.0) > 1e-9 {
		t.Errorf("cylinder Y extent = [%f, %f], want [-2, 2]",
			mesh.BoundsMin.Y, mesh.BoundsMax.Y)
	}

	for i, v := range mesh.Vertices {
		r := math.Hypot(v.Position.X, v.Position.Z)
		if math.Abs(r-0.15) > 1e-9 {
			t.Errorf("vertex %d at lateral radius %f, want 0.15", i, r)
		}
		// Open-ended cylinder: normals are lateral, no axis component.
		if math.Abs(v.Normal.Y) > 1e-9 {
			t.Errorf("vertex %d normal has axis component %f", i, v.Normal.Y)
		}
	}
}

func TestCalculateSmoothNormals(t *testing.T) {
	mesh := NewMesh("tri")
	mesh.Vertices = []MeshVertex{
		{Position: math3d.V3(0, 0, 0)},
		{Position: math3d.V3(1, 0, 0)},
		{Position: math3d.V3(0, 1, 0)},
	}
	mesh.Faces = []Face{{V: [3]int{0, 1, 2}, Material: -1}}

	mesh.CalculateSmoothNormals()

	want := math3d.V3(0, 0, 1)
	for i, v := range mesh.Vertices {
		if v.Normal.Sub(want).Len() > 1e-9 {
			t.Errorf("vertex %d normal = %v, want %v", i, v.Normal, want)
		}
	}
}

func TestBoundingRadius(t *testing.T) {
	mesh := NewMesh("box")
	mesh.Vertices = []MeshVertex{
		{Position: math3d.V3(-1, -2, -3)},
		{Position: math3d.V3(1, 2, 3)},
	}
	mesh.CalculateBounds()

	want := math.Sqrt(1 + 4 + 9)
	if got := mesh.BoundingRadius(); math.Abs(got-want) > 1e-9 {
		t.Errorf("BoundingRadius() = %f, want %f", got, want)
	}
}

func TestLibraryPlaceholderFallback(t *testing.T) {
	lib := NewLibrary(t.TempDir()) // empty dir, every load fails

	node := &topo.Node{ID: 1, Name: "core-1", Type: topo.TypeRouter}
	e := lib.ForNode(node)

	if !e.Placeholder {
		t.Fatal("expected placeholder entry for missing model")
	}
	if e.Radius != FallbackBoundingRadius {
		t.Errorf("placeholder radius = %f, want %f", e.Radius, FallbackBoundingRadius)
	}
	if e.Mesh == nil || e.Mesh.TriangleCount() == 0 {
		t.Error("placeholder mesh is empty")
	}

	// The fallback is shared, and the failed file is negative-cached.
	other := &topo.Node{ID: 2, Name: "core-2", Type: topo.TypeRouter}
	if e2 := lib.ForNode(other); e2 != e {
		t.Error("expected shared placeholder entry on repeat failure")
	}
}

func TestLibraryUnknownTypeUsesPlaceholder(t *testing.T) {
	lib := NewLibrary(t.TempDir())

	e := lib.ForNode(&topo.Node{ID: 3, Name: "mystery", Type: "toaster"})
	if !e.Placeholder {
		t.Error("unknown node type should resolve to placeholder")
	}
}

func TestFaceMaterial(t *testing.T) {
	mesh := NewMesh("mat")
	mesh.Materials = []Material{{Name: "body", BaseColor: [4]float64{1, 0, 0, 1}}}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{0, 1, 2}, Material: -1},
	}

	if m := mesh.FaceMaterial(0); m == nil || m.Name != "body" {
		t.Errorf("FaceMaterial(0) = %v, want body", m)
	}
	if m := mesh.FaceMaterial(1); m != nil {
		t.Errorf("FaceMaterial(1) = %v, want nil", m)
	}
	if m := mesh.FaceMaterial(99); m != nil {
		t.Errorf("FaceMaterial(99) = %v, want nil", m)
	}
}
