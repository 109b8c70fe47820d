// Package scene turns topology snapshots into world-space geometry: placed
// node meshes, edge cylinders, and the static grid and axis lines. It owns
// the mapping from stored coordinates (Y up) to the world's Z-up convention.
package scene

import (
	"image/color"

	"github.com/taigrr/topoview/pkg/math3d"
	"github.com/taigrr/topoview/pkg/models"
	"github.com/taigrr/topoview/pkg/topo"
)

// EdgeRadius is the world-space radius of connection cylinders, used both
// for geometry and for picking.
const EdgeRadius = 0.15

// modelUpright stands glTF assets (authored Y up) upright in the Z-up world.
var modelUpright = math3d.RotateX(math3d.Radians(90))

// Node is a placed device: the source record resolved to world-space
// geometry.
type Node struct {
	Source *topo.Node

	Position  math3d.Vec3
	Transform math3d.Mat4
	Entry     *models.Entry

	// Radius is the world-space pick radius: the model's bounding radius
	// scaled by the node's scale factor.
	Radius float64
	Color  color.RGBA
}

// Edge is a placed connection: endpoints resolved to world space with the
// cylinder transform precomputed.
type Edge struct {
	Source *topo.Connection

	A, B      math3d.Vec3
	Transform math3d.Mat4
	Color     color.RGBA
}

// Scene is the world-space form of one topology snapshot.
type Scene struct {
	Nodes []Node
	Edges []Edge
}

// WorldPosition maps stored node coordinates onto the world. The datastore
// keeps Y as the vertical axis; the world is Z up, so Y and Z swap.
func WorldPosition(n *topo.Node) math3d.Vec3 {
	return math3d.V3(n.PositionX, n.PositionZ, n.PositionY)
}

// nodeRotation composes the stored per-axis rotations, with the stored
// vertical axis (Y) mapped onto world Z like positions are.
func nodeRotation(n *topo.Node) math3d.Mat4 {
	r := math3d.Identity()
	if n.RotationX != 0 {
		r = r.Mul(math3d.RotateX(math3d.Radians(n.RotationX)))
	}
	if n.RotationY != 0 {
		r = r.Mul(math3d.RotateZ(math3d.Radians(n.RotationY)))
	}
	if n.RotationZ != 0 {
		r = r.Mul(math3d.RotateY(math3d.Radians(n.RotationZ)))
	}
	return r
}

// NodeScale returns the node's scale factor, treating the zero value as 1.
func NodeScale(n *topo.Node) float64 {
	if n.Scale <= 0 {
		return 1
	}
	return n.Scale
}

// Build resolves a snapshot into world-space geometry. Hidden nodes are
// skipped entirely, along with any connection touching one; a dangling
// connection (endpoint id not in the snapshot) is skipped the same way.
func Build(snap *topo.Snapshot, lib *models.Library) *Scene {
	sc := &Scene{}

	visible := make(map[int64]math3d.Vec3, len(snap.Nodes))
	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		if n.Hidden {
			continue
		}

		pos := WorldPosition(n)
		scale := NodeScale(n)
		entry := lib.ForNode(n)

		transform := math3d.Translate(pos).
			Mul(nodeRotation(n)).
			Mul(math3d.ScaleUniform(scale)).
			Mul(modelUpright)

		sc.Nodes = append(sc.Nodes, Node{
			Source:    n,
			Position:  pos,
			Transform: transform,
			Entry:     entry,
			Radius:    entry.Radius * scale,
			Color:     n.DisplayColor(),
		})
		visible[n.ID] = pos
	}

	for i := range snap.Connections {
		c := &snap.Connections[i]
		a, ok := visible[c.SourceID]
		if !ok {
			continue
		}
		b, ok := visible[c.TargetID]
		if !ok {
			continue
		}

		sc.Edges = append(sc.Edges, Edge{
			Source:    c,
			A:         a,
			B:         b,
			Transform: EdgeTransform(a, b),
			Color:     c.DisplayColor(),
		})
	}

	return sc
}

// EdgeTransform builds the model matrix placing a unit-length cylinder
// (authored along models.PrimitiveAxis) between two points.
func EdgeTransform(a, b math3d.Vec3) math3d.Mat4 {
	dir := b.Sub(a)
	length := dir.Len()
	if length == 0 {
		return math3d.Translate(a)
	}

	mid := a.Add(b).Scale(0.5)
	return math3d.Translate(mid).
		Mul(AlignTo(models.PrimitiveAxis, dir.Scale(1/length))).
		Mul(math3d.Scale(math3d.V3(1, length, 1)))
}
