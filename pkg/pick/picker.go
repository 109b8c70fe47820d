package pick

import (
	"github.com/taigrr/topoview/pkg/scene"
)

// nodeMargin widens node pick spheres a little past the mesh bounds so
// near-misses on thin models still land.
const nodeMargin = 1.2

// Kind says what a pick hit.
type Kind int

const (
	KindNone Kind = iota
	KindNode
	KindEdge
)

// Result is the outcome of one pick: what was hit, which record, and how
// far along the ray. A miss is KindNone, which callers treat as deselect.
type Result struct {
	Kind     Kind
	Node     *scene.Node
	Edge     *scene.Edge
	Distance float64
}

// Pick casts the ray through the scene and returns the nearest hit. Nodes
// are tested as bounding spheres with a margin, edges as finite cylinders.
// When a node and an edge tie exactly, the node wins; nodes are what the
// user aims for, edges merely pass near them.
func Pick(r Ray, sc *scene.Scene) Result {
	best := Result{Kind: KindNone}

	for i := range sc.Nodes {
		n := &sc.Nodes[i]
		t, ok := RaySphere(r, n.Position, n.Radius*nodeMargin)
		if !ok {
			continue
		}
		if best.Kind == KindNone || t < best.Distance {
			best = Result{Kind: KindNode, Node: n, Distance: t}
		}
	}

	for i := range sc.Edges {
		e := &sc.Edges[i]
		t, ok := RayCylinder(r, e.A, e.B, scene.EdgeRadius)
		if !ok {
			continue
		}
		if best.Kind == KindNone || t < best.Distance {
			best = Result{Kind: KindEdge, Edge: e, Distance: t}
		}
	}

	return best
}
