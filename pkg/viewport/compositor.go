package viewport

import (
	"fmt"

	"github.com/taigrr/topoview/pkg/camera"
	"github.com/taigrr/topoview/pkg/math3d"
	"github.com/taigrr/topoview/pkg/models"
	"github.com/taigrr/topoview/pkg/pick"
	"github.com/taigrr/topoview/pkg/render"
	"github.com/taigrr/topoview/pkg/scene"
	"github.com/taigrr/topoview/pkg/topo"
	"github.com/taigrr/topoview/pkg/traffic"
)

// particleRadius is the world-space radius of traffic particle sprites.
const particleRadius = 0.08

// edgeSegments is the radial tessellation of connection cylinders.
const edgeSegments = 10

var environmentBackdrop = render.Color{R: 24, G: 28, B: 36, A: 255}

// Viewport owns one composed view of a topology: framebuffer, camera,
// selection, and the per-frame draw order. It is driven from a single event
// loop and is not safe for concurrent use; the traffic engine it reads from
// has its own locking.
type Viewport struct {
	Camera  *camera.Controller
	Traffic *traffic.Engine

	scene    *scene.Scene
	settings topo.SettingsSource
	metrics  topo.MetricsMap

	cam  *render.Camera
	fb   *render.Framebuffer
	ras  *render.Rasterizer
	mats *materialCache

	grid                []scene.Line
	axisX, axisY, axisZ scene.Line
	edgeMesh            *models.Mesh
	edgeByID            map[int64]*scene.Edge

	selection pick.Result

	// OnSelectionChange fires when a click lands on a different node or
	// edge than before, or on empty space (deselect). It does not fire for
	// re-clicks on the current selection.
	OnSelectionChange func(pick.Result)
}

// New creates a viewport over a scene. Static geometry (grid, axes, the
// shared edge cylinder) is built once here.
func New(sc *scene.Scene, settings topo.SettingsSource, ctrl *camera.Controller, eng *traffic.Engine) *Viewport {
	v := &Viewport{
		Camera:   ctrl,
		Traffic:  eng,
		scene:    sc,
		settings: settings,
		cam:      render.NewCamera(),
		mats:     newMaterialCache(),
		grid:     scene.GridLines(),
		edgeMesh: models.Cylinder(scene.EdgeRadius, 1, edgeSegments),
	}
	v.axisX, v.axisY, v.axisZ = scene.AxisLines()
	v.indexEdges()
	return v
}

func (v *Viewport) indexEdges() {
	v.edgeByID = make(map[int64]*scene.Edge, len(v.scene.Edges))
	for i := range v.scene.Edges {
		e := &v.scene.Edges[i]
		v.edgeByID[e.Source.ID] = e
	}
}

// SetScene swaps in a rebuilt scene after a topology change. The selection
// is dropped, since its pointers refer to the old scene.
func (v *Viewport) SetScene(sc *scene.Scene) {
	v.scene = sc
	v.indexEdges()
	v.setSelection(pick.Result{})
	v.applyMetrics()
}

// Scene returns the viewport's current scene.
func (v *Viewport) Scene() *scene.Scene { return v.scene }

// SetMetrics installs a fresh metrics read and re-tiers the traffic
// animation for every edge that carries traffic.
func (v *Viewport) SetMetrics(m topo.MetricsMap) {
	v.metrics = m
	v.applyMetrics()
}

func (v *Viewport) applyMetrics() {
	if v.Traffic == nil {
		return
	}
	for i := range v.scene.Edges {
		c := v.scene.Edges[i].Source
		if !c.CarriesTraffic {
			v.Traffic.Remove(c.ID)
			continue
		}
		if m, ok := v.metrics[c.ID]; ok {
			v.Traffic.SetTraffic(c.ID, m.UtilizationPercent, c.Direction)
		} else {
			v.Traffic.Remove(c.ID)
		}
	}
}

// Framebuffer returns the last composed frame, for the presenter. Nil until
// the first Frame call.
func (v *Viewport) Framebuffer() *render.Framebuffer { return v.fb }

// ApplyPreset starts an animated camera transition, framing the current
// scene for the fit preset.
func (v *Viewport) ApplyPreset(p camera.Preset) {
	v.Camera.ApplyPreset(p, v.scene, v.cam.FOV)
}

// Frame composes one frame at the given pixel size, advancing the camera
// animation by dt seconds. Pixel height is twice the terminal row count
// under the half-block presenter.
func (v *Viewport) Frame(width, height int, dt float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport has no drawable area (%dx%d)", width, height)
	}

	// Surface (re)allocation on first use or resize.
	if v.fb == nil || v.fb.Width != width || v.fb.Height != height {
		v.fb = render.NewFramebuffer(width, height)
		v.ras = render.NewRasterizer(v.cam, v.fb)
	}
	v.cam.SetAspectRatio(float64(width) / float64(height))

	// One settings read and one camera pose per frame; everything below
	// sees a consistent snapshot.
	s := v.settings.Current()
	v.Camera.Advance(dt)
	v.cam.SetView(v.Camera.State().ViewMatrix())
	v.ras.InvalidateFrustum()
	v.ras.ResetCullingStats()

	ls := BuildLights(s)

	bg := render.Color{} // transparent
	switch {
	case s.Background != nil:
		bg = *s.Background
	case s.EnvironmentLighting:
		// No environment map sampling on a terminal surface; a dark
		// backdrop stands in for the sky.
		bg = environmentBackdrop
	}
	v.fb.Clear(bg)
	v.ras.ClearDepth()

	// Reference lines go in first, without depth, so geometry covers them.
	if s.ShowGrid {
		for _, l := range v.grid {
			v.ras.DrawLine3D(l.A, l.B, l.Color)
		}
	}
	if s.ShowXAxis {
		v.ras.DrawLine3D(v.axisX.A, v.axisX.B, v.axisX.Color)
	}
	if s.ShowYAxis {
		v.ras.DrawLine3D(v.axisY.A, v.axisY.B, v.axisY.Color)
	}
	if s.ShowZAxis {
		v.ras.DrawLine3D(v.axisZ.A, v.axisZ.B, v.axisZ.Color)
	}

	for i := range v.scene.Nodes {
		v.drawNode(&v.scene.Nodes[i], ls)
	}
	for i := range v.scene.Edges {
		v.drawEdge(&v.scene.Edges[i], ls)
	}

	if v.Traffic != nil {
		for _, p := range v.Traffic.Snapshot() {
			e, ok := v.edgeByID[p.EdgeID]
			if !ok {
				continue
			}
			v.ras.DrawParticle(e.A.Lerp(e.B, p.P), particleRadius, p.Color)
		}
	}

	return nil
}

func (v *Viewport) drawNode(n *scene.Node, ls render.LightSet) {
	selected := v.selection.Kind == pick.KindNode && v.selection.Node == n

	mesh := n.Entry.Mesh
	if n.Entry.Placeholder || len(mesh.Materials) == 0 {
		c := n.Color
		if selected {
			c = highlight(c)
		}
		v.ras.DrawMeshFlat(mesh, n.Transform, c, ls)
		return
	}

	if selected {
		ls = boost(ls, 1.4)
	}
	v.ras.DrawMesh(mesh, n.Transform, v.mats.surfacesFor(mesh), n.Color, ls)
}

func (v *Viewport) drawEdge(e *scene.Edge, ls render.LightSet) {
	c := e.Color
	if e.Source.CarriesTraffic {
		if m, ok := v.metrics[e.Source.ID]; ok {
			c = traffic.TierFor(m.UtilizationPercent).Color()
		}
	}
	transform := e.Transform
	if v.selection.Kind == pick.KindEdge && v.selection.Edge == e {
		c = highlight(c)
		// A thicker tube makes the selected link readable at a distance.
		transform = transform.Mul(math3d.Scale(math3d.V3(1.6, 1, 1.6)))
	}
	v.ras.DrawMeshFlat(v.edgeMesh, transform, c, ls)
}

// selectionTint is the highlight yellow blended over selected elements.
var selectionTint = render.Color{R: 255, G: 220, B: 80, A: 255}

func highlight(c render.Color) render.Color {
	blend := func(v, t uint8) uint8 {
		return uint8(float64(v) + (float64(t)-float64(v))*0.45)
	}
	return render.Color{
		R: blend(c.R, selectionTint.R),
		G: blend(c.G, selectionTint.G),
		B: blend(c.B, selectionTint.B),
		A: c.A,
	}
}

// boost scales a whole lighting rig, for selected textured meshes where a
// color lift would fight the texture.
func boost(ls render.LightSet, k float64) render.LightSet {
	out := render.LightSet{Ambient: ls.Ambient * k}
	out.Directionals = make([]render.DirectionalLight, len(ls.Directionals))
	for i, d := range ls.Directionals {
		out.Directionals[i] = render.DirectionalLight{Dir: d.Dir, Intensity: d.Intensity * k}
	}
	return out
}

// PickAt casts a pick ray through a framebuffer pixel. Before the first
// frame there is nothing to pick against.
func (v *Viewport) PickAt(px, py float64) pick.Result {
	if v.fb == nil {
		return pick.Result{}
	}
	ray := pick.ViewportRay(px, py, float64(v.fb.Width), float64(v.fb.Height), v.cam.InverseViewProjection())
	return pick.Pick(ray, v.scene)
}

// Click resolves a click at a pixel into a selection change. A miss
// deselects. The result is returned either way.
func (v *Viewport) Click(px, py float64) pick.Result {
	res := v.PickAt(px, py)
	v.setSelection(res)
	return res
}

// Selection returns the current selection; Kind is KindNone when nothing is
// selected.
func (v *Viewport) Selection() pick.Result { return v.selection }

func (v *Viewport) setSelection(res pick.Result) {
	if sameTarget(v.selection, res) {
		return
	}
	v.selection = res
	if v.OnSelectionChange != nil {
		v.OnSelectionChange(res)
	}
}

func sameTarget(a, b pick.Result) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case pick.KindNode:
		return a.Node == b.Node
	case pick.KindEdge:
		return a.Edge == b.Edge
	default:
		return true
	}
}

// HoverInfo is the tooltip payload for the element under the pointer.
type HoverInfo struct {
	Title   string
	Detail  string
	Metrics *topo.Metrics
}

// Hover resolves the element under a pixel into tooltip content: node name
// and address, or connection type with its live metrics. The second return
// is false over empty space.
func (v *Viewport) Hover(px, py float64) (HoverInfo, bool) {
	res := v.PickAt(px, py)
	switch res.Kind {
	case pick.KindNode:
		n := res.Node.Source
		return HoverInfo{Title: n.Name, Detail: n.IPAddress}, true
	case pick.KindEdge:
		c := res.Edge.Source
		info := HoverInfo{Title: connTitle(c)}
		if m, ok := v.metrics[c.ID]; ok {
			metrics := m
			info.Metrics = &metrics
		}
		return info, true
	default:
		return HoverInfo{}, false
	}
}

func connTitle(c *topo.Connection) string {
	if c.Type == "" {
		return "connection"
	}
	return c.Type + " connection"
}
