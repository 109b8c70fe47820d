package viewport

import (
	"image/color"
	"testing"

	"github.com/taigrr/topoview/pkg/camera"
	"github.com/taigrr/topoview/pkg/models"
	"github.com/taigrr/topoview/pkg/pick"
	"github.com/taigrr/topoview/pkg/scene"
	"github.com/taigrr/topoview/pkg/topo"
	"github.com/taigrr/topoview/pkg/traffic"
)

func testSnapshot() *topo.Snapshot {
	return &topo.Snapshot{
		Nodes: []topo.Node{
			{ID: 1, Name: "core-1", Type: topo.TypeRouter, IPAddress: "10.0.0.1"},
			{ID: 2, Name: "edge-1", Type: topo.TypeSwitch, PositionX: 6},
		},
		Connections: []topo.Connection{
			{ID: 10, SourceID: 1, TargetID: 2, Type: "fiber", CarriesTraffic: true},
		},
	}
}

func testViewport(snap *topo.Snapshot, settings topo.VisualSettings) *Viewport {
	lib := models.NewLibrary("testdata/no-such-dir")
	sc := scene.Build(snap, lib)
	return New(sc, topo.StaticSettings(settings), camera.NewController(), traffic.NewEngine())
}

func bareSettings() topo.VisualSettings {
	return topo.VisualSettings{AmbientIntensity: 0.5, KeyLightIntensity: 1.0}
}

func countOpaque(v *Viewport) int {
	n := 0
	for _, p := range v.Framebuffer().Pixels {
		if p.A != 0 {
			n++
		}
	}
	return n
}

func TestFrameDrawsScene(t *testing.T) {
	v := testViewport(testSnapshot(), bareSettings())
	if err := v.Frame(120, 80, 0); err != nil {
		t.Fatal(err)
	}
	fb := v.Framebuffer()
	if fb.Width != 120 || fb.Height != 80 {
		t.Fatalf("framebuffer is %dx%d, want 120x80", fb.Width, fb.Height)
	}
	if countOpaque(v) == 0 {
		t.Fatal("no pixels drawn for a populated scene")
	}
}

func TestFrameRejectsEmptyArea(t *testing.T) {
	v := testViewport(testSnapshot(), bareSettings())
	if err := v.Frame(0, 40, 0); err == nil {
		t.Fatal("zero-width frame did not error")
	}
}

func TestFrameResizeReallocates(t *testing.T) {
	v := testViewport(testSnapshot(), bareSettings())
	if err := v.Frame(80, 40, 0); err != nil {
		t.Fatal(err)
	}
	if err := v.Frame(100, 60, 0); err != nil {
		t.Fatal(err)
	}
	fb := v.Framebuffer()
	if fb.Width != 100 || fb.Height != 60 {
		t.Fatalf("framebuffer is %dx%d after resize, want 100x60", fb.Width, fb.Height)
	}
}

func TestBackgroundFill(t *testing.T) {
	s := bareSettings()
	s.Background = &color.RGBA{10, 20, 30, 255}
	v := testViewport(&topo.Snapshot{}, s)
	if err := v.Frame(40, 30, 0); err != nil {
		t.Fatal(err)
	}
	if got := v.Framebuffer().GetPixel(0, 0); got != *s.Background {
		t.Fatalf("corner pixel = %v, want background %v", got, *s.Background)
	}
}

func TestTransparentBackgroundDefault(t *testing.T) {
	v := testViewport(&topo.Snapshot{}, bareSettings())
	if err := v.Frame(40, 30, 0); err != nil {
		t.Fatal(err)
	}
	if got := v.Framebuffer().GetPixel(0, 0); got.A != 0 {
		t.Fatalf("corner pixel = %v, want transparent", got)
	}
}

func TestEnvironmentModeBackdrop(t *testing.T) {
	s := bareSettings()
	s.EnvironmentLighting = true
	v := testViewport(&topo.Snapshot{}, s)
	if err := v.Frame(40, 30, 0); err != nil {
		t.Fatal(err)
	}
	if got := v.Framebuffer().GetPixel(0, 0); got.A == 0 {
		t.Fatal("environment mode cleared to transparent, want a backdrop")
	}
}

func TestGridToggle(t *testing.T) {
	s := bareSettings()
	s.ShowGrid = true
	v := testViewport(&topo.Snapshot{}, s)
	if err := v.Frame(120, 80, 0); err != nil {
		t.Fatal(err)
	}
	if countOpaque(v) == 0 {
		t.Fatal("grid enabled but nothing drawn")
	}

	v = testViewport(&topo.Snapshot{}, bareSettings())
	if err := v.Frame(120, 80, 0); err != nil {
		t.Fatal(err)
	}
	if n := countOpaque(v); n != 0 {
		t.Fatalf("grid and axes disabled but %d pixels drawn", n)
	}
}

func TestClickSelectsAndNotifies(t *testing.T) {
	v := testViewport(testSnapshot(), bareSettings())
	if err := v.Frame(200, 160, 0); err != nil {
		t.Fatal(err)
	}

	var fired int
	var last pick.Result
	v.OnSelectionChange = func(res pick.Result) {
		fired++
		last = res
	}

	// The default camera orbits the origin, so node 1 sits at screen
	// center.
	res := v.Click(100, 80)
	if res.Kind != pick.KindNode {
		t.Fatalf("center click picked %v, want a node", res.Kind)
	}
	if res.Node.Source.ID != 1 {
		t.Fatalf("center click picked node %d, want 1", res.Node.Source.ID)
	}
	if fired != 1 || last.Kind != pick.KindNode {
		t.Fatalf("selection callback fired %d times with %v", fired, last.Kind)
	}
	if v.Selection().Node != res.Node {
		t.Fatal("Selection does not match click result")
	}

	// Re-clicking the same node is not a change.
	v.Click(100, 80)
	if fired != 1 {
		t.Fatalf("re-click fired the callback again (%d times)", fired)
	}

	// Empty space deselects.
	res = v.Click(2, 2)
	if res.Kind != pick.KindNone {
		t.Fatalf("corner click picked %v, want none", res.Kind)
	}
	if fired != 2 {
		t.Fatalf("deselect did not fire the callback (fired %d)", fired)
	}
	if v.Selection().Kind != pick.KindNone {
		t.Fatal("selection not cleared after a miss")
	}
}

func TestHover(t *testing.T) {
	v := testViewport(testSnapshot(), bareSettings())
	v.SetMetrics(topo.MetricsMap{10: {UtilizationPercent: 85, ThroughputMbps: 940}})
	if err := v.Frame(200, 160, 0); err != nil {
		t.Fatal(err)
	}

	info, ok := v.Hover(100, 80)
	if !ok {
		t.Fatal("hover over the center node found nothing")
	}
	if info.Title != "core-1" || info.Detail != "10.0.0.1" {
		t.Fatalf("node hover = %+v", info)
	}

	if _, ok := v.Hover(2, 2); ok {
		t.Fatal("hover over empty space reported a hit")
	}
}

func TestSetMetricsDrivesTraffic(t *testing.T) {
	v := testViewport(testSnapshot(), bareSettings())

	v.SetMetrics(topo.MetricsMap{10: {UtilizationPercent: 85}})
	parts := v.Traffic.Snapshot()
	if want := traffic.TierHigh.ParticleCount(); len(parts) != want {
		t.Fatalf("got %d particles, want %d", len(parts), want)
	}
	for _, p := range parts {
		if p.EdgeID != 10 {
			t.Fatalf("particle on edge %d, want 10", p.EdgeID)
		}
	}

	// Metrics disappearing for the edge stops its animation.
	v.SetMetrics(topo.MetricsMap{})
	if parts := v.Traffic.Snapshot(); len(parts) != 0 {
		t.Fatalf("%d particles left after metrics removed", len(parts))
	}
}

func TestSetSceneClearsSelection(t *testing.T) {
	v := testViewport(testSnapshot(), bareSettings())
	if err := v.Frame(200, 160, 0); err != nil {
		t.Fatal(err)
	}
	if res := v.Click(100, 80); res.Kind != pick.KindNode {
		t.Fatalf("setup click picked %v", res.Kind)
	}

	lib := models.NewLibrary("testdata/no-such-dir")
	v.SetScene(scene.Build(&topo.Snapshot{}, lib))
	if v.Selection().Kind != pick.KindNone {
		t.Fatal("selection survived a scene swap")
	}
}
