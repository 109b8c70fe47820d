package camera

import (
	"math"
	"testing"

	"github.com/taigrr/topoview/pkg/math3d"
	"github.com/taigrr/topoview/pkg/models"
	"github.com/taigrr/topoview/pkg/scene"
	"github.com/taigrr/topoview/pkg/topo"
)

func TestDefaultStateEye(t *testing.T) {
	s := DefaultState()

	eye := s.Eye()
	if math.Abs(eye.Len()-18.0) > 1e-9 {
		t.Errorf("default eye distance = %f, want 18", eye.Len())
	}
	if eye.Z <= 0 {
		t.Errorf("default eye below the floor: %v", eye)
	}
	if tgt := s.Target(); tgt.Len() > 1e-9 {
		t.Errorf("default target = %v, want origin", tgt)
	}
}

func TestDragRotateWrapsAndClamps(t *testing.T) {
	c := NewController()

	c.PointerDown(0, 0, false)
	c.PointerMove(10000, 0) // 100 radians of azimuth
	if az := c.State().Azimuth; az < 0 || az >= math3d.Tau {
		t.Errorf("azimuth %f not wrapped to [0, tau)", az)
	}

	c.PointerMove(10000, -10000) // drag far up
	if el := c.State().Elevation; el != 1.5 {
		t.Errorf("elevation = %f, want clamp at 1.5", el)
	}
	c.PointerMove(10000, 10000) // drag far down
	if el := c.State().Elevation; el != -1.5 {
		t.Errorf("elevation = %f, want clamp at -1.5", el)
	}
}

func TestDragPanMovesTarget(t *testing.T) {
	c := NewController()

	c.PointerDown(0, 0, true)
	c.PointerMove(100, 0)
	if c.Mode() != DragPan {
		t.Fatalf("mode = %v, want DragPan", c.Mode())
	}
	if c.State().Pan.Len() == 0 {
		t.Error("pan drag did not move the target")
	}
	if clicked := c.PointerUp(); clicked {
		t.Error("100px pan drag reported as click")
	}
}

func TestClickVsDragThreshold(t *testing.T) {
	tests := []struct {
		name    string
		dx, dy  float64
		clicked bool
	}{
		{"still press", 0, 0, true},
		{"tiny jitter", 2, 2, true},
		{"real drag", 30, 0, false},
		{"slow accumulated drag", 3, 3, false}, // moved twice below
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.PointerDown(100, 100, false)
			c.PointerMove(100+tt.dx, 100+tt.dy)
			if tt.name == "slow accumulated drag" {
				c.PointerMove(100+2*tt.dx, 100+2*tt.dy)
			}
			if got := c.PointerUp(); got != tt.clicked {
				t.Errorf("clicked = %v, want %v", got, tt.clicked)
			}
			if c.Mode() != Idle {
				t.Errorf("mode after release = %v, want Idle", c.Mode())
			}
		})
	}
}

func TestWheelClamp(t *testing.T) {
	c := NewController()

	c.Wheel(-1e6)
	if d := c.State().Distance; d != MinDistance {
		t.Errorf("distance = %f, want clamp at %f", d, MinDistance)
	}
	c.Wheel(1e6)
	if d := c.State().Distance; d != MaxDistance {
		t.Errorf("distance = %f, want clamp at %f", d, MaxDistance)
	}
}

func TestPresetAnimationCompletes(t *testing.T) {
	c := NewController()

	var done []Preset
	c.OnPresetDone = func(p Preset) { done = append(done, p) }

	c.ApplyPreset(PresetTop, nil, math.Pi/4)
	if c.Mode() != Animating {
		t.Fatalf("mode = %v, want Animating", c.Mode())
	}

	// Step past the duration in uneven increments.
	for range 10 {
		c.Advance(0.1)
	}

	if c.Mode() != Idle {
		t.Errorf("mode after animation = %v, want Idle", c.Mode())
	}
	if el := c.State().Elevation; el != 1.5 {
		t.Errorf("elevation = %f, want exactly 1.5 at the target pose", el)
	}
	if len(done) != 1 || done[0] != PresetTop {
		t.Errorf("preset callbacks = %v, want [top]", done)
	}
}

func TestDragInterruptsAnimation(t *testing.T) {
	c := NewController()

	fired := false
	c.OnPresetDone = func(Preset) { fired = true }

	c.ApplyPreset(PresetFront, nil, math.Pi/4)
	c.Advance(0.1)
	mid := c.State()

	c.PointerDown(0, 0, false)
	if c.Mode() != DragRotate {
		t.Fatalf("mode = %v, want DragRotate", c.Mode())
	}

	// The pose freezes where the animation was cut, and further Advance
	// calls must not resume it.
	c.Advance(1.0)
	if c.State() != mid {
		t.Error("interrupted animation kept moving the camera")
	}
	if fired {
		t.Error("interrupted animation fired OnPresetDone")
	}
}

func TestFitAllFramesScene(t *testing.T) {
	lib := models.NewLibrary(t.TempDir())
	sc := scene.Build(&topo.Snapshot{
		Nodes: []topo.Node{
			{ID: 1, PositionX: 4}, // stored X -> world X
			{ID: 2, PositionX: 12},
		},
	}, lib)

	c := NewController()
	c.ApplyPreset(PresetFitAll, sc, math.Pi/4)
	for range 20 {
		c.Advance(0.1)
	}

	s := c.State()
	if s.Distance < MinDistance || s.Distance > MaxDistance {
		t.Errorf("fit distance %f outside [%f, %f]", s.Distance, MinDistance, MaxDistance)
	}

	// The orbit target lands on the centroid's camera-plane projection:
	// its lateral offset from the centroid must be along the view forward
	// only.
	center := sc.Center()
	fwd := s.Target().Sub(s.Eye()).Normalize()
	off := s.Target().Sub(center)
	lateral := off.Sub(fwd.Scale(off.Dot(fwd)))
	if lateral.Len() > 1e-6 {
		t.Errorf("target misses centroid laterally by %f", lateral.Len())
	}
}

func TestFitAllEmptySceneIsNoOp(t *testing.T) {
	c := NewController()
	before := c.State()

	c.ApplyPreset(PresetFitAll, &scene.Scene{}, math.Pi/4)
	if c.Mode() != Idle {
		t.Errorf("mode = %v, want Idle for empty scene", c.Mode())
	}
	if c.State() != before {
		t.Error("empty-scene fit moved the camera")
	}
}

func TestSetStateCancelsAnimation(t *testing.T) {
	c := NewController()
	c.ApplyPreset(PresetSide, nil, math.Pi/4)

	c.SetState(State{Distance: 10, Azimuth: 1, Elevation: 0.5})
	if c.Mode() != Idle {
		t.Errorf("mode = %v, want Idle", c.Mode())
	}
	c.Advance(1.0)
	if c.State().Distance != 10 {
		t.Error("cancelled animation still advanced")
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	s := DefaultState()
	view := s.ViewMatrix()

	// The target must land on the view-space -Z axis.
	p := view.MulVec3(s.Target())
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 || p.Z >= 0 {
		t.Errorf("target in view space = %v, want on -Z axis", p)
	}
}
