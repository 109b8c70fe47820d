package traffic

import (
	"testing"

	"github.com/taigrr/topoview/pkg/topo"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		util float64
		want Tier
	}{
		{0, TierLow},
		{39.9, TierLow},
		{40, TierMedium},
		{70, TierMedium},
		{70.1, TierHigh},
		{100, TierHigh},
	}

	for _, tt := range tests {
		if got := TierFor(tt.util); got != tt.want {
			t.Errorf("TierFor(%f) = %v, want %v", tt.util, got, tt.want)
		}
	}
}

func TestSetTrafficPopulation(t *testing.T) {
	e := NewEngine()

	e.SetTraffic(1, 85, topo.FlowForward) // high tier
	got := e.Snapshot()
	if len(got) != TierHigh.ParticleCount() {
		t.Fatalf("got %d particles, want %d", len(got), TierHigh.ParticleCount())
	}

	spec := tierSpecs[TierHigh]
	for i, p := range got {
		if p.P < 0 || p.P >= 1 {
			t.Errorf("particle %d at P=%f, want [0,1)", i, p.P)
		}
		if p.Speed < spec.minSpeed || p.Speed >= spec.maxSpeed {
			t.Errorf("particle %d speed %f outside [%f,%f)", i, p.Speed, spec.minSpeed, spec.maxSpeed)
		}
		if !p.Forward {
			t.Errorf("particle %d reversed on a forward edge", i)
		}
		if p.Color != TierHigh.Color() {
			t.Errorf("particle %d color %v, want %v", i, p.Color, TierHigh.Color())
		}
	}
}

func TestSetTrafficRespawnsOnTierChange(t *testing.T) {
	e := NewEngine()

	e.SetTraffic(1, 85, topo.FlowForward)
	e.SetTraffic(1, 20, topo.FlowForward) // drop to low tier

	got := e.Snapshot()
	if len(got) != TierLow.ParticleCount() {
		t.Errorf("got %d particles after tier drop, want %d", len(got), TierLow.ParticleCount())
	}
	for i, p := range got {
		if p.Color != TierLow.Color() {
			t.Errorf("particle %d kept old tier color %v", i, p.Color)
		}
	}
}

func TestBidirectionalSplitsDirections(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 50, topo.FlowBidirectional) // medium: 4 particles

	fwd, rev := 0, 0
	for _, p := range e.Snapshot() {
		if p.Forward {
			fwd++
		} else {
			rev++
		}
	}
	if fwd != 2 || rev != 2 {
		t.Errorf("direction split = %d/%d, want 2/2", fwd, rev)
	}
}

func TestReverseDirection(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 10, topo.FlowReverse)

	for i, p := range e.Snapshot() {
		if p.Forward {
			t.Errorf("particle %d forward on a reverse edge", i)
		}
	}
}

func TestAdvanceWraps(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 85, topo.FlowForward)
	e.SetTraffic(2, 85, topo.FlowReverse)

	// Long uneven steps force many wraps in both directions.
	for _, dt := range []float64{0.3, 7.0, 0.016, 42.5} {
		e.Advance(dt)
		for i, p := range e.Snapshot() {
			if p.P < 0 || p.P >= 1 {
				t.Fatalf("after dt=%f particle %d at P=%f, want [0,1)", dt, i, p.P)
			}
		}
	}
}

func TestAdvanceMovesOppositeDirections(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 10, topo.FlowForward)
	e.SetTraffic(2, 10, topo.FlowReverse)

	before := e.Snapshot()
	e.Advance(0.1) // small enough that nothing wraps at low speeds
	after := e.Snapshot()

	for i := range after {
		delta := after[i].P - before[i].P
		if delta > 0.5 {
			delta -= 1 // wrapped backward past 0
		} else if delta < -0.5 {
			delta += 1 // wrapped forward past 1
		}
		if after[i].Forward && delta <= 0 {
			t.Errorf("forward particle %d moved by %f", i, delta)
		}
		if !after[i].Forward && delta >= 0 {
			t.Errorf("reverse particle %d moved by %f", i, delta)
		}
	}
}

func TestRemove(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 85, topo.FlowForward)
	e.SetTraffic(2, 85, topo.FlowForward)

	e.Remove(1)

	for _, p := range e.Snapshot() {
		if p.EdgeID == 1 {
			t.Fatal("removed edge still has particles")
		}
	}
	if got := len(e.Snapshot()); got != TierHigh.ParticleCount() {
		t.Errorf("got %d particles, want %d for the surviving edge", got, TierHigh.ParticleCount())
	}
}

// manualScheduler runs scheduled steps only when ticked, so tests control
// frame timing exactly.
type manualScheduler struct {
	steps []func(float64) bool
}

func (s *manualScheduler) Schedule(step func(float64) bool) {
	s.steps = append(s.steps, step)
}

func (s *manualScheduler) tick(dt float64) {
	kept := s.steps[:0]
	for _, step := range s.steps {
		if step(dt) {
			kept = append(kept, step)
		}
	}
	s.steps = kept
}

func TestDoubleStartLeavesOneLiveGeneration(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 10, topo.FlowForward)
	sched := &manualScheduler{}

	e.Start(sched)
	e.Start(sched) // restart without stopping first

	before := e.Snapshot()
	sched.tick(0.1)

	// The stale step must drop out on its first tick, leaving exactly one.
	if len(sched.steps) != 1 {
		t.Fatalf("%d live steps after restart, want 1", len(sched.steps))
	}

	// One tick advanced particles exactly once, not twice.
	after := e.Snapshot()
	for i := range after {
		want := before[i].P + before[i].Speed*0.1
		if want >= 1 {
			want -= 1
		}
		if diff := after[i].P - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("particle %d advanced to %f, want %f (single step)", i, after[i].P, want)
		}
	}
}

func TestStopFreezesParticles(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 10, topo.FlowForward)
	sched := &manualScheduler{}

	e.Start(sched)
	sched.tick(0.1)
	e.Stop()

	before := e.Snapshot()
	sched.tick(0.1)
	sched.tick(0.1)

	if len(sched.steps) != 0 {
		t.Fatalf("%d live steps after Stop, want 0", len(sched.steps))
	}
	after := e.Snapshot()
	for i := range after {
		if after[i].P != before[i].P {
			t.Errorf("particle %d moved after Stop", i)
		}
	}
}

func TestRestartAfterStopResumes(t *testing.T) {
	e := NewEngine()
	e.SetTraffic(1, 10, topo.FlowForward)
	sched := &manualScheduler{}

	e.Start(sched)
	e.Stop()
	e.Start(sched)

	before := e.Snapshot()
	sched.tick(0.1)
	sched.tick(0.1) // stale step gone after first tick

	if len(sched.steps) != 1 {
		t.Fatalf("%d live steps after restart, want 1", len(sched.steps))
	}
	moved := false
	for i, p := range e.Snapshot() {
		if p.P != before[i].P {
			moved = true
		}
	}
	if !moved {
		t.Error("particles frozen after restart")
	}
}
