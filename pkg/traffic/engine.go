package traffic

import (
	"image/color"
	"math/rand/v2"
	"sync"

	"github.com/taigrr/topoview/pkg/topo"
)

// Particle is one moving dot on an edge. P is the normalized position along
// the edge in [0, 1): 0 at the source endpoint, 1 at the target. Reverse
// particles decrease P instead.
type Particle struct {
	EdgeID  int64
	P       float64
	Speed   float64 // in P units per second, always positive
	Forward bool
	Color   color.RGBA
}

// Scheduler drives per-frame callbacks. Schedule must call step once per
// frame with the elapsed seconds until step returns false, after which the
// callback is dropped. The frontend's animation loop implements this; tests
// drive it by hand.
type Scheduler interface {
	Schedule(step func(dt float64) (keep bool))
}

// Engine owns the particle population. All methods are safe for concurrent
// use; the render loop reads Snapshot while traffic updates arrive from the
// data side.
type Engine struct {
	mu         sync.Mutex
	particles  []Particle
	generation uint64
	rng        *rand.Rand
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// SetTraffic replaces the particle population for one edge according to its
// utilization tier. A bidirectional edge splits its particles between the
// two directions; an edge set while already populated is respawned fresh so
// a tier change takes effect immediately.
func (e *Engine) SetTraffic(edgeID int64, utilizationPercent float64, dir topo.FlowDirection) {
	tier := TierFor(utilizationPercent)
	spec := tierSpecs[tier]

	e.mu.Lock()
	defer e.mu.Unlock()

	e.removeLocked(edgeID)
	for i := range spec.count {
		forward := dir != topo.FlowReverse
		if dir == topo.FlowBidirectional && i%2 == 1 {
			forward = false
		}
		e.particles = append(e.particles, Particle{
			EdgeID:  edgeID,
			P:       e.rng.Float64(),
			Speed:   spec.minSpeed + e.rng.Float64()*(spec.maxSpeed-spec.minSpeed),
			Forward: forward,
			Color:   spec.color,
		})
	}
}

// Remove drops all particles for an edge, for when a connection stops
// carrying traffic or is deleted.
func (e *Engine) Remove(edgeID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removeLocked(edgeID)
}

func (e *Engine) removeLocked(edgeID int64) {
	kept := e.particles[:0]
	for _, p := range e.particles {
		if p.EdgeID != edgeID {
			kept = append(kept, p)
		}
	}
	e.particles = kept
}

// Clear drops every particle.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.particles = e.particles[:0]
}

// Advance moves every particle by dt seconds, wrapping positions back into
// [0, 1) so particles recirculate along their edge.
func (e *Engine) Advance(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.particles {
		p := &e.particles[i]
		if p.Forward {
			p.P += p.Speed * dt
		} else {
			p.P -= p.Speed * dt
		}
		p.P -= float64(int(p.P)) // fractional part
		if p.P < 0 {
			p.P += 1
		}
	}
}

// Snapshot returns a copy of the current particle population for drawing.
func (e *Engine) Snapshot() []Particle {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Start registers the engine's advance step with the scheduler. The step
// captures the current generation; a later Start or Stop bumps the counter,
// and the stale step sees the mismatch on its next frame and drops out.
// This makes restarts idempotent: exactly one live step per engine, with no
// handle bookkeeping for callers.
func (e *Engine) Start(s Scheduler) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	s.Schedule(func(dt float64) bool {
		e.mu.Lock()
		live := e.generation == gen
		e.mu.Unlock()
		if !live {
			return false
		}
		e.Advance(dt)
		return true
	})
}

// Stop invalidates the running step. The particle population stays intact,
// so a later Start resumes from the frozen positions.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
}
