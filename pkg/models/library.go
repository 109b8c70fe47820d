package models

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/taigrr/topoview/pkg/topo"
)

// FallbackBoundingRadius is the pick radius assigned to placeholder geometry
// when a model fails to load, so an asset error never leaves a node
// unclickable.
const FallbackBoundingRadius = 0.6

// typeModels maps node types to their default model files.
var typeModels = map[string]string{
	topo.TypeRouter:       "router.glb",
	topo.TypeSwitch:       "switch.glb",
	topo.TypeServer:       "server.glb",
	topo.TypeFirewall:     "firewall.glb",
	topo.TypeLoadBalancer: "load_balancer.glb",
	topo.TypeHost:         "host.glb",
}

// Entry is a resolved model: the mesh plus the pick radius derived from it.
// Placeholder is set when the real asset could not be loaded and a fallback
// sphere stands in.
type Entry struct {
	Mesh        *Mesh
	Radius      float64
	Placeholder bool
}

// Library resolves node types and per-node model overrides to loaded meshes.
// Loads are cached by file name, so a topology with fifty routers reads
// router.glb once. Safe for concurrent use.
type Library struct {
	dir    string
	loader *GLTFLoader

	mu       sync.Mutex
	cache    map[string]*Entry
	fallback *Entry
}

// NewLibrary creates a model library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{
		dir:    dir,
		loader: NewGLTFLoader(),
		cache:  make(map[string]*Entry),
	}
}

// ForNode resolves the model for a node. The node's Model field overrides the
// type default. A load failure is logged and answered with the shared
// placeholder sphere rather than an error: one broken asset must not take
// down the frame.
func (l *Library) ForNode(n *topo.Node) *Entry {
	file := n.Model
	if file == "" {
		file = typeModels[n.Type]
	}
	if file == "" {
		return l.placeholder()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.cache[file]; ok {
		return e
	}

	mesh, err := l.loader.Load(filepath.Join(l.dir, file))
	if err != nil {
		slog.Warn("model load failed, using placeholder",
			"model", file, "node", n.Name, "error", err)
		e := l.placeholderLocked()
		l.cache[file] = e
		return e
	}

	e := &Entry{Mesh: mesh, Radius: mesh.BoundingRadius()}
	l.cache[file] = e
	return e
}

func (l *Library) placeholder() *Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.placeholderLocked()
}

func (l *Library) placeholderLocked() *Entry {
	if l.fallback == nil {
		mesh := UVSphere(16, 8)
		l.fallback = &Entry{
			Mesh:        mesh,
			Radius:      FallbackBoundingRadius,
			Placeholder: true,
		}
	}
	return l.fallback
}
