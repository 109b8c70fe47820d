package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/topoview/pkg/camera"
	"github.com/taigrr/topoview/pkg/models"
	"github.com/taigrr/topoview/pkg/pick"
	"github.com/taigrr/topoview/pkg/scene"
	"github.com/taigrr/topoview/pkg/topo"
	"github.com/taigrr/topoview/pkg/traffic"
	"github.com/taigrr/topoview/pkg/viewport"
)

// zoomStep is the distance change per scroll notch, smoothed by a spring
// before it reaches the camera.
const zoomStep = 1.5

// frameScheduler runs traffic animation steps from the render loop, one
// tick per frame.
type frameScheduler struct {
	steps []func(dt float64) bool
}

func (s *frameScheduler) Schedule(step func(dt float64) bool) {
	s.steps = append(s.steps, step)
}

func (s *frameScheduler) Tick(dt float64) {
	kept := s.steps[:0]
	for _, step := range s.steps {
		if step(dt) {
			kept = append(kept, step)
		}
	}
	s.steps = kept
}

// zoomState smooths scroll-wheel zoom with a critically damped spring, so
// the camera glides instead of stepping.
type zoomState struct {
	target float64
	vel    float64
	spring harmonica.Spring
}

func newZoomState(fps int, distance float64) *zoomState {
	return &zoomState{
		target: distance,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0),
	}
}

func (z *zoomState) scroll(notches float64) {
	z.target = clampDistance(z.target + notches*zoomStep)
}

// sync adopts an externally set distance, e.g. after a preset animation.
func (z *zoomState) sync(distance float64) {
	z.target = distance
	z.vel = 0
}

func (z *zoomState) settled(distance float64) bool {
	return math.Abs(z.target-distance) < 1e-4 && math.Abs(z.vel) < 1e-4
}

// update advances the spring and returns the new distance.
func (z *zoomState) update(distance float64) float64 {
	d, v := z.spring.Update(distance, z.vel, z.target)
	z.vel = v
	return clampDistance(d)
}

func clampDistance(d float64) float64 {
	return math.Min(math.Max(d, camera.MinDistance), camera.MaxDistance)
}

func setupLogging() error {
	if logPath == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return nil
}

func run(topologyPath string) error {
	if err := setupLogging(); err != nil {
		return err
	}

	snap, err := topo.LoadSnapshot(topologyPath)
	if err != nil {
		return fmt.Errorf("load topology: %w", err)
	}

	vs := topo.DefaultVisualSettings()
	if settingsPath != "" {
		vs, err = topo.LoadVisualSettings(settingsPath)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
	}

	var metrics topo.MetricsMap
	if metricsPath != "" {
		metrics, err = topo.LoadMetrics(metricsPath)
		if err != nil {
			return fmt.Errorf("load metrics: %w", err)
		}
	}

	lib := models.NewLibrary(modelsDir)
	sc := scene.Build(snap, lib)
	ctrl := camera.NewController()
	eng := traffic.NewEngine()

	vp := viewport.New(sc, topo.SettingsFunc(func() topo.VisualSettings { return vs }), ctrl, eng)
	if metrics != nil {
		vp.SetMetrics(metrics)
	}

	sched := &frameScheduler{}
	eng.Start(sched)

	// Terminal setup, following the half-block convention: the framebuffer
	// is twice as tall as the terminal.
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking with SGR extended coordinates.
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	hud := newHUD(displayName(topologyPath, snap), len(sc.Nodes), len(sc.Edges))
	zoom := newZoomState(targetFPS, ctrl.State().Distance)
	ctrl.OnPresetDone = func(camera.Preset) {
		zoom.sync(ctrl.State().Distance)
	}
	vp.OnSelectionChange = func(res pick.Result) {
		hud.SetSelection(res)
	}

	// Initial framing over the loaded topology.
	vp.ApplyPreset(camera.PresetFitAll)
	zoom.sync(ctrl.State().Distance)

	app := &appState{
		term:     term,
		vp:       vp,
		ctrl:     ctrl,
		zoom:     zoom,
		hud:      hud,
		settings: &vs,
		cancel:   cancel,
		width:    width,
		height:   height,
	}

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()
	lastMetrics := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		app.drainEvents()

		if metricsPath != "" && metricsInterval > 0 && now.Sub(lastMetrics) >= metricsInterval {
			lastMetrics = now
			if m, err := topo.LoadMetrics(metricsPath); err != nil {
				slog.Warn("metrics reload failed", "path", metricsPath, "error", err)
			} else {
				vp.SetMetrics(m)
			}
		}

		// Scroll zoom rides a spring; preset animations own the distance
		// while they run.
		if ctrl.Mode() == camera.Animating {
			zoom.sync(ctrl.State().Distance)
		} else if !zoom.settled(ctrl.State().Distance) {
			st := ctrl.State()
			st.Distance = zoom.update(st.Distance)
			ctrl.SetState(st)
		}

		sched.Tick(dt)

		if err := vp.Frame(app.width, app.height*2, dt); err != nil {
			// A failed frame marks this viewport broken but leaves the
			// terminal session up: show the error where the scene was.
			fmt.Print(moveTo(app.height/2, 2) + clearLine + "render error: " + err.Error())
			time.Sleep(targetDuration)
			continue
		}

		vp.Framebuffer().Draw(term, uv.Rect(0, 0, app.width, app.height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hover, hoverOK := vp.Hover(app.pixelAt(app.mouseX, app.mouseY))
		hud.UpdateFPS()
		hud.Render(app.width, app.height, app.mouseX, app.mouseY, hover, hoverOK)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

func displayName(path string, snap *topo.Snapshot) string {
	if snap.Name != "" {
		return snap.Name
	}
	return filepath.Base(path)
}

// appState is the event-loop side of the application: terminal geometry,
// pointer tracking, and the handlers that map input to viewport calls.
type appState struct {
	term     *uv.Terminal
	vp       *viewport.Viewport
	ctrl     *camera.Controller
	zoom     *zoomState
	hud      *hud
	settings *topo.VisualSettings
	cancel   context.CancelFunc

	width, height  int
	mouseX, mouseY int
}

// pixelAt maps a terminal cell to framebuffer pixel coordinates. Rows hold
// two pixels each under the half-block presenter.
func (a *appState) pixelAt(col, row int) (float64, float64) {
	return float64(col) + 0.5, float64(row)*2 + 1
}

// drainEvents handles every pending terminal event without blocking, so
// input and rendering stay on one goroutine.
func (a *appState) drainEvents() {
	for {
		select {
		case ev, ok := <-a.term.Events():
			if !ok {
				a.cancel()
				return
			}
			a.handleEvent(ev)
		default:
			return
		}
	}
}

func (a *appState) handleEvent(ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		a.width, a.height = ev.Width, ev.Height
		a.term.Erase()
		a.term.Resize(a.width, a.height)

	case uv.KeyPressEvent:
		a.handleKey(ev)

	case uv.MouseClickEvent:
		a.mouseX, a.mouseY = ev.X, ev.Y
		px, py := a.pixelAt(ev.X, ev.Y)
		a.ctrl.PointerDown(px, py, ev.Button == uv.MouseRight)

	case uv.MouseMotionEvent:
		a.mouseX, a.mouseY = ev.X, ev.Y
		px, py := a.pixelAt(ev.X, ev.Y)
		a.ctrl.PointerMove(px, py)

	case uv.MouseReleaseEvent:
		a.mouseX, a.mouseY = ev.X, ev.Y
		if a.ctrl.PointerUp() {
			a.vp.Click(a.pixelAt(ev.X, ev.Y))
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			a.zoom.scroll(-1)
		case uv.MouseWheelDown:
			a.zoom.scroll(1)
		}
	}
}

func (a *appState) handleKey(ev uv.KeyPressEvent) {
	switch {
	case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
		a.cancel()
	case ev.MatchString("1"):
		a.applyPreset(camera.PresetTop)
	case ev.MatchString("2"):
		a.applyPreset(camera.PresetFront)
	case ev.MatchString("3"):
		a.applyPreset(camera.PresetSide)
	case ev.MatchString("4"):
		a.applyPreset(camera.PresetIsometric)
	case ev.MatchString("f"):
		a.applyPreset(camera.PresetFitAll)
	case ev.MatchString("r"):
		a.ctrl.SetState(camera.DefaultState())
		a.zoom.sync(a.ctrl.State().Distance)
	case ev.MatchString("g"):
		a.settings.ShowGrid = !a.settings.ShowGrid
	case ev.MatchString("x"):
		a.settings.ShowXAxis = !a.settings.ShowXAxis
	case ev.MatchString("y"):
		a.settings.ShowYAxis = !a.settings.ShowYAxis
	case ev.MatchString("z"):
		a.settings.ShowZAxis = !a.settings.ShowZAxis
	case ev.MatchString("?"), ev.MatchString("shift+/"):
		a.hud.toggleVisible()
	}
}

func (a *appState) applyPreset(p camera.Preset) {
	a.vp.ApplyPreset(p)
}

// tierLabel is shared with the HUD for the tooltip's utilization line.
func tierLabel(util float64) string {
	return traffic.TierFor(util).String()
}
