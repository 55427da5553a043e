package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/periodix/internal/build"
	"github.com/san-kum/periodix/internal/chem"
	"github.com/san-kum/periodix/internal/scene"
)

type State int

const (
	Uninitialized State = iota
	Ready
	Displaying
	Disposed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Displaying:
		return "displaying"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// DefaultRotationSpeed turns the model about Y, in radians per second.
const DefaultRotationSpeed = 0.3

type Config struct {
	Builder       *build.Builder
	Surface       Surface
	Logger        *slog.Logger
	Metrics       *Metrics
	Rotate        bool
	RotationSpeed float64
}

type request struct {
	element chem.Element
	mode    build.Mode
}

// Session owns the scene shown on one surface. All methods are safe for
// concurrent use; Run may drive frames from another goroutine.
type Session struct {
	mu       sync.Mutex
	id       string
	cfg      Config
	log      *slog.Logger
	state    State
	res      *scene.Resources
	view     *scene.View
	model    *build.Model
	current  *request
	pending  *request
	token    uint64
	elapsed  float64
	rotating bool
	angle    float64
}

func New(cfg Config) *Session {
	if cfg.RotationSpeed == 0 {
		cfg.RotationSpeed = DefaultRotationSpeed
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		cfg:      cfg,
		log:      cfg.Logger.With(slog.String("component", "session"), slog.String("session", id)),
		res:      scene.NewResources(),
		rotating: cfg.Rotate,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token identifies the current animation chain. Any Show or Dispose
// invalidates it.
func (s *Session) Token() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Pending reports whether a Show is waiting for the surface to be laid out.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Model returns the model on display, or nil.
func (s *Session) Model() *build.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Current returns the element and mode on display.
func (s *Session) Current() (chem.Element, build.Mode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return chem.Element{}, "", false
	}
	return s.current.element, s.current.mode, true
}

// Live returns the resources currently held by the displayed scene.
func (s *Session) Live() scene.Counts { return s.res.Live() }

// Show replaces whatever is displayed with the given element and mode. The
// first call initialises the surface; if the surface is missing or cannot
// render, an error wrapping ErrEnvironmentUnavailable is returned and the
// session stays uninitialised so a later Show can retry. If the surface has
// no size yet the request is parked until OnViewportResize.
func (s *Session) Show(e chem.Element, mode build.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := &request{element: e, mode: mode}
	if s.state == Disposed {
		s.state = Uninitialized
	}
	if s.state == Uninitialized {
		parked, err := s.initLocked(req)
		if err != nil || parked {
			return err
		}
	}
	return s.displayLocked(req)
}

func (s *Session) initLocked(req *request) (parked bool, err error) {
	surf := s.cfg.Surface
	if surf == nil {
		s.cfg.Metrics.environmentError()
		err := &EnvironmentError{Reason: "no render surface"}
		s.log.Warn("show refused", slog.String("error", err.Error()))
		return false, err
	}
	if cerr := surf.Check(); cerr != nil {
		s.cfg.Metrics.environmentError()
		err := &EnvironmentError{Reason: "surface cannot render", Wrapped: cerr}
		surf.ShowError("3D view unavailable: " + cerr.Error())
		s.log.Warn("show refused", slog.String("error", err.Error()))
		return false, err
	}
	if w, h := surf.Size(); w <= 0 || h <= 0 {
		s.pending = req
		s.log.Debug("surface not laid out, request parked", slog.String("element", req.element.Symbol))
		return true, nil
	}

	s.view = &scene.View{
		Camera:     scene.NewCamera(),
		Lights:     scene.DefaultLights(),
		Background: build.BackgroundColor,
	}
	s.state = Ready
	s.log.Info("session ready")
	return false, nil
}

func (s *Session) displayLocked(req *request) error {
	s.pending = nil
	s.teardownLocked()

	if s.cfg.Builder == nil {
		return errors.New("session: no scene builder configured")
	}
	m, err := s.cfg.Builder.Build(req.element, req.mode)
	if err != nil {
		s.cfg.Metrics.failed(string(req.mode))
		s.cfg.Surface.ShowError(err.Error())
		s.log.Error("build failed",
			slog.String("element", req.element.Symbol),
			slog.String("mode", string(req.mode)),
			slog.String("error", err.Error()))
		return err
	}

	s.res.Acquire(m.Root)
	s.model, s.current = m, req
	s.elapsed, s.angle = 0, 0
	s.state = Displaying
	s.cfg.Metrics.built(string(m.Mode))
	s.cfg.Metrics.setLive(s.res.Live())
	s.log.Info("showing",
		slog.String("element", req.element.Symbol),
		slog.String("mode", string(m.Mode)),
		slog.Int("geometries", s.res.Live().Geometries))

	return s.renderLocked()
}

// teardownLocked releases the displayed scene and cancels its animation.
func (s *Session) teardownLocked() {
	s.token++
	if s.model == nil {
		return
	}
	s.res.Release(s.model.Root)
	s.model = nil
	if s.state == Displaying {
		s.state = Ready
	}
	s.cfg.Metrics.setLive(s.res.Live())
}

func (s *Session) renderLocked() error {
	if s.model == nil || s.view == nil || s.cfg.Surface == nil {
		return nil
	}
	return s.cfg.Surface.Render(s.model.Root, s.view)
}

// Dispose releases the scene and the surface and cancels the animation.
// The session may be shown again afterwards.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Disposed {
		return
	}
	s.teardownLocked()
	if s.cfg.Surface != nil && s.state != Uninitialized {
		s.cfg.Surface.Release()
	}
	s.view, s.pending, s.current = nil, nil, nil
	s.state = Disposed
	s.log.Info("session disposed")
}

// OnViewportResize tells the session the surface changed size. A parked
// Show is completed once the size is non-zero.
func (s *Session) OnViewportResize(w, h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Disposed || s.cfg.Surface == nil {
		return nil
	}
	s.cfg.Surface.Resize(w, h)
	if w <= 0 || h <= 0 {
		return nil
	}
	if s.pending != nil {
		req := s.pending
		if s.state == Uninitialized {
			if _, err := s.initLocked(req); err != nil {
				return err
			}
			if s.pending == nil || s.state == Uninitialized {
				return nil
			}
		}
		return s.displayLocked(req)
	}
	return s.renderLocked()
}

// Frame advances the animation by dt seconds and repaints. It returns false
// once token is stale, which ends the chain that owns it.
func (s *Session) Frame(token uint64, dt float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token || s.state != Displaying || s.model == nil || s.view == nil {
		return false
	}
	s.elapsed += dt
	build.Animate(s.model.Root, s.elapsed)
	if s.rotating {
		s.angle += s.cfg.RotationSpeed * dt
		s.model.Root.Rotation = scene.QuatFromAxisAngle(scene.UnitY, s.angle)
	}
	if err := s.renderLocked(); err != nil {
		s.log.Warn("frame render failed", slog.String("error", err.Error()))
	}
	s.cfg.Metrics.frame()
	return true
}

// Run drives frames at fps until ctx ends or the current chain is cancelled
// by Show or Dispose.
func (s *Session) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	token := s.Token()
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if !s.Frame(token, dt) {
				return nil
			}
		}
	}
}

func (s *Session) Rotating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotating
}

// ToggleRotation flips model rotation and returns the new setting.
func (s *Session) ToggleRotation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rotating = !s.rotating
	return s.rotating
}

// ResetCamera restores the default viewpoint.
func (s *Session) ResetCamera() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != nil {
		s.view.Camera.Reset()
		_ = s.renderLocked()
	}
}

// OrbitCamera turns the camera by the given angles in radians.
func (s *Session) OrbitCamera(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view != nil {
		s.view.Camera.Orbit(dx, dy)
		_ = s.renderLocked()
	}
}

// Zoom moves the camera in for positive steps and out for negative ones.
func (s *Session) Zoom(steps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.view == nil {
		return
	}
	for ; steps > 0; steps-- {
		s.view.Camera.ZoomIn()
	}
	for ; steps < 0; steps++ {
		s.view.Camera.ZoomOut()
	}
	_ = s.renderLocked()
}
