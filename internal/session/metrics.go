package session

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/san-kum/periodix/internal/scene"
)

// Metrics are the session counters. A nil *Metrics records nothing.
type Metrics struct {
	builds    *prometheus.CounterVec
	failures  *prometheus.CounterVec
	envErrors prometheus.Counter
	frames    prometheus.Counter
	live      *prometheus.GaugeVec
}

// NewMetrics registers the session collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "periodix",
			Subsystem: "session",
			Name:      "builds_total",
			Help:      "Scenes built, by visualization mode.",
		}, []string{"mode"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "periodix",
			Subsystem: "session",
			Name:      "build_failures_total",
			Help:      "Scene builds rejected, by visualization mode.",
		}, []string{"mode"}),
		envErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "periodix",
			Subsystem: "session",
			Name:      "environment_errors_total",
			Help:      "Show requests refused because the surface could not render.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "periodix",
			Subsystem: "session",
			Name:      "frames_total",
			Help:      "Animation frames rendered.",
		}),
		live: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "periodix",
			Subsystem: "session",
			Name:      "live_resources",
			Help:      "Scene resources currently held, by kind.",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.builds, m.failures, m.envErrors, m.frames, m.live} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) built(mode string) {
	if m != nil {
		m.builds.WithLabelValues(mode).Inc()
	}
}

func (m *Metrics) failed(mode string) {
	if m != nil {
		m.failures.WithLabelValues(mode).Inc()
	}
}

func (m *Metrics) environmentError() {
	if m != nil {
		m.envErrors.Inc()
	}
}

func (m *Metrics) frame() {
	if m != nil {
		m.frames.Inc()
	}
}

func (m *Metrics) setLive(c scene.Counts) {
	if m == nil {
		return
	}
	m.live.WithLabelValues("geometry").Set(float64(c.Geometries))
	m.live.WithLabelValues("material").Set(float64(c.Materials))
	m.live.WithLabelValues("texture").Set(float64(c.Textures))
}
