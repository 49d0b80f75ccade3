package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/quicktip/pkg/quicktip"
)

// Config configures the Prometheus metrics.
type Config struct {
	// Namespace is the metrics namespace (default: "quicktip").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event handling duration.
	// Default: fine-grained buckets from 50µs to 100ms.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "quicktip",
		Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records tip lifecycle and transport metrics. It implements
// quicktip.Observer so one instance can observe every session's
// dispatcher.
//
// All methods are safe for concurrent use and do nothing on a nil
// *Metrics.
//
// Metrics collected:
//   - quicktip_tips_resolved_total: Tips resolved, by source
//   - quicktip_tips_shown_total: Tips shown, by source
//   - quicktip_tips_hidden_total: Tips hidden, by reason
//   - quicktip_tips_vetoed_total: Shows vetoed by a before-show hook
//   - quicktip_active_sessions: Connected sessions
//   - quicktip_frames_received_total: Client frames, by type
//   - quicktip_frames_sent_total: Server frames, by type
//   - quicktip_frame_errors_total: Rejected client frames, by error code
//   - quicktip_event_duration_seconds: Time to apply one client frame
//   - quicktip_catalog_reloads_total: Catalog reloads, by result
type Metrics struct {
	resolved       *prometheus.CounterVec
	shown          *prometheus.CounterVec
	hidden         *prometheus.CounterVec
	vetoed         prometheus.Counter
	activeSessions prometheus.Gauge
	framesReceived *prometheus.CounterVec
	framesSent     *prometheus.CounterVec
	frameErrors    *prometheus.CounterVec
	eventDuration  prometheus.Histogram
	catalogReloads *prometheus.CounterVec
}

var _ quicktip.Observer = (*Metrics)(nil)

// New registers the metrics with the configured registry. Registering twice
// with the same registry panics, as promauto does.
func New(opts ...Option) *Metrics {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		resolved: counterVec("tips_resolved_total", "Total number of tips resolved for a hovered element", "source"),
		shown:    counterVec("tips_shown_total", "Total number of tips shown", "source"),
		hidden:   counterVec("tips_hidden_total", "Total number of tips hidden", "reason"),

		vetoed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tips_vetoed_total",
			Help:        "Total number of tip shows vetoed by a before-show hook",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of connected WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),

		framesReceived: counterVec("frames_received_total", "Total number of frames received from clients", "type"),
		framesSent:     counterVec("frames_sent_total", "Total number of frames sent to clients", "type"),
		frameErrors:    counterVec("frame_errors_total", "Total number of rejected client frames", "code"),

		eventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Time to apply one client frame, including the frames it produced",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		catalogReloads: counterVec("catalog_reloads_total", "Total number of catalog reloads", "result"),
	}
}

// TipResolved implements quicktip.Observer.
func (m *Metrics) TipResolved(src quicktip.Source) {
	if m == nil {
		return
	}
	m.resolved.WithLabelValues(string(src)).Inc()
}

// TipShown implements quicktip.Observer.
func (m *Metrics) TipShown(src quicktip.Source) {
	if m == nil {
		return
	}
	m.shown.WithLabelValues(string(src)).Inc()
}

// TipHidden implements quicktip.Observer.
func (m *Metrics) TipHidden(reason quicktip.HideReason) {
	if m == nil {
		return
	}
	m.hidden.WithLabelValues(string(reason)).Inc()
}

// TipVetoed implements quicktip.Observer.
func (m *Metrics) TipVetoed() {
	if m == nil {
		return
	}
	m.vetoed.Inc()
}

// SessionOpened records a new connection.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed records a closed connection.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// FrameReceived records a client frame of the given type.
func (m *Metrics) FrameReceived(frameType string) {
	if m == nil {
		return
	}
	m.framesReceived.WithLabelValues(frameType).Inc()
}

// FrameSent records a server frame of the given type.
func (m *Metrics) FrameSent(frameType string) {
	if m == nil {
		return
	}
	m.framesSent.WithLabelValues(frameType).Inc()
}

// FrameRejected records a client frame that could not be applied.
func (m *Metrics) FrameRejected(code string) {
	if m == nil {
		return
	}
	m.frameErrors.WithLabelValues(code).Inc()
}

// ObserveEvent records how long applying one client frame took.
func (m *Metrics) ObserveEvent(d time.Duration) {
	if m == nil {
		return
	}
	m.eventDuration.Observe(d.Seconds())
}

// CatalogReloaded records a catalog reload attempt.
func (m *Metrics) CatalogReloaded(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.catalogReloads.WithLabelValues(result).Inc()
}
