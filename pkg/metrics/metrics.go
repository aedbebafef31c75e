// Package metrics exposes Prometheus instrumentation for the navigation
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Navigation outcomes recorded on the navigations counter.
const (
	OutcomeCommitted = "committed"
	OutcomeCollapsed = "collapsed"
	OutcomeNoop      = "noop"
	OutcomeError     = "error"
)

// Config configures metric registration.
type Config struct {
	// Namespace is the metrics namespace (default: "strada").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registerer to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures metric registration.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) { c.Namespace = namespace }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) { c.ConstLabels = labels }
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = registry }
}

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	redirectsCollapsed prometheus.Counter
	redirectLoops      prometheus.Counter
	parseErrors        prometheus.Counter
	routing            prometheus.Gauge
}

// New registers and returns the engine metrics.
func New(opts ...Option) *Metrics {
	config := Config{
		Namespace: "strada",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "navigations_total",
			Help:        "Navigation requests by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		redirectsCollapsed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "redirects_collapsed_total",
			Help:        "Intermediate redirect hops discarded by chain collapsing",
			ConstLabels: config.ConstLabels,
		}),

		redirectLoops: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "redirect_loops_total",
			Help:        "Navigations aborted by the redirect-loop bound",
			ConstLabels: config.ConstLabels,
		}),

		parseErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "location_parse_errors_total",
			Help:        "Malformed location paths recovered by keeping the last good value",
			ConstLabels: config.ConstLabels,
		}),

		routing: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "routing",
			Help:        "1 while a navigation transition is pending",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// RecordNavigation records a navigation request's outcome. nil-safe.
func (m *Metrics) RecordNavigation(outcome string) {
	if m != nil {
		m.navigationsTotal.WithLabelValues(outcome).Inc()
	}
}

// RecordCollapsed records n intermediate redirect hops discarded. nil-safe.
func (m *Metrics) RecordCollapsed(n int) {
	if m != nil && n > 0 {
		m.redirectsCollapsed.Add(float64(n))
	}
}

// RecordRedirectLoop records a loop-bound abort. nil-safe.
func (m *Metrics) RecordRedirectLoop() {
	if m != nil {
		m.redirectLoops.Inc()
	}
}

// RecordParseError records a recovered location parse failure. nil-safe.
func (m *Metrics) RecordParseError() {
	if m != nil {
		m.parseErrors.Inc()
	}
}

// SetRouting flips the pending-transition gauge. nil-safe.
func (m *Metrics) SetRouting(routing bool) {
	if m == nil {
		return
	}
	if routing {
		m.routing.Set(1)
	} else {
		m.routing.Set(0)
	}
}
