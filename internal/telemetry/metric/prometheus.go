package metric

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kvmesh"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Redis protocol metrics
	CommandsTotal       *prometheus.CounterVec
	CommandDuration     *prometheus.HistogramVec
	ProtocolErrors      prometheus.Counter
	RateLimited         prometheus.Counter
	ConnectionsActive   prometheus.Gauge
	ConnectionsTotal    prometheus.Counter
	ConnectionsRejected prometheus.Counter

	// Store metrics
	KeysExpired prometheus.Counter
}

// NewRegistry creates a registry with all metrics registered, plus the
// standard Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "commands_total",
			Help:      "Total number of commands processed, by command name",
		}, []string{"command"}),

		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "command_duration_seconds",
			Help:      "Command execution latency in seconds",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		}, []string{"command"}),

		ProtocolErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "protocol_errors_total",
			Help:      "Total number of malformed request frames",
		}),

		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "rate_limited_total",
			Help:      "Total number of commands rejected by the per-connection rate limit",
		}),

		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "connections_active",
			Help:      "Number of open client connections",
		}),

		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "connections_total",
			Help:      "Total number of accepted client connections",
		}),

		ConnectionsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "connections_rejected_total",
			Help:      "Total number of connections refused over the client limit",
		}),

		KeysExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "keys_expired_total",
			Help:      "Total number of keys deleted on read after expiring",
		}),
	}

	r.registry.MustRegister(
		r.CommandsTotal,
		r.CommandDuration,
		r.ProtocolErrors,
		r.RateLimited,
		r.ConnectionsActive,
		r.ConnectionsTotal,
		r.ConnectionsRejected,
		r.KeysExpired,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

var (
	globalOnce sync.Once
	global     *Registry
)

// Global returns the process-wide registry, creating it on first use.
func Global() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
	})
	return global
}

// Register adds extra collectors to the registry.
func (r *Registry) Register(cs ...prometheus.Collector) error {
	if r == nil {
		return nil
	}
	for _, c := range cs {
		if err := r.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		Registry: r.registry,
	})
}

// ObserveCommand records one executed command.
func (r *Registry) ObserveCommand(command string, d time.Duration) {
	if r == nil {
		return
	}
	r.CommandsTotal.WithLabelValues(command).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// ProtocolError records one malformed frame.
func (r *Registry) ProtocolError() {
	if r == nil {
		return
	}
	r.ProtocolErrors.Inc()
}

// RateLimit records one command rejected by the rate limiter.
func (r *Registry) RateLimit() {
	if r == nil {
		return
	}
	r.RateLimited.Inc()
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	if r == nil {
		return
	}
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
}

// ConnClosed records a connection that has finished.
func (r *Registry) ConnClosed() {
	if r == nil {
		return
	}
	r.ConnectionsActive.Dec()
}

// ConnRejected records a connection refused over the client limit.
func (r *Registry) ConnRejected() {
	if r == nil {
		return
	}
	r.ConnectionsRejected.Inc()
}

// KeyExpired records a lazily deleted key. It matches the store's
// expire hook signature.
func (r *Registry) KeyExpired(string) {
	if r == nil {
		return
	}
	r.KeysExpired.Inc()
}
