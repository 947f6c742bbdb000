// Package monitoring exposes session metrics through Prometheus.
//
// The listener is opt-in: a stdio relay must stay silent on every channel
// but its own streams unless the operator asks for a metrics port.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all session-engine metrics.
type Metrics struct {
	// Relay metrics
	BytesIn  prometheus.Counter
	BytesOut prometheus.Counter

	// Scan metrics
	ScansTotal *prometheus.CounterVec

	// Notification metrics
	NotificationsTotal *prometheus.CounterVec

	// Control metrics
	ResizesTotal     prometheus.Counter
	InjectedCommands prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		startTime: time.Now(),
		registry:  registry,

		BytesIn: factory.NewCounter(prometheus.CounterOpts{
			Name: "termbridge_bytes_in_total",
			Help: "Total bytes forwarded from the client to the pty",
		}),
		BytesOut: factory.NewCounter(prometheus.CounterOpts{
			Name: "termbridge_bytes_out_total",
			Help: "Total bytes forwarded from the pty to the client",
		}),
		ScansTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termbridge_scans_total",
				Help: "Total process-tree scans by kind",
			},
			[]string{"kind"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termbridge_notifications_total",
				Help: "Total out-of-band notifications emitted by type",
			},
			[]string{"type"},
		),
		ResizesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "termbridge_resizes_total",
			Help: "Total resize directives applied to the pty",
		}),
		InjectedCommands: factory.NewCounter(prometheus.CounterOpts{
			Name: "termbridge_injected_commands_total",
			Help: "Total startup commands written to the pty",
		}),
		Uptime: factory.NewGauge(prometheus.GaugeOpts{
			Name: "termbridge_uptime_seconds",
			Help: "Session uptime in seconds",
		}),
	}
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// Handler returns the scrape handler for this collector's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve blocks serving /metrics on addr.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return http.ListenAndServe(addr, mux)
}
