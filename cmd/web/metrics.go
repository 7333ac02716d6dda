package web

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for dashboard renders.
type Metrics struct {
	Renders        *prometheus.CounterVec // labels: backend, outcome={success,load_error,render_error}
	RenderDuration prometheus.Histogram
	Observations   prometheus.Gauge
}

// NewMetrics creates and registers the metrics with the default registry.
func NewMetrics() *Metrics {
	m := NewMetricsForTesting()
	prometheus.MustRegister(m.Renders, m.RenderDuration, m.Observations)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests
// can build several servers.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "winddash",
			Name:      "renders_total",
			Help:      "Dashboard renders by backend and outcome.",
		}, []string{"backend", "outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "winddash",
			Name:      "render_duration_seconds",
			Help:      "Time to load the data file and render the dashboard.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		Observations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "winddash",
			Name:      "observations_loaded",
			Help:      "Observations read on the most recent successful load.",
		}),
	}
}
