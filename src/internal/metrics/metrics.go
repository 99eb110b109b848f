package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lost"

var (
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	dangerousTotal    prometheus.Counter
	sourcesGauge      prometheus.Gauge
	lastSaveTimestamp prometheus.Gauge

	metricsOnce sync.Once
)

// initMetrics creates the collectors and registers them on the package registry.
func initMetrics() {
	metricsOnce.Do(func() {
		registry = prometheus.NewRegistry()

		operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_operations_total",
			Help:      "Total number of source registry operations by outcome.",
		}, []string{"operation", "status"})

		dangerousTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dangerous_entries_total",
			Help:      "Total number of entries pointing at public addresses that required confirmation.",
		})

		sourcesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sources",
			Help:      "Number of sources in the managed region.",
		})

		lastSaveTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_save_timestamp",
			Help:      "Unix timestamp of the last successful hosts file save.",
		})

		registry.MustRegister(
			operationsTotal,
			dangerousTotal,
			sourcesGauge,
			lastSaveTimestamp,
			collectors.NewGoCollector(),
		)
	})
}

// ObserveOperation counts one registry operation with its resulting status.
func ObserveOperation(operation, status string) {
	initMetrics()
	operationsTotal.WithLabelValues(operation, status).Inc()
}

// AddDangerous counts entries that needed confirmation.
func AddDangerous(n int) {
	if n <= 0 {
		return
	}
	initMetrics()
	dangerousTotal.Add(float64(n))
}

// SetSources records the current number of sources.
func SetSources(n int) {
	initMetrics()
	sourcesGauge.Set(float64(n))
}

// MarkSaved records a successful save.
func MarkSaved(t time.Time) {
	initMetrics()
	lastSaveTimestamp.Set(float64(t.Unix()))
}

// Gatherer exposes the package registry.
func Gatherer() prometheus.Gatherer {
	initMetrics()
	return registry
}

// Handler serves the collected metrics in the Prometheus text format.
func Handler() http.Handler {
	initMetrics()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
