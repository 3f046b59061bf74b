// Package metrics counts cache operation outcomes with Prometheus and serves
// them over HTTP.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Collector counts operations on its own registry, not the global default.
type Collector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
}

// NewCollector registers sycache_operations_total{op,result}.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sycache",
		Name:      "operations_total",
		Help:      "Cache operations partitioned by operation and outcome.",
	}, []string{"op", "result"})
	registry.MustRegister(operations)

	return &Collector{
		registry:   registry,
		operations: operations,
	}
}

// Record satisfies cache.Recorder.
func (c *Collector) Record(op, result string) {
	c.operations.WithLabelValues(op, result).Inc()
}

// Count returns the current value for one op/result pair.
func (c *Collector) Count(op, result string) float64 {
	metric, err := c.operations.GetMetricWithLabelValues(op, result)
	if err != nil {
		return 0
	}
	var out dto.Metric
	if err := metric.Write(&out); err != nil {
		return 0
	}
	return out.GetCounter().GetValue()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
