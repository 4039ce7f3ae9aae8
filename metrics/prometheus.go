// Package metrics provides a Prometheus implementation of opfgo.MetricsCollector.
package metrics

import (
	"time"

	"github.com/hupe1980/opfgo"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "opfgo"

// PrometheusCollector records dataset IO and prototype extraction in
// Prometheus metrics.
type PrometheusCollector struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	nodes      *prometheus.CounterVec
	bytes      *prometheus.CounterVec
	prototypes prometheus.Counter
}

var _ opfgo.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg gets a fresh registry.
func NewPrometheusCollector(reg *prometheus.Registry) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	c := &PrometheusCollector{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Dataset operations by kind and outcome.",
		}, []string{"op", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of dataset operations in seconds.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"op"}),
		nodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_total",
			Help:      "Nodes read or written.",
		}, []string{"op"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Decoded dataset bytes read or written.",
		}, []string{"op"}),
		prototypes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prototypes_extracted_total",
			Help:      "Prototype nodes copied by extraction.",
		}),
	}

	reg.MustRegister(c.operations, c.duration, c.nodes, c.bytes, c.prototypes)
	return c
}

// Registry returns the registry the metrics are registered with.
func (c *PrometheusCollector) Registry() *prometheus.Registry { return c.registry }

// WriteTextfile writes the current metrics in the text exposition format,
// for the node_exporter textfile collector.
func (c *PrometheusCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (c *PrometheusCollector) record(op string, nodes int, bytes int64, d time.Duration, err error) {
	c.operations.WithLabelValues(op, status(err)).Inc()
	c.duration.WithLabelValues(op).Observe(d.Seconds())
	if err != nil {
		return
	}
	c.nodes.WithLabelValues(op).Add(float64(nodes))
	c.bytes.WithLabelValues(op).Add(float64(bytes))
}

// RecordRead implements opfgo.MetricsCollector.
func (c *PrometheusCollector) RecordRead(nodes int, bytes int64, d time.Duration, err error) {
	c.record("read", nodes, bytes, d, err)
}

// RecordWrite implements opfgo.MetricsCollector.
func (c *PrometheusCollector) RecordWrite(nodes int, bytes int64, d time.Duration, err error) {
	c.record("write", nodes, bytes, d, err)
}

// RecordExtract implements opfgo.MetricsCollector.
func (c *PrometheusCollector) RecordExtract(prototypes int, d time.Duration, err error) {
	c.operations.WithLabelValues("extract", status(err)).Inc()
	c.duration.WithLabelValues("extract").Observe(d.Seconds())
	if err == nil {
		c.prototypes.Add(float64(prototypes))
	}
}
