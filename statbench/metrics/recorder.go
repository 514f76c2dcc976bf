// Package metrics exports benchmark measurements as Prometheus metrics.
//
// The benchmark is a one-shot process, so instead of serving /metrics the
// recorder writes its registry to a file in the node_exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/ZanzyTHEbar/statbench/statbench/bench"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is a bench.Observer backed by a private Prometheus registry.
type Recorder struct {
	registry     *prometheus.Registry
	elapsed      *prometheus.GaugeVec
	perIteration *prometheus.GaugeVec
	operations   *prometheus.CounterVec
}

var _ bench.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	return &Recorder{
		registry: reg,
		elapsed: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "statbench_elapsed_nanoseconds",
				Help: "Wall-clock time of one benchmark phase",
			},
			[]string{"op", "provider", "phase"},
		),
		perIteration: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "statbench_iteration_nanoseconds",
				Help: "Mean time of a single iteration within one benchmark phase",
			},
			[]string{"op", "provider", "phase"},
		),
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "statbench_iterations_total",
				Help: "Total number of measured iterations by operation and provider",
			},
			[]string{"op", "provider"}, // warmups included
		),
	}
}

// Observe records one measurement.
// Repeated phase labels (the warmup rounds) overwrite each other's gauges.
func (r *Recorder) Observe(res bench.Result) {
	op := string(res.Op)

	r.elapsed.WithLabelValues(op, res.Provider, res.Phase).Set(float64(res.Elapsed.Nanoseconds()))
	r.perIteration.WithLabelValues(op, res.Provider, res.Phase).Set(float64(res.PerIteration().Nanoseconds()))
	r.operations.WithLabelValues(op, res.Provider).Add(float64(max(res.Iterations, 0)))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile atomically writes every recorded metric to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
