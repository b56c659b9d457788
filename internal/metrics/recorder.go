// Package metrics exposes Prometheus instrumentation for aggregation runs.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

const namespace = "digitsum"

// Recorder owns a private Prometheus registry and the collectors updated by
// the aggregators. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	unitsInFlight *prometheus.GaugeVec
	segments      *prometheus.CounterVec
	runs          *prometheus.CounterVec
	failures      *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with its own registry, including the Go
// runtime collector.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		unitsInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "units_in_flight",
			Help:      "Units of work currently computing a partial result.",
		}, []string{"strategy"}),
		segments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_processed_total",
			Help:      "Segments whose partial result was computed.",
		}, []string{"strategy"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed aggregation runs, successful or not.",
		}, []string{"strategy"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "Aggregation runs that ended with an error, by error kind.",
		}, []string{"strategy", "kind"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of aggregation runs.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"strategy"}),
	}
	r.registry.MustRegister(
		r.unitsInFlight, r.segments, r.runs, r.failures, r.runDuration,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry returns the registry backing r.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// UnitStarted marks a unit of work as running.
func (r *Recorder) UnitStarted(strategy string) {
	if r == nil {
		return
	}
	r.unitsInFlight.WithLabelValues(strategy).Inc()
}

// UnitFinished marks a unit of work as done.
func (r *Recorder) UnitFinished(strategy string) {
	if r == nil {
		return
	}
	r.unitsInFlight.WithLabelValues(strategy).Dec()
}

// SegmentProcessed counts one computed partial result.
func (r *Recorder) SegmentProcessed(strategy string) {
	if r == nil {
		return
	}
	r.segments.WithLabelValues(strategy).Inc()
}

// ObserveRun records the outcome of one aggregation run. An empty failureKind
// means the run succeeded.
func (r *Recorder) ObserveRun(strategy string, d time.Duration, failureKind string) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(strategy).Inc()
	r.runDuration.WithLabelValues(strategy).Observe(d.Seconds())
	if failureKind != "" {
		r.failures.WithLabelValues(strategy, failureKind).Inc()
	}
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil {
		return nil
	}
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
