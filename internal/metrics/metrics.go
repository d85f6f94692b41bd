// Package metrics records the outcome of a validation run as Prometheus gauges
// so a node-exporter textfile collector can pick them up.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	timelint "github.com/reoring/timelint"
	"github.com/reoring/timelint/timeline"
)

const namespace = "timelint"

// Recorder holds the gauges of one run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	items    prometheus.Gauge
	passed   prometheus.Gauge
	duration prometheus.Gauge
	lastRun  prometheus.Gauge
	issues   *prometheus.GaugeVec
}

// NewRecorder creates the gauges on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)
	return &Recorder{
		registry: reg,
		items: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "Number of items in the validated content file",
		}),
		passed: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "passed",
			Help:      "1 when the last validation passed, 0 otherwise",
		}),
		duration: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "duration_seconds",
			Help:      "Wall time of the last validation run",
		}),
		lastRun: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last validation finished",
		}),
		issues: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "issues",
			Help:      "Issues found by the last validation, by category",
		}, []string{"category"}),
	}
}

// Observe records a finished run.
func (r *Recorder) Observe(rep *timeline.Report, took time.Duration, now time.Time) {
	r.items.Set(float64(rep.Count))
	if rep.OK {
		r.passed.Set(1)
	} else {
		r.passed.Set(0)
	}
	r.duration.Set(took.Seconds())
	r.lastRun.Set(float64(now.Unix()))

	counts := map[timelint.Category]int{
		timelint.SchemaError:         0,
		timelint.IOError:             0,
		timelint.ParseError:          0,
		timelint.ReferenceWarning:    0,
		timelint.AssetWarning:        0,
		timelint.DuplicateKeyWarning: 0,
	}
	for _, it := range rep.Errors {
		counts[it.Category()]++
	}
	for _, it := range rep.Warnings {
		counts[it.Category()]++
	}
	for cat, n := range counts {
		r.issues.WithLabelValues(string(cat)).Set(float64(n))
	}
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteFile writes the gauges in text exposition format. The file is replaced
// atomically.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
