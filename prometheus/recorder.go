// Package prometheus records run statistics as Prometheus metrics and
// writes them in the node-exporter textfile format.
package prometheus

import (
	"time"

	"github.com/fwojciec/flickrwarc/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects the metrics of a single run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	records     *prometheus.CounterVec
	pending     prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		records: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flickrwarc_records_total",
				Help: "Total number of archive records processed, labeled by target category and outcome.",
			},
			[]string{"category", "outcome"},
		),
		pending: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flickrwarc_pending_metadata",
				Help: "Metadata entries whose image never arrived.",
			},
		),
		duration: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flickrwarc_run_duration_seconds",
				Help: "Wall time of the last run.",
			},
		),
		lastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "flickrwarc_last_success_timestamp_seconds",
				Help: "Unix time at which the last run completed without a fatal error.",
			},
		),
	}
}

// Observe counts one record. It has the signature of pipeline.ProgressFunc.
func (r *Recorder) Observe(e pipeline.Event) {
	r.records.WithLabelValues(e.Category.String(), e.Outcome.String()).Inc()
}

// ObserveResult records the end state of a run. finished is zero when the
// run aborted.
func (r *Recorder) ObserveResult(result *pipeline.Result, elapsed time.Duration, finished time.Time) {
	r.pending.Set(float64(result.Pending))
	r.duration.Set(elapsed.Seconds())
	if !finished.IsZero() {
		r.lastSuccess.Set(float64(finished.Unix()))
	}
}

// WriteTextfile writes all metrics to path, replacing it atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
