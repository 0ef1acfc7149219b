// Package metrics exposes Prometheus counters for the trip planner.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts create-trip submissions by outcome and times them.
// It satisfies service.SubmitObserver.
type Recorder struct {
	submissions *prometheus.CounterVec
	duration    prometheus.Histogram
	registry    *prometheus.Registry
}

// NewRecorder registers the planner metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "trip_submissions_total",
			Help:      "Create-trip submissions by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "planner",
			Name:      "trip_submission_duration_seconds",
			Help:      "Time spent in a create-trip submission, including local persistence.",
			Buckets:   prometheus.DefBuckets,
		}),
		registry: reg,
	}
	reg.MustRegister(r.submissions, r.duration)
	return r
}

// ObserveSubmit records one submission.
func (r *Recorder) ObserveSubmit(outcome string, elapsed time.Duration) {
	r.submissions.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// TrackOpenWizards exports count as the planner_open_wizards gauge. count is
// called on every scrape and must be safe for concurrent use.
func (r *Recorder) TrackOpenWizards(count func() int) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "planner",
		Name:      "open_wizards",
		Help:      "Wizard sessions started but not yet submitted or abandoned.",
	}, func() float64 { return float64(count()) }))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
