package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submissions returns the counter for outcome.
func (r *Recorder) Submissions(outcome string) prometheus.Counter {
	return r.submissions.WithLabelValues(outcome)
}
