package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/service"
)

var _ service.SubmitObserver = (*metrics.Recorder)(nil)

func TestRecorder_CountsByOutcome(t *testing.T) {
	r := metrics.NewRecorder()

	r.ObserveSubmit(service.OutcomeCreated, 120*time.Millisecond)
	r.ObserveSubmit(service.OutcomeCreated, 80*time.Millisecond)
	r.ObserveSubmit(service.OutcomeCreateFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Submissions(service.OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Submissions(service.OutcomeCreateFailed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.Submissions(service.OutcomePersistFailed)))
}

func TestRecorder_Handler(t *testing.T) {
	r := metrics.NewRecorder()
	r.ObserveSubmit(service.OutcomeCreated, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `planner_trip_submissions_total{outcome="created"} 1`)
	assert.Contains(t, rec.Body.String(), "planner_trip_submission_duration_seconds_count 1")
}

func TestRecorder_TrackOpenWizards(t *testing.T) {
	r := metrics.NewRecorder()
	open := 3
	r.TrackOpenWizards(func() int { return open })

	scrape := func() string {
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		return rec.Body.String()
	}

	assert.Contains(t, scrape(), "planner_open_wizards 3")
	open = 1
	assert.Contains(t, scrape(), "planner_open_wizards 1")
}
