package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/service"
)

// mockTripSubmitter is a test double for handler.TripSubmitter.
type mockTripSubmitter struct {
	submit func(ctx context.Context, w *service.Wizard, nav service.Navigator) (string, error)
}

func (m *mockTripSubmitter) Submit(ctx context.Context, w *service.Wizard, nav service.Navigator) (string, error) {
	return m.submit(ctx, w, nav)
}

var _ handler.TripSubmitter = (*mockTripSubmitter)(nil)

// mockTripDetailer is a test double for handler.TripDetailer.
// Set only the method fields your test needs.
type mockTripDetailer struct {
	currentTrip  func(ctx context.Context) (string, error)
	forgetTrip   func(ctx context.Context) error
	trip         func(ctx context.Context, tripID string) (domain.TripDetails, error)
	links        func(ctx context.Context, tripID string) ([]domain.Link, error)
	createLink   func(ctx context.Context, tripID, title, linkURL string) (string, error)
	participants func(ctx context.Context, tripID string) ([]domain.Participant, error)
}

func (m *mockTripDetailer) CurrentTrip(ctx context.Context) (string, error) {
	return m.currentTrip(ctx)
}
func (m *mockTripDetailer) ForgetTrip(ctx context.Context) error { return m.forgetTrip(ctx) }
func (m *mockTripDetailer) Trip(ctx context.Context, tripID string) (domain.TripDetails, error) {
	return m.trip(ctx, tripID)
}
func (m *mockTripDetailer) Links(ctx context.Context, tripID string) ([]domain.Link, error) {
	return m.links(ctx, tripID)
}
func (m *mockTripDetailer) CreateLink(ctx context.Context, tripID, title, linkURL string) (string, error) {
	return m.createLink(ctx, tripID, title, linkURL)
}
func (m *mockTripDetailer) Participants(ctx context.Context, tripID string) ([]domain.Participant, error) {
	return m.participants(ctx, tripID)
}

var _ handler.TripDetailer = (*mockTripDetailer)(nil)

// ---- helpers ---------------------------------------------------------------

var fixedNow = time.Date(2024, 4, 20, 15, 0, 0, 0, time.UTC)

func newSessions() *handler.Sessions {
	return handler.NewSessions(service.WithClock(func() time.Time { return fixedNow }))
}

func newHTTPHandler(sessions *handler.Sessions, creator handler.TripSubmitter, details handler.TripDetailer) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(sessions, creator, details, handler.WithLogger(log)).Handler()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) handler.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	resp := decode[handler.ErrorResponse](t, rec)
	require.Equal(t, code, resp.Error.Code)
	return resp
}

// ---- GET /healthz ----------------------------------------------------------

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	h := newHTTPHandler(newSessions(), nil, nil)

	rec := do(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[handler.HealthResponse](t, rec).Status)
}

func TestGetOpenAPI_servesEmbeddedDocument(t *testing.T) {
	h := newHTTPHandler(newSessions(), nil, nil)

	rec := do(t, h, http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "openapi:")
	require.Contains(t, rec.Body.String(), "/wizards/{wizardID}/submit")
}

func TestMetrics_mountedOnlyWhenConfigured(t *testing.T) {
	without := newHTTPHandler(newSessions(), nil, nil)
	require.Equal(t, http.StatusNotFound, do(t, without, http.MethodGet, "/metrics", nil).Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("planner_up 1\n"))
	})
	with := handler.NewServer(newSessions(), nil, nil, handler.WithMetrics(metrics)).Handler()
	rec := do(t, with, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "planner_up")
}
