// Package service contains the business logic of the trip planner.
// Services validate input, drive the wizard, and orchestrate the remote Trip
// Service and local store. No HTTP or SQL lives here; services depend on
// interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// ISOTimestampLayout is the timestamp format sent to the Trip Service:
// ISO-8601 in UTC with millisecond precision.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Submission outcomes reported to the SubmitObserver.
const (
	OutcomeCreated       = "created"
	OutcomePersistFailed = "persist_failed"
	OutcomeCreateFailed  = "create_failed"
	OutcomeRejected      = "rejected"
)

// TripClient is the remote Trip Service as seen by the orchestrator.
type TripClient interface {
	CreateTrip(ctx context.Context, req domain.TripCreateRequest) (string, error)
}

// Navigator moves the user to the details of a freshly created trip.
type Navigator interface {
	Navigate(tripID string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(tripID string)

// Navigate calls f(tripID).
func (f NavigatorFunc) Navigate(tripID string) { f(tripID) }

// SubmitObserver receives one call per Submit with its outcome and duration.
type SubmitObserver interface {
	ObserveSubmit(outcome string, elapsed time.Duration)
}

// TripCreator submits a completed wizard to the remote Trip Service and
// remembers the created trip on this device.
type TripCreator struct {
	client   TripClient
	store    repo.TripStore
	log      *slog.Logger
	observer SubmitObserver
}

// NewTripCreator constructs a TripCreator. observer may be nil.
func NewTripCreator(client TripClient, store repo.TripStore, log *slog.Logger, observer SubmitObserver) *TripCreator {
	if log == nil {
		log = slog.Default()
	}
	return &TripCreator{client: client, store: store, log: log, observer: observer}
}

// Submit creates the trip described by w.
//
// The wizard is locked for the whole call and a concurrent Submit on the same
// wizard fails with domain.ErrSubmitInProgress. The remote service is called
// exactly once. On failure the error wraps domain.ErrCreateTrip and the wizard
// keeps its data for a retry. A payload the client refuses to send is
// returned as the client's validation error instead, since retrying cannot fix it.
//
// On success the wizard is closed, the trip id is saved to the store and nav
// is called with the id. If saving fails the id is still returned, together
// with an error wrapping domain.ErrPersistence: the trip exists remotely but
// this device has no record of it.
func (c *TripCreator) Submit(ctx context.Context, w *Wizard, nav Navigator) (tripID string, err error) {
	started := time.Now()
	outcome := OutcomeRejected
	defer func() { c.observe(outcome, time.Since(started)) }()

	state, err := w.beginSubmit()
	if err != nil {
		return "", fmt.Errorf("service.TripCreator.Submit: %w", err)
	}
	defer w.endSubmit()

	req, err := NewTripCreateRequest(state, w.Location())
	if err != nil {
		return "", fmt.Errorf("service.TripCreator.Submit: %w", err)
	}

	id, err := c.client.CreateTrip(ctx, req)
	if errors.Is(err, domain.ErrValidation) {
		c.log.WarnContext(ctx, "trip request rejected before sending", "error", err)
		return "", fmt.Errorf("service.TripCreator.Submit: %w", err)
	}
	if err == nil && id == "" {
		err = errors.New("empty trip id in response")
	}
	if err != nil {
		outcome = OutcomeCreateFailed
		c.log.ErrorContext(ctx, "create trip failed",
			"destination", req.Destination,
			"guests", len(req.EmailsToInvite),
			"error", err,
		)
		return "", fmt.Errorf("service.TripCreator.Submit: %w: %w", domain.ErrCreateTrip, err)
	}
	w.close()
	c.log.InfoContext(ctx, "trip created", "trip_id", id, "guests", len(req.EmailsToInvite))

	outcome = OutcomeCreated
	var persistErr error
	if err := c.store.Save(ctx, id); err != nil {
		outcome = OutcomePersistFailed
		c.log.WarnContext(ctx, "trip created but not saved locally", "trip_id", id, "error", err)
		persistErr = fmt.Errorf("service.TripCreator.Submit: %w: %w", domain.ErrPersistence, err)
	}

	if nav != nil {
		nav.Navigate(id)
	}
	return id, persistErr
}

func (c *TripCreator) observe(outcome string, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveSubmit(outcome, elapsed)
	}
}

// NewTripCreateRequest builds the create-trip payload from a wizard state.
// Dates are interpreted as midnight in loc and sent as UTC ISO-8601
// timestamps. Emails keep roster order and are never nil.
func NewTripCreateRequest(s domain.WizardState, loc *time.Location) (domain.TripCreateRequest, error) {
	if !s.Dates.Complete() {
		return domain.TripCreateRequest{}, domain.ErrDatesRequired
	}
	if loc == nil {
		loc = time.UTC
	}
	return domain.TripCreateRequest{
		Destination:    strings.TrimSpace(s.Destination),
		StartsAt:       isoTimestamp(*s.Dates.Start, loc),
		EndsAt:         isoTimestamp(*s.Dates.End, loc),
		EmailsToInvite: s.Emails.List(),
	}, nil
}

func isoTimestamp(day time.Time, loc *time.Location) string {
	return domain.Day(day, loc).UTC().Format(ISOTimestampLayout)
}
