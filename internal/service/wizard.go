package service

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Outcome tells the caller what a successful Advance did.
type Outcome int

const (
	// OutcomeAdvanced means the wizard moved from trip details to the guest list.
	OutcomeAdvanced Outcome = iota + 1
	// OutcomeConfirmRequired means the wizard is complete and the caller must
	// ask the user to confirm before calling TripCreator.Submit.
	OutcomeConfirmRequired
)

// Wizard is the trip-creation state machine. It is the only place that
// decides which fields accept input:
//   - destination and dates are editable only on StepTripDetails;
//   - the guest list is editable only on StepAddEmail;
//   - nothing is editable while a submission is in flight or after the trip
//     has been created.
//
// A Wizard is safe for concurrent use.
type Wizard struct {
	mu     sync.Mutex
	state  domain.WizardState
	closed bool
	loc    *time.Location
	now    func() time.Time
}

// WizardOption configures a Wizard.
type WizardOption func(*Wizard)

// WithLocation sets the time zone calendar days are interpreted in.
// Defaults to UTC.
func WithLocation(loc *time.Location) WizardOption {
	return func(w *Wizard) {
		if loc != nil {
			w.loc = loc
		}
	}
}

// WithClock overrides the wall clock used to reject past days.
func WithClock(now func() time.Time) WizardOption {
	return func(w *Wizard) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWizard returns a wizard on StepTripDetails with empty fields.
func NewWizard(opts ...WizardOption) *Wizard {
	w := &Wizard{
		state: domain.WizardState{Step: domain.StepTripDetails},
		loc:   time.UTC,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Location returns the time zone the wizard interprets days in.
func (w *Wizard) Location() *time.Location {
	return w.loc
}

// State returns a copy of the current wizard state.
func (w *Wizard) State() domain.WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// DisplayRange returns the human-readable form of the selected dates.
func (w *Wizard) DisplayRange() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return domain.FormatRange(w.state.Dates)
}

// Closed reports whether the wizard has already produced a trip.
func (w *Wizard) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// SetDestination replaces the destination text.
// Returns domain.ErrFieldLocked outside StepTripDetails.
func (w *Wizard) SetDestination(destination string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(domain.StepTripDetails); err != nil {
		return fmt.Errorf("service.Wizard.SetDestination: %w", err)
	}
	w.state.Destination = destination
	return nil
}

// SelectDay applies a calendar pick to the date range.
// Returns domain.ErrFieldLocked outside StepTripDetails and
// domain.ErrDateInPast for days before today.
func (w *Wizard) SelectDay(picked time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(domain.StepTripDetails); err != nil {
		return fmt.Errorf("service.Wizard.SelectDay: %w", err)
	}
	d := domain.Day(picked, w.loc)
	if d.Before(domain.Day(w.now(), w.loc)) {
		return fmt.Errorf("service.Wizard.SelectDay: %w", domain.ErrDateInPast)
	}
	w.state.Dates = domain.SelectDay(w.state.Dates, d)
	return nil
}

// AddEmail normalizes email and appends it to the guest list.
// Returns domain.ErrInvalidEmail, domain.ErrDuplicateEmail, or
// domain.ErrFieldLocked outside StepAddEmail.
func (w *Wizard) AddEmail(email string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(domain.StepAddEmail); err != nil {
		return fmt.Errorf("service.Wizard.AddEmail: %w", err)
	}
	roster, err := w.state.Emails.Add(domain.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("service.Wizard.AddEmail: %w", err)
	}
	w.state.Emails = roster
	return nil
}

// RemoveEmail drops email from the guest list. Absent emails are ignored.
func (w *Wizard) RemoveEmail(email string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.editable(domain.StepAddEmail); err != nil {
		return fmt.Errorf("service.Wizard.RemoveEmail: %w", err)
	}
	w.state.Emails = w.state.Emails.Remove(domain.NormalizeEmail(email))
	return nil
}

// Advance validates the trip details and moves the wizard forward.
// On StepTripDetails it switches to StepAddEmail. On StepAddEmail nothing
// changes and OutcomeConfirmRequired tells the caller to confirm and submit.
// Validation failures leave the state untouched.
func (w *Wizard) Advance() (Outcome, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.usable(); err != nil {
		return 0, fmt.Errorf("service.Wizard.Advance: %w", err)
	}
	if err := validateDetails(w.state); err != nil {
		return 0, fmt.Errorf("service.Wizard.Advance: %w", err)
	}
	if w.state.Step == domain.StepTripDetails {
		w.state.Step = domain.StepAddEmail
		return OutcomeAdvanced, nil
	}
	return OutcomeConfirmRequired, nil
}

// Retreat goes back from StepAddEmail to StepTripDetails, keeping every
// field so nothing has to be re-entered.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.usable(); err != nil {
		return fmt.Errorf("service.Wizard.Retreat: %w", err)
	}
	if w.state.Step != domain.StepAddEmail {
		return fmt.Errorf("service.Wizard.Retreat: %w", domain.ErrWrongStep)
	}
	w.state.Step = domain.StepTripDetails
	return nil
}

// beginSubmit is the single-flight gate. It checks the wizard is ready to be
// submitted, raises IsSubmitting and returns the state to submit.
func (w *Wizard) beginSubmit() (domain.WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.usable(); err != nil {
		return domain.WizardState{}, err
	}
	if w.state.Step != domain.StepAddEmail {
		return domain.WizardState{}, domain.ErrWrongStep
	}
	if err := validateDetails(w.state); err != nil {
		return domain.WizardState{}, err
	}
	w.state.IsSubmitting = true
	return w.snapshot(), nil
}

// endSubmit lowers IsSubmitting. Safe to call more than once.
func (w *Wizard) endSubmit() {
	w.mu.Lock()
	w.state.IsSubmitting = false
	w.mu.Unlock()
}

// close marks the wizard as done after a successful creation.
func (w *Wizard) close() {
	w.mu.Lock()
	w.state.IsSubmitting = false
	w.closed = true
	w.mu.Unlock()
}

// usable must be called with mu held.
func (w *Wizard) usable() error {
	if w.closed {
		return domain.ErrWizardClosed
	}
	if w.state.IsSubmitting {
		return domain.ErrSubmitInProgress
	}
	return nil
}

// editable must be called with mu held.
func (w *Wizard) editable(step domain.Step) error {
	if err := w.usable(); err != nil {
		return err
	}
	if w.state.Step != step {
		return domain.ErrFieldLocked
	}
	return nil
}

// snapshot must be called with mu held.
func (w *Wizard) snapshot() domain.WizardState {
	s := w.state
	s.Emails = domain.Roster(w.state.Emails.List())
	if s.Dates.Start != nil {
		start := *s.Dates.Start
		s.Dates.Start = &start
	}
	if s.Dates.End != nil {
		end := *s.Dates.End
		s.Dates.End = &end
	}
	return s
}

// validateDetails enforces the rules for leaving either step:
//   - destination must not be blank;
//   - the trimmed destination must have at least domain.MinDestinationLength characters;
//   - both dates must be picked.
func validateDetails(s domain.WizardState) error {
	dest := strings.TrimSpace(s.Destination)
	if dest == "" {
		return domain.ErrDestinationRequired
	}
	if utf8.RuneCountInString(dest) < domain.MinDestinationLength {
		return domain.ErrDestinationTooShort
	}
	if !s.Dates.Complete() {
		return domain.ErrDatesRequired
	}
	return nil
}
