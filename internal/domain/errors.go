package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested resource does not exist, either
// in the local store (no current trip saved) or on the remote Trip Service.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the parent of every input rule violation (short destination,
// missing dates, malformed email, ...). Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")

// Validation failures. Each wraps ErrValidation so callers can match either
// the specific kind or the whole family with errors.Is.
var (
	ErrDestinationRequired = fmt.Errorf("%w: destination is required", ErrValidation)
	ErrDestinationTooShort = fmt.Errorf("%w: destination must have at least %d characters", ErrValidation, MinDestinationLength)
	ErrDatesRequired       = fmt.Errorf("%w: trip start and end dates are required", ErrValidation)
	ErrDateInPast          = fmt.Errorf("%w: trip dates must not be in the past", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrDuplicateEmail      = fmt.Errorf("%w: email already added", ErrValidation)
	ErrInvalidLink         = fmt.Errorf("%w: invalid link", ErrValidation)
)

// Wizard state errors. These describe an operation that is not allowed in the
// wizard's current state rather than bad input.
var (
	// ErrFieldLocked is returned when a field is edited outside the step that owns it.
	ErrFieldLocked = errors.New("field is not editable in the current step")
	// ErrWrongStep is returned when a transition is not defined for the current step.
	ErrWrongStep = errors.New("transition not allowed from the current step")
	// ErrSubmitInProgress is returned while a create-trip submission is in flight.
	ErrSubmitInProgress = errors.New("trip creation already in progress")
	// ErrWizardClosed is returned once the wizard has produced a trip.
	ErrWizardClosed = errors.New("wizard already completed")
)

// ErrCreateTrip is returned when the remote Trip Service could not create the
// trip. The wizard keeps its data so the user can retry.
var ErrCreateTrip = errors.New("could not create trip")

// ErrPersistence is returned when the trip was created remotely but its
// identifier could not be saved on this device.
var ErrPersistence = errors.New("could not save trip on this device")
