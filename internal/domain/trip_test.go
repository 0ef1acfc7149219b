package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/trip-planner/internal/domain"
)

func TestStep_String(t *testing.T) {
	assert.Equal(t, "trip_details", domain.StepTripDetails.String())
	assert.Equal(t, "add_email", domain.StepAddEmail.String())
	assert.Equal(t, "unknown", domain.Step(0).String())
}

func TestValidationErrors_WrapErrValidation(t *testing.T) {
	for _, err := range []error{
		domain.ErrDestinationRequired,
		domain.ErrDestinationTooShort,
		domain.ErrDatesRequired,
		domain.ErrDateInPast,
		domain.ErrInvalidEmail,
		domain.ErrDuplicateEmail,
		domain.ErrInvalidLink,
	} {
		assert.True(t, errors.Is(err, domain.ErrValidation), err.Error())
	}
	assert.False(t, errors.Is(domain.ErrCreateTrip, domain.ErrValidation))
	assert.False(t, errors.Is(domain.ErrPersistence, domain.ErrValidation))
}
