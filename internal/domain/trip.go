// Package domain contains the core data types for the trip planner.
// It has no dependencies outside the standard library and is imported by
// every other internal package (repo, remote, service, handler).
package domain

import "time"

// MinDestinationLength is the minimum number of characters, after trimming,
// a destination must have before the wizard can leave the details step.
const MinDestinationLength = 4

// Step identifies the wizard page the user is on.
type Step int

const (
	// StepTripDetails is where destination and dates are edited.
	StepTripDetails Step = iota + 1
	// StepAddEmail is where guests are invited and the trip is confirmed.
	StepAddEmail
)

// String returns the wire name of the step.
func (s Step) String() string {
	switch s {
	case StepTripDetails:
		return "trip_details"
	case StepAddEmail:
		return "add_email"
	default:
		return "unknown"
	}
}

// WizardState is everything the trip-creation wizard has collected so far.
// Values handed out by the wizard are copies; mutating them has no effect on
// the wizard.
type WizardState struct {
	Step         Step
	Destination  string
	Dates        DateRange
	Emails       Roster
	IsSubmitting bool
}

// TripCreateRequest is the body sent to the remote Trip Service to create a
// trip. Field names are part of the service contract.
type TripCreateRequest struct {
	Destination    string   `json:"destination"`
	StartsAt       string   `json:"starts_at"`
	EndsAt         string   `json:"ends_at"`
	EmailsToInvite []string `json:"emails_to_invite"`
}

// TripDetails is a trip as reported by the remote Trip Service.
type TripDetails struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsConfirmed bool      `json:"is_confirmed"`
}

// Link is a URL shared with every participant of a trip.
type Link struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Participant is a person invited to a trip. Name is empty until the
// participant confirms.
type Participant struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	IsConfirmed bool   `json:"is_confirmed"`
}
