package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/repo"
)

// TripReader is the read side of the Trip Service plus link creation, used
// by the trip details screen.
type TripReader interface {
	GetTrip(ctx context.Context, tripID string) (domain.TripDetails, error)
	ListLinks(ctx context.Context, tripID string) ([]domain.Link, error)
	CreateLink(ctx context.Context, tripID, title, linkURL string) (string, error)
	ListParticipants(ctx context.Context, tripID string) ([]domain.Participant, error)
}

// TripDetails serves everything shown after a trip exists: the stored current
// trip, its details, its shared links and its participants.
type TripDetails struct {
	trips TripReader
	store repo.TripStore
}

// NewTripDetails constructs a TripDetails service.
func NewTripDetails(trips TripReader, store repo.TripStore) *TripDetails {
	return &TripDetails{trips: trips, store: store}
}

// CurrentTrip returns the id of the trip saved on this device.
// Returns domain.ErrNotFound when none is saved.
func (s *TripDetails) CurrentTrip(ctx context.Context) (string, error) {
	id, err := s.store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("service.TripDetails.CurrentTrip: %w", err)
	}
	return id, nil
}

// ForgetTrip removes the saved trip from this device.
func (s *TripDetails) ForgetTrip(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("service.TripDetails.ForgetTrip: %w", err)
	}
	return nil
}

// Trip returns the trip's details from the Trip Service.
func (s *TripDetails) Trip(ctx context.Context, tripID string) (domain.TripDetails, error) {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return domain.TripDetails{}, fmt.Errorf("service.TripDetails.Trip: %w", err)
	}
	return trip, nil
}

// Links returns the trip's shared links.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripDetails) Links(ctx context.Context, tripID string) ([]domain.Link, error) {
	links, err := s.trips.ListLinks(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripDetails.Links: %w", err)
	}
	if links == nil {
		return []domain.Link{}, nil
	}
	return links, nil
}

// Participants returns everyone invited to the trip.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripDetails) Participants(ctx context.Context, tripID string) ([]domain.Participant, error) {
	people, err := s.trips.ListParticipants(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripDetails.Participants: %w", err)
	}
	if people == nil {
		return []domain.Participant{}, nil
	}
	return people, nil
}

// CreateLink validates and adds a link to the trip, returning its id.
// Returns domain.ErrInvalidLink if the title is blank or the URL is not an
// absolute http(s) URL.
func (s *TripDetails) CreateLink(ctx context.Context, tripID, title, linkURL string) (string, error) {
	title, linkURL = strings.TrimSpace(title), strings.TrimSpace(linkURL)
	if err := validateLink(title, linkURL); err != nil {
		return "", fmt.Errorf("service.TripDetails.CreateLink: %w", err)
	}
	id, err := s.trips.CreateLink(ctx, tripID, title, linkURL)
	if err != nil {
		return "", fmt.Errorf("service.TripDetails.CreateLink: %w", err)
	}
	return id, nil
}

// validateLink enforces the rules for a new link:
//   - title must be non-empty;
//   - URL must parse as absolute http or https with a host.
func validateLink(title, linkURL string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidLink)
	}
	u, err := url.ParseRequestURI(linkURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: url must be an absolute http(s) address", domain.ErrInvalidLink)
	}
	return nil
}
