package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
)

const (
	tripNotFound        = "trip not found"
	currentTripNotFound = "no trip saved on this device"
)

// CurrentTripResponse is the body of GET /trips/current.
type CurrentTripResponse struct {
	TripID string `json:"trip_id"`
}

// LinkList is the body of GET /trips/{tripID}/links.
type LinkList struct {
	Data []domain.Link `json:"data"`
}

// ParticipantList is the body of GET /trips/{tripID}/participants.
type ParticipantList struct {
	Data []domain.Participant `json:"data"`
}

type createLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LinkCreated is the body of a successful POST /trips/{tripID}/links.
type LinkCreated struct {
	ID string `json:"id"`
}

// GetCurrentTrip handles GET /trips/current.
func (s *Server) GetCurrentTrip(w http.ResponseWriter, r *http.Request) {
	id, err := s.details.CurrentTrip(r.Context())
	if err != nil {
		s.writeError(w, r, err, currentTripNotFound, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, CurrentTripResponse{TripID: id})
}

// ForgetCurrentTrip handles DELETE /trips/current.
// Returns 204 whether or not a trip was saved.
func (s *Server) ForgetCurrentTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.details.ForgetTrip(r.Context()); err != nil {
		s.writeError(w, r, err, currentTripNotFound, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.details.Trip(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err, tripNotFound, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// ListLinks handles GET /trips/{tripID}/links.
func (s *Server) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.details.Links(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err, tripNotFound, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, LinkList{Data: links})
}

// CreateLink handles POST /trips/{tripID}/links.
func (s *Server) CreateLink(w http.ResponseWriter, r *http.Request) {
	var body createLinkRequest
	if !decodeBody(w, r, &body) {
		return
	}
	id, err := s.details.CreateLink(r.Context(), chi.URLParam(r, "tripID"), body.Title, body.URL)
	if err != nil {
		s.writeError(w, r, err, tripNotFound, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusCreated, LinkCreated{ID: id})
}

// ListParticipants handles GET /trips/{tripID}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	people, err := s.details.Participants(r.Context(), chi.URLParam(r, "tripID"))
	if err != nil {
		s.writeError(w, r, err, tripNotFound, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, ParticipantList{Data: people})
}
