package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/service"
)

const wizardNotFound = "wizard not found"

// WizardView is the JSON form of a wizard session.
type WizardView struct {
	ID              uuid.UUID           `json:"id"`
	Step            string              `json:"step"`
	Destination     string              `json:"destination"`
	StartsAt        *openapi_types.Date `json:"starts_at"`
	EndsAt          *openapi_types.Date `json:"ends_at"`
	DatesText       string              `json:"dates_text"`
	Emails          []string            `json:"emails"`
	IsSubmitting    bool                `json:"is_submitting"`
	ConfirmRequired bool                `json:"confirm_required,omitempty"`
}

type destinationRequest struct {
	Destination string `json:"destination"`
}

type dayRequest struct {
	Day *openapi_types.Date `json:"day"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// SubmitResponse is the body of a successful POST /wizards/{id}/submit.
// Warning is set when the trip was created but not remembered locally.
type SubmitResponse struct {
	TripID   string `json:"trip_id"`
	Location string `json:"location"`
	Warning  string `json:"warning,omitempty"`
}

// CreateWizard handles POST /wizards.
func (s *Server) CreateWizard(w http.ResponseWriter, _ *http.Request) {
	id, wiz := s.sessions.Create()
	writeJSON(w, http.StatusCreated, wizardToView(id, wiz))
}

// GetWizard handles GET /wizards/{wizardID}.
func (s *Server) GetWizard(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wizardToView(id, wiz))
}

// DeleteWizard handles DELETE /wizards/{wizardID}. Abandoning a wizard
// discards everything it collected.
func (s *Server) DeleteWizard(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "wizardID"))
	if err == nil {
		err = s.sessions.Delete(id)
	}
	if err != nil {
		writeErrorBody(w, http.StatusNotFound, codeNotFound, wizardNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDestination handles PUT /wizards/{wizardID}/destination.
func (s *Server) SetDestination(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}
	var body destinationRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := wiz.SetDestination(body.Destination); err != nil {
		s.writeError(w, r, err, wizardNotFound, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, wizardToView(id, wiz))
}

// SelectDay handles POST /wizards/{wizardID}/days.
// The day is a calendar date in the wizard's time zone.
func (s *Server) SelectDay(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}
	var body dayRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Day == nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, codeValidation, "day is required")
		return
	}
	y, m, d := body.Day.Time.Date()
	if err := wiz.SelectDay(time.Date(y, m, d, 0, 0, 0, 0, wiz.Location())); err != nil {
		s.writeError(w, r, err, wizardNotFound, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, wizardToView(id, wiz))
}

// AddEmail handles POST /wizards/{wizardID}/emails.
func (s *Server) AddEmail(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}
	var body emailRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := wiz.AddEmail(body.Email); err != nil {
		s.writeError(w, r, err, wizardNotFound, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, wizardToView(id, wiz))
}

// RemoveEmail handles DELETE /wizards/{wizardID}/emails/{email}.
// Removing an address that is not on the list succeeds.
func (s *Server) RemoveEmail(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}
	email, err := pathParam(r, "email")
	if err != nil {
		writeErrorBody(w, http.StatusUnprocessableEntity, codeValidation, "malformed email in path")
		return
	}
	if err := wiz.RemoveEmail(email); err != nil {
		s.writeError(w, r, err, wizardNotFound, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, wizardToView(id, wiz))
}

// Advance handles POST /wizards/{wizardID}/advance.
// On the guest step the response carries confirm_required=true and the
// client is expected to confirm with the user, then call submit.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}
	outcome, err := wiz.Advance()
	if err != nil {
		s.writeError(w, r, err, wizardNotFound, http.StatusInternalServerError)
		return
	}
	view := wizardToView(id, wiz)
	view.ConfirmRequired = outcome == service.OutcomeConfirmRequired
	writeJSON(w, http.StatusOK, view)
}

// Retreat handles POST /wizards/{wizardID}/retreat.
func (s *Server) Retreat(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}
	if err := wiz.Retreat(); err != nil {
		s.writeError(w, r, err, wizardNotFound, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, wizardToView(id, wiz))
}

// Submit handles POST /wizards/{wizardID}/submit.
// Once the wizard has produced a trip its session is dropped and the response
// points at the trip details. A failure to remember the trip locally is reported as a
// warning on an otherwise successful response.
func (s *Server) Submit(w http.ResponseWriter, r *http.Request) {
	id, wiz, ok := s.lookupWizard(w, r)
	if !ok {
		return
	}

	var location string
	nav := service.NavigatorFunc(func(tripID string) {
		location = "/trips/" + url.PathEscape(tripID)
	})

	tripID, err := s.creator.Submit(r.Context(), wiz, nav)
	if wiz.Closed() {
		_ = s.sessions.Delete(id)
	}
	if tripID == "" {
		if err == nil {
			err = errors.New("trip service returned no trip id")
		}
		s.writeError(w, r, err, wizardNotFound, http.StatusBadGateway)
		return
	}

	if location == "" {
		location = "/trips/" + url.PathEscape(tripID)
	}
	resp := SubmitResponse{TripID: tripID, Location: location}
	if err != nil {
		s.log.WarnContext(r.Context(), "trip created with warning", "trip_id", tripID, "error", err)
		resp.Warning = domain.ErrPersistence.Error()
	}
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusCreated, resp)
}

// lookupWizard resolves the {wizardID} path parameter, writing a 404 when it
// names no open wizard.
func (s *Server) lookupWizard(w http.ResponseWriter, r *http.Request) (uuid.UUID, *service.Wizard, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "wizardID"))
	if err != nil {
		writeErrorBody(w, http.StatusNotFound, codeNotFound, wizardNotFound)
		return uuid.Nil, nil, false
	}
	wiz, err := s.sessions.Get(id)
	if err != nil {
		writeErrorBody(w, http.StatusNotFound, codeNotFound, wizardNotFound)
		return uuid.Nil, nil, false
	}
	return id, wiz, true
}

// pathParam returns the decoded value of a path parameter. chi matches on
// r.URL.RawPath when it is set, leaving that segment escaped; otherwise the
// segment comes from the already decoded r.URL.Path and must not be decoded
// again.
func pathParam(r *http.Request, name string) (string, error) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// wizardToView converts a wizard snapshot to its JSON form.
func wizardToView(id uuid.UUID, wiz *service.Wizard) WizardView {
	state := wiz.State()
	return WizardView{
		ID:           id,
		Step:         state.Step.String(),
		Destination:  state.Destination,
		StartsAt:     toDate(state.Dates.Start),
		EndsAt:       toDate(state.Dates.End),
		DatesText:    wiz.DisplayRange(),
		Emails:       state.Emails.List(),
		IsSubmitting: state.IsSubmitting,
	}
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
