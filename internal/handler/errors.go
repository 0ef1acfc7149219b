package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeSubmitting = "submit_in_progress"
	codeGone       = "wizard_closed"
	codeUpstream   = "upstream_error"
	codeTooLarge   = "request_too_large"
	codeInternal   = "internal_error"
)

const (
	internalMessage    = "internal server error"
	invalidBodyMessage = "request body must be valid JSON"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is a machine-readable code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeError maps err onto a status code and error body.
// notFound is the message used for domain.ErrNotFound because only the
// handler knows what was being looked up. Errors outside the domain
// taxonomy get fallback, which is 502 for calls that reach the Trip Service
// and 500 otherwise.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string, fallback int) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, codeNotFound, notFound)
	case errors.Is(err, domain.ErrSubmitInProgress):
		writeErrorBody(w, http.StatusConflict, codeSubmitting, domain.ErrSubmitInProgress.Error())
	case errors.Is(err, domain.ErrFieldLocked):
		writeErrorBody(w, http.StatusConflict, codeConflict, domain.ErrFieldLocked.Error())
	case errors.Is(err, domain.ErrWrongStep):
		writeErrorBody(w, http.StatusConflict, codeConflict, domain.ErrWrongStep.Error())
	case errors.Is(err, domain.ErrWizardClosed):
		writeErrorBody(w, http.StatusGone, codeGone, domain.ErrWizardClosed.Error())
	case errors.Is(err, domain.ErrCreateTrip):
		s.log.WarnContext(r.Context(), "trip service rejected request", "error", err)
		writeErrorBody(w, http.StatusBadGateway, codeUpstream, domain.ErrCreateTrip.Error())
	case fallback == http.StatusBadGateway:
		s.log.WarnContext(r.Context(), "trip service call failed", "error", err)
		writeErrorBody(w, http.StatusBadGateway, codeUpstream, "trip service unavailable")
	default:
		s.log.ErrorContext(r.Context(), "unhandled error", "error", err)
		writeErrorBody(w, http.StatusInternalServerError, codeInternal, internalMessage)
	}
}

// decodeBody reads a JSON request body into dst and writes the error
// response itself when it cannot. Returns false if the handler should stop.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeErrorBody(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
		return false
	}
	writeErrorBody(w, http.StatusUnprocessableEntity, codeValidation, invalidBodyMessage)
	return false
}

// unwrapMessage extracts the human-readable part of a wrapped validation error.
// e.g. "service.Wizard.Advance: validation error: destination is required" → "destination is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, domain.ErrValidation.Error()+": "); ok {
		return after
	}
	return msg
}
