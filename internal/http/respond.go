package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorBody{Error: message})
}

// respondServiceError maps the service and storage error taxonomy onto HTTP
// status codes. Unexpected errors are logged and answered with a generic 500
// so internals never leak to the client.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, storage.ErrDuplicate):
		respondError(w, http.StatusBadRequest, "username or email already taken")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		s.logger.ErrorContext(r.Context(), "Request failed",
			log.FieldError, err,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
