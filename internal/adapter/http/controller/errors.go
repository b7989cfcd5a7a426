package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbase/account-service/internal/domain"
)

// statusForError maps the domain error taxonomy onto HTTP statuses. The
// retryable conflict maps to 503 so callers know a retry may succeed.
func statusForError(err error) int {
	var notActive *domain.NotActiveError
	var transition *domain.TransitionError

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrSameAccountTransfer):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateDocument),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.As(err, &notActive),
		errors.As(err, &transition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
