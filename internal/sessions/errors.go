package sessions

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrConflict        = errors.New("session is not pending")
	ErrInvalidState    = errors.New("invalid session state for operation")
	ErrInvalidDecision = errors.New("invalid decision")
	ErrMissingName     = errors.New("session_name is required")
	ErrMissingTradeID  = errors.New("trade_id is required")
)

// MapHTTPStatus translates domain errors into HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidDecision):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrMissingName),
		errors.Is(err, ErrMissingTradeID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
