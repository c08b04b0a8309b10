package trades

import (
	"errors"
	"net/http"
)

// Domain errors for trade record operations.
var (
	ErrNotFound            = errors.New("trade record not found")
	ErrDuplicate           = errors.New("trade record already exists")
	ErrMissingTradeID      = errors.New("trade_id required")
	ErrMissingCounterparty = errors.New("counterparty required")
	ErrMissingCurrency     = errors.New("currency required")
)

// MapHTTPStatus maps trade domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrMissingTradeID),
		errors.Is(err, ErrMissingCounterparty),
		errors.Is(err, ErrMissingCurrency):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
