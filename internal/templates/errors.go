package templates

import (
	"errors"
	"net/http"

	"github.com/termsight/termsight/internal/rules"
)

// Domain errors for template operations.
var (
	ErrNotFound    = errors.New("template not found")
	ErrDuplicate   = errors.New("template already exists")
	ErrMissingName = errors.New("name required")
	ErrMissingType = errors.New("template_type required")
)

// MapHTTPStatus maps template domain errors to appropriate HTTP status codes.
// A malformed rule document in a submitted template is a client error.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrMissingName),
		errors.Is(err, ErrMissingType),
		errors.Is(err, rules.ErrConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
