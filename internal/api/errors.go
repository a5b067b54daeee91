// Package api implements the HTTP surface of the service: request models,
// handlers, error mapping, and the router.
package api

import (
	"errors"
	"net/http"

	"github.com/lexago/lexago-api/internal/domain"
	"github.com/lexago/lexago-api/internal/service/assessment"
	"github.com/lexago/lexago-api/internal/service/auth"
	"github.com/lexago/lexago-api/internal/service/scheduler"
	"github.com/lexago/lexago-api/internal/store"
)

// MapErrorToStatusCode translates service and domain errors into HTTP
// status codes. Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, scheduler.ErrCardNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, scheduler.ErrCardExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, scheduler.ErrInvalidLimit),
		errors.Is(err, assessment.ErrNilQuestion),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrInvalidQuestionType):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns an error message suitable for external
// consumption. Internal details are replaced with a generic message.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, scheduler.ErrCardNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Card not found"
	case errors.Is(err, scheduler.ErrCardExists):
		return "An active card already exists for this item"
	case errors.Is(err, store.ErrEmailExists):
		return "Email address is already registered"
	case errors.Is(err, scheduler.ErrInvalidLimit):
		return "Limit must be a positive integer"
	case errors.Is(err, assessment.ErrNilQuestion):
		return "Question is required"
	case errors.Is(err, domain.ErrInvalidQuestionType):
		return "Unknown question type"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return "Invalid request"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid or missing token"
	default:
		return "An unexpected error occurred"
	}
}
