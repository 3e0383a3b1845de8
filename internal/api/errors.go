package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/ratelimit"
	"github.com/phrazzld/cohort-tools-api/internal/service"
	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// Client-facing messages.
const (
	MsgInvalidInput       = "Invalid input"
	MsgNotFound           = "Not found"
	MsgInvalidToken       = "invalid or expired token"
	MsgNoToken            = "No token provided"
	MsgInvalidCredentials = "Invalid credentials"
	MsgForbidden          = "Forbidden"
	MsgEmailExists        = "Email already exists"
	MsgDuplicate          = "Record already exists"
	MsgTooManyRequests    = "Too many requests"
	MsgInternal           = "Internal Server Error"
	MsgRouteNotFound      = "This route does not exist"
	MsgMethodNotAllowed   = "Method not allowed"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation is checked first: a ValidationError may wrap ErrInvalidID
	// for a malformed reference inside a request body.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, ratelimit.ErrLimitExceeded):
		return http.StatusTooManyRequests

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgInternal
	}

	// ValidationError messages name the field and rule only.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidInput

	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrNotFound):
		return MsgNotFound

	case errors.Is(err, auth.ErrMissingToken):
		return MsgNoToken

	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return MsgInvalidToken

	case errors.Is(err, service.ErrForbidden):
		return MsgForbidden

	case errors.Is(err, store.ErrEmailExists):
		return MsgEmailExists

	case errors.Is(err, store.ErrDuplicate):
		return MsgDuplicate

	case errors.Is(err, ratelimit.ErrLimitExceeded):
		return MsgTooManyRequests

	default:
		return MsgInternal
	}
}

// HandleAPIError classifies err once and writes the error response.
// A non-empty message replaces the default safe message for the status.
// The full error is redacted and logged server-side only.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" || status == http.StatusInternalServerError {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// NotFoundHandler answers requests for unmatched routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, MsgRouteNotFound)
}

// MethodNotAllowedHandler answers requests using an unsupported method on a known route.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}
