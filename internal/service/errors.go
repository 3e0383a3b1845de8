package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); the API layer maps them to HTTP status codes.
var (
	// ErrInvalidCredentials indicates the email is unknown or the password does not match.
	// Both cases share one error so responses cannot reveal which accounts exist.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden indicates the caller is authenticated but may not access the resource,
	// e.g. another user's profile.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("forbidden")
)
