package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the mongodb and postgres backends. Callers
// classify failures with errors.Is, never by message.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")
	ErrUnavailable   = errors.New("store unavailable")
)

// Per-entity variants. Each still matches its base sentinel.
var (
	ErrCohortNotFound  = fmt.Errorf("%w: cohort", ErrNotFound)
	ErrStudentNotFound = fmt.Errorf("%w: student", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists is returned by UserStore.Create when the email is taken.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError reports whether err matches ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err matches ErrDuplicate.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError records which entity and operation a backend failure belongs to.
// The message stays server-side; api.GetSafeErrorMessage never echoes it.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := e.Operation + " operation on " + e.Entity + " failed: " + e.Message
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the entity ("cohort", "student", "user") and
// operation ("get", "create", ...) that produced it.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}
