// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Two implementations exist: internal/platform/mongo, the default document
// store, and internal/platform/postgres. Both translate their driver errors
// into the sentinel errors declared here, so callers only ever check for
// ErrNotFound, ErrDuplicate or ErrInvalidEntity with errors.Is.
package store
