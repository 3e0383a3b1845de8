package store

import (
	"context"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
)

// Repository is the capability set shared by every record collection:
// list, get, create, replace and delete.
type Repository[T domain.Entity] interface {
	// List returns every record in insertion order.
	List(ctx context.Context) ([]T, error)

	// GetByID retrieves a record by its identifier.
	// Returns an error wrapping ErrNotFound if the record does not exist.
	GetByID(ctx context.Context, id domain.ID) (T, error)

	// Create stores a new record. The record must already carry its ID.
	// Returns an error wrapping ErrDuplicate when a unique field collides.
	Create(ctx context.Context, record T) error

	// Replace overwrites the stored record with the same ID.
	// Returns an error wrapping ErrNotFound if the record does not exist.
	Replace(ctx context.Context, record T) error

	// Delete removes the record with the given ID.
	// Returns an error wrapping ErrNotFound if nothing was removed.
	Delete(ctx context.Context, id domain.ID) error
}

// CohortStore defines the interface for cohort persistence.
type CohortStore interface {
	Repository[*domain.Cohort]

	// GetByIDs returns the cohorts matching ids. Unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Cohort, error)
}

// StudentStore defines the interface for student persistence.
type StudentStore interface {
	Repository[*domain.Student]

	// ListByCohort returns the students referencing cohortID, or an empty
	// slice when there are none.
	ListByCohort(ctx context.Context, cohortID domain.ID) ([]*domain.Student, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
