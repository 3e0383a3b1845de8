package store

import (
	"context"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
)

// UserStore persists accounts. Accounts are append-only: the API exposes
// no update or delete, so neither does the store.
type UserStore interface {
	// Create inserts user, which must already carry its ID and HashedPassword.
	// A taken email yields ErrEmailExists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID yields ErrUserNotFound for an unknown id.
	GetByID(ctx context.Context, id domain.ID) (*domain.User, error)

	// GetByEmail looks up an already normalized email (see domain.NormalizeEmail).
	// An unknown email yields ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
