package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// ExpectingUserStore is a testify/mock store.UserStore for tests that assert
// exactly which lookups a service performs.
type ExpectingUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*ExpectingUserStore)(nil)

// ExpectGetByEmail registers a GetByEmail(email) expectation answering user, err.
func (m *ExpectingUserStore) ExpectGetByEmail(email string, user *domain.User, err error) *mock.Call {
	return m.On("GetByEmail", mock.Anything, email).Return(user, err)
}

// ExpectGetByID registers a GetByID(id) expectation answering user, err.
func (m *ExpectingUserStore) ExpectGetByID(id domain.ID, user *domain.User, err error) *mock.Call {
	return m.On("GetByID", mock.Anything, id).Return(user, err)
}

// Create implements store.UserStore.
func (m *ExpectingUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// GetByID implements store.UserStore.
func (m *ExpectingUserStore) GetByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return userResult(m.Called(ctx, id))
}

// GetByEmail implements store.UserStore.
func (m *ExpectingUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

func userResult(args mock.Arguments) (*domain.User, error) {
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}
