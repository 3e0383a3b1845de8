package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/mocks"
	"github.com/phrazzld/cohort-tools-api/internal/service"
	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
	"github.com/phrazzld/cohort-tools-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// countingHasher counts calls through to a real hasher.
type countingHasher struct {
	auth.PasswordHasher
	hashes   int
	compares int
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.hashes++
	return h.PasswordHasher.Hash(password)
}

func (h *countingHasher) Compare(hashedPassword, password string) error {
	h.compares++
	return h.PasswordHasher.Compare(hashedPassword, password)
}

func TestUserServiceSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hashed user and returns it sanitized", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		emitter := &mocks.RecordingEmitter{}
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, emitter, nil)

		user, err := svc.Signup(ctx, "  Ada@Example.com ", "password123", "Ada")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "Ada", user.Name)
		assert.Empty(t, user.Password)
		assert.Empty(t, user.HashedPassword)

		stored := users.Users["ada@example.com"]
		require.NotNil(t, stored)
		assert.Equal(t, mocks.HashPrefix+"password123", stored.HashedPassword)
		assert.Empty(t, stored.Password, "plaintext is cleared before storage")
		assert.Equal(t, user.ID, stored.ID)

		assert.Equal(t, []string{"user.created"}, emitter.Types())
		assert.NotContains(t, string(emitter.Events()[0].Payload), "hashed:")
	})

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		wantErr  error
	}{
		{name: "missing email", email: "", password: "password123", userName: "Ada", wantErr: domain.ErrValidation},
		{name: "malformed email", email: "ada", password: "password123", userName: "Ada", wantErr: domain.ErrInvalidEmail},
		{name: "short password", email: "ada@example.com", password: "short", userName: "Ada", wantErr: domain.ErrInvalidPassword},
		{name: "missing password", email: "ada@example.com", password: "", userName: "Ada", wantErr: domain.ErrInvalidPassword},
		{name: "missing name", email: "ada@example.com", password: "password123", userName: "  ", wantErr: domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := mocks.NewMockUserStore()
			svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, nil)

			_, err := svc.Signup(ctx, tt.email, tt.password, tt.userName)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, users.Users)
		})
	}

	t.Run("existing email", func(t *testing.T) {
		users := mocks.NewMockUserStore()
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, nil)
		_, err := svc.Signup(ctx, "ada@example.com", "password123", "Ada")
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "ADA@example.com", "password456", "Ada Again")
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("hash failure", func(t *testing.T) {
		hasher := &mocks.MockPasswordHasher{
			HashFn: func(string) (string, error) { return "", errors.New("entropy exhausted") },
		}
		users := mocks.NewMockUserStore()
		svc := service.NewUserService(users, hasher, nil, nil)

		_, err := svc.Signup(ctx, "ada@example.com", "password123", "Ada")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, users.Users)
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{
		ID:             domain.NewID(),
		Email:          "ada@example.com",
		Name:           "Ada",
		HashedPassword: mocks.HashPrefix + "password123",
	}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		users.ExpectGetByEmail("ada@example.com", stored, nil)
		hasher := &mocks.MockPasswordHasher{}
		svc := service.NewUserService(users, hasher, nil, nil)

		user, err := svc.Authenticate(ctx, " ADA@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)
		assert.Empty(t, user.HashedPassword)
		assert.NotEmpty(t, stored.HashedPassword, "stored record is not mutated")
		assert.Equal(t, 1, hasher.CompareCallCount)
		users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		users.ExpectGetByEmail("ada@example.com", stored, nil)
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, nil)

		_, err := svc.Authenticate(ctx, "ada@example.com", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		users.ExpectGetByEmail("nobody@example.com", nil, store.ErrUserNotFound)
		hasher := &mocks.MockPasswordHasher{}
		svc := service.NewUserService(users, hasher, nil, nil)

		_, err := svc.Authenticate(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Equal(t, 1, hasher.CompareCallCount, "an unknown email still pays for one comparison")
		assert.Equal(t, "password123", hasher.CompareCalledWith.Password)
		assert.True(t, strings.HasPrefix(hasher.CompareCalledWith.HashedPassword, mocks.HashPrefix),
			"the comparison runs against a hash from the configured hasher")
	})

	t.Run("unknown email with bcrypt", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		users.ExpectGetByEmail("nobody@example.com", nil, store.ErrUserNotFound)
		hasher := &countingHasher{PasswordHasher: auth.NewBcryptHasher(bcrypt.MinCost)}
		svc := service.NewUserService(users, hasher, nil, nil)

		for i := 0; i < 3; i++ {
			_, err := svc.Authenticate(ctx, "nobody@example.com", "password123")
			assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		}
		assert.Equal(t, 1, hasher.hashes, "the decoy hash is computed once")
		assert.Equal(t, 3, hasher.compares)
	})

	t.Run("store failure is not a credential error", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		users.ExpectGetByEmail(mock.Anything, nil, store.ErrUnavailable)
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, nil)

		_, err := svc.Authenticate(ctx, "ada@example.com", "password123")
		assert.ErrorIs(t, err, store.ErrUnavailable)
		assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestUserServiceGetUser(t *testing.T) {
	ctx := context.Background()
	stored := &domain.User{
		ID:             domain.NewID(),
		Email:          "ada@example.com",
		Name:           "Ada",
		HashedPassword: mocks.HashPrefix + "password123",
	}

	t.Run("own profile", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		users.ExpectGetByID(stored.ID, stored, nil)
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, nil)

		user, err := svc.GetUser(ctx, stored.ID, stored.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Empty(t, user.HashedPassword)
		users.AssertExpectations(t)
	})

	t.Run("another user's profile", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, nil)

		_, err := svc.GetUser(ctx, domain.NewID(), stored.ID)
		assert.ErrorIs(t, err, service.ErrForbidden)
		users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("own profile deleted", func(t *testing.T) {
		users := new(mocks.ExpectingUserStore)
		users.ExpectGetByID(stored.ID, nil, store.ErrUserNotFound)
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, nil, nil)

		_, err := svc.GetUser(ctx, stored.ID, stored.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
