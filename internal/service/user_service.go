package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/events"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// UserService provides account operations.
type UserService interface {
	// Signup validates the input, hashes the password and stores a new user.
	// Returns a *domain.ValidationError for bad input and store.ErrEmailExists
	// when the email is taken. The returned user carries no password material.
	Signup(ctx context.Context, email, password, name string) (*domain.User, error)

	// Authenticate checks an email and password pair.
	// Returns ErrInvalidCredentials for an unknown email or a wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser returns the user with id on behalf of requesterID.
	// Returns ErrForbidden when they differ and store.ErrUserNotFound when absent.
	GetUser(ctx context.Context, requesterID, id domain.ID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	events    events.EventEmitter
	logger    *slog.Logger

	// decoyOnce guards decoyHash, a hash at the hasher's cost compared
	// against on unknown-email logins so both failures cost the same.
	decoyOnce sync.Once
	decoyHash string
}

// decoyPassword is hashed once to produce decoyHash. No login can match it
// because the hash is never stored for a user.
const decoyPassword = "cohort-tools decoy password"

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. A nil emitter discards events.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *UserServiceImpl {
	if userStore == nil || hasher == nil {
		// ALLOW-PANIC
		panic("user service: store and hasher cannot be nil")
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		events:    emitter,
		logger:    logger.With("component", "user_service"),
	}
}

// Signup implements UserService.Signup.
func (s *UserServiceImpl) Signup(ctx context.Context, email, password, name string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password, name)
	if err != nil {
		log.Debug("rejected signup input", "error", err)
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to create user with existing email")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	safe := user.Sanitized()
	log.Info("user signed up", "user_id", user.ID.Hex())
	emitEvent(ctx, s.events, log, "user", events.ActionCreated, user.ID, safe)
	return safe, nil
}

// Authenticate implements UserService.Authenticate.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.userStore.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login attempt for unknown email")
			s.compareDecoy(ctx, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login attempt with wrong password", "user_id", user.ID.Hex())
		return nil, ErrInvalidCredentials
	}

	return user.Sanitized(), nil
}

// compareDecoy spends one password comparison on a hash no user owns.
func (s *UserServiceImpl) compareDecoy(ctx context.Context, password string) {
	s.decoyOnce.Do(func() {
		hash, err := s.hasher.Hash(decoyPassword)
		if err != nil {
			logger.FromContextOrDefault(ctx, s.logger).Warn("failed to prepare decoy hash", "error", err)
			return
		}
		s.decoyHash = hash
	})
	if s.decoyHash != "" {
		_ = s.hasher.Compare(s.decoyHash, password)
	}
}

// GetUser implements UserService.GetUser.
func (s *UserServiceImpl) GetUser(ctx context.Context, requesterID, id domain.ID) (*domain.User, error) {
	if requesterID != id {
		logger.FromContextOrDefault(ctx, s.logger).Debug("refused access to another user's profile",
			"requester_id", requesterID.Hex(),
			"user_id", id.Hex())
		return nil, ErrForbidden
	}

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user.Sanitized(), nil
}
