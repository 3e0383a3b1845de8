package domain

import (
	"errors"
	"strings"
	"time"
)

// Password length bounds. 72 bytes is the most bcrypt will hash.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User represents a registered account able to obtain bearer tokens.
type User struct {
	ID             ID        `json:"id"        bson:"_id"`
	Email          string    `json:"email"     bson:"email"     validate:"required,email"`
	Name           string    `json:"name"      bson:"name"      validate:"required"`
	Password       string    `json:"-"         bson:"-"` // Plaintext, only present during signup
	HashedPassword string    `json:"-"         bson:"password"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// NewUser creates a new User with the given email, plaintext password and name.
// The email is trimmed and lower-cased. Returns an error if validation fails.
//
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, password, name string) (*User, error) {
	user := &User{
		ID:        NewID(),
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail returns the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// A user must carry either a plaintext password (before hashing) or a hash.
func (u *User) Validate() error {
	if u.ID.IsZero() {
		return NewValidationError("id", "is required", ErrInvalidID)
	}

	if err := validateStruct(u); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) && ve.Field == "email" && u.Email != "" {
			ve.Err = ErrInvalidEmail
		}
		return err
	}

	switch {
	case u.Password != "":
		if len(u.Password) < MinPasswordLength {
			return NewValidationError("password", "must be at least 8 characters", ErrInvalidPassword)
		}
		if len(u.Password) > MaxPasswordLength {
			return NewValidationError("password", "must be at most 72 bytes", ErrInvalidPassword)
		}
	case u.HashedPassword == "":
		return NewValidationError("password", "is required", ErrInvalidPassword)
	}

	return nil
}

// Sanitized returns a copy of the user without any password material.
func (u *User) Sanitized() *User {
	clone := *u
	clone.Password = ""
	clone.HashedPassword = ""
	return &clone
}
