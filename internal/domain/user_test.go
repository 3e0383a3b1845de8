package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("  Test@Example.com ", "password123", " Ada ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID.IsZero() {
		t.Error("Expected a generated ID, got the zero ID")
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected normalized email, got %q", user.Email)
	}

	if user.Name != "Ada" {
		t.Errorf("Expected trimmed name, got %q", user.Name)
	}

	if user.Password != "password123" {
		t.Error("Expected plaintext password to be kept until hashing")
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Invalid inputs
	_, err = NewUser("", "password123", "Ada")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error for empty email, got %v", err)
	}

	_, err = NewUser("invalidemail", "password123", "Ada")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	_, err = NewUser("test@example.com", "short", "Ada")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Expected error %v, got %v", ErrInvalidPassword, err)
	}

	_, err = NewUser("test@example.com", strings.Repeat("x", 73), "Ada")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Expected error %v for 73 byte password, got %v", ErrInvalidPassword, err)
	}

	_, err = NewUser("test@example.com", "password123", "  ")
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "name" {
		t.Errorf("Expected name validation error, got %v", err)
	}
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	validUser := User{
		ID:             NewID(),
		Email:          "test@example.com",
		Name:           "Ada",
		HashedPassword: "$2a$10$hash",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = NilID
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected error %v, got %v", ErrInvalidID, err)
	}

	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Expected error %v, got %v", ErrInvalidPassword, err)
	}
}

func TestUserJSONOmitsPasswordMaterial(t *testing.T) {
	t.Parallel()

	user := User{
		ID:             NewID(),
		Email:          "test@example.com",
		Name:           "Ada",
		Password:       "password123",
		HashedPassword: "$2a$10$hash",
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	body := string(data)
	if strings.Contains(body, "password123") || strings.Contains(body, "$2a$10$hash") {
		t.Errorf("Expected password material to be omitted, got %s", body)
	}

	sanitized := user.Sanitized()
	if sanitized.Password != "" || sanitized.HashedPassword != "" {
		t.Error("Expected Sanitized to clear password fields")
	}
	if user.HashedPassword == "" {
		t.Error("Expected Sanitized to leave the original untouched")
	}
}
