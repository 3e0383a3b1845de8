package auth

import (
	"context"
	"time"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token carrying the user's id, email and name.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid, ErrWrongTokenType or ErrInvalidToken
	// when validation fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the user.
	// Refresh tokens have a longer lifetime and are only accepted by ValidateRefreshToken.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateRefreshToken validates the provided refresh token string and extracts the claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)

	// AccessTokenLifetime reports how long a freshly generated access token stays valid.
	AccessTokenLifetime() time.Duration
}

// Claims is the decoded payload of a validated token. It is what GET /auth/verify
// returns as "user".
type Claims struct {
	// UserID is the subject parsed back into a record identifier.
	UserID domain.ID `json:"id"`

	Email string `json:"email"`
	Name  string `json:"name"`

	// TokenType is "access" or "refresh".
	TokenType string `json:"type"`

	// Standard registered JWT claims
	Issuer    string    `json:"iss"`
	Subject   string    `json:"sub"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti"`
}
