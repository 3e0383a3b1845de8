package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
)

// Response messages for rejected credentials.
const (
	MsgNoToken      = "No token provided"
	MsgInvalidToken = "invalid or expired token"
)

const claimsKey shared.ContextKey = "claims"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds its claims to the request context. Any failure ends the request with 401.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r)
		if err != nil {
			message := MsgInvalidToken
			if err == auth.ErrMissingToken {
				message = MsgNoToken
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, message, err)
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			// A rejected signature is worth seeing at the default log level.
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidToken, err,
				shared.WithElevatedLogLevel())
			return
		}

		ctx := WithClaims(r.Context(), claims)
		log := logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.Hex()))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// Returns auth.ErrMissingToken when there is no token and auth.ErrInvalidToken
// when the header uses another scheme.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", auth.ErrMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return "", auth.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", auth.ErrMissingToken
	}
	return token, nil
}

// WithClaims stores validated claims in the context.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
