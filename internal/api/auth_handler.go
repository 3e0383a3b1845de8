package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/cohort-tools-api/internal/api/middleware"
	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/service"
	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	users      service.UserService
	jwtService auth.JWTService
	logger     *slog.Logger
	timeFunc   func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	users service.UserService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) *AuthHandler {
	if users == nil || jwtService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("user service and jwt service cannot be nil for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "auth_handler")),
		timeFunc:   time.Now,
	}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err, MsgInvalidInput)
		return
	}

	user, err := h.users.Signup(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// Login handles POST /auth/login. An unknown email and a wrong password
// produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err, MsgInvalidInput)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithTokens(w, r, user)
}

// Verify handles GET /auth/verify behind the auth middleware and echoes the token's claims.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VerifyResponse{
		Message: "Token is valid",
		User:    claims,
	})
}

// Refresh handles POST /auth/refresh, exchanging a refresh token for a new token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleAPIError(w, r, err, MsgInvalidInput)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, auth.ErrMissingToken, MsgNoToken)
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		HandleAPIError(w, r, err, MsgInvalidToken)
		return
	}

	h.respondWithTokens(w, r, &domain.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
	})
}

func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, r *http.Request, user *domain.User) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	issuedAt := h.timeFunc()
	accessToken, err := h.jwtService.GenerateToken(r.Context(), user)
	if err != nil {
		log.Error("failed to generate access token", "error", err, "user_id", user.ID.Hex())
		HandleAPIError(w, r, err, "")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user)
	if err != nil {
		log.Error("failed to generate refresh token", "error", err, "user_id", user.ID.Hex())
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		AuthToken:    accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    issuedAt.Add(h.jwtService.AccessTokenLifetime()).UTC().Format(time.RFC3339),
	})
}
