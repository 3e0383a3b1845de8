package api

import (
	"net/http"

	"github.com/phrazzld/cohort-tools-api/internal/api/middleware"
	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/service"
	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
)

// UserHandler serves user profiles to their owners.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser handles GET /api/users/{id}. It must run behind the auth middleware.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, raw, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, notFoundMessage("user", raw))
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return
	}

	user, err := h.users.GetUser(r.Context(), claims.UserID, id)
	if err != nil {
		HandleAPIError(w, r, err, notFoundMessageFor(err, "user", raw))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// notFoundMessageFor returns the entity-specific message when err maps to 404.
func notFoundMessageFor(err error, entity, rawID string) string {
	if MapErrorToStatusCode(err) == http.StatusNotFound {
		return notFoundMessage(entity, rawID)
	}
	return ""
}
