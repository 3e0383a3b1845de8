package api

import (
	"context"
	"net/http"
	"time"

	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/redact"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// readinessTimeout bounds the store ping made by Ready.
const readinessTimeout = 2 * time.Second

// HealthResponse is the body of the health and readiness endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler reports liveness and store readiness.
type HealthHandler struct {
	store store.Pinger
}

// NewHealthHandler creates a HealthHandler pinging p for readiness.
func NewHealthHandler(p store.Pinger) *HealthHandler {
	return &HealthHandler{store: p}
}

// Health handles GET /health. It never touches the store.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready handles GET /ready, answering 503 while the store is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.FromContext(r.Context()).Warn("readiness check failed", "error", redact.Error(err))
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ready"})
}
