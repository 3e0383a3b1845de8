package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/service"
)

// NewCohortHandler creates the handler for /api/cohorts.
func NewCohortHandler(svc service.RecordService[*domain.Cohort], logger *slog.Logger) *ResourceHandler[*domain.Cohort] {
	return NewResourceHandler("cohort", svc, decodeCohort(time.Now), nil, logger)
}

func decodeCohort(now func() time.Time) Decoder[*domain.Cohort] {
	return func(w http.ResponseWriter, r *http.Request) (*domain.Cohort, error) {
		var req CohortRequest
		if err := decodeBody(w, r, &req); err != nil {
			return nil, err
		}
		return req.ToDomain(now()), nil
	}
}
