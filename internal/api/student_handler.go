package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/service"
)

// StudentHandler serves /api/students. Every response resolves the student's cohort.
type StudentHandler struct {
	*ResourceHandler[*domain.Student]
	students service.StudentService
}

// NewStudentHandler creates the handler for /api/students.
func NewStudentHandler(svc service.StudentService, logger *slog.Logger) *StudentHandler {
	h := &StudentHandler{students: svc}
	h.ResourceHandler = NewResourceHandler("student", service.RecordService[*domain.Student](svc),
		decodeStudent, h.presentDetails, logger)
	return h
}

// Routes registers the CRUD routes plus the by-cohort listing.
func (h *StudentHandler) Routes(r chi.Router) {
	r.Get("/cohort/{cohortId}", h.ListByCohort)
	h.ResourceHandler.Routes(r)
}

// ListByCohort handles GET /cohort/{cohortId} requests.
// The cohort is not required to exist; an unknown cohort lists no students.
func (h *StudentHandler) ListByCohort(w http.ResponseWriter, r *http.Request) {
	cohortID, raw, err := getPathID(r, "cohortId")
	if err != nil {
		HandleAPIError(w, r, err, notFoundMessage("cohort", raw))
		return
	}

	students, err := h.students.ListByCohort(r.Context(), cohortID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.respondMany(w, r, http.StatusOK, students)
}

func (h *StudentHandler) presentDetails(ctx context.Context, students []*domain.Student) ([]interface{}, error) {
	details, err := h.students.Details(ctx, students)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(details))
	for i, d := range details {
		out[i] = d
	}
	return out, nil
}

func decodeStudent(w http.ResponseWriter, r *http.Request) (*domain.Student, error) {
	var req StudentRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	return req.ToDomain()
}
