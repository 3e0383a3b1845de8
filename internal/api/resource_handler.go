package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/service"
)

// Decoder reads one record of T from the request body.
type Decoder[T domain.Entity] func(w http.ResponseWriter, r *http.Request) (T, error)

// Presenter converts records into their response representation.
// It must return exactly one element per record, in order.
type Presenter[T domain.Entity] func(ctx context.Context, records []T) ([]interface{}, error)

// ResourceHandler serves list, get, create, replace and delete for one entity.
type ResourceHandler[T domain.Entity] struct {
	entity  string
	service service.RecordService[T]
	decode  Decoder[T]
	present Presenter[T]
	logger  *slog.Logger
}

// NewResourceHandler creates a handler for entity. A nil presenter renders
// records as they are stored.
func NewResourceHandler[T domain.Entity](
	entity string,
	svc service.RecordService[T],
	decode Decoder[T],
	present Presenter[T],
	logger *slog.Logger,
) *ResourceHandler[T] {
	if svc == nil || decode == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service and decoder cannot be nil for " + entity + " handler")
	}
	if present == nil {
		present = presentAsStored[T]
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResourceHandler[T]{
		entity:  entity,
		service: svc,
		decode:  decode,
		present: present,
		logger:  logger.With(slog.String("component", entity+"_handler")),
	}
}

// Routes registers the CRUD routes relative to the mount point, e.g. /api/cohorts.
func (h *ResourceHandler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET / requests.
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respondMany(w, r, http.StatusOK, records)
}

// Get handles GET /{id} requests.
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, raw, err := getPathID(r, "id")
	if err != nil {
		h.fail(w, r, err, raw)
		return
	}

	record, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, raw)
		return
	}
	h.respondOne(w, r, http.StatusOK, record)
}

// Create handles POST / requests.
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request) {
	record, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}

	created, err := h.service.Create(r.Context(), record)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	h.respondOne(w, r, http.StatusCreated, created)
}

// Update handles PUT /{id} requests with a full replace.
// An invalid or unknown id is reported before any problem with the body.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, raw, err := getPathID(r, "id")
	if err != nil {
		h.fail(w, r, err, raw)
		return
	}

	record, decodeErr := h.decode(w, r)
	if decodeErr != nil {
		if _, err := h.service.Get(r.Context(), id); err != nil {
			h.fail(w, r, err, raw)
			return
		}
		h.fail(w, r, decodeErr, raw)
		return
	}

	updated, err := h.service.Replace(r.Context(), id, record)
	if err != nil {
		h.fail(w, r, err, raw)
		return
	}
	h.respondOne(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /{id} requests. Deleting an absent record still returns 204.
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, raw, err := getPathID(r, "id")
	if err != nil {
		h.fail(w, r, err, raw)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, raw)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("record deleted", "entity", h.entity, "id", raw)
	w.WriteHeader(http.StatusNoContent)
}

// fail writes the error response, substituting the entity-specific messages.
func (h *ResourceHandler[T]) fail(w http.ResponseWriter, r *http.Request, err error, rawID string) {
	var message string
	switch MapErrorToStatusCode(err) {
	case http.StatusNotFound:
		message = notFoundMessage(h.entity, rawID)
	case http.StatusBadRequest:
		message = MsgInvalidInput
	case http.StatusConflict:
		message = h.entity + " already exists"
	}
	HandleAPIError(w, r, err, message)
}

func (h *ResourceHandler[T]) respondOne(w http.ResponseWriter, r *http.Request, status int, record T) {
	out, err := h.present(r.Context(), []T{record})
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, status, out[0])
}

func (h *ResourceHandler[T]) respondMany(w http.ResponseWriter, r *http.Request, status int, records []T) {
	out, err := h.present(r.Context(), records)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, status, out)
}

func presentAsStored[T domain.Entity](_ context.Context, records []T) ([]interface{}, error) {
	out := make([]interface{}, len(records))
	for i, rec := range records {
		out[i] = rec
	}
	return out, nil
}
