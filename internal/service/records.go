package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/events"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// RecordService is the CRUD surface served by api.ResourceHandler.
type RecordService[T domain.Entity] interface {
	// List returns every record.
	List(ctx context.Context) ([]T, error)

	// Get returns the record with id, or an error wrapping store.ErrNotFound.
	Get(ctx context.Context, id domain.ID) (T, error)

	// Create assigns a fresh ID, validates and stores record.
	Create(ctx context.Context, record T) (T, error)

	// Replace overwrites the record with id. The record must exist.
	Replace(ctx context.Context, id domain.ID, record T) (T, error)

	// Delete removes the record with id. Deleting an absent record succeeds.
	Delete(ctx context.Context, id domain.ID) error
}

// Records implements RecordService over a store.Repository and emits a
// RecordEvent after every successful write.
type Records[T domain.Entity] struct {
	entity string
	repo   store.Repository[T]
	events events.EventEmitter
	logger *slog.Logger
}

var _ RecordService[*domain.Cohort] = (*Records[*domain.Cohort])(nil)

// NewRecords creates a Records service for entity (e.g. "cohort").
// A nil emitter discards events.
func NewRecords[T domain.Entity](
	entity string,
	repo store.Repository[T],
	emitter events.EventEmitter,
	logger *slog.Logger,
) *Records[T] {
	if repo == nil {
		// ALLOW-PANIC
		panic(fmt.Sprintf("%s service: repository cannot be nil", entity))
	}
	if emitter == nil {
		emitter = events.NopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Records[T]{
		entity: entity,
		repo:   repo,
		events: emitter,
		logger: logger.With("component", entity+"_service"),
	}
}

// Entity returns the entity name the service was created for.
func (s *Records[T]) Entity() string {
	return s.entity
}

// List implements RecordService.List.
func (s *Records[T]) List(ctx context.Context) ([]T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.entity, err)
	}
	return records, nil
}

// Get implements RecordService.Get.
func (s *Records[T]) Get(ctx context.Context, id domain.ID) (T, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s: %w", s.entity, err)
	}
	return record, nil
}

// Create implements RecordService.Create.
func (s *Records[T]) Create(ctx context.Context, record T) (T, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	var zero T

	record.SetID(domain.NewID())
	if err := record.Validate(); err != nil {
		log.Debug("rejected invalid record", "entity", s.entity, "error", err)
		return zero, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return zero, fmt.Errorf("failed to create %s: %w", s.entity, err)
	}

	log.Info("record created", "entity", s.entity, "id", record.GetID().Hex())
	s.emit(ctx, events.ActionCreated, record.GetID(), record)
	return record, nil
}

// Replace implements RecordService.Replace. The existence check runs before
// validation so an unknown id is reported as not found even with a bad body.
func (s *Records[T]) Replace(ctx context.Context, id domain.ID, record T) (T, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	var zero T

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return zero, fmt.Errorf("failed to get %s: %w", s.entity, err)
	}

	record.SetID(id)
	if err := record.Validate(); err != nil {
		log.Debug("rejected invalid record", "entity", s.entity, "error", err)
		return zero, err
	}

	if err := s.repo.Replace(ctx, record); err != nil {
		return zero, fmt.Errorf("failed to replace %s: %w", s.entity, err)
	}

	log.Info("record replaced", "entity", s.entity, "id", id.Hex())
	s.emit(ctx, events.ActionUpdated, id, record)
	return record, nil
}

// Delete implements RecordService.Delete. An absent record is reported as
// success, but nothing is logged or emitted for it.
func (s *Records[T]) Delete(ctx context.Context, id domain.ID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.repo.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("delete matched no record", "entity", s.entity, "id", id.Hex())
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", s.entity, err)
	}

	log.Info("record deleted", "entity", s.entity, "id", id.Hex())
	s.emit(ctx, events.ActionDeleted, id, nil)
	return nil
}

// emit publishes a change notification. The write has already succeeded, so a
// failure is logged and not returned.
func (s *Records[T]) emit(ctx context.Context, action string, id domain.ID, payload interface{}) {
	emitEvent(ctx, s.events, logger.FromContextOrDefault(ctx, s.logger), s.entity, action, id, payload)
}

func emitEvent(
	ctx context.Context,
	emitter events.EventEmitter,
	log *slog.Logger,
	entity, action string,
	id domain.ID,
	payload interface{},
) {
	event, err := events.NewRecordEvent(entity, action, id.Hex(), payload)
	if err != nil {
		log.Warn("failed to build record event", "entity", entity, "action", action, "error", err)
		return
	}
	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit record event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err)
	}
}
