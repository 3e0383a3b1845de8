package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
)

// InMemoryEventEmitter fans record events out to the handlers registered on
// it, synchronously and in registration order.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates an emitter with no handlers.
func NewInMemoryEventEmitter(l *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		logger: l.With("component", "record_event_emitter"),
	}
}

// RegisterHandler appends handler to the fan-out list.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered record event handler",
		"handler", fmt.Sprintf("%T", handler),
		"handler_count", count)
}

// EmitEvent hands event to every registered handler. A failing handler does
// not stop the others; all failures are joined into the returned error.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *RecordEvent) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	log := logger.FromContextOrDefault(ctx, e.logger).With(
		"event_id", event.ID.String(),
		"event_type", event.Type,
		"record_id", event.RecordID)

	if len(handlers) == 0 {
		log.Debug("record event has no handlers")
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.Error("record event handler failed",
				"handler", fmt.Sprintf("%T", handler),
				"error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
