package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	// Create a minimal logger that discards output
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *RecordEvent {
		event, err := NewRecordEvent("cohort", ActionUpdated, "65f1c0ffee0000000000abcd", map[string]int{"totalHours": 400})
		require.NoError(t, err)
		return event
	}

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		// Should not error even with no handlers
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := newEvent(t)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Same(t, event, handler1.LastEvent)
		assert.Same(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)

		handlerErr := errors.New("handler error")
		secondErr := errors.New("second error")
		failingHandler := &MockEventHandler{HandlerError: handlerErr}
		secondFailure := &MockEventHandler{HandlerError: secondErr}
		successHandler := &MockEventHandler{}

		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(secondFailure)
		emitter.RegisterHandler(successHandler)

		err := emitter.EmitEvent(context.Background(), newEvent(t))

		// Every handler runs and every failure is reported
		assert.ErrorIs(t, err, handlerErr)
		assert.ErrorIs(t, err, secondErr)
		assert.Equal(t, 1, failingHandler.HandledCount)
		assert.Equal(t, 1, secondFailure.HandledCount)
		assert.Equal(t, 1, successHandler.HandledCount)
	})
}
