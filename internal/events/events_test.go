package events

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordEvent(t *testing.T) {
	payload := map[string]string{"cohortSlug": "wd-24"}

	event, err := NewRecordEvent("cohort", ActionCreated, "65f1c0ffee0000000000abcd", payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID, "ID should not be empty")
	assert.Equal(t, "cohort.created", event.Type)
	assert.Equal(t, "cohort", event.Entity)
	assert.Equal(t, "65f1c0ffee0000000000abcd", event.RecordID)
	assert.False(t, event.OccurredAt.IsZero(), "OccurredAt should be set")

	var decoded map[string]string
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewRecordEventWithoutPayload(t *testing.T) {
	event, err := NewRecordEvent("student", ActionDeleted, "65f1c0ffee0000000000abcd", nil)

	require.NoError(t, err)
	assert.Equal(t, "student.deleted", event.Type)
	assert.Empty(t, event.Payload)
}

func TestNewRecordEventUnmarshalablePayload(t *testing.T) {
	_, err := NewRecordEvent("cohort", ActionCreated, "x", make(chan int))
	assert.Error(t, err)
}

// MockEventHandler is a mock implementation of EventHandler for testing
type MockEventHandler struct {
	mu sync.Mutex
	// The last event received by this handler
	LastEvent *RecordEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(_ context.Context, event *RecordEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestNopEmitter(t *testing.T) {
	event, err := NewRecordEvent("user", ActionCreated, "x", nil)
	require.NoError(t, err)
	assert.NoError(t, NopEmitter{}.EmitEvent(context.Background(), event))
}
