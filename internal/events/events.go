package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Actions recorded in RecordEvent.Type as "<entity>.<action>".
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// RecordEvent describes a committed change to a single record.
type RecordEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is "<entity>.<action>", e.g. "cohort.created"
	Type string `json:"type"`

	Entity   string `json:"entity"`
	RecordID string `json:"recordId"`

	// Payload is the record as stored after the change, empty for deletions
	Payload json.RawMessage `json:"payload,omitempty"`

	OccurredAt time.Time `json:"occurredAt"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *RecordEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewRecordEvent creates a RecordEvent for entity and action. A nil payload
// leaves Payload empty.
func NewRecordEvent(entity, action, recordID string, payload interface{}) (*RecordEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &RecordEvent{
		ID:         uuid.New(),
		Type:       entity + "." + action,
		Entity:     entity,
		RecordID:   recordID,
		Payload:    raw,
		OccurredAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *RecordEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *RecordEvent) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *RecordEvent) error { return nil }
