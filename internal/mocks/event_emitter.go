package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/cohort-tools-api/internal/events"
)

// RecordingEmitter implements events.EventEmitter and keeps every event it receives.
type RecordingEmitter struct {
	// Err is returned from EmitEvent after the event is recorded.
	Err error

	mu     sync.Mutex
	events []*events.RecordEvent
}

var _ events.EventEmitter = (*RecordingEmitter)(nil)

// EmitEvent implements events.EventEmitter.
func (e *RecordingEmitter) EmitEvent(ctx context.Context, event *events.RecordEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.Err
}

// Events returns a copy of the recorded events.
func (e *RecordingEmitter) Events() []*events.RecordEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*events.RecordEvent, len(e.events))
	copy(out, e.events)
	return out
}

// Types returns the type of every recorded event in order.
func (e *RecordingEmitter) Types() []string {
	recorded := e.Events()
	types := make([]string, len(recorded))
	for i, ev := range recorded {
		types[i] = ev.Type
	}
	return types
}
