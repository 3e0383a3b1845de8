// Package events carries record-change notifications out of the service layer.
//
// Services emit a RecordEvent after every successful create, replace or delete.
// The InMemoryEventEmitter fans each event out to its registered handlers; the
// NATSPublisher handler forwards events to a NATS subject so other systems can
// follow changes to cohorts, students and users without polling the API.
package events
