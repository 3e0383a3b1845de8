package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	subject string
	data    []byte
}

type fakePublisher struct {
	messages []publishedMessage
	err      error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, publishedMessage{subject: subject, data: data})
	return nil
}

func TestNATSPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("publishes event as JSON under the prefixed subject", func(t *testing.T) {
		conn := &fakePublisher{}
		publisher := NewNATSPublisher(conn, "cohort-tools", logger)

		event, err := NewRecordEvent("student", ActionCreated, "65f1c0ffee0000000000abcd",
			map[string]string{"email": "ada@example.com"})
		require.NoError(t, err)

		require.NoError(t, publisher.HandleEvent(context.Background(), event))

		require.Len(t, conn.messages, 1)
		assert.Equal(t, "cohort-tools.student.created", conn.messages[0].subject)

		var decoded RecordEvent
		require.NoError(t, json.Unmarshal(conn.messages[0].data, &decoded))
		assert.Equal(t, event.ID, decoded.ID)
		assert.Equal(t, "student.created", decoded.Type)
		assert.Equal(t, "65f1c0ffee0000000000abcd", decoded.RecordID)
		assert.JSONEq(t, `{"email":"ada@example.com"}`, string(decoded.Payload))
	})

	t.Run("publish failure is returned", func(t *testing.T) {
		publishErr := errors.New("nats: connection closed")
		publisher := NewNATSPublisher(&fakePublisher{err: publishErr}, "cohort-tools", logger)

		event, err := NewRecordEvent("cohort", ActionDeleted, "65f1c0ffee0000000000abcd", nil)
		require.NoError(t, err)

		err = publisher.HandleEvent(context.Background(), event)
		assert.ErrorIs(t, err, publishErr)
		assert.Contains(t, err.Error(), "cohort-tools.cohort.deleted")
	})

	t.Run("works as an emitter handler", func(t *testing.T) {
		conn := &fakePublisher{}
		emitter := NewInMemoryEventEmitter(logger)
		emitter.RegisterHandler(NewNATSPublisher(conn, "test", logger))

		event, err := NewRecordEvent("user", ActionCreated, "65f1c0ffee0000000000abcd", nil)
		require.NoError(t, err)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		require.Len(t, conn.messages, 1)
		assert.Equal(t, "test.user.created", conn.messages[0].subject)
	})
}
