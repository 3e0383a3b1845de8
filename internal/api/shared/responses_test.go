package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	RespondWithJSON(w, req, http.StatusCreated, map[string]interface{}{"message": "success", "data": 123})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"success","data":123}`, w.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Run("without trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusNotFound, "This route does not exist")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message":"This route does not exist"}`, w.Body.String())
	})

	t.Run("with trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
		req = req.WithContext(WithTraceID(req.Context(), "trace-123"))
		w := httptest.NewRecorder()

		RespondWithError(w, req, http.StatusUnauthorized, "No token provided")

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "No token provided", body.Message)
		assert.Equal(t, "trace-123", body.TraceID)
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{name: "elevated client error", status: http.StatusUnauthorized, opts: []ResponseOption{WithElevatedLogLevel()}, wantLevel: "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := logger.NewTestLogger()
			log = log.With("trace_id", "trace-abc")
			ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-abc"), log)
			req := httptest.NewRequest(http.MethodPost, "/api/cohorts", nil).WithContext(ctx)
			w := httptest.NewRecorder()

			err := errors.New("dial mongodb://admin:hunter2@db:27017 failed for ada@example.com")
			RespondWithErrorAndLog(w, req, tt.status, "Internal Server Error", err, tt.opts...)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, `{"message":"Internal Server Error","trace_id":"trace-abc"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "hunter2")

			entries, logErr := buf.GetLogEntries()
			require.NoError(t, logErr)
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "trace-abc", entry["trace_id"])
			assert.Equal(t, "/api/cohorts", entry["path"])
			assert.Equal(t, "*errors.errorString", entry["error_type"])
			assert.NotContains(t, entry["error"], "hunter2")
			assert.NotContains(t, entry["error"], "ada@example.com")
		})
	}
}
