package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverer(t *testing.T) {
	log, buf := logger.NewTestLogger()
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		var cohorts map[string]int
		cohorts["wd-24"]++
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/cohorts", nil)
	req = req.WithContext(logger.WithLogger(req.Context(), log))
	rec := httptest.NewRecorder()

	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "recovered from panic", entries[0]["msg"])
	assert.Contains(t, entries[0]["stack"], "recover_test.go")
}

func TestRecovererPassesAbort(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
