package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
)

// Recoverer turns a panic in a downstream handler into a 500 JSON response.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("recovered from panic",
				slog.String("stack", string(debug.Stack())))
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Internal Server Error", fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
