package middleware

import (
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
)

// TraceIDHeader carries the request's trace ID back to the client, so a
// reported error body can be matched to the server logs.
const TraceIDHeader = "X-Trace-ID"

// TraceMiddleware assigns each request a trace ID and installs a request
// logger tagged with it (and with chi's request ID when RequestID ran first).
// Mount it before any middleware that logs.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)
		w.Header().Set(TraceIDHeader, traceID)

		log := logger.FromContext(ctx).With(slog.String("trace_id", traceID))
		if reqID := chimw.GetReqID(ctx); reqID != "" {
			log = log.With(slog.String("request_id", reqID))
		}
		ctx = logger.WithLogger(ctx, log)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
