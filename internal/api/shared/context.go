package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// ContextKey namespaces request-scoped values set by the api packages.
type ContextKey string

// TraceIDKey holds the request's trace ID.
const TraceIDKey ContextKey = "traceID"

// traceIDBytes yields 32 hex characters.
const traceIDBytes = 16

// SetTraceID returns a copy of ctx carrying a newly generated trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

func generateTraceID() string {
	b := make([]byte, traceIDBytes)
	if _, err := rand.Read(b); err != nil {
		slog.Error("crypto/rand failed, using uuid trace ID", "error", err)
		return generateFallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// generateFallbackTraceID returns a dashless UUID, the same length as a
// generated trace ID.
func generateFallbackTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
