package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/ratelimit"
)

// MsgTooManyRequests is the body message of a rate-limited response.
const MsgTooManyRequests = "Too many requests"

// RateLimit limits requests per client IP under the given identifier, e.g. "auth".
// When the limiter itself fails the request is allowed through.
func RateLimit(limiter ratelimit.Limiter, identifier string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := identifier + ":" + clientIP(r)

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limiter unavailable, allowing request",
					"error", err)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			if !result.Allowed {
				retry := int(math.Ceil(result.ResetAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				h.Set("Retry-After", strconv.Itoa(retry))
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests, MsgTooManyRequests,
					ratelimit.ErrLimitExceeded)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP middleware
// rewrites from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
