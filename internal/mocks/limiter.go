package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/cohort-tools-api/internal/ratelimit"
)

// MockLimiter implements ratelimit.Limiter with an in-memory counter per key.
type MockLimiter struct {
	AllowFn func(ctx context.Context, key string) (ratelimit.Result, error)

	// Limit is the number of requests allowed per key. Zero means unlimited.
	Limit int

	mu     sync.Mutex
	counts map[string]int
}

var _ ratelimit.Limiter = (*MockLimiter)(nil)

// Allow implements ratelimit.Limiter.
func (m *MockLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[key]++

	if m.Limit == 0 {
		return ratelimit.Result{Allowed: true, ResetAfter: time.Minute}, nil
	}
	count := m.counts[key]
	remaining := m.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return ratelimit.Result{
		Allowed:    count <= m.Limit,
		Limit:      m.Limit,
		Remaining:  remaining,
		ResetAfter: time.Minute,
	}, nil
}
