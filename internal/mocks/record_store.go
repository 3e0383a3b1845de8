package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// MockRecordStore implements store.Repository[T] for testing.
// Records are kept in memory in insertion order.
type MockRecordStore[T domain.Entity] struct {
	// Function fields for customizable behavior
	ListFn    func(ctx context.Context) ([]T, error)
	GetByIDFn func(ctx context.Context, id domain.ID) (T, error)
	CreateFn  func(ctx context.Context, record T) error
	ReplaceFn func(ctx context.Context, record T) error
	DeleteFn  func(ctx context.Context, id domain.ID) error

	// NotFound is returned for unknown ids by the default implementation.
	NotFound error

	// UniqueKey, when set, makes Create and Replace reject records whose key
	// collides with another stored record, returning store.ErrDuplicate.
	UniqueKey func(record T) string

	mu      sync.Mutex
	records map[domain.ID]T
	order   []domain.ID
}

var _ store.Repository[*domain.Cohort] = (*MockRecordStore[*domain.Cohort])(nil)

// NewMockRecordStore creates an empty mock store reporting notFound for unknown ids.
func NewMockRecordStore[T domain.Entity](notFound error) *MockRecordStore[T] {
	if notFound == nil {
		notFound = store.ErrNotFound
	}
	return &MockRecordStore[T]{
		NotFound: notFound,
		records:  make(map[domain.ID]T),
	}
}

// Seed stores records directly, bypassing CreateFn.
func (m *MockRecordStore[T]) Seed(records ...T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	for _, r := range records {
		if _, ok := m.records[r.GetID()]; !ok {
			m.order = append(m.order, r.GetID())
		}
		m.records[r.GetID()] = r
	}
}

// Len returns the number of stored records.
func (m *MockRecordStore[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *MockRecordStore[T]) init() {
	if m.records == nil {
		m.records = make(map[domain.ID]T)
	}
	if m.NotFound == nil {
		m.NotFound = store.ErrNotFound
	}
}

// List implements store.Repository.
func (m *MockRecordStore[T]) List(ctx context.Context) ([]T, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Filter(func(T) bool { return true }), nil
}

// Filter returns the stored records matching keep, in insertion order.
func (m *MockRecordStore[T]) Filter(keep func(T) bool) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		if r := m.records[id]; keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// GetByID implements store.Repository.
func (m *MockRecordStore[T]) GetByID(ctx context.Context, id domain.ID) (T, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	r, ok := m.records[id]
	if !ok {
		var zero T
		return zero, m.NotFound
	}
	return r, nil
}

// Create implements store.Repository.
func (m *MockRecordStore[T]) Create(ctx context.Context, record T) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.records[record.GetID()]; ok {
		return store.ErrDuplicate
	}
	if m.collides(record) {
		return store.ErrDuplicate
	}
	m.records[record.GetID()] = record
	m.order = append(m.order, record.GetID())
	return nil
}

// Replace implements store.Repository.
func (m *MockRecordStore[T]) Replace(ctx context.Context, record T) error {
	if m.ReplaceFn != nil {
		return m.ReplaceFn(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.records[record.GetID()]; !ok {
		return m.NotFound
	}
	if m.collides(record) {
		return store.ErrDuplicate
	}
	m.records[record.GetID()] = record
	return nil
}

// Delete implements store.Repository.
func (m *MockRecordStore[T]) Delete(ctx context.Context, id domain.ID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.records[id]; !ok {
		return m.NotFound
	}
	delete(m.records, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockRecordStore[T]) collides(record T) bool {
	if m.UniqueKey == nil {
		return false
	}
	key := m.UniqueKey(record)
	for id, existing := range m.records {
		if id != record.GetID() && m.UniqueKey(existing) == key {
			return true
		}
	}
	return false
}
