package mocks

import (
	"context"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// MockCohortStore implements store.CohortStore for testing.
type MockCohortStore struct {
	*MockRecordStore[*domain.Cohort]

	GetByIDsFn func(ctx context.Context, ids []domain.ID) ([]*domain.Cohort, error)
}

var _ store.CohortStore = (*MockCohortStore)(nil)

// NewMockCohortStore creates an empty cohort store enforcing unique slugs.
func NewMockCohortStore() *MockCohortStore {
	records := NewMockRecordStore[*domain.Cohort](store.ErrCohortNotFound)
	records.UniqueKey = func(c *domain.Cohort) string { return c.CohortSlug }
	return &MockCohortStore{MockRecordStore: records}
}

// GetByIDs implements store.CohortStore.
func (m *MockCohortStore) GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Cohort, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}
	wanted := make(map[domain.ID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return m.Filter(func(c *domain.Cohort) bool { return wanted[c.ID] }), nil
}

// MockStudentStore implements store.StudentStore for testing.
type MockStudentStore struct {
	*MockRecordStore[*domain.Student]

	ListByCohortFn func(ctx context.Context, cohortID domain.ID) ([]*domain.Student, error)
}

var _ store.StudentStore = (*MockStudentStore)(nil)

// NewMockStudentStore creates an empty student store enforcing unique emails.
func NewMockStudentStore() *MockStudentStore {
	records := NewMockRecordStore[*domain.Student](store.ErrStudentNotFound)
	records.UniqueKey = func(s *domain.Student) string { return s.Email }
	return &MockStudentStore{MockRecordStore: records}
}

// ListByCohort implements store.StudentStore.
func (m *MockStudentStore) ListByCohort(ctx context.Context, cohortID domain.ID) ([]*domain.Student, error) {
	if m.ListByCohortFn != nil {
		return m.ListByCohortFn(ctx, cohortID)
	}
	return m.Filter(func(s *domain.Student) bool {
		return s.Cohort != nil && *s.Cohort == cohortID
	}), nil
}
