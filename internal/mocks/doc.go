// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these mocks can be
// reused across the service, api and cmd test packages. Most mocks follow the
// same shape: optional function fields (CreateFn, GetByIDFn, ...) override the
// behavior, and when a field is nil a small in-memory default is used.
//
// Usage:
//
//	cohorts := mocks.NewMockCohortStore()
//	cohorts.GetByIDsFn = func(ctx context.Context, ids []domain.ID) ([]*domain.Cohort, error) {
//	    return nil, errors.New("boom")
//	}
//
// ExpectingUserStore is also available for tests that prefer testify/mock
// expectations.
package mocks
