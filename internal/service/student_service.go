package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/events"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// StudentService extends the generic record operations with cohort lookups.
type StudentService interface {
	RecordService[*domain.Student]

	// ListByCohort returns the students referencing cohortID. The cohort itself
	// is not required to exist; an unknown cohort yields an empty slice.
	ListByCohort(ctx context.Context, cohortID domain.ID) ([]*domain.Student, error)

	// Details resolves each student's cohort reference. A reference to a
	// cohort that no longer exists resolves to nil.
	Details(ctx context.Context, students []*domain.Student) ([]*domain.StudentDetail, error)
}

// Students implements StudentService.
type Students struct {
	*Records[*domain.Student]
	students store.StudentStore
	cohorts  store.CohortStore
}

var _ StudentService = (*Students)(nil)

// NewStudentService creates a StudentService.
func NewStudentService(
	students store.StudentStore,
	cohorts store.CohortStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) *Students {
	if cohorts == nil {
		// ALLOW-PANIC
		panic("student service: cohort store cannot be nil")
	}
	return &Students{
		Records:  NewRecords[*domain.Student]("student", students, emitter, logger),
		students: students,
		cohorts:  cohorts,
	}
}

// ListByCohort implements StudentService.ListByCohort.
func (s *Students) ListByCohort(ctx context.Context, cohortID domain.ID) ([]*domain.Student, error) {
	students, err := s.students.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students of cohort %s: %w", cohortID.Hex(), err)
	}
	if students == nil {
		students = []*domain.Student{}
	}
	return students, nil
}

// Details implements StudentService.Details with a single batch lookup.
func (s *Students) Details(ctx context.Context, students []*domain.Student) ([]*domain.StudentDetail, error) {
	seen := make(map[domain.ID]struct{})
	refs := make([]domain.ID, 0)
	for _, st := range students {
		if st.Cohort == nil {
			continue
		}
		if _, ok := seen[*st.Cohort]; ok {
			continue
		}
		seen[*st.Cohort] = struct{}{}
		refs = append(refs, *st.Cohort)
	}

	byID := make(map[domain.ID]*domain.Cohort, len(refs))
	if len(refs) > 0 {
		cohorts, err := s.cohorts.GetByIDs(ctx, refs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve student cohorts: %w", err)
		}
		for _, c := range cohorts {
			byID[c.ID] = c
		}
	}

	details := make([]*domain.StudentDetail, len(students))
	for i, st := range students {
		var cohort *domain.Cohort
		if st.Cohort != nil {
			cohort = byID[*st.Cohort]
		}
		details[i] = domain.NewStudentDetail(st, cohort)
	}
	return details, nil
}
