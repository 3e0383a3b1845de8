// Package storetest holds behaviour tests shared by every store backend.
// A backend's integration test supplies fresh, empty stores and calls Run.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Stores is one backend's set of stores, all backed by the same empty database.
type Stores struct {
	Cohorts  store.CohortStore
	Students store.StudentStore
	Users    store.UserStore
}

// Factory returns empty stores for a single subtest.
type Factory func(t *testing.T) Stores

// Run executes the shared behaviour tests against the backend produced by newStores.
func Run(t *testing.T, newStores Factory) {
	t.Run("cohort round trip", func(t *testing.T) { testCohortRoundTrip(t, newStores(t)) })
	t.Run("cohort list order and batch lookup", func(t *testing.T) { testCohortList(t, newStores(t)) })
	t.Run("cohort slug is unique", func(t *testing.T) { testCohortDuplicate(t, newStores(t)) })
	t.Run("cohort replace", func(t *testing.T) { testCohortReplace(t, newStores(t)) })
	t.Run("delete is scoped and idempotent", func(t *testing.T) { testDelete(t, newStores(t)) })
	t.Run("students by cohort", func(t *testing.T) { testStudentsByCohort(t, newStores(t)) })
	t.Run("student email is unique", func(t *testing.T) { testStudentDuplicate(t, newStores(t)) })
	t.Run("users", func(t *testing.T) { testUsers(t, newStores(t)) })
}

var baseTime = time.Date(2024, 9, 2, 9, 0, 0, 0, time.UTC)

// NewCohort returns a valid cohort with a fresh ID and a slug derived from n.
func NewCohort(n int) *domain.Cohort {
	end := baseTime.AddDate(0, 3, 0)
	return &domain.Cohort{
		ID:             domain.NewID(),
		InProgress:     n%2 == 0,
		CohortSlug:     fmt.Sprintf("wd-%03d", n),
		CohortName:     fmt.Sprintf("Web Dev %03d", n),
		Program:        domain.ProgramWebDev,
		Campus:         domain.CampusBerlin,
		StartDate:      baseTime,
		EndDate:        &end,
		ProgramManager: "Sally Daher",
		LeadTeacher:    "Florian Aube",
		TotalHours:     domain.DefaultTotalHours,
	}
}

// NewStudent returns a valid student with a fresh ID, optionally enrolled in cohort.
func NewStudent(n int, cohort *domain.Cohort) *domain.Student {
	s := &domain.Student{
		ID:          domain.NewID(),
		FirstName:   "Ada",
		LastName:    fmt.Sprintf("Lovelace %d", n),
		Email:       fmt.Sprintf("ada%d@example.com", n),
		Phone:       "+49 30 123456",
		LinkedinURL: "https://linkedin.com/in/ada",
		Languages:   []domain.Language{domain.LanguageEnglish, domain.LanguageGerman},
		Program:     domain.ProgramWebDev,
		Background:  "Mathematics",
		Image:       domain.DefaultStudentImage,
		Projects:    []string{"analytical-engine"},
	}
	if cohort != nil {
		id := cohort.ID
		s.Cohort = &id
	}
	return s
}

// AssertCohortEqual compares cohorts field by field, times by instant.
func AssertCohortEqual(t *testing.T, want, got *domain.Cohort) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.InProgress, got.InProgress)
	assert.Equal(t, want.CohortSlug, got.CohortSlug)
	assert.Equal(t, want.CohortName, got.CohortName)
	assert.Equal(t, want.Program, got.Program)
	assert.Equal(t, want.Campus, got.Campus)
	assert.True(t, want.StartDate.Equal(got.StartDate), "startDate %v != %v", want.StartDate, got.StartDate)
	if want.EndDate == nil {
		assert.Nil(t, got.EndDate)
	} else if assert.NotNil(t, got.EndDate) {
		assert.True(t, want.EndDate.Equal(*got.EndDate), "endDate %v != %v", *want.EndDate, *got.EndDate)
	}
	assert.Equal(t, want.ProgramManager, got.ProgramManager)
	assert.Equal(t, want.LeadTeacher, got.LeadTeacher)
	assert.Equal(t, want.TotalHours, got.TotalHours)
}

func ids[T domain.Entity](records []T) []domain.ID {
	out := make([]domain.ID, len(records))
	for i, r := range records {
		out[i] = r.GetID()
	}
	return out
}

func testCohortRoundTrip(t *testing.T, s Stores) {
	ctx := context.Background()
	cohort := NewCohort(1)

	require.NoError(t, s.Cohorts.Create(ctx, cohort))

	got, err := s.Cohorts.GetByID(ctx, cohort.ID)
	require.NoError(t, err)
	AssertCohortEqual(t, cohort, got)

	_, err = s.Cohorts.GetByID(ctx, domain.NewID())
	assert.True(t, store.IsNotFoundError(err), "unknown id should be not found, got %v", err)
}

func testCohortList(t *testing.T, s Stores) {
	ctx := context.Background()

	empty, err := s.Cohorts.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, second, third := NewCohort(1), NewCohort(2), NewCohort(3)
	for _, c := range []*domain.Cohort{first, second, third} {
		require.NoError(t, s.Cohorts.Create(ctx, c))
	}

	all, err := s.Cohorts.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{first.ID, second.ID, third.ID}, ids(all))

	some, err := s.Cohorts.GetByIDs(ctx, []domain.ID{third.ID, domain.NewID(), first.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.ID{first.ID, third.ID}, ids(some))

	none, err := s.Cohorts.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testCohortDuplicate(t *testing.T, s Stores) {
	ctx := context.Background()
	require.NoError(t, s.Cohorts.Create(ctx, NewCohort(1)))

	dup := NewCohort(1)
	err := s.Cohorts.Create(ctx, dup)
	assert.True(t, store.IsDuplicateError(err), "expected duplicate error, got %v", err)

	_, err = s.Cohorts.GetByID(ctx, dup.ID)
	assert.True(t, store.IsNotFoundError(err), "rejected cohort must not be stored")
}

func testCohortReplace(t *testing.T, s Stores) {
	ctx := context.Background()
	cohort := NewCohort(1)
	require.NoError(t, s.Cohorts.Create(ctx, cohort))

	replacement := NewCohort(7)
	replacement.ID = cohort.ID
	replacement.EndDate = nil
	replacement.Campus = domain.CampusRemote
	require.NoError(t, s.Cohorts.Replace(ctx, replacement))

	got, err := s.Cohorts.GetByID(ctx, cohort.ID)
	require.NoError(t, err)
	AssertCohortEqual(t, replacement, got)

	err = s.Cohorts.Replace(ctx, NewCohort(9))
	assert.True(t, store.IsNotFoundError(err), "replacing an unknown cohort should be not found, got %v", err)
}

func testDelete(t *testing.T, s Stores) {
	ctx := context.Background()
	cohort := NewCohort(1)
	other := NewCohort(2)
	require.NoError(t, s.Cohorts.Create(ctx, cohort))
	require.NoError(t, s.Cohorts.Create(ctx, other))

	student := NewStudent(1, cohort)
	keep := NewStudent(2, cohort)
	require.NoError(t, s.Students.Create(ctx, student))
	require.NoError(t, s.Students.Create(ctx, keep))

	// Deleting a student removes only that student.
	require.NoError(t, s.Students.Delete(ctx, student.ID))
	_, err := s.Students.GetByID(ctx, student.ID)
	assert.True(t, store.IsNotFoundError(err))
	_, err = s.Students.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	_, err = s.Cohorts.GetByID(ctx, cohort.ID)
	require.NoError(t, err, "deleting a student must not touch cohorts")

	// Deleting a cohort removes only that cohort and leaves its students dangling.
	require.NoError(t, s.Cohorts.Delete(ctx, cohort.ID))
	_, err = s.Cohorts.GetByID(ctx, cohort.ID)
	assert.True(t, store.IsNotFoundError(err))
	_, err = s.Cohorts.GetByID(ctx, other.ID)
	require.NoError(t, err)
	dangling, err := s.Students.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	require.NotNil(t, dangling.Cohort)
	assert.Equal(t, cohort.ID, *dangling.Cohort)

	// Deleting again removes nothing and says so.
	assert.True(t, store.IsNotFoundError(s.Cohorts.Delete(ctx, cohort.ID)))
	assert.True(t, store.IsNotFoundError(s.Students.Delete(ctx, student.ID)))
}

func testStudentsByCohort(t *testing.T, s Stores) {
	ctx := context.Background()
	cohort := NewCohort(1)
	require.NoError(t, s.Cohorts.Create(ctx, cohort))

	none, err := s.Students.ListByCohort(ctx, cohort.ID)
	require.NoError(t, err)
	assert.NotNil(t, none, "an empty cohort must yield an empty, non-nil slice")
	assert.Empty(t, none)

	enrolled := NewStudent(1, cohort)
	unassigned := NewStudent(2, nil)
	unassigned.Languages = nil
	unassigned.Projects = nil
	require.NoError(t, s.Students.Create(ctx, enrolled))
	require.NoError(t, s.Students.Create(ctx, unassigned))

	members, err := s.Students.ListByCohort(ctx, cohort.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	got := members[0]
	assert.Equal(t, enrolled.ID, got.ID)
	assert.Equal(t, enrolled.Email, got.Email)
	assert.Equal(t, enrolled.Languages, got.Languages)
	assert.Equal(t, enrolled.Projects, got.Projects)
	assert.Equal(t, enrolled.LinkedinURL, got.LinkedinURL)
	require.NotNil(t, got.Cohort)
	assert.Equal(t, cohort.ID, *got.Cohort)

	loose, err := s.Students.GetByID(ctx, unassigned.ID)
	require.NoError(t, err)
	assert.Nil(t, loose.Cohort)
	assert.Empty(t, loose.Languages)

	all, err := s.Students.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{enrolled.ID, unassigned.ID}, ids(all))
}

func testStudentDuplicate(t *testing.T, s Stores) {
	ctx := context.Background()
	require.NoError(t, s.Students.Create(ctx, NewStudent(1, nil)))

	err := s.Students.Create(ctx, NewStudent(1, nil))
	assert.True(t, store.IsDuplicateError(err), "expected duplicate error, got %v", err)

	second := NewStudent(2, nil)
	require.NoError(t, s.Students.Create(ctx, second))
	second.Email = "ada1@example.com"
	err = s.Students.Replace(ctx, second)
	assert.True(t, store.IsDuplicateError(err), "replace onto a taken email should collide, got %v", err)
}

func testUsers(t *testing.T, s Stores) {
	ctx := context.Background()

	user, err := domain.NewUser("Ada@Example.com", "password123", "Ada")
	require.NoError(t, err)
	user.HashedPassword = "$2a$04$abcdefghijklmnopqrstuuabcdefghijklmnopqrstuvwxyzabcde"
	user.Password = ""
	user.CreatedAt = user.CreatedAt.Truncate(time.Millisecond)

	require.NoError(t, s.Users.Create(ctx, user))

	byEmail, err := s.Users.GetByEmail(ctx, "  ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "ada@example.com", byEmail.Email)
	assert.Equal(t, "Ada", byEmail.Name)
	assert.Equal(t, user.HashedPassword, byEmail.HashedPassword)
	assert.True(t, user.CreatedAt.Equal(byEmail.CreatedAt))

	byID, err := s.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	dup, err := domain.NewUser("ada@example.com", "different-pass", "Other Ada")
	require.NoError(t, err)
	dup.HashedPassword = "hash"
	assert.ErrorIs(t, s.Users.Create(ctx, dup), store.ErrEmailExists)

	_, err = s.Users.GetByID(ctx, domain.NewID())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	_, err = s.Users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	missingHash := &domain.User{ID: domain.NewID(), Email: "x@example.com", Name: "X"}
	assert.ErrorIs(t, s.Users.Create(ctx, missingHash), store.ErrInvalidEntity)
}
