package mongodb

import (
	"context"
	"log/slog"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StudentStore implements store.StudentStore on the students collection.
type StudentStore struct {
	*collection[*domain.Student]
}

var _ store.StudentStore = (*StudentStore)(nil)

// NewStudentStore creates a StudentStore on db. If logger is nil, a default logger is used.
func NewStudentStore(db *mongo.Database, logger *slog.Logger) *StudentStore {
	return &StudentStore{
		collection: newCollection(db, StudentsCollection, "student",
			func() *domain.Student { return &domain.Student{} },
			store.ErrStudentNotFound, logger),
	}
}

// ListByCohort implements store.StudentStore.ListByCohort.
func (s *StudentStore) ListByCohort(ctx context.Context, cohortID domain.ID) ([]*domain.Student, error) {
	return s.find(ctx, bson.D{{Key: "cohort", Value: cohortID}})
}
