package mongodb

import (
	"context"
	"log/slog"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CohortStore implements store.CohortStore on the cohorts collection.
type CohortStore struct {
	*collection[*domain.Cohort]
}

var _ store.CohortStore = (*CohortStore)(nil)

// NewCohortStore creates a CohortStore on db. If logger is nil, a default logger is used.
func NewCohortStore(db *mongo.Database, logger *slog.Logger) *CohortStore {
	return &CohortStore{
		collection: newCollection(db, CohortsCollection, "cohort",
			func() *domain.Cohort { return &domain.Cohort{} },
			store.ErrCohortNotFound, logger),
	}
}

// GetByIDs implements store.CohortStore.GetByIDs.
func (s *CohortStore) GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Cohort, error) {
	if len(ids) == 0 {
		return []*domain.Cohort{}, nil
	}
	return s.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}
