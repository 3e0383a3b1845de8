package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection implements store.Repository[T] over one MongoDB collection.
// T is a pointer type such as *domain.Cohort; newT allocates a zero record to
// decode into.
type collection[T domain.Entity] struct {
	entity   string
	coll     *mongo.Collection
	newT     func() T
	notFound error
	logger   *slog.Logger
}

var byInsertion = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

// List implements store.Repository.List. ObjectIDs grow monotonically, so
// sorting on _id yields insertion order.
func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	return c.find(ctx, bson.D{})
}

// GetByID implements store.Repository.GetByID.
func (c *collection[T]) GetByID(ctx context.Context, id domain.ID) (T, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	record := c.newT()
	err := c.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(record)
	if err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Debug("record not found", slog.String("id", id.Hex()))
			return zero, c.notFound
		}
		log.Error("failed to get record by ID",
			slog.String("error", err.Error()),
			slog.String("id", id.Hex()))
		return zero, store.NewStoreError(c.entity, "get", "find failed", MapError(err))
	}
	return record, nil
}

// Create implements store.Repository.Create.
func (c *collection[T]) Create(ctx context.Context, record T) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if _, err := c.coll.InsertOne(ctx, record); err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Debug("duplicate key on create", slog.String("id", record.GetID().Hex()))
			return store.NewStoreError(c.entity, "create", "unique field already taken", mapped)
		}
		log.Error("failed to create record",
			slog.String("error", err.Error()),
			slog.String("id", record.GetID().Hex()))
		return store.NewStoreError(c.entity, "create", "insert failed", mapped)
	}

	log.Debug("record created", slog.String("id", record.GetID().Hex()))
	return nil
}

// Replace implements store.Repository.Replace.
func (c *collection[T]) Replace(ctx context.Context, record T) error {
	log := logger.FromContextOrDefault(ctx, c.logger)
	id := record.GetID()

	res, err := c.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, record)
	if err != nil {
		mapped := MapError(err)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to replace record",
				slog.String("error", err.Error()),
				slog.String("id", id.Hex()))
		}
		return store.NewStoreError(c.entity, "replace", "replace failed", mapped)
	}
	if res.MatchedCount == 0 {
		return c.notFound
	}

	log.Debug("record replaced", slog.String("id", id.Hex()))
	return nil
}

// Delete implements store.Repository.Delete.
func (c *collection[T]) Delete(ctx context.Context, id domain.ID) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	res, err := c.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		log.Error("failed to delete record",
			slog.String("error", err.Error()),
			slog.String("id", id.Hex()))
		return store.NewStoreError(c.entity, "delete", "delete failed", MapError(err))
	}

	if res.DeletedCount == 0 {
		return c.notFound
	}

	log.Debug("record deleted", slog.String("id", id.Hex()))
	return nil
}

// find returns every record matching filter in insertion order. The result is
// never nil.
func (c *collection[T]) find(ctx context.Context, filter interface{}) ([]T, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	cursor, err := c.coll.Find(ctx, filter, byInsertion)
	if err != nil {
		log.Error("failed to query records", slog.String("error", err.Error()))
		return nil, store.NewStoreError(c.entity, "list", "find failed", MapError(err))
	}
	defer func() { _ = cursor.Close(ctx) }()

	records := make([]T, 0)
	for cursor.Next(ctx) {
		record := c.newT()
		if err := cursor.Decode(record); err != nil {
			return nil, store.NewStoreError(c.entity, "list", "decode failed", err)
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, store.NewStoreError(c.entity, "list", "cursor failed", MapError(err))
	}

	return records, nil
}

func newCollection[T domain.Entity](
	db *mongo.Database,
	name, entity string,
	newT func() T,
	notFound error,
	logger *slog.Logger,
) *collection[T] {
	if db == nil {
		// ALLOW-PANIC
		panic(fmt.Sprintf("%s store: db cannot be nil", entity))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &collection[T]{
		entity:   entity,
		coll:     db.Collection(name),
		newT:     newT,
		notFound: notFound,
		logger:   logger.With(slog.String("component", entity+"_store")),
	}
}
