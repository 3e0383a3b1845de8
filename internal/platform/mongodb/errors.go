package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/cohort-tools-api/internal/store"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// MapError maps a driver error to the matching store error, wrapping the
// original so it stays available for logging.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case mongo.IsTimeout(err), mongo.IsNetworkError(err),
		errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) || errors.Is(err, topology.ErrServerSelectionTimeout) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return err
}
