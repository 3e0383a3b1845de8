//go:build integration

package testdb

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 30 * time.Second

// MongoContainer is a running MongoDB server and a client connected to it.
type MongoContainer struct {
	Container *mongodb.MongoDBContainer
	Client    *mongo.Client
	URI       string
}

var (
	sharedMongo     *MongoContainer
	sharedMongoErr  error
	sharedMongoOnce sync.Once
)

// SetupSharedMongo starts one MongoDB container for the whole test binary.
func SetupSharedMongo(t *testing.T) *MongoContainer {
	t.Helper()

	sharedMongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := mongodb.Run(ctx, "mongo:7")
		if err != nil {
			sharedMongoErr = err
			return
		}

		uri, err := container.ConnectionString(ctx)
		if err != nil {
			sharedMongoErr = err
			return
		}

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			sharedMongoErr = err
			return
		}
		if err := client.Ping(ctx, nil); err != nil {
			sharedMongoErr = err
			return
		}

		sharedMongo = &MongoContainer{Container: container, Client: client, URI: uri}
	})

	require.NoError(t, sharedMongoErr, "failed to start shared MongoDB container")
	return sharedMongo
}

// NewMongoDatabase returns a database unique to t, dropped when t finishes.
func NewMongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	mc := SetupSharedMongo(t)
	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	db := mc.Client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		_ = db.Drop(ctx)
	})

	return db
}
