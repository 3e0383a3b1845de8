package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/cohort-tools-api/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	CohortsCollection  = "cohorts"
	StudentsCollection = "students"
	UsersCollection    = "users"
)

// Connect opens a pooled client for cfg.URL and verifies the primary answers
// within cfg.Timeout().
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetAppName("cohort-tools-api").
		SetConnectTimeout(cfg.Timeout()).
		SetServerSelectionTimeout(cfg.Timeout())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("mongodb connection established", "database", cfg.Name)
	return client, nil
}

// HealthChecker reports whether the MongoDB primary is reachable.
type HealthChecker struct {
	client *mongo.Client
}

// NewHealthChecker wraps client.
func NewHealthChecker(client *mongo.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Ping implements store.Pinger.
func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}
