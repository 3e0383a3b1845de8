package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/phrazzld/cohort-tools-api/internal/config"
	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/events"
	"github.com/phrazzld/cohort-tools-api/internal/platform/mongodb"
	"github.com/phrazzld/cohort-tools-api/internal/platform/postgres"
	"github.com/phrazzld/cohort-tools-api/internal/ratelimit"
	"github.com/phrazzld/cohort-tools-api/internal/service"
	"github.com/phrazzld/cohort-tools-api/internal/service/auth"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config
	logger *slog.Logger

	// Connections, closed by cleanup. Only those in use are non-nil.
	mongoClient *mongo.Client
	db          *sql.DB
	redisClient *redis.Client
	natsConn    *nats.Conn

	// Stores (using interfaces for proper abstraction)
	cohortStore  store.CohortStore
	studentStore store.StudentStore
	userStore    store.UserStore
	pinger       store.Pinger

	// Service interfaces
	jwtService     auth.JWTService
	hasher         auth.PasswordHasher
	cohortService  service.RecordService[*domain.Cohort]
	studentService service.StudentService
	userService    service.UserService

	// limiter is nil when rate limiting is disabled.
	limiter ratelimit.Limiter

	eventEmitter events.EventEmitter
	registry     *prometheus.Registry
}

// newApplication connects to the configured backends and wires every service.
// Connections opened before a failure are closed again.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.init(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully", "driver", cfg.Database.Driver)
	return app, nil
}

func (app *application) init(ctx context.Context) error {
	var err error
	cfg := app.config

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		err = app.setupPostgres(ctx)
	default:
		err = app.setupMongo(ctx)
	}
	if err != nil {
		return err
	}

	if err := app.setupEvents(); err != nil {
		return err
	}

	if err := app.setupRateLimit(ctx); err != nil {
		return err
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.wireServices()
	return nil
}

// wireServices builds the service layer on top of the stores and emitter.
func (app *application) wireServices() {
	if app.eventEmitter == nil {
		app.eventEmitter = events.NopEmitter{}
	}
	app.cohortService = service.NewRecords[*domain.Cohort]("cohort", app.cohortStore, app.eventEmitter, app.logger)
	app.studentService = service.NewStudentService(app.studentStore, app.cohortStore, app.eventEmitter, app.logger)
	app.userService = service.NewUserService(app.userStore, app.hasher, app.eventEmitter, app.logger)
}

func (app *application) setupMongo(ctx context.Context) error {
	client, err := mongodb.Connect(ctx, app.config.Database, app.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	app.mongoClient = client

	db := client.Database(app.config.Database.Name)
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	app.cohortStore = mongodb.NewCohortStore(db, app.logger)
	app.studentStore = mongodb.NewStudentStore(db, app.logger)
	app.userStore = mongodb.NewUserStore(db, app.logger)
	app.pinger = mongodb.NewHealthChecker(client)
	return nil
}

func (app *application) setupPostgres(ctx context.Context) error {
	db, err := postgres.Open(ctx, app.config.Database, app.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	app.db = db

	if err := postgres.Migrate(ctx, db, app.logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.cohortStore = postgres.NewPostgresCohortStore(db, app.logger)
	app.studentStore = postgres.NewPostgresStudentStore(db, app.logger)
	app.userStore = postgres.NewPostgresUserStore(db, app.logger)
	app.pinger = postgres.NewHealthChecker(db)
	return nil
}

// setupEvents registers a NATS publisher on the in-memory emitter when a NATS URL is set.
func (app *application) setupEvents() error {
	emitter := events.NewInMemoryEventEmitter(app.logger)
	app.eventEmitter = emitter

	if app.config.Events.NATSURL == "" {
		app.logger.Info("NATS not configured, record events stay in process")
		return nil
	}

	nc, err := events.ConnectNATS(app.config.Events.NATSURL, app.logger)
	if err != nil {
		return err
	}
	app.natsConn = nc
	emitter.RegisterHandler(events.NewNATSPublisher(nc, app.config.Events.SubjectPrefix, app.logger))
	return nil
}

func (app *application) setupRateLimit(ctx context.Context) error {
	cfg := app.config.RateLimit
	if !cfg.Enabled() {
		app.logger.Info("Redis not configured, auth rate limiting disabled")
		return nil
	}

	client, err := ratelimit.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to set up rate limiter: %w", err)
	}
	app.redisClient = client
	app.limiter = ratelimit.NewRedisLimiter(client, cfg.Requests, cfg.Window())
	app.logger.Info("auth rate limiting enabled",
		"requests", cfg.Requests,
		"window", cfg.Window().String())
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.natsConn != nil {
		if err := app.natsConn.Drain(); err != nil {
			app.logger.Error("Error draining NATS connection", "error", err)
		}
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), app.config.Database.Timeout())
		defer cancel()
		if err := app.mongoClient.Disconnect(ctx); err != nil {
			app.logger.Error("Error disconnecting from mongodb", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
