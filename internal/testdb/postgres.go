//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// PostgresContainer is a running PostgreSQL server and a pool connected to it.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	DSN       string
}

var (
	sharedPostgres     *PostgresContainer
	sharedPostgresErr  error
	sharedPostgresOnce sync.Once
)

// SetupSharedPostgres creates a single PostgreSQL container shared across all tests
// in the package. Tests using it must not run in parallel.
func SetupSharedPostgres(t *testing.T) *PostgresContainer {
	t.Helper()

	sharedPostgresOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("cohort_tools_test"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
			),
		)
		if err != nil {
			sharedPostgresErr = err
			return
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			sharedPostgresErr = err
			return
		}

		db, err := sql.Open("pgx", dsn)
		if err != nil {
			sharedPostgresErr = err
			return
		}
		if err := db.PingContext(ctx); err != nil {
			sharedPostgresErr = err
			return
		}

		sharedPostgres = &PostgresContainer{Container: container, DB: db, DSN: dsn}
	})

	require.NoError(t, sharedPostgresErr, "failed to start shared PostgreSQL container")
	return sharedPostgres
}

// CleanupTables truncates tables so the next test starts empty.
func CleanupTables(t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	for _, table := range tables {
		_, err := db.ExecContext(ctx, "TRUNCATE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate table: %s", table)
	}
}
