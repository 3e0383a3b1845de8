package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

const cohortColumns = `id, in_progress, cohort_slug, cohort_name, program, campus,
	start_date, end_date, program_manager, lead_teacher, total_hours`

// PostgresCohortStore implements the store.CohortStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCohortStore struct {
	db     DBTX
	logger *slog.Logger
}

// NewPostgresCohortStore creates a new PostgreSQL implementation of the CohortStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCohortStore(db DBTX, logger *slog.Logger) *PostgresCohortStore {
	if db == nil {
		// ALLOW-PANIC
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCohortStore{
		db:     db,
		logger: logger.With(slog.String("component", "cohort_store")),
	}
}

// Ensure PostgresCohortStore implements store.CohortStore interface
var _ store.CohortStore = (*PostgresCohortStore)(nil)

// List implements store.CohortStore.List
func (s *PostgresCohortStore) List(ctx context.Context) ([]*domain.Cohort, error) {
	return s.query(ctx, `SELECT `+cohortColumns+` FROM cohorts ORDER BY id`)
}

// GetByID implements store.CohortStore.GetByID
// Returns store.ErrCohortNotFound if the cohort does not exist.
func (s *PostgresCohortStore) GetByID(ctx context.Context, id domain.ID) (*domain.Cohort, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+cohortColumns+` FROM cohorts WHERE id = $1`, id.Hex())
	cohort, err := scanCohort(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("cohort not found", slog.String("cohort_id", id.Hex()))
			return nil, store.ErrCohortNotFound
		}
		log.Error("failed to get cohort by ID",
			slog.String("error", err.Error()),
			slog.String("cohort_id", id.Hex()))
		return nil, store.NewStoreError("cohort", "get", "query failed", MapError(err))
	}
	return cohort, nil
}

// GetByIDs implements store.CohortStore.GetByIDs
func (s *PostgresCohortStore) GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Cohort, error) {
	if len(ids) == 0 {
		return []*domain.Cohort{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = id.Hex()
	}

	query := `SELECT ` + cohortColumns + ` FROM cohorts WHERE id IN (` +
		strings.Join(placeholders, ", ") + `) ORDER BY id`
	return s.query(ctx, query, args...)
}

// Create implements store.CohortStore.Create
func (s *PostgresCohortStore) Create(ctx context.Context, cohort *domain.Cohort) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO cohorts (` + cohortColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		cohort.ID.Hex(),
		cohort.InProgress,
		cohort.CohortSlug,
		cohort.CohortName,
		string(cohort.Program),
		string(cohort.Campus),
		cohort.StartDate,
		cohort.EndDate,
		cohort.ProgramManager,
		cohort.LeadTeacher,
		cohort.TotalHours,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("cohort slug already taken", slog.String("cohort_id", cohort.ID.Hex()))
			return store.NewStoreError("cohort", "create", "cohortSlug already taken", MapError(err))
		}
		log.Error("failed to create cohort",
			slog.String("error", err.Error()),
			slog.String("cohort_id", cohort.ID.Hex()))
		return store.NewStoreError("cohort", "create", "insert failed", MapError(err))
	}

	log.Debug("cohort created", slog.String("cohort_id", cohort.ID.Hex()))
	return nil
}

// Replace implements store.CohortStore.Replace
func (s *PostgresCohortStore) Replace(ctx context.Context, cohort *domain.Cohort) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE cohorts
		SET in_progress = $2, cohort_slug = $3, cohort_name = $4, program = $5, campus = $6,
			start_date = $7, end_date = $8, program_manager = $9, lead_teacher = $10, total_hours = $11
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		cohort.ID.Hex(),
		cohort.InProgress,
		cohort.CohortSlug,
		cohort.CohortName,
		string(cohort.Program),
		string(cohort.Campus),
		cohort.StartDate,
		cohort.EndDate,
		cohort.ProgramManager,
		cohort.LeadTeacher,
		cohort.TotalHours,
	)
	if err != nil {
		if !IsUniqueViolation(err) {
			log.Error("failed to replace cohort",
				slog.String("error", err.Error()),
				slog.String("cohort_id", cohort.ID.Hex()))
		}
		return store.NewStoreError("cohort", "replace", "update failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrCohortNotFound)
}

// Delete implements store.CohortStore.Delete
// Students referencing the cohort are left untouched.
func (s *PostgresCohortStore) Delete(ctx context.Context, id domain.ID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cohorts WHERE id = $1`, id.Hex())
	if err != nil {
		log.Error("failed to delete cohort",
			slog.String("error", err.Error()),
			slog.String("cohort_id", id.Hex()))
		return store.NewStoreError("cohort", "delete", "delete failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrCohortNotFound)
}

func (s *PostgresCohortStore) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Cohort, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cohorts", slog.String("error", err.Error()))
		return nil, store.NewStoreError("cohort", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	cohorts := make([]*domain.Cohort, 0)
	for rows.Next() {
		cohort, err := scanCohort(rows)
		if err != nil {
			return nil, store.NewStoreError("cohort", "list", "scan failed", err)
		}
		cohorts = append(cohorts, cohort)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("cohort", "list", "row iteration failed", MapError(err))
	}
	return cohorts, nil
}

func scanCohort(row scanner) (*domain.Cohort, error) {
	var (
		c       domain.Cohort
		id      string
		program string
		campus  string
		endDate sql.NullTime
	)
	if err := row.Scan(
		&id,
		&c.InProgress,
		&c.CohortSlug,
		&c.CohortName,
		&program,
		&campus,
		&c.StartDate,
		&endDate,
		&c.ProgramManager,
		&c.LeadTeacher,
		&c.TotalHours,
	); err != nil {
		return nil, err
	}

	parsed, err := scanID(id)
	if err != nil {
		return nil, err
	}
	c.ID = parsed
	c.Program = domain.Program(program)
	c.Campus = domain.Campus(campus)
	c.StartDate = c.StartDate.UTC()
	if endDate.Valid {
		end := endDate.Time.UTC()
		c.EndDate = &end
	}
	return &c, nil
}
