package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/phrazzld/cohort-tools-api/internal/store"
)

const studentColumns = `id, first_name, last_name, email, phone, linkedin_url,
	languages, program, background, image, cohort_id, projects`

// PostgresStudentStore implements the store.StudentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStudentStore struct {
	db     DBTX
	logger *slog.Logger
}

// NewPostgresStudentStore creates a new PostgreSQL implementation of the StudentStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStudentStore(db DBTX, logger *slog.Logger) *PostgresStudentStore {
	if db == nil {
		// ALLOW-PANIC
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStudentStore{
		db:     db,
		logger: logger.With(slog.String("component", "student_store")),
	}
}

// Ensure PostgresStudentStore implements store.StudentStore interface
var _ store.StudentStore = (*PostgresStudentStore)(nil)

// List implements store.StudentStore.List
func (s *PostgresStudentStore) List(ctx context.Context) ([]*domain.Student, error) {
	return s.query(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
}

// ListByCohort implements store.StudentStore.ListByCohort
func (s *PostgresStudentStore) ListByCohort(ctx context.Context, cohortID domain.ID) ([]*domain.Student, error) {
	return s.query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE cohort_id = $1 ORDER BY id`,
		cohortID.Hex())
}

// GetByID implements store.StudentStore.GetByID
// Returns store.ErrStudentNotFound if the student does not exist.
func (s *PostgresStudentStore) GetByID(ctx context.Context, id domain.ID) (*domain.Student, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id.Hex())
	student, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("student not found", slog.String("student_id", id.Hex()))
			return nil, store.ErrStudentNotFound
		}
		log.Error("failed to get student by ID",
			slog.String("error", err.Error()),
			slog.String("student_id", id.Hex()))
		return nil, store.NewStoreError("student", "get", "query failed", MapError(err))
	}
	return student, nil
}

// Create implements store.StudentStore.Create
func (s *PostgresStudentStore) Create(ctx context.Context, student *domain.Student) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	args, err := studentArgs(student)
	if err != nil {
		return store.NewStoreError("student", "create", "encode failed", err)
	}

	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if IsUniqueViolation(err) {
			log.Debug("student email already taken", slog.String("student_id", student.ID.Hex()))
			return store.NewStoreError("student", "create", "email already taken", MapError(err))
		}
		log.Error("failed to create student",
			slog.String("error", err.Error()),
			slog.String("student_id", student.ID.Hex()))
		return store.NewStoreError("student", "create", "insert failed", MapError(err))
	}

	log.Debug("student created", slog.String("student_id", student.ID.Hex()))
	return nil
}

// Replace implements store.StudentStore.Replace
func (s *PostgresStudentStore) Replace(ctx context.Context, student *domain.Student) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	args, err := studentArgs(student)
	if err != nil {
		return store.NewStoreError("student", "replace", "encode failed", err)
	}

	query := `
		UPDATE students
		SET first_name = $2, last_name = $3, email = $4, phone = $5, linkedin_url = $6,
			languages = $7, program = $8, background = $9, image = $10, cohort_id = $11, projects = $12
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if !IsUniqueViolation(err) {
			log.Error("failed to replace student",
				slog.String("error", err.Error()),
				slog.String("student_id", student.ID.Hex()))
		}
		return store.NewStoreError("student", "replace", "update failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrStudentNotFound)
}

// Delete implements store.StudentStore.Delete
func (s *PostgresStudentStore) Delete(ctx context.Context, id domain.ID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id.Hex())
	if err != nil {
		log.Error("failed to delete student",
			slog.String("error", err.Error()),
			slog.String("student_id", id.Hex()))
		return store.NewStoreError("student", "delete", "delete failed", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrStudentNotFound)
}

func (s *PostgresStudentStore) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Student, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query students", slog.String("error", err.Error()))
		return nil, store.NewStoreError("student", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	students := make([]*domain.Student, 0)
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, store.NewStoreError("student", "list", "scan failed", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("student", "list", "row iteration failed", MapError(err))
	}
	return students, nil
}

// studentArgs returns the column values in studentColumns order.
func studentArgs(st *domain.Student) ([]interface{}, error) {
	languages, err := jsonArray(st.Languages)
	if err != nil {
		return nil, err
	}
	projects, err := jsonArray(st.Projects)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		st.ID.Hex(),
		st.FirstName,
		st.LastName,
		st.Email,
		st.Phone,
		st.LinkedinURL,
		string(languages),
		string(st.Program),
		st.Background,
		st.Image,
		nullableID(st.Cohort),
		string(projects),
	}, nil
}

func scanStudent(row scanner) (*domain.Student, error) {
	var (
		st        domain.Student
		id        string
		program   string
		cohortID  sql.NullString
		languages []byte
		projects  []byte
	)
	if err := row.Scan(
		&id,
		&st.FirstName,
		&st.LastName,
		&st.Email,
		&st.Phone,
		&st.LinkedinURL,
		&languages,
		&program,
		&st.Background,
		&st.Image,
		&cohortID,
		&projects,
	); err != nil {
		return nil, err
	}

	parsed, err := scanID(id)
	if err != nil {
		return nil, err
	}
	st.ID = parsed
	st.Program = domain.Program(program)

	if cohortID.Valid {
		ref, err := scanID(cohortID.String)
		if err != nil {
			return nil, err
		}
		st.Cohort = &ref
	}

	if st.Languages, err = decodeArray[domain.Language](languages); err != nil {
		return nil, err
	}
	if st.Projects, err = decodeArray[string](projects); err != nil {
		return nil, err
	}
	return &st, nil
}
