package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/phrazzld/cohort-tools-api/internal/domain"
)

// scanID parses a CHAR(24) identifier column.
func scanID(raw string) (domain.ID, error) {
	id, err := domain.ParseID(raw)
	if err != nil {
		return domain.NilID, fmt.Errorf("corrupt id column: %w", err)
	}
	return id, nil
}

// nullableID converts an optional reference to a nullable column value.
func nullableID(id *domain.ID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.Hex(), Valid: true}
}

// jsonArray encodes a slice as a JSONB array, writing [] for nil.
func jsonArray[E any](values []E) ([]byte, error) {
	if values == nil {
		values = []E{}
	}
	return json.Marshal(values)
}

// decodeArray decodes a JSONB array column, never returning nil.
func decodeArray[E any](raw []byte) ([]E, error) {
	values := []E{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("corrupt array column: %w", err)
	}
	if values == nil {
		values = []E{}
	}
	return values, nil
}
