package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cohort-tools-api/internal/api/shared"
	"github.com/phrazzld/cohort-tools-api/internal/domain"
)

// notFoundMessage is the body message for an invalid or absent record id.
func notFoundMessage(entity, rawID string) string {
	return fmt.Sprintf("No such %s with id: %s", entity, rawID)
}

// getPathID extracts and parses a record identifier from the URL path.
// It returns the raw parameter as well so callers can echo it back.
//
// Returns:
//   - (id, raw, nil): the parsed identifier
//   - (NilID, raw, error): an error wrapping domain.ErrInvalidID
func getPathID(r *http.Request, paramName string) (domain.ID, string, error) {
	raw := chi.URLParam(r, paramName)
	id, err := domain.ParseID(raw)
	if err != nil {
		return domain.NilID, raw, err
	}
	return id, raw, nil
}

// decodeBody decodes the JSON request body into v. A malformed body is
// reported as a validation failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		return &domain.ValidationError{Message: "malformed JSON body", Err: err}
	}
	return nil
}
