package domain

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID identifies a stored record. It marshals to JSON as a 24 character hex string.
type ID = primitive.ObjectID

// NilID is the zero identifier, never assigned to a stored record.
var NilID = primitive.NilObjectID

// NewID generates a new record identifier.
func NewID() ID {
	return primitive.NewObjectID()
}

// ParseID parses the hex form of an identifier.
// Returns an error wrapping ErrInvalidID when s is not a well-formed identifier.
func ParseID(s string) (ID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Entity is implemented by every record served through the generic CRUD layer.
type Entity interface {
	// GetID returns the record identifier.
	GetID() ID
	// SetID assigns the record identifier.
	SetID(id ID)
	// Validate checks the record against its field rules.
	Validate() error
}
