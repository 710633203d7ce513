package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through one of the constructors.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// fulfillmentNamespace scopes name-based identifiers produced by NewNameUUID.
var fulfillmentNamespace = uuid.MustParse("5f1c3a8e-7d0b-4c52-9a1e-2b6f4d8c0e17")

// UUID is a value object wrapping github.com/google/uuid.
// The zero value is invalid; use NewUUID, NewNameUUID, UUIDFromString or UUIDFromBytes.
//
// The order identifier is the only join key between the client, distributor and
// courier projections, so every aggregate keys its copy of an order by this type.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// NewNameUUID derives a version 5 UUID from the given parts. The same parts
// always produce the same identifier, which lets retried writes collide on the
// primary key instead of duplicating rows.
//
// Example:
//
//	entryID := kernel.NewNameUUID(orderID.String(), "distributor", distributorID.String(), "vente")
func NewNameUUID(parts ...string) UUID {
	return UUID{
		id: uuid.NewSHA1(fulfillmentNamespace, []byte(strings.Join(parts, "|"))),
	}
}

// UUIDFromString parses a UUID from any format accepted by uuid.Parse.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16 byte slice. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID, used by persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Compare orders identifiers by their byte representation. It returns -1, 0 or +1.
func (u UUID) Compare(other UUID) int {
	for i := range u.id {
		switch {
		case u.id[i] < other.id[i]:
			return -1
		case u.id[i] > other.id[i]:
			return 1
		}
	}
	return 0
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
