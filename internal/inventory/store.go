// Package inventory provides access to the shared part inventory store.
package inventory

import (
	"context"
	"errors"
	"fmt"
)

// ErrPartNotFound is returned when a mutation targets an unknown part.
var ErrPartNotFound = errors.New("part not found")

// Store is the inventory collaborator contract. Decrement must be atomic per
// part on the store side; the engine performs no client-side locking and
// issues decrements for different parts concurrently.
type Store interface {
	Decrement(ctx context.Context, partID int, amount float64) error
	Quantity(ctx context.Context, partID int) (float64, error)
}

// NotFoundError wraps ErrPartNotFound with the offending part ID.
func notFoundError(partID int) error {
	return fmt.Errorf("part %d: %w", partID, ErrPartNotFound)
}
