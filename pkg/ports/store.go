package ports

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// MaxNameLength bounds machine names so they stay usable as file names and keys.
const MaxNameLength = 128

// ErrInvalidName is returned when a machine name cannot be used as a store key.
var ErrInvalidName = errors.New("invalid machine name")

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// MachineStore persists packed machine archives (.fsm blobs) by name.
// Implementations must be safe for concurrent use.
type MachineStore interface {
	// Save stores the archive, replacing any previous one with the same name.
	Save(ctx context.Context, name string, archive []byte) error

	// Load retrieves the archive for a name.
	// Returns domain.ErrMachineNotFound if the name does not exist.
	Load(ctx context.Context, name string) ([]byte, error)

	// Delete removes the archive. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}

// ValidateName checks that name is a non-empty, path-safe identifier.
func ValidateName(name string) error {
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidName, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
