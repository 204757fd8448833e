package agency

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a referenced cat, mission or target does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for malformed requests.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidBreed is returned when the breed registry rejects a breed.
	ErrInvalidBreed = errors.New("invalid breed")
	// ErrConflict is returned when an operation would break a cross-entity invariant.
	ErrConflict = errors.New("conflict")
	// ErrInternal wraps store failures unrelated to business rules.
	ErrInternal = errors.New("internal error")
)

var businessErrors = []error{ErrNotFound, ErrValidation, ErrInvalidBreed, ErrConflict, ErrInternal}

func notFound(kind string, id uuid.UUID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}

	return err
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// wrapStoreError keeps typed errors matchable and tags everything else as ErrInternal.
func wrapStoreError(op string, err error) error {
	for _, known := range businessErrors {
		if errors.Is(err, known) {
			return err
		}
	}

	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}
