package catalog

import (
	"errors"
	"fmt"

	"worldlib/internal/domain"
)

// ownershipError translates a scoped-lookup failure into the merged
// access-denied error. Repositories return ErrNotFound for both missing rows
// and rows owned by someone else; surfacing both as forbidden keeps the two
// cases indistinguishable to callers, so entity ids cannot be enumerated by
// outsiders.
func ownershipError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("unauthorized action: %w", domain.ErrForbidden)
	}
	return err
}
