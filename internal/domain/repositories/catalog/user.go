package catalog

import (
	"context"

	models "worldlib/internal/domain/models/catalog"
)

// UserRepository reads author identities. Rows are written by the auth
// provider's signup hook, never by the catalog.
type UserRepository interface {
	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByUsername resolves a public profile username to its user.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
