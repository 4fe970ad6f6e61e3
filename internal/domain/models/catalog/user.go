package catalog

import (
	"time"
)

// User is a platform author. Accounts are provisioned by the external auth
// provider; this table mirrors the identity fields the catalog needs.
type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AuthorInfo is the public slice of a User embedded in book listings.
type AuthorInfo struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}
