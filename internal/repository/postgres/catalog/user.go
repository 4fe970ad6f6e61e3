package catalog

import (
	"context"
	"fmt"

	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	"worldlib/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *postgres.RepositoryConfig) catalogRepo.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// GetByID retrieves a user by id
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, name, email, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Users)

	return r.scanOne(ctx, query, id)
}

// GetByUsername resolves a profile username to its user
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, name, email, created_at, updated_at
		FROM %s
		WHERE username = $1
	`, r.tables.Users)

	return r.scanOne(ctx, query, username)
}

func (r *PostgresUserRepository) scanOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}
