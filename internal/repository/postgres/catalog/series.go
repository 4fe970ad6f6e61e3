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

// PostgresSeriesRepository implements the SeriesRepository interface
type PostgresSeriesRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewSeriesRepository creates a new series repository
func NewSeriesRepository(config *postgres.RepositoryConfig) catalogRepo.SeriesRepository {
	return &PostgresSeriesRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a series
func (r *PostgresSeriesRepository) Create(ctx context.Context, series *models.Series) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Series)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		series.Name,
		series.AuthorID,
		series.CreatedAt,
		series.UpdatedAt,
	).Scan(&series.ID, &series.CreatedAt, &series.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			existingID, queryErr := r.getExistingSeriesID(ctx, series.AuthorID, series.Name)
			if queryErr != nil {
				return fmt.Errorf("series '%s' already exists: %w", series.Name, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a series named '%s' already exists for this author", series.Name),
				ResourceType: "series",
				ResourceID:   existingID,
			}
		}
		return fmt.Errorf("create series: %w", err)
	}

	return nil
}

// GetByID retrieves a series scoped to its owner. Missing and foreign rows
// both come back as domain.ErrNotFound.
func (r *PostgresSeriesRepository) GetByID(ctx context.Context, id, authorID string) (*models.Series, error) {
	query := fmt.Sprintf(`
		SELECT id, name, author_id, created_at, updated_at
		FROM %s
		WHERE id = $1 AND author_id = $2
	`, r.tables.Series)

	var series models.Series
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, authorID).Scan(
		&series.ID,
		&series.Name,
		&series.AuthorID,
		&series.CreatedAt,
		&series.UpdatedAt,
	)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("series %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get series: %w", err)
	}

	return &series, nil
}

// ListByAuthor retrieves an author's series, newest first
func (r *PostgresSeriesRepository) ListByAuthor(ctx context.Context, authorID string) ([]models.Series, error) {
	query := fmt.Sprintf(`
		SELECT id, name, author_id, created_at, updated_at
		FROM %s
		WHERE author_id = $1
		ORDER BY created_at DESC
	`, r.tables.Series)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var seriesList []models.Series
	for rows.Next() {
		var series models.Series
		err := rows.Scan(
			&series.ID,
			&series.Name,
			&series.AuthorID,
			&series.CreatedAt,
			&series.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		seriesList = append(seriesList, series)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series: %w", err)
	}

	if seriesList == nil {
		seriesList = []models.Series{}
	}

	return seriesList, nil
}

// Update renames a series. The WHERE clause carries both id and author_id so
// the ownership check and the write are one statement.
func (r *PostgresSeriesRepository) Update(ctx context.Context, series *models.Series) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3 AND author_id = $4
	`, r.tables.Series)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		series.Name,
		series.UpdatedAt,
		series.ID,
		series.AuthorID,
	)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a series named '%s' already exists for this author", series.Name),
				ResourceType: "series",
			}
		}
		return fmt.Errorf("update series: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("series %s: %w", series.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a series row scoped to its owner
func (r *PostgresSeriesRepository) Delete(ctx context.Context, id, authorID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND author_id = $2
	`, r.tables.Series)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, authorID)
	if err != nil {
		return fmt.Errorf("delete series: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("series %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresSeriesRepository) getExistingSeriesID(ctx context.Context, authorID, name string) (string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s WHERE author_id = $1 AND name = $2
	`, r.tables.Series)

	var id string
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, authorID, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
