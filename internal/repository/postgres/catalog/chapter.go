package catalog

import (
	"context"
	"fmt"

	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	"worldlib/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresChapterRepository implements the ChapterRepository interface
type PostgresChapterRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(config *postgres.RepositoryConfig) catalogRepo.ChapterRepository {
	return &PostgresChapterRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const chapterColumns = "id, title, content, is_public, word_count, sort_order, book_id, author_id, created_at, updated_at"

func scanChapter(row pgx.Row, chapter *models.Chapter) error {
	return row.Scan(
		&chapter.ID,
		&chapter.Title,
		&chapter.Content,
		&chapter.IsPublic,
		&chapter.WordCount,
		&chapter.SortOrder,
		&chapter.BookID,
		&chapter.AuthorID,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
}

// Create inserts a chapter
func (r *PostgresChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, content, is_public, word_count, sort_order, book_id, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		chapter.Title,
		chapter.Content,
		chapter.IsPublic,
		chapter.WordCount,
		chapter.SortOrder,
		chapter.BookID,
		chapter.AuthorID,
		chapter.CreatedAt,
		chapter.UpdatedAt,
	).Scan(&chapter.ID, &chapter.CreatedAt, &chapter.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create chapter: %w", err)
	}

	return nil
}

// GetByID retrieves a chapter scoped to its owner. Missing and foreign rows
// both come back as domain.ErrNotFound.
func (r *PostgresChapterRepository) GetByID(ctx context.Context, id, authorID string) (*models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1 AND author_id = $2
	`, chapterColumns, r.tables.Chapters)

	var chapter models.Chapter
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanChapter(executor.QueryRow(ctx, query, id, authorID), &chapter); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	return &chapter, nil
}

// GetByIDOnly retrieves a chapter without ownership scoping, for public reads
func (r *PostgresChapterRepository) GetByIDOnly(ctx context.Context, id string) (*models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1
	`, chapterColumns, r.tables.Chapters)

	var chapter models.Chapter
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanChapter(executor.QueryRow(ctx, query, id), &chapter); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get chapter: %w", err)
	}

	return &chapter, nil
}

// ListByBook retrieves a book's chapters in reading order
func (r *PostgresChapterRepository) ListByBook(ctx context.Context, bookID string) ([]models.Chapter, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE book_id = $1
		ORDER BY sort_order ASC
	`, chapterColumns, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var chapter models.Chapter
		if err := scanChapter(rows, &chapter); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapters: %w", err)
	}

	if chapters == nil {
		chapters = []models.Chapter{}
	}

	return chapters, nil
}

// MaxSortOrder returns the highest sort order among a book's chapters, zero
// when the book has none
func (r *PostgresChapterRepository) MaxSortOrder(ctx context.Context, bookID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(sort_order), 0) FROM %s WHERE book_id = $1
	`, r.tables.Chapters)

	var max int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, bookID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max chapter sort order: %w", err)
	}

	return max, nil
}

// Update rewrites a chapter's mutable fields, matched on (id, author_id)
func (r *PostgresChapterRepository) Update(ctx context.Context, chapter *models.Chapter) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, is_public = $3, word_count = $4, updated_at = $5
		WHERE id = $6 AND author_id = $7
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		chapter.Title,
		chapter.Content,
		chapter.IsPublic,
		chapter.WordCount,
		chapter.UpdatedAt,
		chapter.ID,
		chapter.AuthorID,
	)

	if err != nil {
		return fmt.Errorf("update chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", chapter.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a chapter matched on (id, author_id)
func (r *PostgresChapterRepository) Delete(ctx context.Context, id, authorID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND author_id = $2
	`, r.tables.Chapters)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, authorID)
	if err != nil {
		return fmt.Errorf("delete chapter: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("chapter %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
