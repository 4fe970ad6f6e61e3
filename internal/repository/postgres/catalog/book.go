package catalog

import (
	"context"
	"fmt"
	"strings"

	"worldlib/internal/config"
	"worldlib/internal/domain"
	models "worldlib/internal/domain/models/catalog"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	"worldlib/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBookRepository implements the BookRepository interface
type PostgresBookRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewBookRepository creates a new book repository
func NewBookRepository(config *postgres.RepositoryConfig) catalogRepo.BookRepository {
	return &PostgresBookRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const bookColumns = "id, title, description, is_public, cover_image, word_count, author_id, series_id, created_at, updated_at"

func scanBook(row pgx.Row, book *models.Book) error {
	return row.Scan(
		&book.ID,
		&book.Title,
		&book.Description,
		&book.IsPublic,
		&book.CoverImage,
		&book.WordCount,
		&book.AuthorID,
		&book.SeriesID,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
}

// Create inserts a book
func (r *PostgresBookRepository) Create(ctx context.Context, book *models.Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (title, description, is_public, cover_image, author_id, series_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, word_count, created_at, updated_at
	`, r.tables.Books)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		book.Title,
		book.Description,
		book.IsPublic,
		book.CoverImage,
		book.AuthorID,
		book.SeriesID,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID, &book.WordCount, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a book titled '%s' already exists for this author", book.Title),
				ResourceType: "book",
			}
		}
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

// GetByID retrieves a book scoped to its owner. Missing and foreign rows both
// come back as domain.ErrNotFound.
func (r *PostgresBookRepository) GetByID(ctx context.Context, id, authorID string) (*models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1 AND author_id = $2
	`, bookColumns, r.tables.Books)

	var book models.Book
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanBook(executor.QueryRow(ctx, query, id, authorID), &book); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

// GetByIDOnly retrieves a book without ownership scoping, for public reads
func (r *PostgresBookRepository) GetByIDOnly(ctx context.Context, id string) (*models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE id = $1
	`, bookColumns, r.tables.Books)

	var book models.Book
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := scanBook(executor.QueryRow(ctx, query, id), &book); err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	return &book, nil
}

// ListBySeries retrieves a series' books, oldest first
func (r *PostgresBookRepository) ListBySeries(ctx context.Context, seriesID string, publicOnly bool) ([]models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE series_id = $1 AND ($2 = FALSE OR is_public = TRUE)
		ORDER BY created_at ASC
	`, bookColumns, r.tables.Books)

	return r.list(ctx, query, seriesID, publicOnly)
}

// ListUngrouped retrieves an author's books outside any series, oldest first
func (r *PostgresBookRepository) ListUngrouped(ctx context.Context, authorID string, publicOnly bool) ([]models.Book, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE author_id = $1 AND series_id IS NULL AND ($2 = FALSE OR is_public = TRUE)
		ORDER BY created_at ASC
	`, bookColumns, r.tables.Books)

	return r.list(ctx, query, authorID, publicOnly)
}

func (r *PostgresBookRepository) list(ctx context.Context, query string, args ...any) ([]models.Book, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		var book models.Book
		if err := scanBook(rows, &book); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	if books == nil {
		books = []models.Book{}
	}

	return books, nil
}

// Update rewrites a book's mutable fields, matched on (id, author_id)
func (r *PostgresBookRepository) Update(ctx context.Context, book *models.Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, is_public = $3, cover_image = $4, series_id = $5, updated_at = $6
		WHERE id = $7 AND author_id = $8
	`, r.tables.Books)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		book.Title,
		book.Description,
		book.IsPublic,
		book.CoverImage,
		book.SeriesID,
		book.UpdatedAt,
		book.ID,
		book.AuthorID,
	)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a book titled '%s' already exists for this author", book.Title),
				ResourceType: "book",
			}
		}
		return fmt.Errorf("update book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", book.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a book matched on (id, author_id); chapters cascade
func (r *PostgresBookRepository) Delete(ctx context.Context, id, authorID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND author_id = $2
	`, r.tables.Books)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, authorID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ReleaseSeries moves every book of a series into the Ungrouped bucket
func (r *PostgresBookRepository) ReleaseSeries(ctx context.Context, seriesID, authorID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET series_id = NULL, updated_at = now()
		WHERE series_id = $1 AND author_id = $2
	`, r.tables.Books)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, seriesID, authorID); err != nil {
		return fmt.Errorf("release series books: %w", err)
	}

	return nil
}

// IncrementWordCount applies a relative word-count delta. The increment
// happens in SQL, not read-modify-write, so concurrent chapter edits on the
// same book commute.
func (r *PostgresBookRepository) IncrementWordCount(ctx context.Context, bookID string, delta int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET word_count = word_count + $1, updated_at = now()
		WHERE id = $2
	`, r.tables.Books)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, delta, bookID)
	if err != nil {
		return fmt.Errorf("increment book word count: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", bookID, domain.ErrNotFound)
	}

	return nil
}

// escapeLike escapes ILIKE metacharacters so user query text matches
// literally: a search for "100%" finds books containing "100%", not every
// book. Postgres treats backslash as the default LIKE escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// sortColumns whitelists the public listing sort fields. Anything else never
// reaches the repository (the service normalizes first), but the map is the
// final word on what gets interpolated.
var sortColumns = map[string]string{
	models.SortByTitle:     "b.title",
	models.SortByCreatedAt: "b.created_at",
	models.SortByUpdatedAt: "b.updated_at",
	models.SortByWordCount: "b.word_count",
}

// SearchPublic returns one page of the public catalog
func (r *PostgresBookRepository) SearchPublic(ctx context.Context, opts *models.SearchOptions) ([]models.BookListing, error) {
	column, ok := sortColumns[opts.SortField]
	if !ok {
		column = sortColumns[models.SortByUpdatedAt]
	}
	direction := "DESC"
	if opts.SortDirection == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT b.id, b.title, b.description, b.is_public, b.cover_image, b.word_count,
		       b.author_id, b.series_id, b.created_at, b.updated_at,
		       u.username, u.name, s.name, COUNT(c.id)
		FROM %s b
		JOIN %s u ON u.id = b.author_id
		LEFT JOIN %s s ON s.id = b.series_id
		LEFT JOIN %s c ON c.book_id = b.id
		WHERE b.is_public = TRUE
		  AND (b.title ILIKE $1 OR u.name ILIKE $1 OR s.name ILIKE $1)
		GROUP BY b.id, u.username, u.name, s.name
		ORDER BY %s %s
		LIMIT $2 OFFSET $3
	`, r.tables.Books, r.tables.Users, r.tables.Series, r.tables.Chapters, column, direction)

	pattern := "%" + escapeLike(opts.Query) + "%"
	offset := (opts.Page - 1) * config.PublicBooksPageSize

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, pattern, config.PublicBooksPageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("search public books: %w", err)
	}
	defer rows.Close()

	var listings []models.BookListing
	for rows.Next() {
		var listing models.BookListing
		err := rows.Scan(
			&listing.ID,
			&listing.Title,
			&listing.Description,
			&listing.IsPublic,
			&listing.CoverImage,
			&listing.WordCount,
			&listing.AuthorID,
			&listing.SeriesID,
			&listing.CreatedAt,
			&listing.UpdatedAt,
			&listing.Author.Username,
			&listing.Author.Name,
			&listing.SeriesName,
			&listing.ChapterCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan book listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book listings: %w", err)
	}

	if listings == nil {
		listings = []models.BookListing{}
	}

	return listings, nil
}

// CountPublic counts public books matching the query text
func (r *PostgresBookRepository) CountPublic(ctx context.Context, queryText string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s b
		JOIN %s u ON u.id = b.author_id
		LEFT JOIN %s s ON s.id = b.series_id
		WHERE b.is_public = TRUE
		  AND (b.title ILIKE $1 OR u.name ILIKE $1 OR s.name ILIKE $1)
	`, r.tables.Books, r.tables.Users, r.tables.Series)

	pattern := "%" + escapeLike(queryText) + "%"

	var count int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, pattern).Scan(&count); err != nil {
		return 0, fmt.Errorf("count public books: %w", err)
	}

	return count, nil
}
