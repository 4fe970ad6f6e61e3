package catalog

import (
	"context"
	"fmt"

	models "worldlib/internal/domain/models/catalog"
	catalogRepo "worldlib/internal/domain/repositories/catalog"
	"worldlib/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStatsRepository implements the StatsRepository interface
type PostgresStatsRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(config *postgres.RepositoryConfig) catalogRepo.StatsRepository {
	return &PostgresStatsRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// AuthorStats aggregates whole-catalog counters for one author in a single
// round trip.
func (r *PostgresStatsRepository) AuthorStats(ctx context.Context, authorID string) (*models.AuthorStats, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %[1]s WHERE author_id = $1),
			(SELECT COUNT(*) FROM %[2]s WHERE author_id = $1),
			(SELECT COALESCE(SUM(word_count), 0) FROM %[2]s WHERE author_id = $1),
			(SELECT COUNT(*) FROM %[3]s bm JOIN %[1]s b ON b.id = bm.book_id WHERE b.author_id = $1),
			(SELECT COUNT(*) FROM %[4]s rv JOIN %[2]s c ON c.id = rv.chapter_id WHERE c.author_id = $1)
	`, r.tables.Books, r.tables.Chapters, r.tables.Bookmarks, r.tables.Reviews)

	var stats models.AuthorStats
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, authorID).Scan(
		&stats.BooksCount,
		&stats.ChaptersCount,
		&stats.WordsCount,
		&stats.LikesCount,
		&stats.CommentsCount,
	)
	if err != nil {
		return nil, fmt.Errorf("author stats: %w", err)
	}

	return &stats, nil
}
