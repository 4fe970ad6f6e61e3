package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"worldlib/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds the catalog table names
type TableNames struct {
	Users     string
	Series    string
	Books     string
	Chapters  string
	Bookmarks string
	Reviews   string
}

// NewTableNames returns the catalog table names. They match the embedded
// migrations, which are the single owner of the schema; the struct exists so
// every query names tables through one place.
func NewTableNames() *TableNames {
	return &TableNames{
		Users:     "users",
		Series:    "series",
		Books:     "books",
		Chapters:  "chapters",
		Bookmarks: "bookmarks",
		Reviews:   "reviews",
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Port 6543 is the transaction-pooling PgBouncer port on Supabase-style
// hosting; it does not support prepared statements, so when it is detected the
// pool switches to QueryExecModeCacheDescribe (extended protocol without
// server-side prepared statements). An explicit default_query_exec_mode in the
// connection string takes precedence.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction;
// otherwise the pool. This lets repositories automatically participate in
// transactions started by the service layer.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
