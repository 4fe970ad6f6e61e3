package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation; the schema's (author_id, name) and (author_id, title)
// constraints surface through this code.
const uniqueViolationCode = "23505"

// IsPgDuplicateError reports whether err is a unique constraint violation.
// The catalog repositories translate these into domain.ConflictError.
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsPgNoRowsError reports whether err means the query matched no rows.
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
