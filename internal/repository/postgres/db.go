package postgres

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
)

// Querier abstracts *sql.DB and *sql.Tx so repositories can run inside or
// outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// validate checks decoded JSONB documents before they are trusted by the
// service layer. Records that fail are skipped on read, never returned.
var validate = validator.New()
