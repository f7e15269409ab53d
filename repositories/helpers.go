package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx, letting services
// compose repository calls into one transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// pqConstraint returns the violated constraint name when err is a pq
// unique or foreign key violation, or "" otherwise.
func pqConstraint(err error) string {
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case pqUniqueViolation, pqForeignKeyViolation:
			return pqErr.Constraint
		}
	}
	return ""
}
