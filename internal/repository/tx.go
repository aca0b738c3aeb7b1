package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

const (
	pqUniqueViolation     = "23505"
	referenceNumberUnique = "uq_training_reference_number"
)

// withTx runs fn in a transaction and commits when it returns nil.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// guardedUpdate executes an UPDATE whose WHERE clause pins the expected
// status. Zero affected rows means another request moved the row first.
func guardedUpdate(ctx context.Context, tx *sqlx.Tx, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return translateWriteError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrentModification
	}
	return nil
}

func insertHistory(ctx context.Context, tx *sqlx.Tx, entry *domain.HistoryEntry) error {
	query := `
		INSERT INTO application_history (application_type, application_id, action, performed_by, comments)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRowxContext(ctx, query,
		entry.ApplicationType, entry.ApplicationID, entry.Action, entry.PerformedBy, entry.Comments,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func insertEvaluationHistory(ctx context.Context, tx *sqlx.Tx, entry *domain.EvaluationHistoryEntry) error {
	query := `
		INSERT INTO evaluation_history (evaluation_id, action, performed_by, comments)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := tx.QueryRowxContext(ctx, query,
		entry.EvaluationID, entry.Action, entry.PerformedBy, entry.Comments,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert evaluation history: %w", err)
	}
	return nil
}

func translateWriteError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == referenceNumberUnique {
		return domain.ErrDuplicateReference
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// conditions accumulates WHERE fragments with positional placeholders.
type conditions struct {
	clauses []string
	args    []any
}

func (c *conditions) add(clause string, arg any) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	out := " WHERE " + c.clauses[0]
	for _, cl := range c.clauses[1:] {
		out += " AND " + cl
	}
	return out
}

// page appends LIMIT/OFFSET placeholders and returns the clause with the
// full argument list.
func (c *conditions) page(params domain.PaginationParams) (string, []any) {
	args := append(append([]any(nil), c.args...), params.Limit(), params.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
