package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

// HistoryRepository reads the append-only trails. Rows are written by the
// workflow repositories inside their transition transactions.
type HistoryRepository interface {
	ListByApplication(ctx context.Context, appType domain.ApplicationType, appID int64) ([]domain.HistoryEntry, error)
	ListByEvaluation(ctx context.Context, evaluationID int64) ([]domain.EvaluationHistoryEntry, error)
}

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) ListByApplication(ctx context.Context, appType domain.ApplicationType, appID int64) ([]domain.HistoryEntry, error) {
	query := `
		SELECT
			h.*,
			u.full_name AS performer_name
		FROM application_history h
		LEFT JOIN users u ON h.performed_by = u.id
		WHERE h.application_type = $1 AND h.application_id = $2
		ORDER BY h.created_at, h.id`

	var entries []domain.HistoryEntry
	err := r.db.SelectContext(ctx, &entries, query, appType, appID)
	return entries, err
}

func (r *historyRepository) ListByEvaluation(ctx context.Context, evaluationID int64) ([]domain.EvaluationHistoryEntry, error) {
	query := `
		SELECT
			h.*,
			u.full_name AS performer_name
		FROM evaluation_history h
		LEFT JOIN users u ON h.performed_by = u.id
		WHERE h.evaluation_id = $1
		ORDER BY h.created_at, h.id`

	var entries []domain.EvaluationHistoryEntry
	err := r.db.SelectContext(ctx, &entries, query, evaluationID)
	return entries, err
}
