package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type EvaluationRepository interface {
	Create(ctx context.Context, e *domain.Evaluation, entry *domain.EvaluationHistoryEntry) error
	Update(ctx context.Context, e *domain.Evaluation, entry *domain.EvaluationHistoryEntry) error
	GetByID(ctx context.Context, id int64) (*domain.Evaluation, error)
	FindByUserAndTraining(ctx context.Context, userID, trainingID int64) (*domain.Evaluation, error)
	List(ctx context.Context, filter domain.EvaluationFilter, params domain.PaginationParams) ([]domain.Evaluation, int64, error)
	CountByStatus(ctx context.Context, userID *int64) (map[domain.EvaluationStatus]int64, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.EvaluationStatus, completedAt time.Time, entry *domain.EvaluationHistoryEntry) error
}

type evaluationRepository struct {
	db *sqlx.DB
}

func NewEvaluationRepository(db *sqlx.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, e *domain.Evaluation, entry *domain.EvaluationHistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO training_evaluations (
				user_id, training_id, programme_title, programme_date,
				content_rating, delivery_rating, relevance_rating,
				knowledge_gained, application_plan, suggestions,
				status, due_date, submitted_date, completion_date
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			e.UserID, e.TrainingID, e.ProgrammeTitle, e.ProgrammeDate,
			e.ContentRating, e.DeliveryRating, e.RelevanceRating,
			e.KnowledgeGained, e.ApplicationPlan, e.Suggestions,
			e.Status, e.DueDate, e.SubmittedDate, e.CompletionDate,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert evaluation: %w", err)
		}

		entry.EvaluationID = e.ID
		return insertEvaluationHistory(ctx, tx, entry)
	})
}

// Update rewrites a submission in place. The row must belong to e.UserID,
// otherwise ErrNotFound is returned and nothing is written.
func (r *evaluationRepository) Update(ctx context.Context, e *domain.Evaluation, entry *domain.EvaluationHistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE training_evaluations
			SET programme_title = COALESCE($3, programme_title),
				programme_date = COALESCE($4, programme_date),
				content_rating = $5, delivery_rating = $6, relevance_rating = $7,
				knowledge_gained = $8, application_plan = $9, suggestions = $10,
				status = $11, submitted_date = $12, completion_date = $13, updated_at = NOW()
			WHERE id = $1 AND user_id = $2
			RETURNING updated_at`

		err := tx.QueryRowxContext(ctx, query,
			e.ID, e.UserID, e.ProgrammeTitle, e.ProgrammeDate,
			e.ContentRating, e.DeliveryRating, e.RelevanceRating,
			e.KnowledgeGained, e.ApplicationPlan, e.Suggestions,
			e.Status, e.SubmittedDate, e.CompletionDate,
		).Scan(&e.UpdatedAt)
		if err != nil {
			return notFound(err)
		}

		entry.EvaluationID = e.ID
		return insertEvaluationHistory(ctx, tx, entry)
	})
}

func (r *evaluationRepository) GetByID(ctx context.Context, id int64) (*domain.Evaluation, error) {
	var e domain.Evaluation
	if err := r.db.GetContext(ctx, &e, `SELECT * FROM training_evaluations WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

// FindByUserAndTraining returns nil, nil when the user has no evaluation
// for that training yet.
func (r *evaluationRepository) FindByUserAndTraining(ctx context.Context, userID, trainingID int64) (*domain.Evaluation, error) {
	var e domain.Evaluation
	query := `
		SELECT * FROM training_evaluations
		WHERE user_id = $1 AND training_id = $2
		ORDER BY id
		LIMIT 1`
	err := r.db.GetContext(ctx, &e, query, userID, trainingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func evaluationConditions(filter domain.EvaluationFilter) *conditions {
	c := &conditions{}
	if filter.Status != nil {
		c.add("status = ANY($%d)", pq.Array(filter.Status.StoredValues()))
	}
	if filter.UserID != nil {
		c.add("user_id = $%d", *filter.UserID)
	}
	return c
}

func (r *evaluationRepository) List(ctx context.Context, filter domain.EvaluationFilter, params domain.PaginationParams) ([]domain.Evaluation, int64, error) {
	c := evaluationConditions(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM training_evaluations`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params)
	query := `SELECT * FROM training_evaluations` + c.where() + ` ORDER BY created_at DESC` + limit

	var evaluations []domain.Evaluation
	err := r.db.SelectContext(ctx, &evaluations, query, args...)
	return evaluations, total, err
}

func (r *evaluationRepository) CountByStatus(ctx context.Context, userID *int64) (map[domain.EvaluationStatus]int64, error) {
	c := &conditions{}
	if userID != nil {
		c.add("user_id = $%d", *userID)
	}

	var rows []struct {
		Status domain.EvaluationStatus `db:"status"`
		Total  int64                   `db:"total"`
	}
	query := `SELECT status, COUNT(*) AS total FROM training_evaluations` + c.where() + ` GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query, c.args...); err != nil {
		return nil, err
	}

	// "submitted" and "completed" rows fold into the same key on scan.
	counts := make(map[domain.EvaluationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] += row.Total
	}
	return counts, nil
}

func (r *evaluationRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.EvaluationStatus, completedAt time.Time, entry *domain.EvaluationHistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE training_evaluations
			SET status = $3, completion_date = $4, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query, id, from, to, completedAt); err != nil {
			return err
		}
		entry.EvaluationID = id
		return insertEvaluationHistory(ctx, tx, entry)
	})
}
