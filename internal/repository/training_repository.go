package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type TrainingRepository interface {
	Create(ctx context.Context, app *domain.TrainingApplication, entry *domain.HistoryEntry) error
	GetByID(ctx context.Context, id int64) (*domain.TrainingApplication, error)
	List(ctx context.Context, filter domain.TrainingFilter, params domain.PaginationParams) ([]domain.TrainingApplication, int64, error)
	ListAll(ctx context.Context, filter domain.TrainingFilter) ([]domain.TrainingApplication, error)
	CountByStatus(ctx context.Context, userID *int64) (map[domain.TrainingStatus]int64, error)
	LatestReferenceSequence(ctx context.Context, prefix string, year int) (int, error)
	ApplyHODDecision(ctx context.Context, id int64, rec domain.HODDecisionRecord, entry *domain.HistoryEntry) error
	ApplyHRReview(ctx context.Context, id int64, rec domain.HRReviewRecord, entry *domain.HistoryEntry) error
	ApplyGMDecision(ctx context.Context, id int64, rec domain.GMDecisionRecord, entry *domain.HistoryEntry) error
}

type trainingRepository struct {
	db *sqlx.DB
}

func NewTrainingRepository(db *sqlx.DB) TrainingRepository {
	return &trainingRepository{db: db}
}

func (r *trainingRepository) Create(ctx context.Context, app *domain.TrainingApplication, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO training_applications (
				user_id, programme_title, venue, organiser, start_date, end_date, start_time, end_time, fee,
				requestor_name, requestor_position, requestor_department, justification, status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			app.UserID, app.ProgrammeTitle, app.Venue, app.Organiser, app.StartDate, app.EndDate,
			app.StartTime, app.EndTime, app.Fee, app.RequestorName, app.RequestorPosition,
			app.RequestorDepartment, app.Justification, app.Status,
		).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert training application: %w", err)
		}

		entry.ApplicationID = app.ID
		return insertHistory(ctx, tx, entry)
	})
}

func (r *trainingRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingApplication, error) {
	var app domain.TrainingApplication
	query := `SELECT * FROM training_applications WHERE id = $1`
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

func (r *trainingRepository) filterConditions(filter domain.TrainingFilter) *conditions {
	c := &conditions{}
	if filter.Status != nil {
		c.add("status = $%d", *filter.Status)
	}
	if filter.UserID != nil {
		c.add("user_id = $%d", *filter.UserID)
	}
	return c
}

func (r *trainingRepository) List(ctx context.Context, filter domain.TrainingFilter, params domain.PaginationParams) ([]domain.TrainingApplication, int64, error) {
	c := r.filterConditions(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM training_applications` + c.where()
	if err := r.db.GetContext(ctx, &total, countQuery, c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params)
	query := `SELECT * FROM training_applications` + c.where() + ` ORDER BY created_at DESC` + limit

	var apps []domain.TrainingApplication
	err := r.db.SelectContext(ctx, &apps, query, args...)
	return apps, total, err
}

func (r *trainingRepository) ListAll(ctx context.Context, filter domain.TrainingFilter) ([]domain.TrainingApplication, error) {
	c := r.filterConditions(filter)
	query := `SELECT * FROM training_applications` + c.where() + ` ORDER BY created_at`

	var apps []domain.TrainingApplication
	err := r.db.SelectContext(ctx, &apps, query, c.args...)
	return apps, err
}

func (r *trainingRepository) CountByStatus(ctx context.Context, userID *int64) (map[domain.TrainingStatus]int64, error) {
	c := &conditions{}
	if userID != nil {
		c.add("user_id = $%d", *userID)
	}

	var rows []struct {
		Status domain.TrainingStatus `db:"status"`
		Total  int64                 `db:"total"`
	}
	query := `SELECT status, COUNT(*) AS total FROM training_applications` + c.where() + ` GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query, c.args...); err != nil {
		return nil, err
	}

	counts := make(map[domain.TrainingStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// LatestReferenceSequence returns the highest sequence already issued for
// the year, or 0 when none has been.
func (r *trainingRepository) LatestReferenceSequence(ctx context.Context, prefix string, year int) (int, error) {
	pattern := fmt.Sprintf("%s-%d-", prefix, year)
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(reference_number FROM $2::int) AS INTEGER)), 0)
		FROM training_applications
		WHERE reference_number LIKE $1::text || '%'
		  AND SUBSTRING(reference_number FROM $2::int) ~ '^[0-9]+$'`

	var seq int
	err := r.db.GetContext(ctx, &seq, query, pattern, len(pattern)+1)
	return seq, err
}

func (r *trainingRepository) ApplyHODDecision(ctx context.Context, id int64, rec domain.HODDecisionRecord, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE training_applications
			SET status = $3, hod_id = $4, hod_decision = $5, hod_comments = $6, hod_date = $7, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query,
			id, rec.From, rec.To, rec.HODID, rec.Decision, rec.Comments, rec.DecidedAt,
		); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}

func (r *trainingRepository) ApplyHRReview(ctx context.Context, id int64, rec domain.HRReviewRecord, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE training_applications
			SET status = $3, hr_id = $4, reference_number = $5, hr_comments = $6, budget_status = $7,
				budget_comments = $8, credit_hours = $9, signature_data = $10, hr_date = $11, updated_at = NOW()
			WHERE id = $1 AND status = $2 AND reference_number IS NULL`
		if err := guardedUpdate(ctx, tx, query,
			id, rec.From, rec.To, rec.HRID, rec.ReferenceNumber, rec.Comments, rec.BudgetStatus,
			rec.BudgetComments, rec.CreditHours, rec.SignatureData, rec.ReviewedAt,
		); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}

func (r *trainingRepository) ApplyGMDecision(ctx context.Context, id int64, rec domain.GMDecisionRecord, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE training_applications
			SET status = $3, gm_id = $4, gm_decision = $5, gm_comments = $6, gm_date = $7, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query,
			id, rec.From, rec.To, rec.GMID, rec.Decision, rec.Comments, rec.GMDate,
		); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}
