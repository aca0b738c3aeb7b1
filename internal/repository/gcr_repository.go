package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type GCRRepository interface {
	Create(ctx context.Context, app *domain.GCRApplication, entry *domain.HistoryEntry) error
	GetByID(ctx context.Context, id int64) (*domain.GCRApplication, error)
	List(ctx context.Context, filter domain.GCRFilter, params domain.PaginationParams) ([]domain.GCRApplication, int64, error)
	ListAll(ctx context.Context, filter domain.GCRFilter) ([]domain.GCRApplication, error)
	CountByStatus(ctx context.Context, userID *int64) (map[domain.GCRStatus]int64, error)
	ApplyHR1Verification(ctx context.Context, id int64, rec domain.GCRHR1Record, entry *domain.HistoryEntry) error
	ApplyGMDecision(ctx context.Context, id int64, rec domain.GCRGMDecisionRecord, entry *domain.HistoryEntry) error
	ApplyHR2Recording(ctx context.Context, id int64, rec domain.GCRHR2Record, entry *domain.HistoryEntry) error
	ApplyHR3Verification(ctx context.Context, id int64, rec domain.GCRHR3Record, entry *domain.HistoryEntry) error
	ApplyGMFinalSignature(ctx context.Context, id int64, rec domain.GCRFinalRecord, entry *domain.HistoryEntry) error
}

type gcrRepository struct {
	db *sqlx.DB
}

func NewGCRRepository(db *sqlx.DB) GCRRepository {
	return &gcrRepository{db: db}
}

func (r *gcrRepository) Create(ctx context.Context, app *domain.GCRApplication, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO gcr_applications (user_id, year, applicant_name, position, department, days_requested, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			app.UserID, app.Year, app.ApplicantName, app.Position, app.Department, app.DaysRequested, app.Status,
		).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert gcr application: %w", err)
		}

		entry.ApplicationID = app.ID
		return insertHistory(ctx, tx, entry)
	})
}

func (r *gcrRepository) GetByID(ctx context.Context, id int64) (*domain.GCRApplication, error) {
	var app domain.GCRApplication
	query := `SELECT * FROM gcr_applications WHERE id = $1`
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		return nil, notFound(err)
	}
	return &app, nil
}

func (r *gcrRepository) filterConditions(filter domain.GCRFilter) *conditions {
	c := &conditions{}
	if filter.Status != nil {
		c.add("status = $%d", *filter.Status)
	}
	if filter.UserID != nil {
		c.add("user_id = $%d", *filter.UserID)
	}
	if filter.Year != nil {
		c.add("year = $%d", *filter.Year)
	}
	return c
}

func (r *gcrRepository) List(ctx context.Context, filter domain.GCRFilter, params domain.PaginationParams) ([]domain.GCRApplication, int64, error) {
	c := r.filterConditions(filter)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM gcr_applications`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params)
	query := `SELECT * FROM gcr_applications` + c.where() + ` ORDER BY created_at DESC` + limit

	var apps []domain.GCRApplication
	err := r.db.SelectContext(ctx, &apps, query, args...)
	return apps, total, err
}

func (r *gcrRepository) ListAll(ctx context.Context, filter domain.GCRFilter) ([]domain.GCRApplication, error) {
	c := r.filterConditions(filter)

	var apps []domain.GCRApplication
	err := r.db.SelectContext(ctx, &apps, `SELECT * FROM gcr_applications`+c.where()+` ORDER BY created_at`, c.args...)
	return apps, err
}

func (r *gcrRepository) CountByStatus(ctx context.Context, userID *int64) (map[domain.GCRStatus]int64, error) {
	c := &conditions{}
	if userID != nil {
		c.add("user_id = $%d", *userID)
	}

	var rows []struct {
		Status domain.GCRStatus `db:"status"`
		Total  int64            `db:"total"`
	}
	query := `SELECT status, COUNT(*) AS total FROM gcr_applications` + c.where() + ` GROUP BY status`
	if err := r.db.SelectContext(ctx, &rows, query, c.args...); err != nil {
		return nil, err
	}

	counts := make(map[domain.GCRStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *gcrRepository) ApplyHR1Verification(ctx context.Context, id int64, rec domain.GCRHR1Record, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE gcr_applications
			SET status = $3, hr1_id = $4, hr1_signature = $5, hr1_date = $6, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query, id, rec.From, rec.To, rec.HRID, rec.Signature, rec.VerifiedAt); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}

func (r *gcrRepository) ApplyGMDecision(ctx context.Context, id int64, rec domain.GCRGMDecisionRecord, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE gcr_applications
			SET status = $3, gm_id = $4, gm_decision = $5, gm_days_approved = $6, gm_comments = $7,
				gm_signature = $8, gm_date = $9, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query,
			id, rec.From, rec.To, rec.GMID, rec.Decision, rec.DaysApproved, rec.Comments, rec.Signature, rec.DecidedAt,
		); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}

func (r *gcrRepository) ApplyHR2Recording(ctx context.Context, id int64, rec domain.GCRHR2Record, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE gcr_applications
			SET status = $3, hr2_id = $4, hr2_signature = $5, hr2_comments = $6, hr2_date = $7, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query, id, rec.From, rec.To, rec.HRID, rec.Signature, rec.Comments, rec.RecordedAt); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}

func (r *gcrRepository) ApplyHR3Verification(ctx context.Context, id int64, rec domain.GCRHR3Record, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE gcr_applications
			SET status = $3, hr3_id = $4, employee_id = $5, total_days_balance = $6, gc_days_approved = $7,
				remaining_days = $8, hr3_signature = $9, hr3_date = $10, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query,
			id, rec.From, rec.To, rec.HRID, rec.EmployeeID, rec.TotalDaysBalance, rec.GCDaysApproved,
			rec.RemainingDays, rec.Signature, rec.VerifiedAt,
		); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}

func (r *gcrRepository) ApplyGMFinalSignature(ctx context.Context, id int64, rec domain.GCRFinalRecord, entry *domain.HistoryEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE gcr_applications
			SET status = $3, gm_final_signature = $4, finalized_date = $5, updated_at = NOW()
			WHERE id = $1 AND status = $2`
		if err := guardedUpdate(ctx, tx, query, id, rec.From, rec.To, rec.Signature, rec.FinalizedDate); err != nil {
			return err
		}
		return insertHistory(ctx, tx, entry)
	})
}
