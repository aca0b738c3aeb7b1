package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, application_type, application_id, message, notification_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_read, created_at`

	return r.db.QueryRowxContext(ctx, query,
		notif.UserID, notif.ApplicationType, notif.ApplicationID, notif.Message, notif.Kind,
	).Scan(&notif.ID, &notif.IsRead, &notif.CreatedAt)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	c := &conditions{}
	c.add("user_id = $%d", userID)
	if unreadOnly {
		c.add("is_read = $%d", false)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications`+c.where(), c.args...); err != nil {
		return nil, 0, err
	}

	limit, args := c.page(params)
	query := `SELECT * FROM notifications` + c.where() + ` ORDER BY created_at DESC, id DESC` + limit

	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications, query, args...)
	return notifications, total, err
}

// MarkAsRead only touches a row owned by userID. A foreign or missing id is
// reported as ErrNotFound so callers cannot probe other users' rows.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID int64) error {
	var exists bool
	query := `
		WITH updated AS (
			UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, NOW())
			WHERE id = $1 AND user_id = $2
			RETURNING id
		)
		SELECT EXISTS (SELECT 1 FROM updated)`
	if err := r.db.GetContext(ctx, &exists, query, id, userID); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE user_id = $1 AND is_read = false`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}
