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

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, role, department, position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.Role, user.Department, user.Position, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return fmt.Errorf("email %s: %w", user.Email, domain.NewValidationError("email", "unique", "is already registered"))
	}
	return err
}

// GetByID and GetByEmail return nil, nil when no row matches.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE LOWER(email) = LOWER($1)`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

// ListByRole matches the role column case-insensitively; older rows were
// written with capitalised role names.
func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE LOWER(role) = LOWER($1) AND is_active = true ORDER BY id`
	err := r.db.SelectContext(ctx, &users, query, string(role))
	return users, err
}

func (r *userRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		return nil, 0, err
	}

	var users []domain.User
	query := `SELECT * FROM users ORDER BY full_name, id LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &users, query, params.Limit(), params.Offset())
	return users, total, err
}
