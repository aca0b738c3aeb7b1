package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/pkg/validator"
	"github.com/2023189465/smaforms-sub001/internal/repository"
	"github.com/2023189465/smaforms-sub001/internal/service/auth"
	"github.com/2023189465/smaforms-sub001/internal/service/email"
)

type Service interface {
	Create(ctx context.Context, actor domain.Actor, input domain.CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByRole(ctx context.Context, actor domain.Actor, role string) ([]domain.User, error)
	List(ctx context.Context, actor domain.Actor, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error)
}

type service struct {
	userRepo repository.UserRepository
	emailSvc email.Service
	logger   *zap.Logger
}

func NewService(userRepo repository.UserRepository, emailSvc email.Service, logger *zap.Logger) Service {
	return &service{
		userRepo: userRepo,
		emailSvc: emailSvc,
		logger:   logger.Named("user"),
	}
}

// Create provisions an account. Only admin can do this; there is no
// self-registration.
func (s *service) Create(ctx context.Context, actor domain.Actor, input domain.CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Role = domain.Role(strings.ToLower(string(input.Role)))
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("email", "unique", "is already registered")
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Role:         input.Role,
		Department:   input.Department,
		Position:     input.Position,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)), zap.Int64("by", actor.ID))

	if s.emailSvc != nil {
		go func(toEmail, name, role string) {
			if err := s.emailSvc.SendAccountCreatedEmail(context.Background(), toEmail, name, role); err != nil {
				s.logger.Warn("failed to send account email", zap.String("to", toEmail), zap.Error(err))
			}
		}(user.Email, user.FullName, string(user.Role))
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *service) ListByRole(ctx context.Context, actor domain.Actor, role string) ([]domain.User, error) {
	if !actor.Allows(domain.RoleHR) {
		return nil, domain.ErrForbidden
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, domain.NewValidationError("role", "oneof", "must be one of: staff hod hr gm admin")
	}
	return s.userRepo.ListByRole(ctx, r)
}

func (s *service) List(ctx context.Context, actor domain.Actor, params domain.PaginationParams) (domain.PaginatedResponse[domain.User], error) {
	if !actor.IsAdmin() {
		return domain.PaginatedResponse[domain.User]{}, domain.ErrForbidden
	}
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.User]{}, err
	}
	return domain.NewPaginatedResponse(users, params, total), nil
}
