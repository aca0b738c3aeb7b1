package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NotifyUser(ctx context.Context, userID int64, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind) error {
	args := m.Called(ctx, userID, appType, appID, message, kind)
	return args.Error(0)
}

func (m *NotificationService) NotifyRoleUsers(ctx context.Context, role domain.Role, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind) bool {
	args := m.Called(ctx, role, appType, appID, message, kind)
	return args.Bool(0)
}

func (m *NotificationService) NotifyTrainingStatus(ctx context.Context, app *domain.TrainingApplication, from domain.TrainingStatus, reason string) {
	m.Called(ctx, app, from, reason)
}

func (m *NotificationService) NotifyGCRStatus(ctx context.Context, app *domain.GCRApplication, from domain.GCRStatus, reason string) {
	m.Called(ctx, app, from, reason)
}

func (m *NotificationService) NotifyEvaluationCompleted(ctx context.Context, e *domain.Evaluation, submitter *domain.User) {
	m.Called(ctx, e, submitter)
}

func (m *NotificationService) List(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	args := m.Called(ctx, userID, unreadOnly, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Notification]), args.Error(1)
}

func (m *NotificationService) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) ClearAll(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
