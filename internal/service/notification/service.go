package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/repository"
	"github.com/2023189465/smaforms-sub001/internal/service/email"
)

type Service interface {
	NotifyUser(ctx context.Context, userID int64, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind) error
	NotifyRoleUsers(ctx context.Context, role domain.Role, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind) bool
	NotifyTrainingStatus(ctx context.Context, app *domain.TrainingApplication, from domain.TrainingStatus, reason string)
	NotifyGCRStatus(ctx context.Context, app *domain.GCRApplication, from domain.GCRStatus, reason string)
	NotifyEvaluationCompleted(ctx context.Context, e *domain.Evaluation, submitter *domain.User)

	List(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	ClearAll(ctx context.Context, userID int64) (int64, error)
}

type service struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	emailSvc  email.Service
	logger    *zap.Logger
}

// NewService wires the notification store. emailSvc may be nil, in which
// case no email copies are sent.
func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	emailSvc email.Service,
	logger *zap.Logger,
) Service {
	return &service{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
		logger:    logger.Named("notification"),
	}
}

func (s *service) NotifyUser(ctx context.Context, userID int64, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind) error {
	return s.notifyUser(ctx, userID, appType, appID, message, kind, subjectFor(kind))
}

func (s *service) notifyUser(ctx context.Context, userID int64, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind, subject string) error {
	notif := &domain.Notification{
		UserID:          userID,
		ApplicationType: appType,
		ApplicationID:   appID,
		Message:         message,
		Kind:            kind,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.emailSvc != nil {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("failed to load recipient for email", zap.Int64("user_id", userID), zap.Error(err))
			return nil
		}
		s.sendEmail(user, notif, subject)
	}
	return nil
}

// NotifyRoleUsers writes one notification per active user holding role.
// It reports false when nobody holds the role; that is logged and left to
// the caller, it never fails the surrounding operation.
func (s *service) NotifyRoleUsers(ctx context.Context, role domain.Role, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind) bool {
	return s.notifyRoleUsers(ctx, role, appType, appID, message, kind, subjectFor(kind))
}

func (s *service) notifyRoleUsers(ctx context.Context, role domain.Role, appType domain.ApplicationType, appID int64, message string, kind domain.NotificationKind, subject string) bool {
	users, err := s.userRepo.ListByRole(ctx, role)
	if err != nil {
		s.logger.Error("failed to load role recipients", zap.String("role", string(role)), zap.Error(err))
		return false
	}
	if len(users) == 0 {
		s.logger.Warn("no users hold role, notification skipped",
			zap.String("role", string(role)),
			zap.String("application_type", string(appType)),
			zap.Int64("application_id", appID))
		return false
	}

	for i := range users {
		user := &users[i]
		notif := &domain.Notification{
			UserID:          user.ID,
			ApplicationType: appType,
			ApplicationID:   appID,
			Message:         message,
			Kind:            kind,
		}
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			s.logger.Error("failed to create notification", zap.Int64("user_id", user.ID), zap.Error(err))
			continue
		}
		s.sendEmail(user, notif, subject)
	}
	return true
}

func (s *service) NotifyTrainingStatus(ctx context.Context, app *domain.TrainingApplication, from domain.TrainingStatus, reason string) {
	s.deliver(ctx, TrainingRecipients(app, from, reason), domain.AppTraining, app.ID, app.UserID)
}

func (s *service) NotifyGCRStatus(ctx context.Context, app *domain.GCRApplication, from domain.GCRStatus, reason string) {
	s.deliver(ctx, GCRRecipients(app, from, reason), domain.AppGCR, app.ID, app.UserID)
}

func (s *service) NotifyEvaluationCompleted(ctx context.Context, e *domain.Evaluation, submitter *domain.User) {
	name, dept := "A staff member", "unknown department"
	if submitter != nil {
		name = submitter.FullName
		if submitter.Department != nil && *submitter.Department != "" {
			dept = *submitter.Department
		}
	}

	message := fmt.Sprintf("%s (%s) completed the training evaluation for %s", name, dept, e.Title())
	for _, role := range hrAndAdmin {
		s.NotifyRoleUsers(ctx, role, domain.AppEvaluation, e.ID, message, domain.NotifSubmission)
	}
}

func (s *service) deliver(ctx context.Context, recipients []Recipient, appType domain.ApplicationType, appID, submitterID int64) {
	for _, r := range recipients {
		if r.IsSubmitter() {
			if err := s.notifyUser(ctx, submitterID, appType, appID, r.Message, r.Kind, r.EmailSubject()); err != nil {
				s.logger.Error("failed to notify submitter",
					zap.Int64("user_id", submitterID),
					zap.String("application_type", string(appType)),
					zap.Int64("application_id", appID),
					zap.Error(err))
			}
			continue
		}
		s.notifyRoleUsers(ctx, r.Role, appType, appID, r.Message, r.Kind, r.EmailSubject())
	}
}

func (s *service) sendEmail(user *domain.User, notif *domain.Notification, subject string) {
	if s.emailSvc == nil || user == nil || user.Email == "" {
		return
	}

	link := fmt.Sprintf("/%s/%d", notif.ApplicationType, notif.ApplicationID)
	go func(toEmail, name, message string) {
		ctx := context.Background()
		if err := s.emailSvc.SendNotificationEmail(ctx, toEmail, name, subject, message, link); err != nil {
			s.logger.Warn("failed to send notification email", zap.String("to", toEmail), zap.Error(err))
		}
	}(user.Email, user.FullName, notif.Message)
}

func subjectFor(kind domain.NotificationKind) string {
	switch kind {
	case domain.NotifSubmission:
		return "New application submitted"
	case domain.NotifReview:
		return "Application update"
	case domain.NotifApproval:
		return "Application approved"
	case domain.NotifRejection:
		return "Application rejected"
	default:
		return "Notification"
	}
}

func (s *service) List(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}
	return domain.NewPaginatedResponse(notifications, params, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) ClearAll(ctx context.Context, userID int64) (int64, error) {
	return s.notifRepo.DeleteAllByUser(ctx, userID)
}
