package evaluation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/pkg/validator"
	"github.com/2023189465/smaforms-sub001/internal/repository"
	"github.com/2023189465/smaforms-sub001/internal/service/notification"
)

const dateLayout = "2006-01-02"

type ListInput struct {
	Status *domain.EvaluationStatus
	Mine   bool
}

type Service interface {
	Submit(ctx context.Context, actor domain.Actor, input domain.SubmitEvaluationInput) (*domain.Evaluation, error)
	Assign(ctx context.Context, actor domain.Actor, input domain.AssignEvaluationInput) (*domain.Evaluation, error)
	OverrideStatus(ctx context.Context, actor domain.Actor, id int64, input domain.EvaluationStatusInput) (*domain.Evaluation, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Evaluation, error)
	List(ctx context.Context, actor domain.Actor, input ListInput, params domain.PaginationParams) (domain.PaginatedResponse[domain.Evaluation], error)
	History(ctx context.Context, actor domain.Actor, id int64) ([]domain.EvaluationHistoryEntry, error)
	SetNotificationService(svc notification.Service)
}

type service struct {
	evalRepo     repository.EvaluationRepository
	trainingRepo repository.TrainingRepository
	historyRepo  repository.HistoryRepository
	userRepo     repository.UserRepository
	notifSvc     notification.Service
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	evalRepo repository.EvaluationRepository,
	trainingRepo repository.TrainingRepository,
	historyRepo repository.HistoryRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) Service {
	return &service{
		evalRepo:     evalRepo,
		trainingRepo: trainingRepo,
		historyRepo:  historyRepo,
		userRepo:     userRepo,
		logger:       logger.Named("evaluation"),
		now:          time.Now,
	}
}

func (s *service) SetNotificationService(svc notification.Service) {
	s.notifSvc = svc
}

// Submit stores a complete evaluation. An evaluation_id, or an existing
// evaluation of the same training by the same user, is revised in place;
// otherwise a new row is created.
func (s *service) Submit(ctx context.Context, actor domain.Actor, input domain.SubmitEvaluationInput) (*domain.Evaluation, error) {
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	programmeDate, err := parseOptionalDate("programme_date", input.ProgrammeDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.findExisting(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	e := existing
	if e == nil {
		e = &domain.Evaluation{UserID: actor.ID, TrainingID: input.TrainingID}
		if err := s.seedFromTraining(ctx, actor, e); err != nil {
			return nil, err
		}
	}
	firstCompletion := e.Status != domain.EvaluationCompleted

	if input.ProgrammeTitle != nil && *input.ProgrammeTitle != "" {
		e.ProgrammeTitle = input.ProgrammeTitle
	}
	if programmeDate != nil {
		e.ProgrammeDate = programmeDate
	}
	e.ContentRating = &input.ContentRating
	e.DeliveryRating = &input.DeliveryRating
	e.RelevanceRating = &input.RelevanceRating
	e.KnowledgeGained = &input.KnowledgeGained
	e.ApplicationPlan = &input.ApplicationPlan
	e.Suggestions = &input.Suggestions
	e.Status = domain.EvaluationCompleted
	e.SubmittedDate = &now
	if e.CompletionDate == nil {
		e.CompletionDate = &now
	}

	entry := &domain.EvaluationHistoryEntry{Action: domain.ActionSubmitted, PerformedBy: actor.ID}
	if existing == nil {
		err = s.evalRepo.Create(ctx, e, entry)
	} else {
		if !firstCompletion {
			entry.Action = domain.ActionRevised
		}
		err = s.evalRepo.Update(ctx, e, entry)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	s.logger.Info("evaluation submitted",
		zap.Int64("id", e.ID),
		zap.Int64("user_id", actor.ID),
		zap.Bool("first_completion", firstCompletion))

	if firstCompletion {
		s.notifyCompleted(ctx, e)
	}
	return e, nil
}

func (s *service) findExisting(ctx context.Context, actor domain.Actor, input domain.SubmitEvaluationInput) (*domain.Evaluation, error) {
	if input.EvaluationID != nil {
		e, err := s.evalRepo.GetByID(ctx, *input.EvaluationID)
		if err != nil {
			return nil, err
		}
		if e.UserID != actor.ID {
			return nil, domain.ErrForbidden
		}
		return e, nil
	}

	if input.TrainingID != nil {
		return s.evalRepo.FindByUserAndTraining(ctx, actor.ID, *input.TrainingID)
	}
	return nil, nil
}

// seedFromTraining copies the programme title and start date from the
// linked training application, when there is one. Only the applicant, HR
// or admin may link an application.
func (s *service) seedFromTraining(ctx context.Context, actor domain.Actor, e *domain.Evaluation) error {
	if e.TrainingID == nil {
		return nil
	}
	app, err := s.trainingRepo.GetByID(ctx, *e.TrainingID)
	if err != nil {
		return fmt.Errorf("training %d: %w", *e.TrainingID, err)
	}
	if app.UserID != actor.ID && !actor.Allows(domain.RoleHR) {
		return domain.ErrForbidden
	}
	title := app.ProgrammeTitle
	date := app.StartDate
	e.ProgrammeTitle = &title
	e.ProgrammeDate = &date
	return nil
}

func (s *service) Assign(ctx context.Context, actor domain.Actor, input domain.AssignEvaluationInput) (*domain.Evaluation, error) {
	if !actor.Allows(domain.RoleHR) {
		return nil, domain.ErrForbidden
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	dueDate, err := parseOptionalDate("due_date", input.DueDate)
	if err != nil {
		return nil, err
	}

	assignee, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, domain.NewValidationError("user_id", "exists", "does not match a user")
	}

	e := &domain.Evaluation{
		UserID:     input.UserID,
		TrainingID: input.TrainingID,
		Status:     domain.EvaluationPending,
		DueDate:    dueDate,
	}
	if err := s.seedFromTraining(ctx, actor, e); err != nil {
		return nil, err
	}
	if input.ProgrammeTitle != nil && *input.ProgrammeTitle != "" {
		e.ProgrammeTitle = input.ProgrammeTitle
	}

	entry := &domain.EvaluationHistoryEntry{Action: domain.ActionAssigned, PerformedBy: actor.ID}
	if err := s.evalRepo.Create(ctx, e, entry); err != nil {
		return nil, fmt.Errorf("failed to assign evaluation: %w", err)
	}

	if s.notifSvc != nil {
		message := fmt.Sprintf("Please complete the training evaluation for %s", e.Title())
		if e.DueDate != nil {
			message += " by " + e.DueDate.Format(dateLayout)
		}
		if err := s.notifSvc.NotifyUser(ctx, e.UserID, domain.AppEvaluation, e.ID, message, domain.NotifReview); err != nil {
			s.logger.Error("failed to notify assignee", zap.Int64("evaluation_id", e.ID), zap.Error(err))
		}
	}
	return e, nil
}

// OverrideStatus lets HR mark a pending evaluation completed without a
// full submission.
func (s *service) OverrideStatus(ctx context.Context, actor domain.Actor, id int64, input domain.EvaluationStatusInput) (*domain.Evaluation, error) {
	if !actor.Allows(domain.RoleHR) {
		return nil, domain.ErrForbidden
	}
	input.Status = domain.ParseEvaluationStatus(string(input.Status))
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	e, err := s.evalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.Status != domain.EvaluationPending {
		return nil, domain.InvalidState(string(domain.EvaluationPending), string(e.Status))
	}

	now := s.now()
	entry := &domain.EvaluationHistoryEntry{
		Action:      domain.ActionStatusOverride,
		PerformedBy: actor.ID,
		Comments:    input.Comments,
	}
	if err := s.evalRepo.UpdateStatus(ctx, id, e.Status, input.Status, now, entry); err != nil {
		return nil, err
	}

	e.Status = input.Status
	e.CompletionDate = &now
	s.notifyCompleted(ctx, e)
	return e, nil
}

func (s *service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Evaluation, error) {
	e, err := s.evalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.UserID != actor.ID && !actor.Allows(domain.RoleHR) {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, input ListInput, params domain.PaginationParams) (domain.PaginatedResponse[domain.Evaluation], error) {
	filter := domain.EvaluationFilter{Status: input.Status}
	if input.Mine || !actor.Allows(domain.RoleHR) {
		filter.UserID = &actor.ID
	}

	items, total, err := s.evalRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Evaluation]{}, err
	}
	return domain.NewPaginatedResponse(items, params, total), nil
}

func (s *service) History(ctx context.Context, actor domain.Actor, id int64) ([]domain.EvaluationHistoryEntry, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByEvaluation(ctx, id)
}

func (s *service) notifyCompleted(ctx context.Context, e *domain.Evaluation) {
	if s.notifSvc == nil {
		return
	}
	submitter, err := s.userRepo.GetByID(ctx, e.UserID)
	if err != nil {
		s.logger.Warn("failed to load evaluation submitter", zap.Int64("user_id", e.UserID), zap.Error(err))
	}
	s.notifSvc.NotifyEvaluationCompleted(ctx, e, submitter)
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, domain.NewValidationError(field, "datetime", "must match the format "+dateLayout)
	}
	return &t, nil
}
