package workflow

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/pkg/validator"
	"github.com/2023189465/smaforms-sub001/internal/repository"
	"github.com/2023189465/smaforms-sub001/internal/service/notification"
)

var (
	trainingSubmit = stage[domain.TrainingStatus]{
		action: domain.ActionSubmitted,
		roles:  []domain.Role{domain.RoleStaff, domain.RoleHOD, domain.RoleHR, domain.RoleGM},
		from:   domain.TrainingPendingSubmission,
	}
	trainingHOD = stage[domain.TrainingStatus]{
		action: domain.ActionHODDecision,
		roles:  []domain.Role{domain.RoleHOD},
		from:   domain.TrainingPendingHOD,
	}
	trainingHR = stage[domain.TrainingStatus]{
		action: domain.ActionHRReview,
		roles:  []domain.Role{domain.RoleHR},
		from:   domain.TrainingPendingHR,
	}
	trainingGM = stage[domain.TrainingStatus]{
		action: domain.ActionGMDecision,
		roles:  []domain.Role{domain.RoleGM},
		from:   domain.TrainingPendingGM,
	}
)

type TrainingListInput struct {
	Status *domain.TrainingStatus
	Mine   bool
}

type TrainingService interface {
	Submit(ctx context.Context, actor domain.Actor, input domain.SubmitTrainingInput) (*domain.TrainingApplication, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.TrainingApplication, error)
	List(ctx context.Context, actor domain.Actor, input TrainingListInput, params domain.PaginationParams) (domain.PaginatedResponse[domain.TrainingApplication], error)
	History(ctx context.Context, actor domain.Actor, id int64) ([]domain.HistoryEntry, error)
	HODDecision(ctx context.Context, actor domain.Actor, id int64, input domain.HODDecisionInput) (*domain.TrainingApplication, error)
	HRReview(ctx context.Context, actor domain.Actor, id int64, input domain.HRReviewInput) (*domain.TrainingApplication, error)
	GMDecision(ctx context.Context, actor domain.Actor, id int64, input domain.GMDecisionInput) (*domain.TrainingApplication, error)
	NextReferenceNumber(ctx context.Context, actor domain.Actor, year int) (string, error)
	SetNotificationService(svc notification.Service)
}

type trainingService struct {
	trainingRepo repository.TrainingRepository
	historyRepo  repository.HistoryRepository
	documentRepo repository.DocumentRepository
	notifSvc     notification.Service
	logger       *zap.Logger

	referencePrefix  string
	referencePattern *regexp.Regexp
	now              func() time.Time
}

func NewTrainingService(
	trainingRepo repository.TrainingRepository,
	historyRepo repository.HistoryRepository,
	documentRepo repository.DocumentRepository,
	referencePrefix string,
	logger *zap.Logger,
) TrainingService {
	return &trainingService{
		trainingRepo:     trainingRepo,
		historyRepo:      historyRepo,
		documentRepo:     documentRepo,
		logger:           logger.Named("training"),
		referencePrefix:  referencePrefix,
		referencePattern: regexp.MustCompile(`^` + regexp.QuoteMeta(referencePrefix) + `-\d{4}-\d+$`),
		now:              time.Now,
	}
}

func (s *trainingService) SetNotificationService(svc notification.Service) {
	s.notifSvc = svc
}

func (s *trainingService) Submit(ctx context.Context, actor domain.Actor, input domain.SubmitTrainingInput) (*domain.TrainingApplication, error) {
	if err := trainingSubmit.authorize(actor); err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	startDate, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, domain.NewValidationError("end_date", "gtefield", "must not be before start_date")
	}

	next, err := trainingSubmit.target(domain.TrainingPendingHOD)
	if err != nil {
		return nil, err
	}

	app := &domain.TrainingApplication{
		UserID:              actor.ID,
		ProgrammeTitle:      input.ProgrammeTitle,
		Venue:               input.Venue,
		Organiser:           input.Organiser,
		StartDate:           startDate,
		EndDate:             endDate,
		StartTime:           nonEmpty(input.StartTime),
		EndTime:             nonEmpty(input.EndTime),
		Fee:                 input.Fee,
		RequestorName:       input.RequestorName,
		RequestorPosition:   input.RequestorPosition,
		RequestorDepartment: input.RequestorDepartment,
		Justification:       input.Justification,
		Status:              next,
	}

	entry := trainingSubmit.historyEntry(domain.AppTraining, 0, actor, nil)
	if err := s.trainingRepo.Create(ctx, app, entry); err != nil {
		return nil, fmt.Errorf("failed to create training application: %w", err)
	}

	s.logger.Info("training application submitted", zap.Int64("id", app.ID), zap.Int64("user_id", actor.ID))
	s.notify(ctx, app, domain.TrainingPendingSubmission, "")
	return app, nil
}

func (s *trainingService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.TrainingApplication, error) {
	app, err := s.trainingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, app.UserID) {
		return nil, domain.ErrForbidden
	}

	docs, err := s.documentRepo.ListByApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	app.Documents = docs
	return app, nil
}

func (s *trainingService) List(ctx context.Context, actor domain.Actor, input TrainingListInput, params domain.PaginationParams) (domain.PaginatedResponse[domain.TrainingApplication], error) {
	filter := domain.TrainingFilter{Status: input.Status}
	if input.Mine || !actor.Allows(domain.RoleHOD, domain.RoleHR, domain.RoleGM) {
		filter.UserID = &actor.ID
	}

	apps, total, err := s.trainingRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.TrainingApplication]{}, err
	}
	return domain.NewPaginatedResponse(apps, params, total), nil
}

func (s *trainingService) History(ctx context.Context, actor domain.Actor, id int64) ([]domain.HistoryEntry, error) {
	app, err := s.trainingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, app.UserID) {
		return nil, domain.ErrForbidden
	}
	return s.historyRepo.ListByApplication(ctx, domain.AppTraining, id)
}

// load fetches the application and checks that it is waiting on st.
func (s *trainingService) load(ctx context.Context, st stage[domain.TrainingStatus], actor domain.Actor, id int64) (*domain.TrainingApplication, error) {
	if err := st.authorize(actor); err != nil {
		return nil, err
	}
	app, err := s.trainingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := st.expect(app.Status); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *trainingService) HODDecision(ctx context.Context, actor domain.Actor, id int64, input domain.HODDecisionInput) (*domain.TrainingApplication, error) {
	app, err := s.load(ctx, trainingHOD, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	next := domain.TrainingRejected
	if input.Decision == domain.HODRecommended {
		next = domain.TrainingPendingHR
	}
	if next, err = trainingHOD.target(next); err != nil {
		return nil, err
	}

	rec := domain.HODDecisionRecord{
		From:      app.Status,
		To:        next,
		HODID:     actor.ID,
		Decision:  input.Decision,
		Comments:  input.Comments,
		DecidedAt: s.now(),
	}
	entry := trainingHOD.historyEntry(domain.AppTraining, id, actor, &input.Comments)
	if err := s.trainingRepo.ApplyHODDecision(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.HODID = &actor.ID
	app.HODDecision = &rec.Decision
	app.HODComments = &rec.Comments
	app.HODDate = &rec.DecidedAt

	s.notify(ctx, app, from, input.Comments)
	return app, nil
}

func (s *trainingService) HRReview(ctx context.Context, actor domain.Actor, id int64, input domain.HRReviewInput) (*domain.TrainingApplication, error) {
	app, err := s.load(ctx, trainingHR, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}
	if !s.referencePattern.MatchString(input.ReferenceNumber) {
		return nil, domain.NewValidationError("reference_number", "format",
			fmt.Sprintf("must look like %s-<year>-<sequence>", s.referencePrefix))
	}

	next, err := trainingHR.target(domain.TrainingPendingGM)
	if err != nil {
		return nil, err
	}

	rec := domain.HRReviewRecord{
		From:            app.Status,
		To:              next,
		HRID:            actor.ID,
		ReferenceNumber: input.ReferenceNumber,
		Comments:        &input.Comments,
		BudgetStatus:    input.BudgetStatus,
		BudgetComments:  nonEmpty(input.BudgetComments),
		CreditHours:     input.CreditHours,
		SignatureData:   input.SignatureData,
		ReviewedAt:      s.now(),
	}
	entry := trainingHR.historyEntry(domain.AppTraining, id, actor, &input.Comments)
	if err := s.trainingRepo.ApplyHRReview(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.ReferenceNumber = &rec.ReferenceNumber
	app.HRID = &actor.ID
	app.HRComments = rec.Comments
	app.BudgetStatus = &rec.BudgetStatus
	app.BudgetComments = rec.BudgetComments
	app.CreditHours = rec.CreditHours
	app.SignatureData = &rec.SignatureData
	app.HRDate = &rec.ReviewedAt

	s.notify(ctx, app, from, "")
	return app, nil
}

func (s *trainingService) GMDecision(ctx context.Context, actor domain.Actor, id int64, input domain.GMDecisionInput) (*domain.TrainingApplication, error) {
	app, err := s.load(ctx, trainingGM, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	gmDate := today(s.now())
	if input.GMDate != nil && *input.GMDate != "" {
		if gmDate, err = parseDate("gm_date", *input.GMDate); err != nil {
			return nil, err
		}
	}

	next := domain.TrainingRejected
	if input.Decision == domain.GMApproved {
		next = domain.TrainingApproved
	}
	if next, err = trainingGM.target(next); err != nil {
		return nil, err
	}

	rec := domain.GMDecisionRecord{
		From:     app.Status,
		To:       next,
		GMID:     actor.ID,
		Decision: input.Decision,
		Comments: nonEmpty(input.Comments),
		GMDate:   gmDate,
	}
	entry := trainingGM.historyEntry(domain.AppTraining, id, actor, input.Comments)
	if err := s.trainingRepo.ApplyGMDecision(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.GMID = &actor.ID
	app.GMDecision = &rec.Decision
	app.GMComments = rec.Comments
	app.GMDate = &rec.GMDate

	reason := ""
	if rec.Comments != nil {
		reason = *rec.Comments
	}
	s.notify(ctx, app, from, reason)
	return app, nil
}

// NextReferenceNumber suggests the reference HR would assign next. It is
// advisory; uniqueness is enforced when the review is written.
func (s *trainingService) NextReferenceNumber(ctx context.Context, actor domain.Actor, year int) (string, error) {
	if err := trainingHR.authorize(actor); err != nil {
		return "", err
	}
	if year == 0 {
		year = s.now().Year()
	}

	seq, err := s.trainingRepo.LatestReferenceSequence(ctx, s.referencePrefix, year)
	if err != nil {
		return "", fmt.Errorf("failed to read reference sequence: %w", err)
	}
	return fmt.Sprintf("%s-%d-%03d", s.referencePrefix, year, seq+1), nil
}

func (s *trainingService) notify(ctx context.Context, app *domain.TrainingApplication, from domain.TrainingStatus, reason string) {
	if s.notifSvc == nil {
		return
	}
	s.notifSvc.NotifyTrainingStatus(ctx, app, from, reason)
}
