package workflow

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

var (
	gcrSubmit = stage[domain.GCRStatus]{
		action: domain.ActionSubmitted,
		roles:  []domain.Role{domain.RoleStaff, domain.RoleHOD, domain.RoleHR, domain.RoleGM},
		from:   domain.GCRPendingSubmission,
	}
	gcrHR1 = stage[domain.GCRStatus]{
		action: domain.ActionHR1Verification,
		roles:  []domain.Role{domain.RoleHR},
		from:   domain.GCRPendingHR1,
	}
	gcrGM = stage[domain.GCRStatus]{
		action: domain.ActionGMDecision,
		roles:  []domain.Role{domain.RoleGM},
		from:   domain.GCRPendingGM,
	}
	gcrHR2 = stage[domain.GCRStatus]{
		action: domain.ActionHR2Recording,
		roles:  []domain.Role{domain.RoleHR},
		from:   domain.GCRPendingHR2,
	}
	gcrHR3 = stage[domain.GCRStatus]{
		action: domain.ActionLampiranA,
		roles:  []domain.Role{domain.RoleHR},
		from:   domain.GCRPendingHR3,
	}
	gcrGMFinal = stage[domain.GCRStatus]{
		action: domain.ActionGMFinalSignature,
		roles:  []domain.Role{domain.RoleGM},
		from:   domain.GCRPendingGMFinal,
	}
)

type GCRListInput struct {
	Status *domain.GCRStatus
	Year   *int
	Mine   bool
}

type GCRService interface {
	Submit(ctx context.Context, actor domain.Actor, input domain.SubmitGCRInput) (*domain.GCRApplication, error)
	Get(ctx context.Context, actor domain.Actor, id int64) (*domain.GCRApplication, error)
	List(ctx context.Context, actor domain.Actor, input GCRListInput, params domain.PaginationParams) (domain.PaginatedResponse[domain.GCRApplication], error)
	History(ctx context.Context, actor domain.Actor, id int64) ([]domain.HistoryEntry, error)
	HR1Verify(ctx context.Context, actor domain.Actor, id int64, input domain.HR1VerifyInput) (*domain.GCRApplication, error)
	GMDecision(ctx context.Context, actor domain.Actor, id int64, input domain.GCRGMDecisionInput) (*domain.GCRApplication, error)
	HR2Record(ctx context.Context, actor domain.Actor, id int64, input domain.HR2RecordInput) (*domain.GCRApplication, error)
	HR3Verify(ctx context.Context, actor domain.Actor, id int64, input domain.HR3VerifyInput) (*domain.GCRApplication, error)
	GMFinalize(ctx context.Context, actor domain.Actor, id int64, input domain.GMFinalizeInput) (*domain.GCRApplication, error)
	SetNotificationService(svc notification.Service)
}

type gcrService struct {
	gcrRepo     repository.GCRRepository
	historyRepo repository.HistoryRepository
	notifSvc    notification.Service
	logger      *zap.Logger
	now         func() time.Time
}

func NewGCRService(
	gcrRepo repository.GCRRepository,
	historyRepo repository.HistoryRepository,
	logger *zap.Logger,
) GCRService {
	return &gcrService{
		gcrRepo:     gcrRepo,
		historyRepo: historyRepo,
		logger:      logger.Named("gcr"),
		now:         time.Now,
	}
}

func (s *gcrService) SetNotificationService(svc notification.Service) {
	s.notifSvc = svc
}

func (s *gcrService) Submit(ctx context.Context, actor domain.Actor, input domain.SubmitGCRInput) (*domain.GCRApplication, error) {
	if err := gcrSubmit.authorize(actor); err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	next, err := gcrSubmit.target(domain.GCRPendingHR1)
	if err != nil {
		return nil, err
	}

	app := &domain.GCRApplication{
		UserID:        actor.ID,
		Year:          input.Year,
		ApplicantName: input.ApplicantName,
		Position:      input.Position,
		Department:    input.Department,
		DaysRequested: input.DaysRequested,
		Status:        next,
	}

	entry := gcrSubmit.historyEntry(domain.AppGCR, 0, actor, nil)
	if err := s.gcrRepo.Create(ctx, app, entry); err != nil {
		return nil, fmt.Errorf("failed to create gcr application: %w", err)
	}

	s.logger.Info("gcr application submitted", zap.Int64("id", app.ID), zap.Int64("user_id", actor.ID))
	s.notify(ctx, app, domain.GCRPendingSubmission, "")
	return app, nil
}

func (s *gcrService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.GCRApplication, error) {
	app, err := s.gcrRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, app.UserID) {
		return nil, domain.ErrForbidden
	}
	return app, nil
}

func (s *gcrService) List(ctx context.Context, actor domain.Actor, input GCRListInput, params domain.PaginationParams) (domain.PaginatedResponse[domain.GCRApplication], error) {
	filter := domain.GCRFilter{Status: input.Status, Year: input.Year}
	if input.Mine || !actor.Allows(domain.RoleHOD, domain.RoleHR, domain.RoleGM) {
		filter.UserID = &actor.ID
	}

	apps, total, err := s.gcrRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.GCRApplication]{}, err
	}
	return domain.NewPaginatedResponse(apps, params, total), nil
}

func (s *gcrService) History(ctx context.Context, actor domain.Actor, id int64) ([]domain.HistoryEntry, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByApplication(ctx, domain.AppGCR, id)
}

func (s *gcrService) load(ctx context.Context, st stage[domain.GCRStatus], actor domain.Actor, id int64) (*domain.GCRApplication, error) {
	if err := st.authorize(actor); err != nil {
		return nil, err
	}
	app, err := s.gcrRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := st.expect(app.Status); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *gcrService) HR1Verify(ctx context.Context, actor domain.Actor, id int64, input domain.HR1VerifyInput) (*domain.GCRApplication, error) {
	app, err := s.load(ctx, gcrHR1, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	next, err := gcrHR1.target(domain.GCRPendingGM)
	if err != nil {
		return nil, err
	}

	rec := domain.GCRHR1Record{
		From:       app.Status,
		To:         next,
		HRID:       actor.ID,
		Signature:  input.Signature,
		VerifiedAt: s.now(),
	}
	entry := gcrHR1.historyEntry(domain.AppGCR, id, actor, nil)
	if err := s.gcrRepo.ApplyHR1Verification(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.HR1ID = &actor.ID
	app.HR1Signature = &rec.Signature
	app.HR1Date = &rec.VerifiedAt

	s.notify(ctx, app, from, "")
	return app, nil
}

func (s *gcrService) GMDecision(ctx context.Context, actor domain.Actor, id int64, input domain.GCRGMDecisionInput) (*domain.GCRApplication, error) {
	app, err := s.load(ctx, gcrGM, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	var next domain.GCRStatus
	switch input.Decision {
	case domain.GMApproved:
		if input.DaysApproved == nil {
			return nil, domain.NewValidationError("gm_days_approved", "required", "is required when approving")
		}
		if *input.DaysApproved > app.DaysRequested {
			return nil, domain.NewValidationError("gm_days_approved", "ltefield",
				fmt.Sprintf("must not exceed the %d days requested", app.DaysRequested))
		}
		next = domain.GCRPendingHR2
	default:
		if nonEmpty(input.Comments) == nil {
			return nil, domain.NewValidationError("comments", "required", "is required when rejecting")
		}
		next = domain.GCRRejected
	}
	if next, err = gcrGM.target(next); err != nil {
		return nil, err
	}

	rec := domain.GCRGMDecisionRecord{
		From:      app.Status,
		To:        next,
		GMID:      actor.ID,
		Decision:  input.Decision,
		Comments:  nonEmpty(input.Comments),
		Signature: input.Signature,
		DecidedAt: s.now(),
	}
	if next == domain.GCRPendingHR2 {
		rec.DaysApproved = input.DaysApproved
	}
	entry := gcrGM.historyEntry(domain.AppGCR, id, actor, input.Comments)
	if err := s.gcrRepo.ApplyGMDecision(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.GMID = &actor.ID
	app.GMDecision = &rec.Decision
	app.GMDaysApproved = rec.DaysApproved
	app.GMComments = rec.Comments
	app.GMSignature = &rec.Signature
	app.GMDate = &rec.DecidedAt

	reason := ""
	if rec.Comments != nil {
		reason = *rec.Comments
	}
	s.notify(ctx, app, from, reason)
	return app, nil
}

func (s *gcrService) HR2Record(ctx context.Context, actor domain.Actor, id int64, input domain.HR2RecordInput) (*domain.GCRApplication, error) {
	app, err := s.load(ctx, gcrHR2, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	next, err := gcrHR2.target(domain.GCRPendingHR3)
	if err != nil {
		return nil, err
	}

	rec := domain.GCRHR2Record{
		From:       app.Status,
		To:         next,
		HRID:       actor.ID,
		Signature:  input.Signature,
		Comments:   nonEmpty(input.Comments),
		RecordedAt: s.now(),
	}
	entry := gcrHR2.historyEntry(domain.AppGCR, id, actor, input.Comments)
	if err := s.gcrRepo.ApplyHR2Recording(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.HR2ID = &actor.ID
	app.HR2Signature = &rec.Signature
	app.HR2Comments = rec.Comments
	app.HR2Date = &rec.RecordedAt

	s.notify(ctx, app, from, "")
	return app, nil
}

func (s *gcrService) HR3Verify(ctx context.Context, actor domain.Actor, id int64, input domain.HR3VerifyInput) (*domain.GCRApplication, error) {
	app, err := s.load(ctx, gcrHR3, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	remaining, err := domain.RemainingDays(*input.TotalDaysBalance, *input.GCDaysApproved)
	if err != nil {
		return nil, err
	}

	next, err := gcrHR3.target(domain.GCRPendingGMFinal)
	if err != nil {
		return nil, err
	}

	rec := domain.GCRHR3Record{
		From:             app.Status,
		To:               next,
		HRID:             actor.ID,
		EmployeeID:       input.EmployeeID,
		TotalDaysBalance: *input.TotalDaysBalance,
		GCDaysApproved:   *input.GCDaysApproved,
		RemainingDays:    remaining,
		Signature:        input.Signature,
		VerifiedAt:       s.now(),
	}
	entry := gcrHR3.historyEntry(domain.AppGCR, id, actor, nil)
	if err := s.gcrRepo.ApplyHR3Verification(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.HR3ID = &actor.ID
	app.EmployeeID = &rec.EmployeeID
	app.TotalDaysBalance = &rec.TotalDaysBalance
	app.GCDaysApproved = &rec.GCDaysApproved
	app.RemainingDays = &rec.RemainingDays
	app.HR3Signature = &rec.Signature
	app.HR3Date = &rec.VerifiedAt

	s.notify(ctx, app, from, "")
	return app, nil
}

func (s *gcrService) GMFinalize(ctx context.Context, actor domain.Actor, id int64, input domain.GMFinalizeInput) (*domain.GCRApplication, error) {
	app, err := s.load(ctx, gcrGMFinal, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validator.Struct(input); err != nil {
		return nil, err
	}

	finalized, err := parseDate("finalized_date", input.FinalizedDate)
	if err != nil {
		return nil, err
	}

	next, err := gcrGMFinal.target(domain.GCRApproved)
	if err != nil {
		return nil, err
	}

	rec := domain.GCRFinalRecord{
		From:          app.Status,
		To:            next,
		Signature:     input.Signature,
		FinalizedDate: finalized,
	}
	entry := gcrGMFinal.historyEntry(domain.AppGCR, id, actor, nil)
	if err := s.gcrRepo.ApplyGMFinalSignature(ctx, id, rec, entry); err != nil {
		return nil, err
	}

	from := app.Status
	app.Status = next
	app.GMFinalSignature = &rec.Signature
	app.FinalizedDate = &rec.FinalizedDate

	s.notify(ctx, app, from, "")
	return app, nil
}

func (s *gcrService) notify(ctx context.Context, app *domain.GCRApplication, from domain.GCRStatus, reason string) {
	if s.notifSvc == nil {
		return
	}
	s.notifSvc.NotifyGCRStatus(ctx, app, from, reason)
}
