package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/mocks"
)

type fixture struct {
	svc          *service
	evalRepo     *mocks.EvaluationRepository
	trainingRepo *mocks.TrainingRepository
	userRepo     *mocks.UserRepository
	notifSvc     *mocks.NotificationService
}

var now = time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	f := &fixture{
		evalRepo:     new(mocks.EvaluationRepository),
		trainingRepo: new(mocks.TrainingRepository),
		userRepo:     new(mocks.UserRepository),
		notifSvc:     new(mocks.NotificationService),
	}
	svc := NewService(f.evalRepo, f.trainingRepo, new(mocks.HistoryRepository), f.userRepo, zap.NewNop())
	svc.SetNotificationService(f.notifSvc)
	f.svc = svc.(*service)
	f.svc.now = func() time.Time { return now }
	return f
}

var (
	owner = domain.Actor{ID: 5, Role: domain.RoleStaff}
	hr    = domain.Actor{ID: 20, Role: domain.RoleHR}
)

func submission(id *int64) domain.SubmitEvaluationInput {
	return domain.SubmitEvaluationInput{
		EvaluationID:    id,
		ContentRating:   4,
		DeliveryRating:  5,
		RelevanceRating: 3,
		KnowledgeGained: "Risk based audit planning",
		ApplicationPlan: "Apply to the next audit cycle",
		Suggestions:     "More case studies",
	}
}

func TestSubmit_RevisesTheSameRow(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := int64(42)
	submitter := &domain.User{ID: 5, FullName: "Siti"}

	f.evalRepo.On("GetByID", ctx, id).
		Return(&domain.Evaluation{ID: id, UserID: 5, Status: domain.EvaluationPending}, nil).Once()
	f.evalRepo.On("Update", ctx,
		mock.MatchedBy(func(e *domain.Evaluation) bool { return e.ID == id && e.Status == domain.EvaluationCompleted }),
		mock.MatchedBy(func(h *domain.EvaluationHistoryEntry) bool { return h.Action == domain.ActionSubmitted }),
	).Return(nil).Once()
	f.userRepo.On("GetByID", ctx, int64(5)).Return(submitter, nil).Once()
	f.notifSvc.On("NotifyEvaluationCompleted", ctx, mock.AnythingOfType("*domain.Evaluation"), submitter).Once()

	first, err := f.svc.Submit(ctx, owner, submission(&id))
	require.NoError(t, err)
	assert.Equal(t, id, first.ID)
	assert.Equal(t, domain.EvaluationCompleted, first.Status)
	assert.Equal(t, now, *first.CompletionDate)

	// second save of an already completed evaluation
	completedAt := now.Add(-time.Hour)
	f.evalRepo.On("GetByID", ctx, id).
		Return(&domain.Evaluation{ID: id, UserID: 5, Status: domain.EvaluationCompleted, CompletionDate: &completedAt}, nil).Once()
	f.evalRepo.On("Update", ctx,
		mock.MatchedBy(func(e *domain.Evaluation) bool { return e.ID == id }),
		mock.MatchedBy(func(h *domain.EvaluationHistoryEntry) bool { return h.Action == domain.ActionRevised }),
	).Return(nil).Once()

	second, err := f.svc.Submit(ctx, owner, submission(&id))
	require.NoError(t, err)
	assert.Equal(t, id, second.ID)
	assert.Equal(t, completedAt, *second.CompletionDate)

	f.evalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.evalRepo.AssertExpectations(t)
	f.notifSvc.AssertNumberOfCalls(t, "NotifyEvaluationCompleted", 1)
}

func TestSubmit_OtherUsersEvaluation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := int64(42)
	f.evalRepo.On("GetByID", ctx, id).Return(&domain.Evaluation{ID: id, UserID: 99}, nil).Once()

	_, err := f.svc.Submit(ctx, owner, submission(&id))

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSubmit_NewForTraining(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	trainingID := int64(7)
	input := submission(nil)
	input.TrainingID = &trainingID

	f.evalRepo.On("FindByUserAndTraining", ctx, int64(5), trainingID).Return(nil, nil).Once()
	f.trainingRepo.On("GetByID", ctx, trainingID).Return(&domain.TrainingApplication{
		ID: 7, UserID: 5, ProgrammeTitle: "Internal Audit", StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Once()
	f.evalRepo.On("Create", ctx,
		mock.MatchedBy(func(e *domain.Evaluation) bool {
			return *e.ProgrammeTitle == "Internal Audit" && *e.TrainingID == trainingID
		}),
		mock.Anything,
	).Return(nil).Once()
	f.userRepo.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5}, nil).Once()
	f.notifSvc.On("NotifyEvaluationCompleted", ctx, mock.Anything, mock.Anything).Once()

	e, err := f.svc.Submit(ctx, owner, input)

	require.NoError(t, err)
	assert.Equal(t, domain.EvaluationCompleted, e.Status)
	f.evalRepo.AssertExpectations(t)
}

func TestSubmit_SomeoneElsesTraining(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	trainingID := int64(8)
	input := submission(nil)
	input.TrainingID = &trainingID

	f.evalRepo.On("FindByUserAndTraining", ctx, int64(5), trainingID).Return(nil, nil).Once()
	f.trainingRepo.On("GetByID", ctx, trainingID).Return(&domain.TrainingApplication{
		ID: 8, UserID: 99, ProgrammeTitle: "Leadership",
	}, nil).Once()

	_, err := f.svc.Submit(ctx, owner, input)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	f.evalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.notifSvc.AssertNotCalled(t, "NotifyEvaluationCompleted", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_RatingsOutOfRange(t *testing.T) {
	f := newFixture()
	input := submission(nil)
	input.ContentRating = 6

	_, err := f.svc.Submit(context.Background(), owner, input)

	assert.True(t, domain.IsValidation(err))
}

func TestAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("hr creates a pending evaluation", func(t *testing.T) {
		f := newFixture()
		title := "Fire Safety"
		due := "2025-05-30"
		f.userRepo.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5}, nil).Once()
		f.evalRepo.On("Create", ctx,
			mock.MatchedBy(func(e *domain.Evaluation) bool { return e.Status == domain.EvaluationPending && e.UserID == 5 }),
			mock.MatchedBy(func(h *domain.EvaluationHistoryEntry) bool { return h.Action == domain.ActionAssigned }),
		).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Evaluation).ID = 50
		}).Return(nil).Once()
		f.notifSvc.On("NotifyUser", ctx, int64(5), domain.AppEvaluation, int64(50),
			"Please complete the training evaluation for Fire Safety by 2025-05-30", domain.NotifReview).Return(nil).Once()

		e, err := f.svc.Assign(ctx, hr, domain.AssignEvaluationInput{UserID: 5, ProgrammeTitle: &title, DueDate: &due})

		require.NoError(t, err)
		assert.Equal(t, domain.EvaluationPending, e.Status)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("staff cannot assign", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Assign(ctx, owner, domain.AssignEvaluationInput{UserID: 6})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture()
		f.userRepo.On("GetByID", ctx, int64(404)).Return(nil, nil).Once()

		_, err := f.svc.Assign(ctx, hr, domain.AssignEvaluationInput{UserID: 404})

		assert.True(t, domain.IsValidation(err))
	})
}

func TestOverrideStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("legacy submitted literal is accepted", func(t *testing.T) {
		f := newFixture()
		f.evalRepo.On("GetByID", ctx, int64(42)).Return(&domain.Evaluation{ID: 42, UserID: 5, Status: domain.EvaluationPending}, nil).Once()
		f.evalRepo.On("UpdateStatus", ctx, int64(42), domain.EvaluationPending, domain.EvaluationCompleted, now, mock.Anything).Return(nil).Once()
		f.userRepo.On("GetByID", ctx, int64(5)).Return(&domain.User{ID: 5}, nil).Once()
		f.notifSvc.On("NotifyEvaluationCompleted", ctx, mock.Anything, mock.Anything).Once()

		e, err := f.svc.OverrideStatus(ctx, hr, 42, domain.EvaluationStatusInput{Status: "submitted"})

		require.NoError(t, err)
		assert.Equal(t, domain.EvaluationCompleted, e.Status)
	})

	t.Run("already completed", func(t *testing.T) {
		f := newFixture()
		f.evalRepo.On("GetByID", ctx, int64(42)).Return(&domain.Evaluation{ID: 42, Status: domain.EvaluationCompleted}, nil).Once()

		_, err := f.svc.OverrideStatus(ctx, hr, 42, domain.EvaluationStatusInput{Status: domain.EvaluationCompleted})

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestGet_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.evalRepo.On("GetByID", ctx, int64(42)).Return(&domain.Evaluation{ID: 42, UserID: 5}, nil)

	_, err := f.svc.Get(ctx, domain.Actor{ID: 6, Role: domain.RoleHOD}, 42)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Get(ctx, hr, 42)
	assert.NoError(t, err)
}
