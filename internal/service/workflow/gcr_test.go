package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/mocks"
)

type gcrFixture struct {
	svc      *gcrService
	gcrRepo  *mocks.GCRRepository
	notifSvc *mocks.NotificationService
}

func newGCRFixture() *gcrFixture {
	f := &gcrFixture{
		gcrRepo:  new(mocks.GCRRepository),
		notifSvc: new(mocks.NotificationService),
	}
	svc := NewGCRService(f.gcrRepo, new(mocks.HistoryRepository), zap.NewNop())
	svc.SetNotificationService(f.notifSvc)
	f.svc = svc.(*gcrService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func gcrAt(status domain.GCRStatus) *domain.GCRApplication {
	return &domain.GCRApplication{ID: 4, UserID: 5, Year: 2025, ApplicantName: "Siti", DaysRequested: 5, Status: status}
}

func intPtr(n int) *int { return &n }

func TestGCRService_Submit(t *testing.T) {
	ctx := context.Background()
	f := newGCRFixture()

	f.gcrRepo.On("Create", ctx,
		mock.MatchedBy(func(a *domain.GCRApplication) bool { return a.Status == domain.GCRPendingHR1 && a.UserID == staff.ID }),
		mock.MatchedBy(func(e *domain.HistoryEntry) bool { return e.ApplicationType == domain.AppGCR }),
	).Return(nil).Once()
	f.notifSvc.On("NotifyGCRStatus", ctx, mock.Anything, domain.GCRPendingSubmission, "").Once()

	app, err := f.svc.Submit(ctx, staff, domain.SubmitGCRInput{
		Year: 2025, ApplicantName: "Siti", Position: "Clerk", Department: "Admin", DaysRequested: 5,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.GCRPendingHR1, app.Status)

	t.Run("zero days", func(t *testing.T) {
		_, err := f.svc.Submit(ctx, staff, domain.SubmitGCRInput{Year: 2025, ApplicantName: "Siti", Position: "Clerk", Department: "Admin"})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestGCRService_GMDecision(t *testing.T) {
	ctx := context.Background()

	t.Run("days above requested are rejected before persistence", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingGM), nil).Once()

		_, err := f.svc.GMDecision(ctx, gm, 4, domain.GCRGMDecisionInput{
			Decision: domain.GMApproved, DaysApproved: intPtr(6), Signature: "sig",
		})

		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "gm_days_approved", ve.Fields[0].Field)
		f.gcrRepo.AssertNotCalled(t, "ApplyGMDecision", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("approval needs days", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingGM), nil).Once()

		_, err := f.svc.GMDecision(ctx, gm, 4, domain.GCRGMDecisionInput{Decision: domain.GMApproved, Signature: "sig"})

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("rejection needs comments", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingGM), nil).Once()

		_, err := f.svc.GMDecision(ctx, gm, 4, domain.GCRGMDecisionInput{Decision: domain.GMRejected, Signature: "sig"})

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("approve fewer days than requested", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingGM), nil).Once()
		f.gcrRepo.On("ApplyGMDecision", ctx, int64(4),
			mock.MatchedBy(func(r domain.GCRGMDecisionRecord) bool {
				return r.To == domain.GCRPendingHR2 && *r.DaysApproved == 3
			}),
			mock.MatchedBy(func(e *domain.HistoryEntry) bool { return e.Action == domain.ActionGMDecision }),
		).Return(nil).Once()
		f.notifSvc.On("NotifyGCRStatus", ctx,
			mock.MatchedBy(func(a *domain.GCRApplication) bool { return *a.GMDaysApproved == 3 }),
			domain.GCRPendingGM, "").Once()

		app, err := f.svc.GMDecision(ctx, gm, 4, domain.GCRGMDecisionInput{
			Decision: domain.GMApproved, DaysApproved: intPtr(3), Signature: "sig",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.GCRPendingHR2, app.Status)
		f.notifSvc.AssertExpectations(t)
	})

	t.Run("rejected keeps no approved days", func(t *testing.T) {
		f := newGCRFixture()
		reason := "Operational needs"
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingGM), nil).Once()
		f.gcrRepo.On("ApplyGMDecision", ctx, int64(4),
			mock.MatchedBy(func(r domain.GCRGMDecisionRecord) bool { return r.To == domain.GCRRejected && r.DaysApproved == nil }),
			mock.Anything,
		).Return(nil).Once()
		f.notifSvc.On("NotifyGCRStatus", ctx, mock.Anything, domain.GCRPendingGM, reason).Once()

		app, err := f.svc.GMDecision(ctx, gm, 4, domain.GCRGMDecisionInput{
			Decision: domain.GMRejected, DaysApproved: intPtr(2), Comments: &reason, Signature: "sig",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.GCRRejected, app.Status)
	})
}

func TestGCRService_HR3Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("computes remaining days", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingHR3), nil).Once()
		f.gcrRepo.On("ApplyHR3Verification", ctx, int64(4),
			mock.MatchedBy(func(r domain.GCRHR3Record) bool {
				return r.RemainingDays == 12 && r.To == domain.GCRPendingGMFinal
			}),
			mock.MatchedBy(func(e *domain.HistoryEntry) bool { return e.Action == domain.ActionLampiranA }),
		).Return(nil).Once()
		f.notifSvc.On("NotifyGCRStatus", ctx, mock.Anything, domain.GCRPendingHR3, "").Once()

		app, err := f.svc.HR3Verify(ctx, hr, 4, domain.HR3VerifyInput{
			EmployeeID: "EMP-0042", TotalDaysBalance: intPtr(15), GCDaysApproved: intPtr(3), Signature: "sig",
		})

		require.NoError(t, err)
		assert.Equal(t, 12, *app.RemainingDays)
	})

	t.Run("approved above balance", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingHR3), nil).Once()

		_, err := f.svc.HR3Verify(ctx, hr, 4, domain.HR3VerifyInput{
			EmployeeID: "EMP-0042", TotalDaysBalance: intPtr(2), GCDaysApproved: intPtr(3), Signature: "sig",
		})

		assert.True(t, domain.IsValidation(err))
		f.gcrRepo.AssertNotCalled(t, "ApplyHR3Verification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("zero balance is allowed", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingHR3), nil).Once()
		f.gcrRepo.On("ApplyHR3Verification", ctx, int64(4),
			mock.MatchedBy(func(r domain.GCRHR3Record) bool { return r.RemainingDays == 0 }),
			mock.Anything,
		).Return(nil).Once()
		f.notifSvc.On("NotifyGCRStatus", ctx, mock.Anything, mock.Anything, mock.Anything).Once()

		_, err := f.svc.HR3Verify(ctx, hr, 4, domain.HR3VerifyInput{
			EmployeeID: "EMP-0042", TotalDaysBalance: intPtr(0), GCDaysApproved: intPtr(0), Signature: "sig",
		})

		assert.NoError(t, err)
	})
}

func TestGCRService_StageGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("HR2 on a pending_gm application", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingGM), nil).Once()

		_, err := f.svc.HR2Record(ctx, hr, 4, domain.HR2RecordInput{Signature: "sig"})

		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("staff cannot verify", func(t *testing.T) {
		f := newGCRFixture()

		_, err := f.svc.HR1Verify(ctx, staff, 4, domain.HR1VerifyInput{Signature: "sig"})

		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.gcrRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("finalize parses the date", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingGMFinal), nil).Once()
		f.gcrRepo.On("ApplyGMFinalSignature", ctx, int64(4),
			mock.MatchedBy(func(r domain.GCRFinalRecord) bool {
				return r.To == domain.GCRApproved && r.FinalizedDate.Equal(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
			}),
			mock.Anything,
		).Return(nil).Once()
		f.notifSvc.On("NotifyGCRStatus", ctx, mock.Anything, domain.GCRPendingGMFinal, "").Once()

		app, err := f.svc.GMFinalize(ctx, gm, 4, domain.GMFinalizeInput{Signature: "sig", FinalizedDate: "2025-03-20"})

		require.NoError(t, err)
		assert.Equal(t, domain.GCRApproved, app.Status)
	})

	t.Run("concurrent HR1 verification", func(t *testing.T) {
		f := newGCRFixture()
		f.gcrRepo.On("GetByID", ctx, int64(4)).Return(gcrAt(domain.GCRPendingHR1), nil).Once()
		f.gcrRepo.On("ApplyHR1Verification", ctx, int64(4), mock.Anything, mock.Anything).
			Return(domain.ErrConcurrentModification).Once()

		_, err := f.svc.HR1Verify(ctx, hr, 4, domain.HR1VerifyInput{Signature: "sig"})

		assert.ErrorIs(t, err, domain.ErrConcurrentModification)
		f.notifSvc.AssertNotCalled(t, "NotifyGCRStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestStage_Target(t *testing.T) {
	_, err := gcrHR1.target(domain.GCRApproved)
	assert.Error(t, err)

	next, err := trainingHOD.target(domain.TrainingRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.TrainingRejected, next)
}
