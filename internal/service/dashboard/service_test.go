package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/mocks"
)

var everyone = mock.MatchedBy(func(id *int64) bool { return id == nil })

func ownedBy(userID int64) any {
	return mock.MatchedBy(func(id *int64) bool { return id != nil && *id == userID })
}

func setup(actor domain.Actor) (Service, *mocks.TrainingRepository, *mocks.GCRRepository, *mocks.EvaluationRepository) {
	trainingRepo := new(mocks.TrainingRepository)
	gcrRepo := new(mocks.GCRRepository)
	evalRepo := new(mocks.EvaluationRepository)
	notifRepo := new(mocks.NotificationRepository)

	trainingRepo.On("CountByStatus", mock.Anything, everyone).Return(map[domain.TrainingStatus]int64{
		domain.TrainingPendingHOD: 4, domain.TrainingPendingHR: 2, domain.TrainingApproved: 9,
	}, nil)
	gcrRepo.On("CountByStatus", mock.Anything, everyone).Return(map[domain.GCRStatus]int64{
		domain.GCRPendingHR1: 1, domain.GCRPendingGM: 3,
	}, nil)
	evalRepo.On("CountByStatus", mock.Anything, everyone).Return(map[domain.EvaluationStatus]int64{
		domain.EvaluationPending: 6,
	}, nil)

	trainingRepo.On("CountByStatus", mock.Anything, ownedBy(actor.ID)).Return(map[domain.TrainingStatus]int64{domain.TrainingApproved: 1}, nil)
	gcrRepo.On("CountByStatus", mock.Anything, ownedBy(actor.ID)).Return(map[domain.GCRStatus]int64{}, nil)
	evalRepo.On("CountByStatus", mock.Anything, ownedBy(actor.ID)).Return(map[domain.EvaluationStatus]int64{}, nil)
	notifRepo.On("CountUnread", mock.Anything, actor.ID).Return(int64(2), nil)

	return NewService(trainingRepo, gcrRepo, evalRepo, notifRepo), trainingRepo, gcrRepo, evalRepo
}

func queueCounts(s *Summary) map[string]int64 {
	out := make(map[string]int64, len(s.Queues))
	for _, q := range s.Queues {
		out[string(q.ApplicationType)+":"+q.Status] = q.Count
	}
	return out
}

func TestSummary_QueuesFollowRole(t *testing.T) {
	t.Run("hod sees only its stage", func(t *testing.T) {
		hod := domain.Actor{ID: 10, Role: domain.RoleHOD}
		svc, _, _, evalRepo := setup(hod)

		summary, err := svc.Summary(context.Background(), hod)
		require.NoError(t, err)

		assert.Equal(t, map[string]int64{"training:pending_hod": 4}, queueCounts(summary))
		assert.Equal(t, int64(2), summary.UnreadNotifications)
		assert.Equal(t, int64(1), summary.MyTraining[domain.TrainingApproved])
		evalRepo.AssertNotCalled(t, "CountByStatus", mock.Anything, everyone)
	})

	t.Run("hr sees its stages and pending evaluations", func(t *testing.T) {
		hr := domain.Actor{ID: 20, Role: domain.RoleHR}
		svc, _, _, _ := setup(hr)

		summary, err := svc.Summary(context.Background(), hr)
		require.NoError(t, err)

		counts := queueCounts(summary)
		assert.Equal(t, int64(2), counts["training:pending_hr"])
		assert.Equal(t, int64(1), counts["gcr:pending_hr1"])
		assert.Equal(t, int64(6), counts["evaluation:pending"])
		assert.NotContains(t, counts, "gcr:pending_gm")
	})

	t.Run("staff has no queues", func(t *testing.T) {
		staff := domain.Actor{ID: 5, Role: domain.RoleStaff}
		svc, _, _, _ := setup(staff)

		summary, err := svc.Summary(context.Background(), staff)
		require.NoError(t, err)
		assert.Empty(t, summary.Queues)
	})
}
