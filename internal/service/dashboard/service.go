package dashboard

import (
	"context"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/repository"
)

// Queue is the number of applications waiting on one stage.
type Queue struct {
	ApplicationType domain.ApplicationType `json:"application_type"`
	Status          string                 `json:"status"`
	LabelKey        string                 `json:"label_key"`
	Count           int64                  `json:"count"`
}

type Summary struct {
	Queues              []Queue                           `json:"queues"`
	MyTraining          map[domain.TrainingStatus]int64   `json:"my_training"`
	MyGCR               map[domain.GCRStatus]int64        `json:"my_gcr"`
	MyEvaluations       map[domain.EvaluationStatus]int64 `json:"my_evaluations"`
	UnreadNotifications int64                             `json:"unread_notifications"`
}

type Service interface {
	Summary(ctx context.Context, actor domain.Actor) (*Summary, error)
}

type service struct {
	trainingRepo repository.TrainingRepository
	gcrRepo      repository.GCRRepository
	evalRepo     repository.EvaluationRepository
	notifRepo    repository.NotificationRepository
}

func NewService(
	trainingRepo repository.TrainingRepository,
	gcrRepo repository.GCRRepository,
	evalRepo repository.EvaluationRepository,
	notifRepo repository.NotificationRepository,
) Service {
	return &service{
		trainingRepo: trainingRepo,
		gcrRepo:      gcrRepo,
		evalRepo:     evalRepo,
		notifRepo:    notifRepo,
	}
}

var trainingQueues = map[domain.TrainingStatus]domain.Role{
	domain.TrainingPendingHOD: domain.RoleHOD,
	domain.TrainingPendingHR:  domain.RoleHR,
	domain.TrainingPendingGM:  domain.RoleGM,
}

var gcrQueues = map[domain.GCRStatus]domain.Role{
	domain.GCRPendingHR1:     domain.RoleHR,
	domain.GCRPendingGM:      domain.RoleGM,
	domain.GCRPendingHR2:     domain.RoleHR,
	domain.GCRPendingHR3:     domain.RoleHR,
	domain.GCRPendingGMFinal: domain.RoleGM,
}

func (s *service) Summary(ctx context.Context, actor domain.Actor) (*Summary, error) {
	summary := &Summary{Queues: []Queue{}}

	allTraining, err := s.trainingRepo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, st := range domain.TrainingStatuses() {
		role, ok := trainingQueues[st]
		if !ok || !actor.Allows(role) {
			continue
		}
		summary.Queues = append(summary.Queues, Queue{
			ApplicationType: domain.AppTraining,
			Status:          string(st),
			LabelKey:        st.Meta().LabelKey,
			Count:           allTraining[st],
		})
	}

	allGCR, err := s.gcrRepo.CountByStatus(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, st := range domain.GCRStatuses() {
		role, ok := gcrQueues[st]
		if !ok || !actor.Allows(role) {
			continue
		}
		summary.Queues = append(summary.Queues, Queue{
			ApplicationType: domain.AppGCR,
			Status:          string(st),
			LabelKey:        st.Meta().LabelKey,
			Count:           allGCR[st],
		})
	}

	if actor.Allows(domain.RoleHR) {
		allEval, err := s.evalRepo.CountByStatus(ctx, nil)
		if err != nil {
			return nil, err
		}
		summary.Queues = append(summary.Queues, Queue{
			ApplicationType: domain.AppEvaluation,
			Status:          string(domain.EvaluationPending),
			LabelKey:        domain.EvaluationPending.Meta().LabelKey,
			Count:           allEval[domain.EvaluationPending],
		})
	}

	if summary.MyTraining, err = s.trainingRepo.CountByStatus(ctx, &actor.ID); err != nil {
		return nil, err
	}
	if summary.MyGCR, err = s.gcrRepo.CountByStatus(ctx, &actor.ID); err != nil {
		return nil, err
	}
	if summary.MyEvaluations, err = s.evalRepo.CountByStatus(ctx, &actor.ID); err != nil {
		return nil, err
	}
	if summary.UnreadNotifications, err = s.notifRepo.CountUnread(ctx, actor.ID); err != nil {
		return nil, err
	}
	return summary, nil
}
