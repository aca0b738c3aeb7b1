package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) ListByApplication(ctx context.Context, appType domain.ApplicationType, appID int64) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, appType, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *HistoryRepository) ListByEvaluation(ctx context.Context, evaluationID int64) ([]domain.EvaluationHistoryEntry, error) {
	args := m.Called(ctx, evaluationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EvaluationHistoryEntry), args.Error(1)
}
