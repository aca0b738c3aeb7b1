package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type TrainingRepository struct {
	mock.Mock
}

func (m *TrainingRepository) Create(ctx context.Context, app *domain.TrainingApplication, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, app, entry)
	return args.Error(0)
}

func (m *TrainingRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingApplication), args.Error(1)
}

func (m *TrainingRepository) List(ctx context.Context, filter domain.TrainingFilter, params domain.PaginationParams) ([]domain.TrainingApplication, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.TrainingApplication), args.Get(1).(int64), args.Error(2)
}

func (m *TrainingRepository) ListAll(ctx context.Context, filter domain.TrainingFilter) ([]domain.TrainingApplication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainingApplication), args.Error(1)
}

func (m *TrainingRepository) CountByStatus(ctx context.Context, userID *int64) (map[domain.TrainingStatus]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TrainingStatus]int64), args.Error(1)
}

func (m *TrainingRepository) LatestReferenceSequence(ctx context.Context, prefix string, year int) (int, error) {
	args := m.Called(ctx, prefix, year)
	return args.Int(0), args.Error(1)
}

func (m *TrainingRepository) ApplyHODDecision(ctx context.Context, id int64, rec domain.HODDecisionRecord, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}

func (m *TrainingRepository) ApplyHRReview(ctx context.Context, id int64, rec domain.HRReviewRecord, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}

func (m *TrainingRepository) ApplyGMDecision(ctx context.Context, id int64, rec domain.GMDecisionRecord, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}
