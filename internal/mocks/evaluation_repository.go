package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type EvaluationRepository struct {
	mock.Mock
}

func (m *EvaluationRepository) Create(ctx context.Context, e *domain.Evaluation, entry *domain.EvaluationHistoryEntry) error {
	args := m.Called(ctx, e, entry)
	return args.Error(0)
}

func (m *EvaluationRepository) Update(ctx context.Context, e *domain.Evaluation, entry *domain.EvaluationHistoryEntry) error {
	args := m.Called(ctx, e, entry)
	return args.Error(0)
}

func (m *EvaluationRepository) GetByID(ctx context.Context, id int64) (*domain.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

func (m *EvaluationRepository) FindByUserAndTraining(ctx context.Context, userID, trainingID int64) (*domain.Evaluation, error) {
	args := m.Called(ctx, userID, trainingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Evaluation), args.Error(1)
}

func (m *EvaluationRepository) List(ctx context.Context, filter domain.EvaluationFilter, params domain.PaginationParams) ([]domain.Evaluation, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Evaluation), args.Get(1).(int64), args.Error(2)
}

func (m *EvaluationRepository) CountByStatus(ctx context.Context, userID *int64) (map[domain.EvaluationStatus]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.EvaluationStatus]int64), args.Error(1)
}

func (m *EvaluationRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.EvaluationStatus, completedAt time.Time, entry *domain.EvaluationHistoryEntry) error {
	args := m.Called(ctx, id, from, to, completedAt, entry)
	return args.Error(0)
}
