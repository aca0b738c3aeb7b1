package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type GCRRepository struct {
	mock.Mock
}

func (m *GCRRepository) Create(ctx context.Context, app *domain.GCRApplication, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, app, entry)
	return args.Error(0)
}

func (m *GCRRepository) GetByID(ctx context.Context, id int64) (*domain.GCRApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GCRApplication), args.Error(1)
}

func (m *GCRRepository) List(ctx context.Context, filter domain.GCRFilter, params domain.PaginationParams) ([]domain.GCRApplication, int64, error) {
	args := m.Called(ctx, filter, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.GCRApplication), args.Get(1).(int64), args.Error(2)
}

func (m *GCRRepository) ListAll(ctx context.Context, filter domain.GCRFilter) ([]domain.GCRApplication, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GCRApplication), args.Error(1)
}

func (m *GCRRepository) CountByStatus(ctx context.Context, userID *int64) (map[domain.GCRStatus]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.GCRStatus]int64), args.Error(1)
}

func (m *GCRRepository) ApplyHR1Verification(ctx context.Context, id int64, rec domain.GCRHR1Record, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}

func (m *GCRRepository) ApplyGMDecision(ctx context.Context, id int64, rec domain.GCRGMDecisionRecord, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}

func (m *GCRRepository) ApplyHR2Recording(ctx context.Context, id int64, rec domain.GCRHR2Record, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}

func (m *GCRRepository) ApplyHR3Verification(ctx context.Context, id int64, rec domain.GCRHR3Record, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}

func (m *GCRRepository) ApplyGMFinalSignature(ctx context.Context, id int64, rec domain.GCRFinalRecord, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, id, rec, entry)
	return args.Error(0)
}
