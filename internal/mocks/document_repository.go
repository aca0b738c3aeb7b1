package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, doc *domain.TrainingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *DocumentRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrainingDocument), args.Error(1)
}

func (m *DocumentRepository) ListByApplication(ctx context.Context, applicationID int64) ([]domain.TrainingDocument, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrainingDocument), args.Error(1)
}

func (m *DocumentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
