package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/mocks"
)

func TestTrainingWorkbook(t *testing.T) {
	ctx := context.Background()
	trainingRepo := new(mocks.TrainingRepository)
	svc := NewService(trainingRepo, new(mocks.GCRRepository)).(*service)
	svc.now = func() time.Time { return time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC) }

	ref := "SMA/TRN-2025-004"
	approved := domain.TrainingApproved
	trainingRepo.On("ListAll", ctx, domain.TrainingFilter{Status: &approved}).Return([]domain.TrainingApplication{{
		ID:              7,
		ReferenceNumber: &ref,
		ProgrammeTitle:  "Fire Safety",
		StartDate:       time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Fee:             150.5,
		Status:          domain.TrainingApproved,
		CreatedAt:       time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
	}}, nil).Once()

	f, name, err := svc.TrainingWorkbook(ctx, domain.Actor{ID: 30, Role: domain.RoleGM}, &approved, "en")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "training_applications_20250630.xlsx", name)

	header, err := f.GetCellValue("Training", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Reference No.", header)

	cells := map[string]string{"A2": "7", "B2": ref, "C2": "Fire Safety", "F2": "2025-05-01", "G2": "", "Q2": "2025-04-02"}
	for cell, want := range cells {
		got, err := f.GetCellValue("Training", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}

func TestGCRWorkbook(t *testing.T) {
	ctx := context.Background()
	gcrRepo := new(mocks.GCRRepository)
	svc := NewService(new(mocks.TrainingRepository), gcrRepo)

	year := 2025
	gcrRepo.On("ListAll", ctx, domain.GCRFilter{Year: &year}).Return([]domain.GCRApplication{}, nil).Once()

	f, name, err := svc.GCRWorkbook(ctx, domain.Actor{ID: 20, Role: domain.RoleHR}, &year, "ms")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "gcr_applications_2025.xlsx", name)
	rows, err := f.GetRows("GCR")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, gcrHeaders, rows[0])
}

func TestWorkbook_Forbidden(t *testing.T) {
	svc := NewService(new(mocks.TrainingRepository), new(mocks.GCRRepository))
	staff := domain.Actor{ID: 5, Role: domain.RoleStaff}

	_, _, err := svc.TrainingWorkbook(context.Background(), staff, nil, "en")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = svc.GCRWorkbook(context.Background(), staff, nil, "en")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
