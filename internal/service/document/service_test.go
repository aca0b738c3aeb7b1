package document

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/mocks"
)

func newTestService() (Service, *mocks.DocumentRepository, *mocks.TrainingRepository, *mocks.ObjectStorage) {
	docRepo := new(mocks.DocumentRepository)
	trainingRepo := new(mocks.TrainingRepository)
	store := new(mocks.ObjectStorage)
	return NewService(docRepo, trainingRepo, store, 1024, zap.NewNop()), docRepo, trainingRepo, store
}

var owner = domain.Actor{ID: 5, Role: domain.RoleStaff}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores under the application prefix", func(t *testing.T) {
		svc, docRepo, trainingRepo, store := newTestService()
		trainingRepo.On("GetByID", ctx, int64(7)).Return(&domain.TrainingApplication{ID: 7, UserID: 5}, nil).Once()
		store.On("Put", ctx,
			mock.MatchedBy(func(key string) bool {
				return strings.HasPrefix(key, "training/7/") && strings.HasSuffix(key, "-course_brochure.pdf")
			}),
			mock.Anything, int64(10), "application/pdf",
		).Return(nil).Once()
		docRepo.On("Create", ctx, mock.MatchedBy(func(d *domain.TrainingDocument) bool {
			return d.FileName == "course_brochure.pdf" && d.UploadedBy == 5
		})).Return(nil).Once()

		doc, err := svc.Upload(ctx, owner, 7, UploadInput{FileName: "course brochure.pdf", Size: 10, Reader: strings.NewReader("0123456789")})

		require.NoError(t, err)
		assert.Equal(t, "application/pdf", doc.MimeType)
		store.AssertExpectations(t)
	})

	t.Run("rejects executables", func(t *testing.T) {
		svc, _, trainingRepo, store := newTestService()
		trainingRepo.On("GetByID", ctx, int64(7)).Return(&domain.TrainingApplication{ID: 7, UserID: 5}, nil).Once()

		_, err := svc.Upload(ctx, owner, 7, UploadInput{FileName: "setup.exe", Size: 10, Reader: strings.NewReader("x")})

		assert.True(t, domain.IsValidation(err))
		store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		svc, _, trainingRepo, _ := newTestService()
		trainingRepo.On("GetByID", ctx, int64(7)).Return(&domain.TrainingApplication{ID: 7, UserID: 5}, nil).Once()

		_, err := svc.Upload(ctx, owner, 7, UploadInput{FileName: "scan.png", Size: 4096, Reader: strings.NewReader("x")})

		assert.True(t, domain.IsValidation(err))
	})

	t.Run("only the applicant uploads", func(t *testing.T) {
		svc, _, trainingRepo, _ := newTestService()
		trainingRepo.On("GetByID", ctx, int64(7)).Return(&domain.TrainingApplication{ID: 7, UserID: 99}, nil).Once()

		_, err := svc.Upload(ctx, owner, 7, UploadInput{FileName: "a.pdf", Size: 1, Reader: strings.NewReader("x")})

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("removes the object when the row fails", func(t *testing.T) {
		svc, docRepo, trainingRepo, store := newTestService()
		trainingRepo.On("GetByID", ctx, int64(7)).Return(&domain.TrainingApplication{ID: 7, UserID: 5}, nil).Once()
		store.On("Put", ctx, mock.Anything, mock.Anything, int64(1), mock.Anything).Return(nil).Once()
		docRepo.On("Create", ctx, mock.Anything).Return(errors.New("insert failed")).Once()
		store.On("Remove", ctx, mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "training/7/") })).Return(nil).Once()

		_, err := svc.Upload(ctx, owner, 7, UploadInput{FileName: "a.pdf", Size: 1, Reader: strings.NewReader("x")})

		assert.Error(t, err)
		store.AssertExpectations(t)
	})
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	svc, docRepo, trainingRepo, store := newTestService()
	doc := &domain.TrainingDocument{ID: 3, ApplicationID: 7, FileName: "agenda.docx", StoragePath: "training/7/x-agenda.docx"}

	docRepo.On("GetByID", ctx, int64(3)).Return(doc, nil)
	trainingRepo.On("GetByID", ctx, int64(7)).Return(&domain.TrainingApplication{ID: 7, UserID: 5}, nil)
	store.On("Get", ctx, "training/7/x-agenda.docx").Return(io.NopCloser(strings.NewReader("doc")), nil).Once()

	dl, err := svc.Download(ctx, domain.Actor{ID: 30, Role: domain.RoleGM}, 3)
	require.NoError(t, err)
	defer dl.Body.Close()
	assert.Equal(t, ContentType("agenda.docx"), dl.Document.MimeType)

	_, err = svc.Download(ctx, domain.Actor{ID: 6, Role: domain.RoleStaff}, 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, docRepo, _, store := newTestService()
	doc := &domain.TrainingDocument{ID: 3, ApplicationID: 7, StoragePath: "training/7/k", UploadedBy: 5}
	docRepo.On("GetByID", ctx, int64(3)).Return(doc, nil)

	err := svc.Delete(ctx, domain.Actor{ID: 20, Role: domain.RoleHR}, 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	docRepo.On("Delete", ctx, int64(3)).Return(nil).Once()
	store.On("Remove", ctx, "training/7/k").Return(errors.New("gone")).Once()

	assert.NoError(t, svc.Delete(ctx, owner, 3))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentType("Brochure.PDF"))
	assert.Equal(t, "image/png", ContentType("x.png"))
	assert.Equal(t, fallbackMimeType, ContentType("notes"))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "passwd", sanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "my_file.pdf", sanitizeFileName(`C:\Users\ali\my file.pdf`))
	assert.Equal(t, "", sanitizeFileName(""))
}
