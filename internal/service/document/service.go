package document

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/repository"
	"github.com/2023189465/smaforms-sub001/internal/storage"
)

const fallbackMimeType = "application/octet-stream"

var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".jpg": true, ".jpeg": true, ".png": true,
}

type UploadInput struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

type Download struct {
	Document *domain.TrainingDocument
	Body     io.ReadCloser
}

type Service interface {
	Upload(ctx context.Context, actor domain.Actor, applicationID int64, input UploadInput) (*domain.TrainingDocument, error)
	List(ctx context.Context, actor domain.Actor, applicationID int64) ([]domain.TrainingDocument, error)
	Download(ctx context.Context, actor domain.Actor, id int64) (*Download, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type service struct {
	docRepo      repository.DocumentRepository
	trainingRepo repository.TrainingRepository
	store        storage.ObjectStorage
	maxSize      int64
	logger       *zap.Logger
}

func NewService(
	docRepo repository.DocumentRepository,
	trainingRepo repository.TrainingRepository,
	store storage.ObjectStorage,
	maxSize int64,
	logger *zap.Logger,
) Service {
	return &service{
		docRepo:      docRepo,
		trainingRepo: trainingRepo,
		store:        store,
		maxSize:      maxSize,
		logger:       logger.Named("document"),
	}
}

func (s *service) Upload(ctx context.Context, actor domain.Actor, applicationID int64, input UploadInput) (*domain.TrainingDocument, error) {
	app, err := s.trainingRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	name := sanitizeFileName(input.FileName)
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case name == "":
		return nil, domain.NewValidationError("file", "required", "is required")
	case !allowedExtensions[ext]:
		return nil, domain.NewValidationError("file", "ext", "type "+ext+" is not accepted")
	case input.Size <= 0:
		return nil, domain.NewValidationError("file", "required", "is empty")
	case input.Size > s.maxSize:
		return nil, domain.NewValidationError("file", "max", fmt.Sprintf("must be at most %d bytes", s.maxSize))
	}

	mimeType := ContentType(name)
	key := fmt.Sprintf("training/%d/%s-%s", applicationID, uuid.NewString(), name)
	if err := s.store.Put(ctx, key, input.Reader, input.Size, mimeType); err != nil {
		return nil, err
	}

	doc := &domain.TrainingDocument{
		ApplicationID: applicationID,
		FileName:      name,
		StoragePath:   key,
		MimeType:      mimeType,
		FileSize:      input.Size,
		UploadedBy:    actor.ID,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		_ = s.store.Remove(ctx, key)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return doc, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, applicationID int64) ([]domain.TrainingDocument, error) {
	if err := s.authorizeRead(ctx, actor, applicationID); err != nil {
		return nil, err
	}
	return s.docRepo.ListByApplication(ctx, applicationID)
}

// Download opens the stored object. The caller closes Body.
func (s *service) Download(ctx context.Context, actor domain.Actor, id int64) (*Download, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeRead(ctx, actor, doc.ApplicationID); err != nil {
		return nil, err
	}

	body, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, err
	}
	doc.MimeType = ContentType(doc.FileName)
	return &Download{Document: doc, Body: body}, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc.UploadedBy != actor.ID && !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, doc.StoragePath); err != nil {
		s.logger.Warn("failed to remove stored object", zap.String("key", doc.StoragePath), zap.Error(err))
	}
	return nil
}

func (s *service) authorizeRead(ctx context.Context, actor domain.Actor, applicationID int64) error {
	app, err := s.trainingRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.UserID != actor.ID && !actor.Allows(domain.RoleHOD, domain.RoleHR, domain.RoleGM) {
		return domain.ErrForbidden
	}
	return nil
}

// ContentType infers the MIME type from the file extension.
func ContentType(fileName string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); t != "" {
		return t
	}
	return fallbackMimeType
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r < 0x20 || strings.ContainsRune(`/\:*?"<>|`, r):
			return -1
		}
		return r
	}, name)
}
