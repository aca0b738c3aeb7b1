package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/2023189465/smaforms-sub001/internal/domain"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.TrainingDocument) error
	GetByID(ctx context.Context, id int64) (*domain.TrainingDocument, error)
	ListByApplication(ctx context.Context, applicationID int64) ([]domain.TrainingDocument, error)
	Delete(ctx context.Context, id int64) error
}

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.TrainingDocument) error {
	query := `
		INSERT INTO training_documents (application_id, file_name, storage_path, mime_type, file_size, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		doc.ApplicationID, doc.FileName, doc.StoragePath, doc.MimeType, doc.FileSize, doc.UploadedBy,
	).Scan(&doc.ID, &doc.CreatedAt)
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*domain.TrainingDocument, error) {
	var doc domain.TrainingDocument
	if err := r.db.GetContext(ctx, &doc, `SELECT * FROM training_documents WHERE id = $1`, id); err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

func (r *documentRepository) ListByApplication(ctx context.Context, applicationID int64) ([]domain.TrainingDocument, error) {
	var docs []domain.TrainingDocument
	query := `SELECT * FROM training_documents WHERE application_id = $1 ORDER BY created_at, id`
	err := r.db.SelectContext(ctx, &docs, query, applicationID)
	return docs, err
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM training_documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
