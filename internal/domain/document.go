package domain

import "time"

type TrainingDocument struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID int64     `json:"application_id" db:"application_id"`
	FileName      string    `json:"file_name" db:"file_name"`
	StoragePath   string    `json:"-" db:"storage_path"`
	MimeType      string    `json:"mime_type" db:"mime_type"`
	FileSize      int64     `json:"file_size" db:"file_size"`
	UploadedBy    int64     `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
