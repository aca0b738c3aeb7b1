package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Training     TrainingRepository
	GCR          GCRRepository
	Evaluation   EvaluationRepository
	History      HistoryRepository
	Notification NotificationRepository
	Document     DocumentRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Training:     NewTrainingRepository(db),
		GCR:          NewGCRRepository(db),
		Evaluation:   NewEvaluationRepository(db),
		History:      NewHistoryRepository(db),
		Notification: NewNotificationRepository(db),
		Document:     NewDocumentRepository(db),
	}
}
