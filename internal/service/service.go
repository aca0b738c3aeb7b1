package service

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/config"
	"github.com/2023189465/smaforms-sub001/internal/repository"
	"github.com/2023189465/smaforms-sub001/internal/service/auth"
	"github.com/2023189465/smaforms-sub001/internal/service/dashboard"
	"github.com/2023189465/smaforms-sub001/internal/service/document"
	"github.com/2023189465/smaforms-sub001/internal/service/email"
	"github.com/2023189465/smaforms-sub001/internal/service/evaluation"
	"github.com/2023189465/smaforms-sub001/internal/service/notification"
	"github.com/2023189465/smaforms-sub001/internal/service/report"
	"github.com/2023189465/smaforms-sub001/internal/service/user"
	"github.com/2023189465/smaforms-sub001/internal/service/workflow"
	"github.com/2023189465/smaforms-sub001/internal/storage"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Training     workflow.TrainingService
	GCR          workflow.GCRService
	Evaluation   evaluation.Service
	Notification notification.Service
	Document     document.Service
	Report       report.Service
	Dashboard    dashboard.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		svc, err := email.NewService(cfg)
		if err != nil {
			return nil, fmt.Errorf("email service: %w", err)
		}
		emailService = svc
	} else {
		logger.Info("RESEND_API_KEY not set, email copies disabled")
	}

	authService := auth.NewService(repos.User, auth.NewRedisRevocationStore(redis), cfg, logger)
	userService := user.NewService(repos.User, emailService, logger)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService, logger)

	trainingService := workflow.NewTrainingService(repos.Training, repos.History, repos.Document, cfg.ReferencePrefix, logger)
	trainingService.SetNotificationService(notificationService)

	gcrService := workflow.NewGCRService(repos.GCR, repos.History, logger)
	gcrService.SetNotificationService(notificationService)

	evaluationService := evaluation.NewService(repos.Evaluation, repos.Training, repos.History, repos.User, logger)
	evaluationService.SetNotificationService(notificationService)

	documentService := document.NewService(
		repos.Document,
		repos.Training,
		storage.NewMinIOStorage(minioClient, cfg.MinIOBucket),
		cfg.MaxUploadSize,
		logger,
	)

	return &Services{
		Auth:         authService,
		User:         userService,
		Training:     trainingService,
		GCR:          gcrService,
		Evaluation:   evaluationService,
		Notification: notificationService,
		Document:     documentService,
		Report:       report.NewService(repos.Training, repos.GCR),
		Dashboard:    dashboard.NewService(repos.Training, repos.GCR, repos.Evaluation, repos.Notification),
	}, nil
}
