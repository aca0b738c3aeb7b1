package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/config"
	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/handler"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/pkg/i18n"
	"github.com/2023189465/smaforms-sub001/internal/repository"
	"github.com/2023189465/smaforms-sub001/internal/service"
	"github.com/2023189465/smaforms-sub001/internal/service/auth"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	logger, err := config.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Info("No .env file found, using environment variables")
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		logger.Fatal("Failed to load translations", zap.Error(err))
	}

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MinIO", zap.Error(err))
	}

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, redis, minioClient, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build services", zap.Error(err))
	}
	handlers := handler.NewHandlers(services, cfg.DefaultLocale)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(logger),
		BodyLimit:    int(cfg.MaxUploadSize) + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	}), h.Auth.Login)

	v1.Get("/statuses", h.Status.List)

	protected := v1.Group("", middleware.AuthRequired(authService))

	protected.Post("/auth/logout", h.Auth.Logout)

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Get("/by-role/:role", middleware.RequireRole(domain.RoleHR), h.User.ListByRole)
	users.Get("/", middleware.RequireRole(domain.RoleAdmin), h.User.List)
	users.Post("/", middleware.RequireRole(domain.RoleAdmin), h.User.Create)

	training := protected.Group("/training")
	training.Post("/", h.Training.Submit)
	training.Get("/", h.Training.List)
	training.Get("/reference-number/next", middleware.RequireRole(domain.RoleHR), h.Training.NextReferenceNumber)
	training.Get("/:id", h.Training.Get)
	training.Get("/:id/history", h.Training.History)
	training.Post("/:id/hod-decision", h.Training.HODDecision)
	training.Post("/:id/hr-review", h.Training.HRReview)
	training.Post("/:id/gm-decision", h.Training.GMDecision)
	training.Post("/:id/documents", h.Document.Upload)
	training.Get("/:id/documents", h.Document.List)

	documents := protected.Group("/documents")
	documents.Get("/:id/download", h.Document.Download)
	documents.Delete("/:id", h.Document.Delete)

	gcr := protected.Group("/gcr")
	gcr.Post("/", h.GCR.Submit)
	gcr.Get("/", h.GCR.List)
	gcr.Get("/:id", h.GCR.Get)
	gcr.Get("/:id/history", h.GCR.History)
	gcr.Post("/:id/hr1-verify", h.GCR.HR1Verify())
	gcr.Post("/:id/gm-decision", h.GCR.GMDecision())
	gcr.Post("/:id/hr2-record", h.GCR.HR2Record())
	gcr.Post("/:id/hr3-verify", h.GCR.HR3Verify())
	gcr.Post("/:id/gm-finalize", h.GCR.GMFinalize())

	evaluations := protected.Group("/evaluations")
	evaluations.Post("/", h.Evaluation.Submit)
	evaluations.Post("/assign", h.Evaluation.Assign)
	evaluations.Get("/", h.Evaluation.List)
	evaluations.Get("/:id", h.Evaluation.Get)
	evaluations.Get("/:id/history", h.Evaluation.History)
	evaluations.Patch("/:id/status", h.Evaluation.UpdateStatus)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/", h.Notification.ClearAll)

	protected.Get("/dashboard", h.Dashboard.Summary)

	reports := protected.Group("/reports", middleware.RequireRole(domain.RoleHR, domain.RoleGM))
	reports.Get("/training.xlsx", h.Report.Training)
	reports.Get("/gcr.xlsx", h.Report.GCR)
}
