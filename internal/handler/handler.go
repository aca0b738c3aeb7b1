package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/pkg/i18n"
	"github.com/2023189465/smaforms-sub001/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Training     *TrainingHandler
	GCR          *GCRHandler
	Evaluation   *EvaluationHandler
	Document     *DocumentHandler
	Notification *NotificationHandler
	Dashboard    *DashboardHandler
	Report       *ReportHandler
	Status       *StatusHandler
}

func NewHandlers(services *service.Services, defaultLocale string) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Training:     NewTrainingHandler(services.Training),
		GCR:          NewGCRHandler(services.GCR),
		Evaluation:   NewEvaluationHandler(services.Evaluation),
		Document:     NewDocumentHandler(services.Document),
		Notification: NewNotificationHandler(services.Notification),
		Dashboard:    NewDashboardHandler(services.Dashboard),
		Report:       NewReportHandler(services.Report, defaultLocale),
		Status:       NewStatusHandler(defaultLocale),
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Success: true, Message: message, Data: data})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Normalize()
	return params
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, middleware.BadRequest("Invalid " + name)
	}
	return int64(id), nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	return nil
}

// localeFrom picks ?lang= first, then the primary Accept-Language tag.
func localeFrom(c *fiber.Ctx, fallback string) string {
	if lang := strings.ToLower(c.Query("lang")); i18n.Supported(lang) {
		return lang
	}
	if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(strings.SplitN(header, ",", 2)[0], ";", 2)[0]))
		tag = strings.SplitN(tag, "-", 2)[0]
		if i18n.Supported(tag) {
			return tag
		}
	}
	return fallback
}

func mineOnly(c *fiber.Ctx) bool {
	return c.QueryBool("mine", false)
}
