package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/pkg/i18n"
)

type StatusLabel struct {
	Status   string `json:"status"`
	Label    string `json:"label"`
	Badge    string `json:"badge"`
	Terminal bool   `json:"terminal"`
}

type StatusHandler struct {
	locale string
}

func NewStatusHandler(defaultLocale string) *StatusHandler {
	return &StatusHandler{locale: defaultLocale}
}

// List returns the display table for every workflow so clients never
// hard-code labels or badge colours.
func (h *StatusHandler) List(c *fiber.Ctx) error {
	locale := localeFrom(c, h.locale)

	label := func(status string, meta domain.StatusMeta) StatusLabel {
		return StatusLabel{
			Status:   status,
			Label:    i18n.Translate(locale, meta.LabelKey),
			Badge:    meta.Badge,
			Terminal: meta.Terminal,
		}
	}

	training := make([]StatusLabel, 0)
	for _, s := range domain.TrainingStatuses() {
		training = append(training, label(string(s), s.Meta()))
	}
	gcr := make([]StatusLabel, 0)
	for _, s := range domain.GCRStatuses() {
		gcr = append(gcr, label(string(s), s.Meta()))
	}
	evaluation := make([]StatusLabel, 0)
	for _, s := range domain.EvaluationStatuses() {
		evaluation = append(evaluation, label(string(s), s.Meta()))
	}

	return ok(c, fiber.StatusOK, "", fiber.Map{
		"locale":     locale,
		"training":   training,
		"gcr":        gcr,
		"evaluation": evaluation,
	})
}
