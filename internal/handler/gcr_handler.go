package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/workflow"
)

type GCRHandler struct {
	gcrService workflow.GCRService
}

func NewGCRHandler(gcrService workflow.GCRService) *GCRHandler {
	return &GCRHandler{gcrService: gcrService}
}

func (h *GCRHandler) Submit(c *fiber.Ctx) error {
	var input domain.SubmitGCRInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.gcrService.Submit(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "GCR application submitted", app)
}

func (h *GCRHandler) List(c *fiber.Ctx) error {
	input := workflow.GCRListInput{Mine: mineOnly(c)}
	if raw := c.Query("status"); raw != "" {
		status := domain.GCRStatus(raw)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid status")
		}
		input.Status = &status
	}
	if year := c.QueryInt("year", 0); year > 0 {
		input.Year = &year
	}

	result, err := h.gcrService.List(c.UserContext(), middleware.GetActor(c), input, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", result)
}

func (h *GCRHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.gcrService.Get(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", app)
}

func (h *GCRHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.gcrService.History(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", entries)
}

// stageHandler binds the id and body for one GCR stage.
func stageHandler[T any](message string, apply func(c *fiber.Ctx, id int64, input T) (*domain.GCRApplication, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return err
		}
		var input T
		if err := parseBody(c, &input); err != nil {
			return err
		}

		app, err := apply(c, id, input)
		if err != nil {
			return err
		}
		return ok(c, fiber.StatusOK, message, app)
	}
}

func (h *GCRHandler) HR1Verify() fiber.Handler {
	return stageHandler("HR verification recorded", func(c *fiber.Ctx, id int64, input domain.HR1VerifyInput) (*domain.GCRApplication, error) {
		return h.gcrService.HR1Verify(c.UserContext(), middleware.GetActor(c), id, input)
	})
}

func (h *GCRHandler) GMDecision() fiber.Handler {
	return stageHandler("GM decision recorded", func(c *fiber.Ctx, id int64, input domain.GCRGMDecisionInput) (*domain.GCRApplication, error) {
		return h.gcrService.GMDecision(c.UserContext(), middleware.GetActor(c), id, input)
	})
}

func (h *GCRHandler) HR2Record() fiber.Handler {
	return stageHandler("HR recording saved", func(c *fiber.Ctx, id int64, input domain.HR2RecordInput) (*domain.GCRApplication, error) {
		return h.gcrService.HR2Record(c.UserContext(), middleware.GetActor(c), id, input)
	})
}

func (h *GCRHandler) HR3Verify() fiber.Handler {
	return stageHandler("Lampiran A verified", func(c *fiber.Ctx, id int64, input domain.HR3VerifyInput) (*domain.GCRApplication, error) {
		return h.gcrService.HR3Verify(c.UserContext(), middleware.GetActor(c), id, input)
	})
}

func (h *GCRHandler) GMFinalize() fiber.Handler {
	return stageHandler("GCR finalized", func(c *fiber.Ctx, id int64, input domain.GMFinalizeInput) (*domain.GCRApplication, error) {
		return h.gcrService.GMFinalize(c.UserContext(), middleware.GetActor(c), id, input)
	})
}
