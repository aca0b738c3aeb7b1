package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/workflow"
)

type TrainingHandler struct {
	trainingService workflow.TrainingService
}

func NewTrainingHandler(trainingService workflow.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

func (h *TrainingHandler) Submit(c *fiber.Ctx) error {
	var input domain.SubmitTrainingInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.trainingService.Submit(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return ok(c, fiber.StatusCreated, "Training application submitted", app)
}

func (h *TrainingHandler) List(c *fiber.Ctx) error {
	input := workflow.TrainingListInput{Mine: mineOnly(c)}
	if raw := c.Query("status"); raw != "" {
		status := domain.TrainingStatus(raw)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid status")
		}
		input.Status = &status
	}

	result, err := h.trainingService.List(c.UserContext(), middleware.GetActor(c), input, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", result)
}

func (h *TrainingHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	app, err := h.trainingService.Get(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", app)
}

func (h *TrainingHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.trainingService.History(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", entries)
}

func (h *TrainingHandler) HODDecision(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var input domain.HODDecisionInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.trainingService.HODDecision(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "HOD decision recorded", app)
}

func (h *TrainingHandler) HRReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var input domain.HRReviewInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.trainingService.HRReview(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "HR review recorded", app)
}

func (h *TrainingHandler) GMDecision(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var input domain.GMDecisionInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	app, err := h.trainingService.GMDecision(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "GM decision recorded", app)
}

func (h *TrainingHandler) NextReferenceNumber(c *fiber.Ctx) error {
	ref, err := h.trainingService.NextReferenceNumber(c.UserContext(), middleware.GetActor(c), c.QueryInt("year", 0))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", fiber.Map{"reference_number": ref})
}
