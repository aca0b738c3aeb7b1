package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/middleware"
	"github.com/2023189465/smaforms-sub001/internal/service/evaluation"
)

type EvaluationHandler struct {
	evaluationService evaluation.Service
}

func NewEvaluationHandler(evaluationService evaluation.Service) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService}
}

func (h *EvaluationHandler) Submit(c *fiber.Ctx) error {
	var input domain.SubmitEvaluationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	e, err := h.evaluationService.Submit(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Evaluation saved", e)
}

func (h *EvaluationHandler) Assign(c *fiber.Ctx) error {
	var input domain.AssignEvaluationInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	e, err := h.evaluationService.Assign(c.UserContext(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusCreated, "Evaluation assigned", e)
}

func (h *EvaluationHandler) List(c *fiber.Ctx) error {
	input := evaluation.ListInput{Mine: mineOnly(c)}
	if raw := c.Query("status"); raw != "" {
		status := domain.ParseEvaluationStatus(raw)
		if !status.IsValid() {
			return middleware.BadRequest("Invalid status")
		}
		input.Status = &status
	}

	result, err := h.evaluationService.List(c.UserContext(), middleware.GetActor(c), input, getPaginationParams(c))
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", result)
}

func (h *EvaluationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	e, err := h.evaluationService.Get(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", e)
}

func (h *EvaluationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var input domain.EvaluationStatusInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	e, err := h.evaluationService.OverrideStatus(c.UserContext(), middleware.GetActor(c), id, input)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "Evaluation status updated", e)
}

func (h *EvaluationHandler) History(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	entries, err := h.evaluationService.History(c.UserContext(), middleware.GetActor(c), id)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", entries)
}
