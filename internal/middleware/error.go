package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/2023189465/smaforms-sub001/internal/domain"
	"github.com/2023189465/smaforms-sub001/internal/service/auth"
)

type ErrorResponse struct {
	Success bool                `json:"success"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
	TraceID string              `json:"trace_id,omitempty"`
}

// NewErrorHandler maps domain and fiber errors onto the error response.
// Anything unrecognised is logged with its trace id and reported as a
// generic 500.
func NewErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		traceID := uuid.New().String()[:8]
		resp := ErrorResponse{TraceID: traceID}
		status := fiber.StatusInternalServerError

		var ve *domain.ValidationError
		var fe *fiber.Error

		switch {
		case errors.As(err, &ve):
			status, resp.Code, resp.Message = fiber.StatusBadRequest, "VALIDATION_ERROR", "Please check the highlighted fields"
			resp.Fields = ve.Fields
		case errors.Is(err, domain.ErrInvalidState):
			status, resp.Code, resp.Message = fiber.StatusConflict, "INVALID_STATE", err.Error()
		case errors.Is(err, domain.ErrConcurrentModification):
			status, resp.Code, resp.Message = fiber.StatusConflict, "CONCURRENT_MODIFICATION", domain.ErrConcurrentModification.Error()
		case errors.Is(err, domain.ErrDuplicateReference):
			status, resp.Code, resp.Message = fiber.StatusConflict, "DUPLICATE_REFERENCE", domain.ErrDuplicateReference.Error()
		case errors.Is(err, domain.ErrForbidden):
			status, resp.Code, resp.Message = fiber.StatusForbidden, "FORBIDDEN", domain.ErrForbidden.Error()
		case errors.Is(err, domain.ErrNotFound):
			status, resp.Code, resp.Message = fiber.StatusNotFound, "NOT_FOUND", "Record not found"
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInactiveUser):
			status, resp.Code, resp.Message = fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
		case errors.As(err, &fe):
			status, resp.Code, resp.Message = fe.Code, codeFor(fe.Code), fe.Message
		default:
			resp.Code, resp.Message = "INTERNAL_ERROR", "Internal server error"
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("trace_id", traceID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(status).JSON(resp)
	}
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
