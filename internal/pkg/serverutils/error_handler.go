package serverutils

import (
	"errors"

	"sticky-notes-be/internal/pkg/apperror"
	"sticky-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a handler as the JSON error
// envelope. Server-side failures are logged with their cause; clients only
// see the safe message.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		body := ErrorResponse(fiber.StatusInternalServerError, "Internal Server Error")

		var appErr *apperror.Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			body.StatusCode = appErr.StatusCode()
			body.Message = appErr.Message
			body.Errors = appErr.Fields
		case errors.As(err, &fiberErr):
			body.StatusCode = fiberErr.Code
			body.Message = fiberErr.Message
		}

		if body.StatusCode >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err,
			})
		}

		return ctx.Status(body.StatusCode).JSON(body)
	}
}

// NotFoundHandler is registered last and answers unmatched routes.
func NotFoundHandler(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(fiber.StatusNotFound, "Not found"))
}
