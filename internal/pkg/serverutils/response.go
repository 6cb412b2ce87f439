package serverutils

import "github.com/gofiber/fiber/v2"

type ErrorBody struct {
	Message    string            `json:"message"`
	StatusCode int               `json:"status_code"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func ErrorResponse(statusCode int, message string) ErrorBody {
	return ErrorBody{Message: message, StatusCode: statusCode}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MessageEmailResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

func Message(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(MessageResponse{Message: message})
}
