package serverutils

import "github.com/gofiber/fiber/v2"

// BaseResponse is the envelope every endpoint answers with.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](ctx *fiber.Ctx, status int, message string, data T) error {
	return ctx.Status(status).JSON(BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(ctx *fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(BaseResponse[any]{
		Success: false,
		Message: message,
	})
}

// ValidationErrorResponse carries per-field messages for 400s.
func ValidationErrorResponse(ctx *fiber.Ctx, fields map[string]string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(BaseResponse[map[string]string]{
		Success: false,
		Message: "Validation failed",
		Data:    fields,
	})
}
