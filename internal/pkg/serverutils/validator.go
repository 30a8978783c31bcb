package serverutils

import (
	"fmt"

	"autowebinar-be/pkg/docs"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// cpfcnpj passes when the field is a check-digit-valid CPF or CNPJ.
	_ = v.RegisterValidation("cpfcnpj", func(fl validator.FieldLevel) bool {
		return docs.IsValid(fl.Field().String())
	})
	return v
}

// ValidateRequest parses the JSON body into req and runs struct validation.
// On failure it writes the 400 response itself and returns the error so the
// controller just returns early.
func ValidateRequest(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		_ = ErrorResponse(ctx, fiber.StatusBadRequest, "Invalid request body")
		return err
	}

	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
			}
		}
		_ = ValidationErrorResponse(ctx, fields)
		return err
	}

	return nil
}
