package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"sticky-notes-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ParseBody decodes the JSON body into out; any decode failure is a 400.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	return nil
}

// ValidateRequest reports every failed rule, keyed by JSON field name.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.BadRequest("Invalid request")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return apperror.Validation(verrs[0].Field()+": "+messageFor(verrs[0]), fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "eqfield":
		return "must match password"
	default:
		return "is invalid"
	}
}

// BindAndValidate is ParseBody followed by ValidateRequest.
func BindAndValidate(ctx *fiber.Ctx, out interface{}) error {
	if err := ParseBody(ctx, out); err != nil {
		return err
	}
	return ValidateRequest(out)
}
