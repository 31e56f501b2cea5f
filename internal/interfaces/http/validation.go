package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reporta los campos con su nombre JSON o de query.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// fieldErrors valida in y devuelve campo -> regla violada; nil si es válido.
func fieldErrors(in any) map[string]string {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	} else {
		fields["_"] = err.Error()
	}
	return fields
}

func validationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Fields:  fields,
	})
}

// bindBody decodifica y valida el cuerpo JSON. Si devuelve false la respuesta 400 ya fue escrita
// y el handler retorna err tal cual.
func bindBody(c *fiber.Ctx, in any) (ok bool, err error) {
	if err := c.BodyParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := fieldErrors(in); fields != nil {
		return false, validationError(c, fields)
	}
	return true, nil
}

// bindQuery igual que bindBody para la query string.
func bindQuery(c *fiber.Ctx, in any) (ok bool, err error) {
	if err := c.QueryParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if fields := fieldErrors(in); fields != nil {
		return false, validationError(c, fields)
	}
	return true, nil
}
