package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/domain"
)

// localError guarda el error original para que el logger de requests lo registre.
const localError = "request_error"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el JSON y aplica las reglas de validación del DTO.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Wrap(domain.ErrInvalidInput, "cuerpo inválido")
	}
	return validateStruct(out)
}

// parseQuery igual que parseBody para parámetros de query.
func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.Wrap(domain.ErrInvalidInput, "parámetros inválidos")
	}
	return validateStruct(out)
}

func validateStruct(out any) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Wrap(domain.ErrInvalidInput, "%v", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]+": "+fe.Tag())
	}
	return domain.Wrap(domain.ErrInvalidInput, "%s", strings.Join(fields, "; "))
}

// statusFor traduce la clase del error de dominio a un status HTTP.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	case domain.KindUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// errorResponder arma el sobre de error. Fuera de development no expone el detalle de errores internos.
type errorResponder struct {
	exposeInternal bool
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	c.Locals(localError, err)
	de := domain.AsError(err)
	if de == nil {
		msg := "error interno"
		if r.exposeInternal {
			msg = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Response{Success: false, Message: msg, Error: "INTERNAL"})
	}
	return c.Status(statusFor(de.Kind)).JSON(dto.Response{Success: false, Message: err.Error(), Error: de.Code})
}

func ok(c *fiber.Ctx, status int, msg string, data any) error {
	return c.Status(status).JSON(dto.Response{Success: true, Message: msg, Data: data})
}
