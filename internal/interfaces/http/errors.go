package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/grants-api/internal/application/dto"
	"github.com/jhoicas/grants-api/internal/domain"
)

// Códigos de error expuestos en ErrorResponse.Code.
const (
	CodeInvalidBody     = "INVALID_BODY"
	CodeValidation      = "VALIDATION"
	CodeDuplicateName   = "DUPLICATE_NAME"
	CodeUnknownCategory = "UNKNOWN_CATEGORY"
	CodeHasDependents   = "HAS_DEPENDENTS"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeRateLimited     = "RATE_LIMITED"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInternal        = "INTERNAL"
)

// writeError traduce un error de caso de uso a respuesta HTTP.
// Los fallos inesperados se registran con op e id y se devuelven con un mensaje genérico.
func writeError(c *fiber.Ctx, err error, op, id string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: CodeValidation, Message: "datos inválidos", Errors: verr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateName):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeDuplicateName, Message: domain.ErrDuplicateName.Error()})
	case errors.Is(err, domain.ErrUnknownCategoryReference):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeUnknownCategory, Message: domain.ErrUnknownCategoryReference.Error()})
	case errors.Is(err, domain.ErrHasDependents):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeHasDependents, Message: domain.ErrHasDependents.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: domain.ErrNotFound.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: CodeConflict, Message: domain.ErrConflict.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: domain.ErrForbidden.Error()})
	}

	event := zerolog.Ctx(c.UserContext()).Error().Err(err).Str("op", op)
	if id != "" {
		event = event.Str("id", id)
	}
	if errors.Is(err, domain.ErrUnavailable) {
		event.Msg("almacenamiento no disponible")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: CodeUnavailable, Message: "servicio no disponible, intente más tarde",
		})
	}
	event.Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"})
}

// invalidBody respuesta estándar cuando el cuerpo no es JSON válido.
func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}

// ErrorHandler maneja los errores que escapan de los handlers (rutas inexistentes, panics recuperados, etc.).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := CodeInternal
		switch fe.Code {
		case fiber.StatusNotFound:
			code = CodeNotFound
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = CodeInvalidBody
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: "error interno del servidor"})
}
