package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain"
)

// statusByKind traduce la clase de error de dominio a código HTTP.
var statusByKind = map[string]int{
	domain.KindValidation:        fiber.StatusBadRequest,
	domain.KindInvalidQuantity:   fiber.StatusBadRequest,
	domain.KindDuplicateCode:     fiber.StatusConflict,
	domain.KindInsufficientStock: fiber.StatusConflict,
	domain.KindNotFound:          fiber.StatusNotFound,
	domain.KindForbidden:         fiber.StatusForbidden,
	domain.KindUnauthorized:      fiber.StatusUnauthorized,
	domain.KindPersistence:       fiber.StatusInternalServerError,
}

// respondError responde con dto.ErrorResponse según la clase del error.
func respondError(c *fiber.Ctx, err error) error {
	kind := domain.ErrorKind(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: kind, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
