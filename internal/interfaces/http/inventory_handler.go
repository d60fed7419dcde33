package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

// InventoryHandler maneja movimientos manuales y el libro de movimientos (protegido).
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	ledger    *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.MovementUseCase, ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, ledger: ledger}
}

// ApplyMovement godoc
// @Summary      Registrar entrada o salida de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, kind (stock_in|stock_out), quantity > 0, note"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.movements.ApplyMovementFromRequest(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Libro de movimientos
// @Description  Del más reciente al más antiguo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit       query  int     false  "Límite (por defecto LEDGER_PAGE_SIZE)"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        kind        query  string  false  "Filtrar por tipo"
// @Success      200         {array}   dto.MovementResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.ledger.List(c.Context(), repository.MovementFilter{
		Limit:     c.QueryInt("limit", 0),
		ProductID: c.Query("product_id"),
		Kind:      entity.MovementKind(c.Query("kind")),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteMovement godoc
// @Summary      Borrar una entrada del libro
// @Description  Acción administrativa, deshabilitada salvo LEDGER_ALLOW_DELETE. No altera el stock.
// @Tags         inventory
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	if err := h.ledger.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
