package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/application/inventory"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// InventoryHandler maneja el libro de movimientos de stock (protegido).
type InventoryHandler struct {
	uc *inventory.RecordMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RecordMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "item, type (Purchase|Sale|Return|Adjustment), quantity_change firmado, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RecordMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List libro completo, más recientes primero.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	list, err := h.uc.ListMovements(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// GetByID un movimiento.
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.uc.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(mov))
}

// ListByItem movimientos de un artículo.
func (h *InventoryHandler) ListByItem(c *fiber.Ctx) error {
	list, err := h.uc.ListMovementsByItem(c.UserContext(), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// UpdateNotes corrige las notas de un movimiento.
func (h *InventoryHandler) UpdateNotes(c *fiber.Ctx) error {
	var in dto.UpdateMovementNotesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.UpdateMovementNotes(c.UserContext(), c.Params("id"), in.Notes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(mov))
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *inventory.ToMovementResponse(m))
	}
	return out
}
