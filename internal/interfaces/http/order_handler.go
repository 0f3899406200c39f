package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/application/orders"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

// OrderHandler pedidos (protegido).
type OrderHandler struct {
	create *orders.CreateOrderUseCase
	uc     *orders.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(create *orders.CreateOrderUseCase, uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{create: create, uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  El total se calcula desde el catálogo; cualquier total enviado se ignora.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "customer, items[{product, quantity}]"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.create.CreateOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orders.ToOrderResponse(order))
}

// List pedidos, más recientes primero.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListOrders(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderResponses(list))
}

// GetByID un pedido con sus líneas.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(orders.ToOrderResponse(order))
}

// ListByCustomer pedidos de un cliente.
func (h *OrderHandler) ListByCustomer(c *fiber.Ctx) error {
	list, err := h.uc.ListOrdersByCustomer(c.UserContext(), c.Params("customerId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toOrderResponses(list))
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Pending|Processing|Shipped|Completed|Cancelled"
// @Success      200   {object}  dto.OrderResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	order, err := h.uc.UpdateOrderStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(orders.ToOrderResponse(order))
}

func toOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *orders.ToOrderResponse(o))
	}
	return out
}
