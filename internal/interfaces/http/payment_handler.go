package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-orders-api/internal/application/dto"
	"github.com/jhoicas/stock-orders-api/internal/application/payments"
)

// PaymentHandler inicio, verificación y listado de pagos.
type PaymentHandler struct {
	uc *payments.PaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Initiate godoc
// @Summary      Iniciar pago de pedidos
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitiatePaymentRequest  true  "email, first_name, last_name, currency, items (ids de pedidos)"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Initiate(c *fiber.Ctx) error {
	var in dto.InitiatePaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	tx, err := h.uc.InitiatePayment(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payments.ToPaymentResponse(tx))
}

// Verify callback público de la pasarela.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	tx, err := h.uc.VerifyPayment(c.UserContext(), c.Params("txRef"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payments.ToPaymentResponse(tx))
}

// List transacciones de pago.
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListPayments(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, *payments.ToPaymentResponse(tx))
	}
	return c.JSON(out)
}
