package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-orders-api/internal/application/auth"
	"github.com/jhoicas/stock-orders-api/internal/application/dto"
)

// UserHandler perfil del usuario autenticado y activación (Admin).
type UserHandler struct {
	uc *auth.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}

// SetActive activa o desactiva un usuario.
func (h *UserHandler) SetActive(c *fiber.Ctx) error {
	var in dto.SetUserActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.SetActive(c.UserContext(), GetUserID(c), c.Params("id"), in.Active)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(user)
}
