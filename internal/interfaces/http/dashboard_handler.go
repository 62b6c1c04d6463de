package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/almacen-api/internal/application/usecase"
)

// DashboardHandler pantalla de inicio del usuario autenticado.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Dashboard del usuario (módulos + contadores)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(GetUserRole(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}
