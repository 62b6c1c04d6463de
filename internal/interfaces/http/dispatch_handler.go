package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/application/usecase"
)

// DispatchHandler maneja las peticiones HTTP de despachos (protegido).
type DispatchHandler struct {
	uc *usecase.DispatchUseCase
}

// NewDispatchHandler construye el handler.
func NewDispatchHandler(uc *usecase.DispatchUseCase) *DispatchHandler {
	return &DispatchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de despacho
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDispatchRequest  true  "Orden con sus líneas"
// @Success      201   {object}  dto.DispatchOrderResponse
// @Router       /api/despachos [post]
func (h *DispatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in, actorID(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden con sus líneas
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.DispatchWithDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despachos/{id} [get]
func (h *DispatchHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// StartPicking godoc
// @Summary      Iniciar preparación de una orden
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.DispatchWithDetailsResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/despachos/{id}/preparacion [post]
func (h *DispatchHandler) StartPicking(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.StartPicking(id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar despacho (descuenta stock)
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.ConfirmDispatchRequest  true  "Cantidades despachadas"
// @Success      200   {object}  dto.DispatchWithDetailsResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/despachos/{id}/confirmar [post]
func (h *DispatchHandler) Confirm(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.ConfirmDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Confirm(c.Context(), id, in, actorID(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden de despacho
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/despachos/{id}/cancelar [post]
func (h *DispatchHandler) Cancel(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Cancel(id); err != nil {
		return httpError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "orden cancelada"})
}

// UpdateNotes godoc
// @Summary      Editar observaciones de una orden
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.UpdateDispatchRequest  true  "Observaciones"
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/despachos/{id} [put]
func (h *DispatchHandler) UpdateNotes(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.UpdateDispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateNotes(id, in); err != nil {
		return httpError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "observaciones actualizadas"})
}

// List godoc
// @Summary      Listar órdenes de despacho
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DispatchOrderResponse
// @Router       /api/despachos [get]
func (h *DispatchHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de despachos de un proveedor
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del proveedor"
// @Success      200  {array}  dto.DispatchOrderResponse
// @Router       /api/despachos/proveedor/{id}/historial [get]
func (h *DispatchHandler) History(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.History(id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// AvailableBySupplier godoc
// @Summary      Inventario disponible de un proveedor
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del proveedor"
// @Success      200  {array}  dto.SupplierStockResponse
// @Router       /api/despachos/proveedor/{id}/disponibles [get]
func (h *DispatchHandler) AvailableBySupplier(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.AvailableBySupplier(id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// SuppliersWithStock godoc
// @Summary      Proveedores con inventario disponible
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/despachos/proveedores [get]
func (h *DispatchHandler) SuppliersWithStock(c *fiber.Ctx) error {
	out, err := h.uc.SuppliersWithStock()
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}
