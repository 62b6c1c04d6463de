package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/application/usecase"
)

// ReceivingHandler maneja las peticiones HTTP de recepciones (protegido).
type ReceivingHandler struct {
	uc *usecase.ReceivingUseCase
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *usecase.ReceivingUseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido de ingreso
// @Tags         recepciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceivingRequest  true  "Pedido con sus líneas"
// @Success      201   {object}  dto.ReceivingOrderResponse
// @Router       /api/recepciones [post]
func (h *ReceivingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReceivingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return httpError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del pedido"
// @Success      200  {object}  dto.ReceivingWithDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id} [get]
func (h *ReceivingHandler) GetByID(c *fiber.Ctx) error {
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

// Update godoc
// @Summary      Editar cabecera de un pedido
// @Tags         recepciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del pedido"
// @Param        body  body  dto.UpdateReceivingRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ReceivingOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id} [put]
func (h *ReceivingHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.UpdateReceivingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos de ingreso
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReceivingOrderResponse
// @Router       /api/recepciones [get]
func (h *ReceivingHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido de ingreso
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del pedido"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id} [delete]
func (h *ReceivingHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "pedido eliminado"})
}

// PendingAssignment godoc
// @Summary      Líneas recibidas pendientes de asignar
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PendingAssignmentResponse
// @Router       /api/recepciones/pendientes [get]
func (h *ReceivingHandler) PendingAssignment(c *fiber.Ctx) error {
	out, err := h.uc.PendingAssignment()
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}
