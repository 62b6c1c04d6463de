package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/application/stock"
	"github.com/dquispe/almacen-api/internal/application/usecase"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// InventoryHandler maneja lecturas de inventario y mutaciones de stock (protegido).
type InventoryHandler struct {
	uc      *usecase.InventoryUseCase
	stockUC *stock.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, stockUC *stock.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, stockUC: stockUC}
}

// List godoc
// @Summary      Listar inventario con estadísticas
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        almacen_id    query  int     false  "Filtrar por almacén"
// @Param        categoria_id  query  int     false  "Filtrar por categoría"
// @Param        marca         query  string  false  "Búsqueda parcial por marca"
// @Success      200  {object}  dto.InventoryListResponse
// @Router       /api/inventario [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var filter repository.InventoryFilter
	if v := c.QueryInt("almacen_id", 0); v > 0 {
		id := int64(v)
		filter.WarehouseID = &id
	}
	if v := c.QueryInt("categoria_id", 0); v > 0 {
		id := int64(v)
		filter.CategoryID = &id
	}
	filter.BrandSearch = c.Query("marca")
	out, err := h.uc.List(filter)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// ListByWarehouse godoc
// @Summary      Inventario de un almacén
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del almacén"
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventario/almacen/{id} [get]
func (h *InventoryHandler) ListByWarehouse(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.ListByWarehouse(id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// ProductStock godoc
// @Summary      Ubicaciones y stock total de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Router       /api/inventario/producto/{id} [get]
func (h *InventoryHandler) ProductStock(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	out, err := h.uc.ProductStock(id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Bitácora de movimientos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movimientos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.Movements(page)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar línea recibida a un estante
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignRequest  true  "Asignación"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/asignar [post]
func (h *InventoryHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Assign(c.Context(), in, actorID(c)); err != nil {
		return httpError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto asignado al estante"})
}

// Transfer godoc
// @Summary      Trasladar stock entre estantes
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "Traslado"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/trasladar [post]
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Transfer(c.Context(), in, actorID(c)); err != nil {
		return httpError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "traslado realizado"})
}

// Adjust godoc
// @Summary      Ajustar stock de una fila de inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "Ajuste"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustar [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Adjust(c.Context(), in, actorID(c)); err != nil {
		return httpError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ajuste aplicado"})
}

// RecomputeWarehouse godoc
// @Summary      Recalcular capacidades ocupadas de un almacén
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del almacén"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/almacenes/{id}/recalcular [post]
func (h *InventoryHandler) RecomputeWarehouse(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.stockUC.RecomputeCascade(c.Context(), id); err != nil {
		return httpError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "capacidades recalculadas"})
}
