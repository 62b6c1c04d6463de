package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/application/usecase"
)

// ReportHandler reportes tabulares y sus exportaciones (rol restringido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar reporte
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReportRequest  true  "Tipo y filtros"
// @Success      200   {object}  dto.ReportResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/reportes [post]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Generate(GetUserRole(c), in)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}

// ExportExcel godoc
// @Summary      Exportar reporte a Excel
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.ReportRequest  true  "Tipo y filtros"
// @Success      200   {file}  file
// @Router       /api/reportes/excel [post]
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	data, err := h.uc.ExportExcel(GetUserRole(c), in)
	if err != nil {
		return httpError(c, err)
	}
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="reporte.xlsx"`)
	return c.Send(data)
}

// ExportPDF godoc
// @Summary      Exportar reporte a PDF
// @Tags         reportes
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ReportRequest  true  "Tipo y filtros"
// @Success      200   {file}  file
// @Router       /api/reportes/pdf [post]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	data, err := h.uc.ExportPDF(GetUserRole(c), in)
	if err != nil {
		return httpError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="reporte.pdf"`)
	return c.Send(data)
}

// Options godoc
// @Summary      Catálogos para los filtros del reporte
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportOptionsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reportes/opciones [get]
func (h *ReportHandler) Options(c *fiber.Ctx) error {
	out, err := h.uc.Options(GetUserRole(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(out)
}
