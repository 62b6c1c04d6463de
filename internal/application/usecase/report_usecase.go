package usecase

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// moneyPrinter formatea montos con separadores en español ("1.234,56").
var moneyPrinter = message.NewPrinter(language.Spanish)

func formatMoney(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("%.2f", d.InexactFloat64())
}

// ReportExporter serializa un reporte tabular a un formato binario (xlsx, pdf).
type ReportExporter interface {
	Export(title string, columns []string, rows [][]string) ([]byte, error)
}

// ReportUseCase reportes tabulares con filtros, restringidos por rol.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	whRepo       repository.WarehouseRepository
	personRepo   repository.PersonRepository
	excel        ReportExporter
	pdf          ReportExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	whRepo repository.WarehouseRepository,
	personRepo repository.PersonRepository,
	excel, pdf ReportExporter,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		whRepo:       whRepo,
		personRepo:   personRepo,
		excel:        excel,
		pdf:          pdf,
	}
}

// canViewReports solo Administrador, Contador y Gerente acceden a reportes.
func canViewReports(role string) bool {
	switch role {
	case entity.RoleAdministrator, entity.RoleAccountant, entity.RoleManager:
		return true
	}
	return false
}

// Generate arma el reporte pedido. Devuelve ErrForbidden si el rol no tiene
// acceso a reportes.
func (uc *ReportUseCase) Generate(role string, in dto.ReportRequest) (*dto.ReportResponse, error) {
	if !canViewReports(role) {
		return nil, domain.ErrForbidden
	}
	filter := repository.ReportFilter{
		From:        in.From,
		To:          in.To,
		SupplierID:  in.SupplierID,
		CategoryID:  in.CategoryID,
		WarehouseID: in.WarehouseID,
		Status:      in.Status,
		PersonID:    in.PersonID,
	}
	switch in.Type {
	case dto.ReportTypeIncome:
		return uc.incomeReport(filter)
	case dto.ReportTypeInventory:
		return uc.inventoryReport(filter)
	case dto.ReportTypeDispatch:
		return uc.dispatchReport(filter)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// ExportExcel genera el reporte y lo serializa como xlsx.
func (uc *ReportUseCase) ExportExcel(role string, in dto.ReportRequest) ([]byte, error) {
	return uc.export(role, in, uc.excel)
}

// ExportPDF genera el reporte y lo serializa como pdf.
func (uc *ReportUseCase) ExportPDF(role string, in dto.ReportRequest) ([]byte, error) {
	return uc.export(role, in, uc.pdf)
}

func (uc *ReportUseCase) export(role string, in dto.ReportRequest, exp ReportExporter) ([]byte, error) {
	report, err := uc.Generate(role, in)
	if err != nil {
		return nil, err
	}
	return exp.Export(reportTitle(report.Type), report.Columns, report.Rows)
}

// Options devuelve los catálogos para poblar los filtros del reporte.
func (uc *ReportUseCase) Options(role string) (*dto.ReportOptionsResponse, error) {
	if !canViewReports(role) {
		return nil, domain.ErrForbidden
	}
	suppliers, err := uc.supplierRepo.List()
	if err != nil {
		return nil, err
	}
	categories, err := uc.productRepo.ListCategories()
	if err != nil {
		return nil, err
	}
	warehouses, err := uc.whRepo.List()
	if err != nil {
		return nil, err
	}
	responsible, err := uc.personRepo.ListByRoles([]string{
		entity.RoleAdministrator,
		entity.RoleManager,
		entity.RoleAssistant,
		entity.RoleLogistics,
	})
	if err != nil {
		return nil, err
	}

	out := &dto.ReportOptionsResponse{}
	for _, s := range suppliers {
		out.Suppliers = append(out.Suppliers, *toSupplierResponse(s))
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, *toCategoryResponse(c))
	}
	for _, w := range warehouses {
		out.Warehouses = append(out.Warehouses, *toWarehouseResponse(w))
	}
	for _, p := range responsible {
		out.Responsible = append(out.Responsible, toUserResponse(p))
	}
	return out, nil
}

func (uc *ReportUseCase) incomeReport(filter repository.ReportFilter) (*dto.ReportResponse, error) {
	rows, err := uc.reportRepo.Incomes(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ReportResponse{
		Type:    dto.ReportTypeIncome,
		Columns: []string{"ID", "Proveedor", "Producto", "Cant.", "Precio", "Fecha"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, []string{
			strconv.FormatInt(r.OrderID, 10),
			r.SupplierName,
			r.Brand,
			strconv.FormatInt(r.Quantity, 10),
			formatMoney(r.UnitPrice),
			r.OrderDate.Format("02/01/2006"),
		})
	}
	return out, nil
}

func (uc *ReportUseCase) inventoryReport(filter repository.ReportFilter) (*dto.ReportResponse, error) {
	rows, err := uc.reportRepo.Inventory(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ReportResponse{
		Type:    dto.ReportTypeInventory,
		Columns: []string{"ID", "Producto", "Categoría", "Stock", "Almacén"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, []string{
			strconv.FormatInt(r.InventoryID, 10),
			r.Brand,
			r.CategoryName,
			strconv.FormatInt(r.Stock, 10),
			r.WarehouseName,
		})
	}
	return out, nil
}

func (uc *ReportUseCase) dispatchReport(filter repository.ReportFilter) (*dto.ReportResponse, error) {
	rows, err := uc.reportRepo.Dispatches(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ReportResponse{
		Type:    dto.ReportTypeDispatch,
		Columns: []string{"ID", "N° Guía", "Responsable", "Producto", "Cant.", "Estado"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, []string{
			strconv.FormatInt(r.OrderID, 10),
			r.GuideNumber,
			r.PersonName,
			r.Brand,
			strconv.FormatInt(r.RequestedQty, 10),
			r.Status,
		})
	}
	return out, nil
}

func reportTitle(reportType string) string {
	switch reportType {
	case dto.ReportTypeIncome:
		return "Reporte de Ingresos"
	case dto.ReportTypeInventory:
		return "Reporte de Inventario"
	case dto.ReportTypeDispatch:
		return "Reporte de Despachos"
	}
	return "Reporte"
}
