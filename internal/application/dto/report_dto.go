package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de reporte soportados.
const (
	ReportTypeIncome    = "ingreso"
	ReportTypeInventory = "inventario"
	ReportTypeDispatch  = "despacho"
)

// ReportRequest filtros del reporte. Los campos vacíos se ignoran.
type ReportRequest struct {
	Type        string     `json:"tipo_reporte" validate:"required,oneof=ingreso inventario despacho"`
	From        *time.Time `json:"fecha_inicio"`
	To          *time.Time `json:"fecha_fin"`
	SupplierID  *int64     `json:"proveedor_id"`
	CategoryID  *int64     `json:"categoria_id"`
	WarehouseID *int64     `json:"almacen_id"`
	Status      string     `json:"estado_despacho"`
	PersonID    *int64     `json:"responsable_id"`
}

// ReportResponse resultado tabular de un reporte: columnas + filas genéricas
// ya formateadas, listo para renderizar o exportar.
type ReportResponse struct {
	Type    string     `json:"tipo_reporte"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"data"`
}

// IncomeReportRowResponse línea del reporte de ingresos.
type IncomeReportRowResponse struct {
	OrderID      int64           `json:"id"`
	SupplierName string          `json:"proveedor"`
	Brand        string          `json:"producto"`
	Quantity     int64           `json:"cantidad"`
	UnitPrice    decimal.Decimal `json:"precio"`
	OrderDate    time.Time       `json:"fecha"`
}

// ReportOptionsResponse catálogos para poblar los filtros del reporte.
type ReportOptionsResponse struct {
	Suppliers   []SupplierResponse  `json:"proveedores"`
	Categories  []CategoryResponse  `json:"categorias"`
	Warehouses  []WarehouseResponse `json:"almacenes"`
	Responsible []UserResponse      `json:"responsables"`
}

// DashboardModuleResponse módulo visible para el rol del usuario.
type DashboardModuleResponse struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
	Icon        string `json:"icono"`
}

// DashboardResponse módulos habilitados + contadores de cabecera.
type DashboardResponse struct {
	Modules  []DashboardModuleResponse `json:"modulos"`
	Counters DashboardCountersResponse `json:"contadores"`
}

// DashboardCountersResponse totales de cabecera.
type DashboardCountersResponse struct {
	Warehouses       int64 `json:"almacenes"`
	DistinctProducts int64 `json:"productos"`
	TotalUnits       int64 `json:"unidades"`
	PendingReceiving int64 `json:"recepciones_pendientes"`
	PendingDispatch  int64 `json:"despachos_pendientes"`
}
