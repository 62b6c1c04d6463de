package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter filtros opcionales de los reportes. Los punteros nil se ignoran.
type ReportFilter struct {
	From        *time.Time
	To          *time.Time
	SupplierID  *int64
	CategoryID  *int64
	WarehouseID *int64
	Status      string // solo reporte de despachos
	PersonID    *int64 // responsable; ingresos y despachos
}

// IncomeReportRow línea del reporte de ingresos (pedido × producto).
type IncomeReportRow struct {
	OrderID      int64
	SupplierName string
	Brand        string
	Quantity     int64
	UnitPrice    decimal.Decimal
	OrderDate    time.Time
}

// InventoryReportRow línea del reporte de inventario.
type InventoryReportRow struct {
	InventoryID   int64
	Brand         string
	CategoryName  string
	Stock         int64
	WarehouseName string
}

// DispatchReportRow línea del reporte de despachos (orden × producto).
type DispatchReportRow struct {
	OrderID      int64
	GuideNumber  string
	PersonName   string
	Brand        string
	RequestedQty int64
	Status       string
}

// DashboardCounters totales de cabecera del dashboard.
type DashboardCounters struct {
	Warehouses       int64
	DistinctProducts int64
	TotalUnits       int64
	PendingReceiving int64
	PendingDispatch  int64
}

// ReportRepository define las consultas de lectura para reportes y dashboard.
// Las implementaciones son read-only (no modifican datos).
type ReportRepository interface {
	Incomes(filter ReportFilter) ([]IncomeReportRow, error)
	Inventory(filter ReportFilter) ([]InventoryReportRow, error)
	Dispatches(filter ReportFilter) ([]DispatchReportRow, error)
	Counters() (*DashboardCounters, error)
}
