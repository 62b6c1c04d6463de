package usecase

import (
	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// Module clave interna de un módulo del sistema.
type Module string

// Módulos del sistema.
const (
	ModuleWarehouses Module = "almacenes"
	ModuleInventory  Module = "inventario"
	ModuleReceiving  Module = "recepciones"
	ModuleDispatch   Module = "despachos"
	ModuleSuppliers  Module = "proveedores"
	ModuleUsers      Module = "usuarios"
	ModuleReports    Module = "reportes"
	ModuleMovements  Module = "movimientos"
)

var moduleCatalog = map[Module]dto.DashboardModuleResponse{
	ModuleWarehouses: {Name: "Almacenes", Description: "Gestión de almacenes y estantes", Icon: "warehouse"},
	ModuleInventory:  {Name: "Inventario", Description: "Stock por estante, traslados y ajustes", Icon: "boxes"},
	ModuleReceiving:  {Name: "Recepciones", Description: "Pedidos de ingreso y asignación a estantes", Icon: "truck-loading"},
	ModuleDispatch:   {Name: "Despachos", Description: "Órdenes de salida y confirmación", Icon: "shipping-fast"},
	ModuleSuppliers:  {Name: "Proveedores", Description: "Registro de proveedores", Icon: "handshake"},
	ModuleUsers:      {Name: "Usuarios", Description: "Cuentas y roles", Icon: "users"},
	ModuleReports:    {Name: "Reportes", Description: "Ingresos, inventario y despachos", Icon: "chart-bar"},
	ModuleMovements:  {Name: "Movimientos", Description: "Bitácora de movimientos de stock", Icon: "history"},
}

// roleModules módulos habilitados por rol. La autorización real vive en los
// endpoints; esto solo decide qué ve cada rol en la pantalla de inicio.
var roleModules = map[string][]Module{
	entity.RoleAdministrator: {
		ModuleWarehouses, ModuleInventory, ModuleReceiving, ModuleDispatch,
		ModuleSuppliers, ModuleUsers, ModuleReports, ModuleMovements,
	},
	entity.RoleManager: {
		ModuleWarehouses, ModuleInventory, ModuleReceiving, ModuleDispatch,
		ModuleSuppliers, ModuleReports, ModuleMovements,
	},
	entity.RoleAccountant: {
		ModuleReports, ModuleMovements,
	},
	entity.RoleAssistant: {
		ModuleInventory, ModuleReceiving, ModuleDispatch, ModuleMovements,
	},
	entity.RoleLogistics: {
		ModuleInventory, ModuleDispatch, ModuleMovements,
	},
}

// DashboardUseCase pantalla de inicio: módulos habilitados por rol + totales.
type DashboardUseCase struct {
	reportRepo repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo}
}

// ModulesFor devuelve los módulos habilitados para un rol. Un rol desconocido
// no ve ningún módulo.
func (uc *DashboardUseCase) ModulesFor(role string) []dto.DashboardModuleResponse {
	keys := roleModules[role]
	items := make([]dto.DashboardModuleResponse, 0, len(keys))
	for _, k := range keys {
		items = append(items, moduleCatalog[k])
	}
	return items
}

// Summary arma el dashboard del usuario: módulos + contadores de cabecera.
func (uc *DashboardUseCase) Summary(role string) (*dto.DashboardResponse, error) {
	counters, err := uc.reportRepo.Counters()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Modules: uc.ModulesFor(role),
		Counters: dto.DashboardCountersResponse{
			Warehouses:       counters.Warehouses,
			DistinctProducts: counters.DistinctProducts,
			TotalUnits:       counters.TotalUnits,
			PendingReceiving: counters.PendingReceiving,
			PendingDispatch:  counters.PendingDispatch,
		},
	}, nil
}
