package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/almacen-api/internal/application/auth"
	"github.com/dquispe/almacen-api/internal/application/stock"
	"github.com/dquispe/almacen-api/internal/application/usecase"
	"github.com/dquispe/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	WarehouseUC *usecase.WarehouseUseCase
	InventoryUC *usecase.InventoryUseCase
	StockUC     *stock.UseCase
	SupplierUC  *usecase.SupplierUseCase
	ProductUC   *usecase.ProductUseCase
	ReceivingUC *usecase.ReceivingUseCase
	DispatchUC  *usecase.DispatchUseCase
	UserUC      *usecase.UserUseCase
	ReportUC    *usecase.ReportUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Almacenes y estantes
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	almacenes := protected.Group("/almacenes")
	almacenes.Post("/", warehouseHandler.Create)
	almacenes.Get("/", warehouseHandler.List)
	almacenes.Get("/:id", warehouseHandler.GetByID)
	almacenes.Put("/:id", warehouseHandler.Update)
	almacenes.Delete("/:id", warehouseHandler.Delete)
	almacenes.Get("/:id/estantes", warehouseHandler.ListShelves)
	almacenes.Get("/:id/estantes/disponibles", warehouseHandler.ListAvailableShelves)

	estantes := protected.Group("/estantes")
	estantes.Post("/", warehouseHandler.CreateShelf)
	estantes.Put("/:id", warehouseHandler.UpdateShelf)
	estantes.Delete("/:id", warehouseHandler.DeleteShelf)

	// Inventario y movimientos
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.StockUC)
	inventario := protected.Group("/inventario")
	inventario.Get("/", inventoryHandler.List)
	inventario.Get("/almacen/:id", inventoryHandler.ListByWarehouse)
	inventario.Get("/producto/:id", inventoryHandler.ProductStock)
	inventario.Post("/asignar", inventoryHandler.Assign)
	inventario.Post("/trasladar", inventoryHandler.Transfer)
	inventario.Post("/ajustar", inventoryHandler.Adjust)
	protected.Get("/movimientos", inventoryHandler.Movements)
	almacenes.Post("/:id/recalcular", inventoryHandler.RecomputeWarehouse)

	// Proveedores
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	proveedores := protected.Group("/proveedores")
	proveedores.Post("/", supplierHandler.Create)
	proveedores.Get("/", supplierHandler.List)
	proveedores.Get("/:id", supplierHandler.GetByID)
	proveedores.Put("/:id", supplierHandler.Update)
	proveedores.Delete("/:id", supplierHandler.Delete)

	// Productos y categorías
	productHandler := NewProductHandler(deps.ProductUC)
	productos := protected.Group("/productos")
	productos.Post("/", productHandler.Create)
	productos.Get("/", productHandler.List)
	productos.Get("/:id", productHandler.GetByID)
	productos.Put("/:id", productHandler.Update)
	productos.Delete("/:id", productHandler.Delete)
	protected.Post("/categorias", productHandler.CreateCategory)
	protected.Get("/categorias", productHandler.ListCategories)

	// Recepciones de mercadería
	receivingHandler := NewReceivingHandler(deps.ReceivingUC)
	recepciones := protected.Group("/recepciones")
	recepciones.Post("/", receivingHandler.Create)
	recepciones.Get("/", receivingHandler.List)
	recepciones.Get("/pendientes", receivingHandler.PendingAssignment)
	recepciones.Get("/:id", receivingHandler.GetByID)
	recepciones.Put("/:id", receivingHandler.Update)
	recepciones.Delete("/:id", receivingHandler.Delete)

	// Despachos
	dispatchHandler := NewDispatchHandler(deps.DispatchUC)
	despachos := protected.Group("/despachos")
	despachos.Post("/", dispatchHandler.Create)
	despachos.Get("/", dispatchHandler.List)
	despachos.Get("/proveedores", dispatchHandler.SuppliersWithStock)
	despachos.Get("/proveedor/:id/historial", dispatchHandler.History)
	despachos.Get("/proveedor/:id/disponibles", dispatchHandler.AvailableBySupplier)
	despachos.Get("/:id", dispatchHandler.GetByID)
	despachos.Put("/:id", dispatchHandler.UpdateNotes)
	despachos.Post("/:id/preparacion", dispatchHandler.StartPicking)
	despachos.Post("/:id/confirmar", dispatchHandler.Confirm)
	despachos.Post("/:id/cancelar", dispatchHandler.Cancel)

	// Usuarios y roles (solo Administrador)
	userHandler := NewUserHandler(deps.UserUC)
	// Los responsables se consultan desde las pantallas de despacho,
	// por lo que no exigen rol de administrador.
	protected.Get("/usuarios/responsables", userHandler.ListResponsible)
	usuarios := protected.Group("/usuarios", RequireRoles(entity.RoleAdministrator))
	usuarios.Get("/", userHandler.List)
	usuarios.Get("/:id", userHandler.GetByID)
	usuarios.Put("/:id", userHandler.Update)
	usuarios.Delete("/:id", userHandler.Delete)
	protected.Get("/roles", RequireRoles(entity.RoleAdministrator), userHandler.ListRoles)

	// Reportes (Administrador, Contador y Gerente)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportes := protected.Group("/reportes", RequireRoles(entity.RoleAdministrator, entity.RoleAccountant, entity.RoleManager))
	reportes.Post("/", reportHandler.Generate)
	reportes.Post("/excel", reportHandler.ExportExcel)
	reportes.Post("/pdf", reportHandler.ExportPDF)
	reportes.Get("/opciones", reportHandler.Options)
}
