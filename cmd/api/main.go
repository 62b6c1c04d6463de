package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dquispe/almacen-api/internal/application/auth"
	"github.com/dquispe/almacen-api/internal/application/stock"
	"github.com/dquispe/almacen-api/internal/application/usecase"
	infraexcel "github.com/dquispe/almacen-api/internal/infrastructure/excel"
	infrapdf "github.com/dquispe/almacen-api/internal/infrastructure/pdf"
	"github.com/dquispe/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/dquispe/almacen-api/internal/interfaces/http"
	"github.com/dquispe/almacen-api/pkg/config"
	"github.com/dquispe/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	shelfRepo := postgres.NewShelfRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	receivingRepo := postgres.NewReceivingRepository(pool)
	dispatchRepo := postgres.NewDispatchRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	personRepo := postgres.NewPersonRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Núcleo de stock: asignaciones, traslados, ajustes y despachos
	// con actualización en cascada de capacidades ocupadas.
	stockUC := stock.NewUseCase(txRunner)

	authUC := auth.NewAuthUseCase(personRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, shelfRepo)
	inventoryUC := usecase.NewInventoryUseCase(inventoryRepo, movementRepo, stockUC)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	receivingUC := usecase.NewReceivingUseCase(receivingRepo, supplierRepo, productRepo, txRunner)
	dispatchUC := usecase.NewDispatchUseCase(dispatchRepo, inventoryRepo, supplierRepo, stockUC, txRunner)
	userUC := usecase.NewUserUseCase(personRepo)
	reportUC := usecase.NewReportUseCase(
		reportRepo, supplierRepo, productRepo, warehouseRepo, personRepo,
		infraexcel.NewReportWriter(), infrapdf.NewReportGenerator(),
	)
	dashboardUC := usecase.NewDashboardUseCase(reportRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		WarehouseUC: warehouseUC,
		InventoryUC: inventoryUC,
		StockUC:     stockUC,
		SupplierUC:  supplierUC,
		ProductUC:   productUC,
		ReceivingUC: receivingUC,
		DispatchUC:  dispatchUC,
		UserUC:      userUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
