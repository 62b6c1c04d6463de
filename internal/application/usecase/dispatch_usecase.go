package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/application/stock"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// DispatchUseCase casos de uso para órdenes de despacho.
type DispatchUseCase struct {
	dispRepo     repository.DispatchRepository
	invRepo      repository.InventoryRepository
	supplierRepo repository.SupplierRepository
	stockUC      *stock.UseCase
	txRunner     stock.TxRunner
	now          func() time.Time
}

// NewDispatchUseCase construye el caso de uso.
func NewDispatchUseCase(dispRepo repository.DispatchRepository, invRepo repository.InventoryRepository, supplierRepo repository.SupplierRepository, stockUC *stock.UseCase, txRunner stock.TxRunner) *DispatchUseCase {
	return &DispatchUseCase{
		dispRepo:     dispRepo,
		invRepo:      invRepo,
		supplierRepo: supplierRepo,
		stockUC:      stockUC,
		txRunner:     txRunner,
		now:          time.Now,
	}
}

// Create crea una orden de despacho en estado Pendiente con número de guía
// correlativo GS-AAAAMMDD-NNNN. Cabecera y líneas se insertan en una sola
// transacción.
func (uc *DispatchUseCase) Create(ctx context.Context, in dto.CreateDispatchRequest, personID *int64) (*dto.DispatchOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.supplierRepo.GetByID(in.SupplierID); err != nil {
		return nil, asInvalidRef(err)
	}
	for _, line := range in.Lines {
		if line.RequestedQty < 1 {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.invRepo.GetByID(line.InventoryID)
		if err != nil {
			return nil, asInvalidRef(err)
		}
		if item.ProductID != line.ProductID {
			return nil, domain.ErrInvalidInput
		}
	}

	var order *entity.DispatchOrder
	err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		_ repository.ShelfRepository,
		_ repository.WarehouseRepository,
		_ repository.MovementRepository,
		_ repository.ReceivingRepository,
		dispRepo repository.DispatchRepository,
	) error {
		n, err := dispRepo.CountOrders()
		if err != nil {
			return err
		}
		order = &entity.DispatchOrder{
			GuideNumber: fmt.Sprintf("GS-%s-%04d", uc.now().Format("20060102"), n+1),
			RequestDate: uc.now(),
			Status:      entity.DispatchStatusPending,
			Notes:       in.Notes,
			SupplierID:  in.SupplierID,
			PersonID:    personID,
		}
		if err := dispRepo.CreateOrder(order); err != nil {
			return err
		}
		for _, line := range in.Lines {
			detail := &entity.DispatchDetail{
				OrderID:      order.ID,
				RequestedQty: line.RequestedQty,
				ProductID:    line.ProductID,
				InventoryID:  line.InventoryID,
			}
			if err := dispRepo.CreateDetail(detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.orderResponse(order.ID)
}

// GetByID obtiene una orden con sus líneas y la ubicación actual del stock.
func (uc *DispatchUseCase) GetByID(id int64) (*dto.DispatchWithDetailsResponse, error) {
	row, err := uc.dispRepo.GetOrderRow(id)
	if err != nil {
		return nil, err
	}
	details, err := uc.dispRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	out := &dto.DispatchWithDetailsResponse{
		Order:   toDispatchOrderResponse(*row),
		Details: make([]dto.DispatchDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.DispatchDetailResponse{
			ID:            d.Detail.ID,
			RequestedQty:  d.Detail.RequestedQty,
			DispatchedQty: d.Detail.DispatchedQty,
			ProductID:     d.Detail.ProductID,
			InventoryID:   d.Detail.InventoryID,
			Brand:         d.Brand,
			CategoryName:  d.CategoryName,
			Stock:         d.Stock,
			Aisle:         d.Aisle,
			WarehouseName: d.WarehouseName,
		})
	}
	return out, nil
}

// StartPicking pasa una orden Pendiente a En Preparación y la devuelve con sus
// líneas para armar el picking.
func (uc *DispatchUseCase) StartPicking(id int64) (*dto.DispatchWithDetailsResponse, error) {
	order, err := uc.dispRepo.GetOrder(id)
	if err != nil {
		return nil, err
	}
	switch order.Status {
	case entity.DispatchStatusPending:
		if err := uc.dispRepo.SetStatus(id, entity.DispatchStatusPreparing); err != nil {
			return nil, err
		}
	case entity.DispatchStatusPreparing:
		// ya en preparación, reabrir la pantalla es válido
	default:
		return nil, domain.ErrInvalidTransition
	}
	return uc.GetByID(id)
}

// Confirm despacha la orden: valida y descuenta stock de forma atómica.
func (uc *DispatchUseCase) Confirm(ctx context.Context, id int64, in dto.ConfirmDispatchRequest, personID *int64) (*dto.DispatchWithDetailsResponse, error) {
	lines := make([]stock.DispatchLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, stock.DispatchLine{
			DetailID:      l.DetailID,
			DispatchedQty: l.DispatchedQty,
		})
	}
	err := uc.stockUC.ConfirmDispatch(ctx, stock.ConfirmDispatchInput{
		OrderID:  id,
		Lines:    lines,
		PersonID: personID,
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

// Cancel cancela una orden no despachada.
func (uc *DispatchUseCase) Cancel(id int64) error {
	order, err := uc.dispRepo.GetOrder(id)
	if err != nil {
		return err
	}
	switch order.Status {
	case entity.DispatchStatusDispatched, entity.DispatchStatusCancelled:
		return domain.ErrInvalidTransition
	}
	return uc.dispRepo.SetStatus(id, entity.DispatchStatusCancelled)
}

// UpdateNotes edita las observaciones de una orden aún no terminal.
func (uc *DispatchUseCase) UpdateNotes(id int64, in dto.UpdateDispatchRequest) error {
	order, err := uc.dispRepo.GetOrder(id)
	if err != nil {
		return err
	}
	switch order.Status {
	case entity.DispatchStatusDispatched, entity.DispatchStatusCancelled:
		return domain.ErrInvalidTransition
	}
	return uc.dispRepo.UpdateNotes(id, in.Notes)
}

// List lista todas las órdenes de despacho.
func (uc *DispatchUseCase) List() ([]dto.DispatchOrderResponse, error) {
	rows, err := uc.dispRepo.ListOrders()
	if err != nil {
		return nil, err
	}
	return toDispatchOrderResponses(rows), nil
}

// History lista el historial de despachos de un proveedor.
func (uc *DispatchUseCase) History(supplierID int64) ([]dto.DispatchOrderResponse, error) {
	if _, err := uc.supplierRepo.GetByID(supplierID); err != nil {
		return nil, err
	}
	rows, err := uc.dispRepo.ListBySupplier(supplierID)
	if err != nil {
		return nil, err
	}
	return toDispatchOrderResponses(rows), nil
}

// AvailableBySupplier lista el inventario con stock del proveedor, para armar
// las líneas de una nueva orden.
func (uc *DispatchUseCase) AvailableBySupplier(supplierID int64) ([]dto.SupplierStockResponse, error) {
	if _, err := uc.supplierRepo.GetByID(supplierID); err != nil {
		return nil, err
	}
	rows, err := uc.dispRepo.AvailableBySupplier(supplierID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierStockResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.SupplierStockResponse{
			InventoryID:   r.InventoryID,
			ProductID:     r.ProductID,
			Brand:         r.Brand,
			CategoryName:  r.CategoryName,
			Stock:         r.Stock,
			Aisle:         r.Aisle,
			WarehouseName: r.WarehouseName,
		})
	}
	return items, nil
}

// SuppliersWithStock lista los proveedores que tienen inventario disponible.
func (uc *DispatchUseCase) SuppliersWithStock() ([]dto.SupplierResponse, error) {
	list, err := uc.dispRepo.SuppliersWithStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

func (uc *DispatchUseCase) orderResponse(id int64) (*dto.DispatchOrderResponse, error) {
	row, err := uc.dispRepo.GetOrderRow(id)
	if err != nil {
		return nil, err
	}
	out := toDispatchOrderResponse(*row)
	return &out, nil
}

func toDispatchOrderResponses(rows []repository.DispatchOrderRow) []dto.DispatchOrderResponse {
	items := make([]dto.DispatchOrderResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toDispatchOrderResponse(r))
	}
	return items
}

func toDispatchOrderResponse(r repository.DispatchOrderRow) dto.DispatchOrderResponse {
	return dto.DispatchOrderResponse{
		ID:              r.Order.ID,
		GuideNumber:     r.Order.GuideNumber,
		RequestDate:     r.Order.RequestDate,
		DispatchDate:    r.Order.DispatchDate,
		Status:          r.Order.Status,
		Notes:           r.Order.Notes,
		SupplierID:      r.Order.SupplierID,
		SupplierName:    r.SupplierName,
		SupplierCompany: r.SupplierCompany,
		PersonName:      r.PersonName,
		TotalItems:      r.TotalItems,
		TotalRequested:  r.TotalRequested,
		TotalDispatched: r.TotalDispatched,
	}
}
