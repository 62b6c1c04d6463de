package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/dquispe/almacen-api/internal/application/dto"
	"github.com/dquispe/almacen-api/internal/application/stock"
	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

// ReceivingUseCase casos de uso para pedidos de ingreso (recepciones).
type ReceivingUseCase struct {
	recvRepo     repository.ReceivingRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	txRunner     stock.TxRunner
}

// NewReceivingUseCase construye el caso de uso.
func NewReceivingUseCase(recvRepo repository.ReceivingRepository, supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository, txRunner stock.TxRunner) *ReceivingUseCase {
	return &ReceivingUseCase{recvRepo: recvRepo, supplierRepo: supplierRepo, productRepo: productRepo, txRunner: txRunner}
}

// Create crea un pedido de ingreso con sus líneas en una sola transacción: un
// fallo a mitad de las líneas no deja cabecera huérfana. El precio total se
// calcula de las líneas, nunca se acepta del cliente.
func (uc *ReceivingUseCase) Create(ctx context.Context, in dto.CreateReceivingRequest) (*dto.ReceivingOrderResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.supplierRepo.GetByID(in.SupplierID); err != nil {
		return nil, asInvalidRef(err)
	}

	total := decimal.Zero
	for _, line := range in.Lines {
		if line.Quantity < 1 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.productRepo.GetByID(line.ProductID); err != nil {
			return nil, asInvalidRef(err)
		}
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}

	status := in.Status
	if status == "" {
		status = entity.ReceivingStatusPending
	}
	if !validReceivingStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	order := &entity.ReceivingOrder{
		DocumentNumber: in.DocumentNumber,
		TotalPrice:     total,
		OrderDate:      in.OrderDate,
		DeliveryDate:   in.DeliveryDate,
		Status:         status,
		SupplierID:     in.SupplierID,
	}
	err := uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		_ repository.ShelfRepository,
		_ repository.WarehouseRepository,
		_ repository.MovementRepository,
		recvRepo repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		if err := recvRepo.CreateOrder(order); err != nil {
			return err
		}
		for _, line := range in.Lines {
			detail := &entity.ReceivingDetail{
				OrderID:   order.ID,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
				ProductID: line.ProductID,
			}
			if err := recvRepo.CreateDetail(detail); err != nil {
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

// GetByID obtiene un pedido con sus líneas.
func (uc *ReceivingUseCase) GetByID(id int64) (*dto.ReceivingWithDetailsResponse, error) {
	row, err := uc.recvRepo.GetOrderRow(id)
	if err != nil {
		return nil, err
	}
	details, err := uc.recvRepo.ListDetails(id)
	if err != nil {
		return nil, err
	}
	out := &dto.ReceivingWithDetailsResponse{
		Order:   toReceivingOrderResponse(*row),
		Details: make([]dto.ReceivingDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.ReceivingDetailResponse{
			ID:           d.Detail.ID,
			UnitPrice:    d.Detail.UnitPrice,
			Quantity:     d.Detail.Quantity,
			ProductID:    d.Detail.ProductID,
			Brand:        d.Brand,
			CategoryName: d.CategoryName,
		})
	}
	return out, nil
}

// Update edita la cabecera de un pedido. Un pedido ya asignado es inmutable.
func (uc *ReceivingUseCase) Update(id int64, in dto.UpdateReceivingRequest) (*dto.ReceivingOrderResponse, error) {
	order, err := uc.recvRepo.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status == entity.ReceivingStatusAssigned {
		return nil, domain.ErrInvalidTransition
	}
	if in.DocumentNumber != nil {
		order.DocumentNumber = *in.DocumentNumber
	}
	if in.OrderDate != nil {
		order.OrderDate = *in.OrderDate
	}
	if in.DeliveryDate != nil {
		order.DeliveryDate = in.DeliveryDate
	}
	if in.Status != nil {
		if !validReceivingStatus(*in.Status) || *in.Status == entity.ReceivingStatusAssigned {
			return nil, domain.ErrInvalidInput
		}
		order.Status = *in.Status
	}
	if err := uc.recvRepo.UpdateOrder(order); err != nil {
		return nil, err
	}
	return uc.orderResponse(id)
}

// List lista los pedidos de ingreso con sus agregados.
func (uc *ReceivingUseCase) List() ([]dto.ReceivingOrderResponse, error) {
	rows, err := uc.recvRepo.ListOrders()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReceivingOrderResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toReceivingOrderResponse(r))
	}
	return items, nil
}

// Delete elimina un pedido y sus líneas en una sola transacción. Un pedido
// asignado no se borra: su mercadería ya está en estantes.
func (uc *ReceivingUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.InventoryRepository,
		_ repository.ShelfRepository,
		_ repository.WarehouseRepository,
		_ repository.MovementRepository,
		recvRepo repository.ReceivingRepository,
		_ repository.DispatchRepository,
	) error {
		order, err := recvRepo.GetOrderForUpdate(id)
		if err != nil {
			return err
		}
		if order.Status == entity.ReceivingStatusAssigned {
			return domain.ErrConflict
		}
		return recvRepo.DeleteOrder(id)
	})
}

// PendingAssignment lista las líneas recibidas aún no asignadas a estantes.
func (uc *ReceivingUseCase) PendingAssignment() ([]dto.PendingAssignmentResponse, error) {
	rows, err := uc.recvRepo.ListPendingAssignment()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PendingAssignmentResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.PendingAssignmentResponse{
			DetailID:        r.DetailID,
			ProductID:       r.ProductID,
			Brand:           r.Brand,
			CategoryName:    r.CategoryName,
			OrderID:         r.OrderID,
			SupplierID:      r.SupplierID,
			SupplierName:    r.SupplierName,
			SupplierCompany: r.SupplierCompany,
			ReceivedQty:     r.ReceivedQty,
		})
	}
	return items, nil
}

func (uc *ReceivingUseCase) orderResponse(id int64) (*dto.ReceivingOrderResponse, error) {
	row, err := uc.recvRepo.GetOrderRow(id)
	if err != nil {
		return nil, err
	}
	out := toReceivingOrderResponse(*row)
	return &out, nil
}

func validReceivingStatus(s string) bool {
	switch s {
	case entity.ReceivingStatusPending, entity.ReceivingStatusReceived, entity.ReceivingStatusAssigned:
		return true
	}
	return false
}

// asInvalidRef traduce ErrNotFound de una referencia enviada por el cliente a
// ErrInvalidInput: el recurso de la petición existe, la referencia no.
func asInvalidRef(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrInvalidInput
	}
	return err
}

func toReceivingOrderResponse(r repository.ReceivingOrderRow) dto.ReceivingOrderResponse {
	return dto.ReceivingOrderResponse{
		ID:              r.Order.ID,
		DocumentNumber:  r.Order.DocumentNumber,
		TotalPrice:      r.Order.TotalPrice,
		OrderDate:       r.Order.OrderDate,
		DeliveryDate:    r.Order.DeliveryDate,
		Status:          r.Order.Status,
		SupplierID:      r.Order.SupplierID,
		SupplierName:    r.SupplierName,
		SupplierCompany: r.SupplierCompany,
		SupplierNIT:     r.SupplierNIT,
		TotalProducts:   r.TotalProducts,
		TotalQuantity:   r.TotalQuantity,
	}
}
