package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

var _ repository.DispatchRepository = (*DispatchRepo)(nil)

// DispatchRepo implementación de DispatchRepository sobre PostgreSQL
// (usable con pool o tx).
type DispatchRepo struct {
	q Querier
}

// NewDispatchRepository construye el adaptador de despachos. Pasar pool o tx (Querier).
func NewDispatchRepository(q Querier) *DispatchRepo {
	return &DispatchRepo{q: q}
}

const dispatchOrderColumns = `id_pedido_despacho, numero_guia, fecha_solicitud, fecha_despacho, estado, observaciones, id_proveedor, id_persona`

// CreateOrder persiste la cabecera de una orden de despacho.
func (r *DispatchRepo) CreateOrder(order *entity.DispatchOrder) error {
	query := `
		INSERT INTO pedido_despacho (numero_guia, fecha_solicitud, estado, observaciones, id_proveedor, id_persona)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_pedido_despacho`
	err := r.q.QueryRow(context.Background(), query,
		order.GuideNumber, order.RequestDate, order.Status, order.Notes,
		order.SupplierID, order.PersonID,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert pedido_despacho: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de despacho.
func (r *DispatchRepo) CreateDetail(detail *entity.DispatchDetail) error {
	query := `
		INSERT INTO detalle_despacho (id_pedido_despacho, cantidad_solicitada, cantidad_despachada, id_producto, id_inventario)
		VALUES ($1, $2, 0, $3, $4)
		RETURNING id_detalle_despacho`
	err := r.q.QueryRow(context.Background(), query,
		detail.OrderID, detail.RequestedQty, detail.ProductID, detail.InventoryID,
	).Scan(&detail.ID)
	if err != nil {
		return fmt.Errorf("insert detalle_despacho: %w", err)
	}
	return nil
}

// GetOrder obtiene una orden por ID.
func (r *DispatchRepo) GetOrder(id int64) (*entity.DispatchOrder, error) {
	query := `SELECT ` + dispatchOrderColumns + ` FROM pedido_despacho WHERE id_pedido_despacho = $1`
	return r.scanOrder(query, id)
}

// GetOrderForUpdate obtiene una orden y bloquea la fila (SELECT FOR UPDATE).
func (r *DispatchRepo) GetOrderForUpdate(id int64) (*entity.DispatchOrder, error) {
	query := `SELECT ` + dispatchOrderColumns + ` FROM pedido_despacho WHERE id_pedido_despacho = $1 FOR UPDATE`
	return r.scanOrder(query, id)
}

// UpdateNotes edita las observaciones de una orden.
func (r *DispatchRepo) UpdateNotes(id int64, notes string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE pedido_despacho SET observaciones = $2 WHERE id_pedido_despacho = $1`, id, notes)
	if err != nil {
		return fmt.Errorf("update observaciones: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus cambia el estado de una orden.
func (r *DispatchRepo) SetStatus(id int64, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE pedido_despacho SET estado = $2 WHERE id_pedido_despacho = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set estado despacho: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkDispatched fija el estado Despachado y la fecha de despacho.
func (r *DispatchRepo) MarkDispatched(id int64) error {
	query := `
		UPDATE pedido_despacho
		SET estado = 'Despachado', fecha_despacho = now()
		WHERE id_pedido_despacho = $1`
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark despachado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDetailDispatchedQty fija la cantidad despachada de una línea.
func (r *DispatchRepo) SetDetailDispatchedQty(detailID, qty int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE detalle_despacho SET cantidad_despachada = $2 WHERE id_detalle_despacho = $1`, detailID, qty)
	if err != nil {
		return fmt.Errorf("set cantidad despachada: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountOrders devuelve el total de órdenes (correlativo del número de guía).
func (r *DispatchRepo) CountOrders() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM pedido_despacho`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count despachos: %w", err)
	}
	return n, nil
}

const dispatchRowSelect = `
	SELECT o.id_pedido_despacho, o.numero_guia, o.fecha_solicitud, o.fecha_despacho,
	       o.estado, o.observaciones, o.id_proveedor, o.id_persona,
	       pr.nombre_proveedor, pr.empresa,
	       per.nombre || ' ' || per.apellido_paterno,
	       COALESCE(d.total_items, 0), COALESCE(d.total_solicitado, 0), COALESCE(d.total_despachado, 0)
	FROM pedido_despacho o
	JOIN proveedor pr ON pr.id_proveedor = o.id_proveedor
	LEFT JOIN persona per ON per.id_persona = o.id_persona
	LEFT JOIN (
		SELECT id_pedido_despacho,
		       COUNT(*) AS total_items,
		       SUM(cantidad_solicitada) AS total_solicitado,
		       SUM(cantidad_despachada) AS total_despachado
		FROM detalle_despacho GROUP BY id_pedido_despacho
	) d ON d.id_pedido_despacho = o.id_pedido_despacho`

// ListOrders lista todas las órdenes, más reciente primero.
func (r *DispatchRepo) ListOrders() ([]repository.DispatchOrderRow, error) {
	query := dispatchRowSelect + `
	ORDER BY o.fecha_solicitud DESC, o.id_pedido_despacho DESC`
	return r.scanOrderRows(query)
}

// GetOrderRow obtiene una orden con proveedor, solicitante y agregados.
func (r *DispatchRepo) GetOrderRow(id int64) (*repository.DispatchOrderRow, error) {
	query := dispatchRowSelect + `
	WHERE o.id_pedido_despacho = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get despacho row: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get despacho row: %w", err)
		}
		return nil, domain.ErrNotFound
	}
	return scanDispatchRow(rows)
}

// ListBySupplier lista el historial de despachos de un proveedor.
func (r *DispatchRepo) ListBySupplier(supplierID int64) ([]repository.DispatchOrderRow, error) {
	query := dispatchRowSelect + `
	WHERE o.id_proveedor = $1
	ORDER BY o.fecha_solicitud DESC, o.id_pedido_despacho DESC`
	return r.scanOrderRows(query, supplierID)
}

// ListDetails lista las líneas de una orden con la ubicación actual del stock.
// Los joins a inventario son LEFT: la fila pudo haberse vaciado y eliminado.
func (r *DispatchRepo) ListDetails(orderID int64) ([]repository.DispatchDetailRow, error) {
	query := `
		SELECT d.id_detalle_despacho, d.id_pedido_despacho, d.cantidad_solicitada,
		       d.cantidad_despachada, d.id_producto, d.id_inventario,
		       p.marca, c.nombre_categoria,
		       i.stock_producto, e.pasillo, a.nombre_almacen
		FROM detalle_despacho d
		JOIN producto p ON p.id_producto = d.id_producto
		JOIN categoria_producto c ON c.id_categoria_producto = p.id_categoria_producto
		LEFT JOIN inventario i ON i.id_inventario = d.id_inventario
		LEFT JOIN estante e ON e.id_estante = i.id_estante
		LEFT JOIN almacen a ON a.id_almacen = e.id_almacen
		WHERE d.id_pedido_despacho = $1
		ORDER BY d.id_detalle_despacho`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list detalles despacho: %w", err)
	}
	defer rows.Close()
	var list []repository.DispatchDetailRow
	for rows.Next() {
		var row repository.DispatchDetailRow
		err := rows.Scan(
			&row.Detail.ID, &row.Detail.OrderID, &row.Detail.RequestedQty,
			&row.Detail.DispatchedQty, &row.Detail.ProductID, &row.Detail.InventoryID,
			&row.Brand, &row.CategoryName,
			&row.Stock, &row.Aisle, &row.WarehouseName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan detalle despacho: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// AvailableBySupplier lista el inventario con stock > 0 de un proveedor.
func (r *DispatchRepo) AvailableBySupplier(supplierID int64) ([]repository.SupplierStockRow, error) {
	query := `
		SELECT i.id_inventario, i.id_producto, p.marca, c.nombre_categoria,
		       i.stock_producto, e.pasillo, a.nombre_almacen
		FROM inventario i
		JOIN producto p ON p.id_producto = i.id_producto
		JOIN categoria_producto c ON c.id_categoria_producto = p.id_categoria_producto
		JOIN estante e ON e.id_estante = i.id_estante
		JOIN almacen a ON a.id_almacen = e.id_almacen
		WHERE i.id_proveedor = $1 AND i.stock_producto > 0
		ORDER BY p.marca, a.nombre_almacen, e.pasillo`
	rows, err := r.q.Query(context.Background(), query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("available by supplier: %w", err)
	}
	defer rows.Close()
	var list []repository.SupplierStockRow
	for rows.Next() {
		var row repository.SupplierStockRow
		err := rows.Scan(
			&row.InventoryID, &row.ProductID, &row.Brand, &row.CategoryName,
			&row.Stock, &row.Aisle, &row.WarehouseName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan supplier stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// SuppliersWithStock lista los proveedores con inventario disponible.
func (r *DispatchRepo) SuppliersWithStock() ([]*entity.Supplier, error) {
	query := `
		SELECT DISTINCT pr.id_proveedor, pr.nit, pr.nombre_proveedor, pr.empresa, pr.telefono, pr.direccion
		FROM proveedor pr
		JOIN inventario i ON i.id_proveedor = pr.id_proveedor
		WHERE i.stock_producto > 0
		ORDER BY pr.nombre_proveedor`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("suppliers with stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.NIT, &s.Name, &s.Company, &s.Phone, &s.Address); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *DispatchRepo) scanOrder(query string, args ...any) (*entity.DispatchOrder, error) {
	var o entity.DispatchOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.ID, &o.GuideNumber, &o.RequestDate, &o.DispatchDate,
		&o.Status, &o.Notes, &o.SupplierID, &o.PersonID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get despacho: %w", err)
	}
	return &o, nil
}

func (r *DispatchRepo) scanOrderRows(query string, args ...any) ([]repository.DispatchOrderRow, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list despachos: %w", err)
	}
	defer rows.Close()
	var list []repository.DispatchOrderRow
	for rows.Next() {
		row, err := scanDispatchRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *row)
	}
	return list, rows.Err()
}

func scanDispatchRow(rows pgx.Rows) (*repository.DispatchOrderRow, error) {
	var row repository.DispatchOrderRow
	err := rows.Scan(
		&row.Order.ID, &row.Order.GuideNumber, &row.Order.RequestDate, &row.Order.DispatchDate,
		&row.Order.Status, &row.Order.Notes, &row.Order.SupplierID, &row.Order.PersonID,
		&row.SupplierName, &row.SupplierCompany, &row.PersonName,
		&row.TotalItems, &row.TotalRequested, &row.TotalDispatched,
	)
	if err != nil {
		return nil, fmt.Errorf("scan despacho row: %w", err)
	}
	return &row, nil
}
