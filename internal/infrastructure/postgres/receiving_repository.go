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

var _ repository.ReceivingRepository = (*ReceivingRepo)(nil)

// ReceivingRepo implementación de ReceivingRepository sobre PostgreSQL
// (usable con pool o tx).
type ReceivingRepo struct {
	q Querier
}

// NewReceivingRepository construye el adaptador de recepciones. Pasar pool o tx (Querier).
func NewReceivingRepository(q Querier) *ReceivingRepo {
	return &ReceivingRepo{q: q}
}

const receivingOrderColumns = `id_pedido, numero_documento, precio_total, fecha_pedido, fecha_entrega, estado, id_proveedor`

// CreateOrder persiste la cabecera de un pedido de ingreso.
func (r *ReceivingRepo) CreateOrder(order *entity.ReceivingOrder) error {
	query := `
		INSERT INTO pedido (numero_documento, precio_total, fecha_pedido, fecha_entrega, estado, id_proveedor)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id_pedido`
	err := r.q.QueryRow(context.Background(), query,
		order.DocumentNumber, order.TotalPrice, order.OrderDate, order.DeliveryDate,
		order.Status, order.SupplierID,
	).Scan(&order.ID)
	if err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea del pedido.
func (r *ReceivingRepo) CreateDetail(detail *entity.ReceivingDetail) error {
	query := `
		INSERT INTO detalle_ingreso (id_pedido, precio_unitario, cantidad, id_producto)
		VALUES ($1, $2, $3, $4)
		RETURNING id_detalle_ingreso`
	err := r.q.QueryRow(context.Background(), query,
		detail.OrderID, detail.UnitPrice, detail.Quantity, detail.ProductID,
	).Scan(&detail.ID)
	if err != nil {
		return fmt.Errorf("insert detalle_ingreso: %w", err)
	}
	return nil
}

// GetOrder obtiene un pedido por ID.
func (r *ReceivingRepo) GetOrder(id int64) (*entity.ReceivingOrder, error) {
	query := `SELECT ` + receivingOrderColumns + ` FROM pedido WHERE id_pedido = $1`
	return r.scanOrder(query, id)
}

// GetOrderForUpdate obtiene un pedido y bloquea la fila (SELECT FOR UPDATE).
func (r *ReceivingRepo) GetOrderForUpdate(id int64) (*entity.ReceivingOrder, error) {
	query := `SELECT ` + receivingOrderColumns + ` FROM pedido WHERE id_pedido = $1 FOR UPDATE`
	return r.scanOrder(query, id)
}

// GetDetail obtiene una línea de ingreso por ID.
func (r *ReceivingRepo) GetDetail(id int64) (*entity.ReceivingDetail, error) {
	query := `
		SELECT id_detalle_ingreso, id_pedido, precio_unitario, cantidad, id_producto
		FROM detalle_ingreso WHERE id_detalle_ingreso = $1`
	var d entity.ReceivingDetail
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.OrderID, &d.UnitPrice, &d.Quantity, &d.ProductID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get detalle_ingreso: %w", err)
	}
	return &d, nil
}

// UpdateOrder actualiza la cabecera de un pedido.
func (r *ReceivingRepo) UpdateOrder(order *entity.ReceivingOrder) error {
	query := `
		UPDATE pedido
		SET numero_documento = $2, fecha_pedido = $3, fecha_entrega = $4, estado = $5
		WHERE id_pedido = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.DocumentNumber, order.OrderDate, order.DeliveryDate, order.Status,
	)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetOrderStatus cambia el estado de un pedido.
func (r *ReceivingRepo) SetOrderStatus(id int64, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE pedido SET estado = $2 WHERE id_pedido = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set estado pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteOrder elimina un pedido y sus líneas (líneas primero por la FK).
func (r *ReceivingRepo) DeleteOrder(id int64) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM detalle_ingreso WHERE id_pedido = $1`, id); err != nil {
		return fmt.Errorf("delete detalles pedido: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedido WHERE id_pedido = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const receivingRowSelect = `
	SELECT p.id_pedido, p.numero_documento, p.precio_total, p.fecha_pedido, p.fecha_entrega,
	       p.estado, p.id_proveedor,
	       pr.nombre_proveedor, pr.empresa, pr.nit,
	       COALESCE(d.total_productos, 0), COALESCE(d.cantidad_total, 0)
	FROM pedido p
	JOIN proveedor pr ON pr.id_proveedor = p.id_proveedor
	LEFT JOIN (
		SELECT id_pedido, COUNT(*) AS total_productos, SUM(cantidad) AS cantidad_total
		FROM detalle_ingreso GROUP BY id_pedido
	) d ON d.id_pedido = p.id_pedido`

// ListOrders lista los pedidos con proveedor y agregados, más reciente primero.
func (r *ReceivingRepo) ListOrders() ([]repository.ReceivingOrderRow, error) {
	query := receivingRowSelect + `
	ORDER BY p.fecha_pedido DESC, p.id_pedido DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()
	var list []repository.ReceivingOrderRow
	for rows.Next() {
		row, err := scanReceivingRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *row)
	}
	return list, rows.Err()
}

// GetOrderRow obtiene un pedido con proveedor y agregados.
func (r *ReceivingRepo) GetOrderRow(id int64) (*repository.ReceivingOrderRow, error) {
	query := receivingRowSelect + `
	WHERE p.id_pedido = $1`
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get pedido row: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get pedido row: %w", err)
		}
		return nil, domain.ErrNotFound
	}
	return scanReceivingRow(rows)
}

// ListDetails lista las líneas de un pedido con producto y categoría.
func (r *ReceivingRepo) ListDetails(orderID int64) ([]repository.ReceivingDetailRow, error) {
	query := `
		SELECT d.id_detalle_ingreso, d.id_pedido, d.precio_unitario, d.cantidad, d.id_producto,
		       p.marca, c.nombre_categoria
		FROM detalle_ingreso d
		JOIN producto p ON p.id_producto = d.id_producto
		JOIN categoria_producto c ON c.id_categoria_producto = p.id_categoria_producto
		WHERE d.id_pedido = $1
		ORDER BY d.id_detalle_ingreso`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list detalles pedido: %w", err)
	}
	defer rows.Close()
	var list []repository.ReceivingDetailRow
	for rows.Next() {
		var row repository.ReceivingDetailRow
		err := rows.Scan(
			&row.Detail.ID, &row.Detail.OrderID, &row.Detail.UnitPrice,
			&row.Detail.Quantity, &row.Detail.ProductID,
			&row.Brand, &row.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan detalle pedido: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListPendingAssignment lista las líneas de pedidos en estado Recibido,
// pendientes de asignarse a un estante.
func (r *ReceivingRepo) ListPendingAssignment() ([]repository.PendingAssignmentRow, error) {
	query := `
		SELECT d.id_detalle_ingreso, d.id_producto, pd.marca, c.nombre_categoria,
		       p.id_pedido, p.id_proveedor, pr.nombre_proveedor, pr.empresa,
		       d.cantidad, p.estado
		FROM detalle_ingreso d
		JOIN pedido p ON p.id_pedido = d.id_pedido
		JOIN proveedor pr ON pr.id_proveedor = p.id_proveedor
		JOIN producto pd ON pd.id_producto = d.id_producto
		JOIN categoria_producto c ON c.id_categoria_producto = pd.id_categoria_producto
		WHERE p.estado = 'Recibido'
		ORDER BY p.fecha_pedido, d.id_detalle_ingreso`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list pendientes: %w", err)
	}
	defer rows.Close()
	var list []repository.PendingAssignmentRow
	for rows.Next() {
		var row repository.PendingAssignmentRow
		err := rows.Scan(
			&row.DetailID, &row.ProductID, &row.Brand, &row.CategoryName,
			&row.OrderID, &row.SupplierID, &row.SupplierName, &row.SupplierCompany,
			&row.ReceivedQty, &row.OrderStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pendiente: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r *ReceivingRepo) scanOrder(query string, args ...any) (*entity.ReceivingOrder, error) {
	var o entity.ReceivingOrder
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&o.ID, &o.DocumentNumber, &o.TotalPrice, &o.OrderDate, &o.DeliveryDate,
		&o.Status, &o.SupplierID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &o, nil
}

func scanReceivingRow(rows pgx.Rows) (*repository.ReceivingOrderRow, error) {
	var row repository.ReceivingOrderRow
	err := rows.Scan(
		&row.Order.ID, &row.Order.DocumentNumber, &row.Order.TotalPrice,
		&row.Order.OrderDate, &row.Order.DeliveryDate, &row.Order.Status, &row.Order.SupplierID,
		&row.SupplierName, &row.SupplierCompany, &row.SupplierNIT,
		&row.TotalProducts, &row.TotalQuantity,
	)
	if err != nil {
		return nil, fmt.Errorf("scan pedido row: %w", err)
	}
	return &row, nil
}
