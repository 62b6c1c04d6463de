package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/dquispe/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Incomes reporte de ingresos: una fila por línea de pedido.
func (r *ReportRepo) Incomes(filter repository.ReportFilter) ([]repository.IncomeReportRow, error) {
	var (
		conds []string
		args  []any
	)
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("p.fecha_pedido >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("p.fecha_pedido <= $%d", len(args)))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		conds = append(conds, fmt.Sprintf("p.id_proveedor = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("prod.id_categoria_producto = $%d", len(args)))
	}
	query := `
		SELECT p.id_pedido, pr.nombre_proveedor, prod.marca, d.cantidad, d.precio_unitario, p.fecha_pedido
		FROM pedido p
		JOIN proveedor pr ON pr.id_proveedor = p.id_proveedor
		JOIN detalle_ingreso d ON d.id_pedido = p.id_pedido
		JOIN producto prod ON prod.id_producto = d.id_producto`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY p.fecha_pedido DESC, p.id_pedido DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporte ingresos: %w", err)
	}
	defer rows.Close()
	var list []repository.IncomeReportRow
	for rows.Next() {
		var row repository.IncomeReportRow
		err := rows.Scan(&row.OrderID, &row.SupplierName, &row.Brand, &row.Quantity, &row.UnitPrice, &row.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("scan ingreso: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Inventory reporte de inventario: una fila por fila de inventario.
func (r *ReportRepo) Inventory(filter repository.ReportFilter) ([]repository.InventoryReportRow, error) {
	var (
		conds []string
		args  []any
	)
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("p.id_categoria_producto = $%d", len(args)))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		conds = append(conds, fmt.Sprintf("a.id_almacen = $%d", len(args)))
	}
	query := `
		SELECT i.id_inventario, p.marca, c.nombre_categoria, i.stock_producto, a.nombre_almacen
		FROM inventario i
		JOIN producto p ON p.id_producto = i.id_producto
		JOIN categoria_producto c ON c.id_categoria_producto = p.id_categoria_producto
		JOIN estante e ON e.id_estante = i.id_estante
		JOIN almacen a ON a.id_almacen = e.id_almacen`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY a.nombre_almacen, p.marca"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporte inventario: %w", err)
	}
	defer rows.Close()
	var list []repository.InventoryReportRow
	for rows.Next() {
		var row repository.InventoryReportRow
		err := rows.Scan(&row.InventoryID, &row.Brand, &row.CategoryName, &row.Stock, &row.WarehouseName)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Dispatches reporte de despachos: una fila por línea de orden.
func (r *ReportRepo) Dispatches(filter repository.ReportFilter) ([]repository.DispatchReportRow, error) {
	var (
		conds []string
		args  []any
	)
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("o.fecha_solicitud >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("o.fecha_solicitud <= $%d", len(args)))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		conds = append(conds, fmt.Sprintf("o.id_proveedor = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("o.estado = $%d", len(args)))
	}
	if filter.PersonID != nil {
		args = append(args, *filter.PersonID)
		conds = append(conds, fmt.Sprintf("o.id_persona = $%d", len(args)))
	}
	query := `
		SELECT o.id_pedido_despacho, o.numero_guia,
		       COALESCE(per.nombre || ' ' || per.apellido_paterno, ''),
		       p.marca, d.cantidad_solicitada, o.estado
		FROM pedido_despacho o
		JOIN detalle_despacho d ON d.id_pedido_despacho = o.id_pedido_despacho
		JOIN producto p ON p.id_producto = d.id_producto
		LEFT JOIN persona per ON per.id_persona = o.id_persona`
	if len(conds) > 0 {
		query += "\n\t\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\t\tORDER BY o.fecha_solicitud DESC, o.id_pedido_despacho DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporte despachos: %w", err)
	}
	defer rows.Close()
	var list []repository.DispatchReportRow
	for rows.Next() {
		var row repository.DispatchReportRow
		err := rows.Scan(&row.OrderID, &row.GuideNumber, &row.PersonName, &row.Brand, &row.RequestedQty, &row.Status)
		if err != nil {
			return nil, fmt.Errorf("scan despacho: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Counters totales de cabecera del dashboard.
func (r *ReportRepo) Counters() (*repository.DashboardCounters, error) {
	query := `
		SELECT (SELECT COUNT(*) FROM almacen),
		       (SELECT COALESCE(COUNT(DISTINCT id_producto), 0) FROM inventario),
		       (SELECT COALESCE(SUM(stock_producto), 0) FROM inventario),
		       (SELECT COUNT(*) FROM pedido WHERE estado IN ('Pendiente', 'Recibido')),
		       (SELECT COUNT(*) FROM pedido_despacho WHERE estado IN ('Pendiente', 'En Preparación'))`
	var c repository.DashboardCounters
	err := r.q.QueryRow(context.Background(), query).Scan(
		&c.Warehouses, &c.DistinctProducts, &c.TotalUnits, &c.PendingReceiving, &c.PendingDispatch,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard counters: %w", err)
	}
	return &c, nil
}
