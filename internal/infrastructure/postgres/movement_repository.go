package postgres

import (
	"context"
	"fmt"

	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL. La
// bitácora es append-only: solo Create y List.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create registra un movimiento de producto.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movimiento_producto (cantidad_producto, motivo, fecha_movimiento, id_persona, id_producto, transaction_id)
		VALUES ($1, $2, now(), $3, $4, $5)
		RETURNING id_movimiento, fecha_movimiento`
	err := r.q.QueryRow(context.Background(), query,
		movement.Quantity, movement.Reason, movement.PersonID, movement.ProductID, movement.TransactionID,
	).Scan(&movement.ID, &movement.Date)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// List lista los movimientos más recientes primero. El proveedor se resuelve
// por la fila de inventario más reciente del producto (la bitácora no guarda
// proveedor).
func (r *MovementRepo) List(limit, offset int) ([]repository.MovementRow, error) {
	query := `
		SELECT m.id_movimiento, m.cantidad_producto, m.motivo, m.fecha_movimiento,
		       m.id_persona, m.id_producto, m.transaction_id,
		       p.marca, c.nombre_categoria,
		       per.nombre || ' ' || per.apellido_paterno,
		       prov.nombre_proveedor, prov.empresa
		FROM movimiento_producto m
		JOIN producto p ON p.id_producto = m.id_producto
		JOIN categoria_producto c ON c.id_categoria_producto = p.id_categoria_producto
		LEFT JOIN persona per ON per.id_persona = m.id_persona
		LEFT JOIN (
			SELECT id_producto, id_proveedor,
			       ROW_NUMBER() OVER (PARTITION BY id_producto ORDER BY id_inventario DESC) AS rn
			FROM inventario
		) inv ON inv.id_producto = m.id_producto AND inv.rn = 1
		LEFT JOIN proveedor prov ON prov.id_proveedor = inv.id_proveedor
		ORDER BY m.fecha_movimiento DESC, m.id_movimiento DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementRow
	for rows.Next() {
		var row repository.MovementRow
		err := rows.Scan(
			&row.Movement.ID, &row.Movement.Quantity, &row.Movement.Reason, &row.Movement.Date,
			&row.Movement.PersonID, &row.Movement.ProductID, &row.Movement.TransactionID,
			&row.Brand, &row.CategoryName, &row.PersonName,
			&row.SupplierName, &row.SupplierCompany,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
