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

var _ repository.ShelfRepository = (*ShelfRepo)(nil)

// ShelfRepo implementación de ShelfRepository sobre PostgreSQL (usable con pool o tx).
type ShelfRepo struct {
	q Querier
}

// NewShelfRepository construye el adaptador de estantes. Pasar pool o tx (Querier).
func NewShelfRepository(q Querier) *ShelfRepo {
	return &ShelfRepo{q: q}
}

const shelfColumns = `id_estante, id_almacen, pasillo, capacidad, capacidad_ocupada, estado`

// Create persiste un nuevo estante.
func (r *ShelfRepo) Create(shelf *entity.Shelf) error {
	query := `
		INSERT INTO estante (id_almacen, pasillo, capacidad, capacidad_ocupada, estado)
		VALUES ($1, $2, $3, 0, $4)
		RETURNING id_estante`
	err := r.q.QueryRow(context.Background(), query,
		shelf.WarehouseID, shelf.Aisle, shelf.Capacity, shelf.Status,
	).Scan(&shelf.ID)
	if err != nil {
		return fmt.Errorf("insert estante: %w", err)
	}
	return nil
}

// GetByID obtiene un estante por ID.
func (r *ShelfRepo) GetByID(id int64) (*entity.Shelf, error) {
	query := `SELECT ` + shelfColumns + ` FROM estante WHERE id_estante = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene un estante y bloquea la fila (SELECT FOR UPDATE).
func (r *ShelfRepo) GetForUpdate(id int64) (*entity.Shelf, error) {
	query := `SELECT ` + shelfColumns + ` FROM estante WHERE id_estante = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Update actualiza los datos editables de un estante. No toca capacidad_ocupada.
func (r *ShelfRepo) Update(shelf *entity.Shelf) error {
	query := `
		UPDATE estante SET pasillo = $2, capacidad = $3, estado = $4
		WHERE id_estante = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		shelf.ID, shelf.Aisle, shelf.Capacity, shelf.Status,
	)
	if err != nil {
		return fmt.Errorf("update estante: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByWarehouse lista los estantes de un almacén ordenados por pasillo.
func (r *ShelfRepo) ListByWarehouse(warehouseID int64) ([]*entity.Shelf, error) {
	query := `SELECT ` + shelfColumns + ` FROM estante WHERE id_almacen = $1 ORDER BY pasillo`
	return r.scanList(query, warehouseID)
}

// ListAvailableByWarehouse lista los estantes utilizables de un almacén.
func (r *ShelfRepo) ListAvailableByWarehouse(warehouseID int64) ([]*entity.Shelf, error) {
	query := `
		SELECT ` + shelfColumns + ` FROM estante
		WHERE id_almacen = $1 AND estado <> 'Inutilizable'
		ORDER BY pasillo`
	return r.scanList(query, warehouseID)
}

// Delete elimina un estante.
func (r *ShelfRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM estante WHERE id_estante = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete estante: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountInventory cuenta las filas de inventario de un estante.
func (r *ShelfRepo) CountInventory(shelfID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventario WHERE id_estante = $1`, shelfID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count inventario: %w", err)
	}
	return n, nil
}

// AddOccupied aplica capacidad_ocupada = capacidad_ocupada + delta de forma atómica.
func (r *ShelfRepo) AddOccupied(shelfID, delta int64) error {
	query := `UPDATE estante SET capacidad_ocupada = capacidad_ocupada + $2 WHERE id_estante = $1`
	cmd, err := r.q.Exec(context.Background(), query, shelfID, delta)
	if err != nil {
		return fmt.Errorf("add occupied estante: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecomputeOccupied fija capacidad_ocupada del estante a la suma de su inventario.
func (r *ShelfRepo) RecomputeOccupied(shelfID int64) error {
	query := `
		UPDATE estante
		SET capacidad_ocupada = COALESCE(
			(SELECT SUM(stock_producto) FROM inventario WHERE id_estante = $1), 0)
		WHERE id_estante = $1`
	cmd, err := r.q.Exec(context.Background(), query, shelfID)
	if err != nil {
		return fmt.Errorf("recompute estante: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ShelfRepo) scanOne(query string, args ...any) (*entity.Shelf, error) {
	var s entity.Shelf
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.WarehouseID, &s.Aisle, &s.Capacity, &s.OccupiedCapacity, &s.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get estante: %w", err)
	}
	return &s, nil
}

func (r *ShelfRepo) scanList(query string, args ...any) ([]*entity.Shelf, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list estantes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Shelf
	for rows.Next() {
		var s entity.Shelf
		if err := rows.Scan(&s.ID, &s.WarehouseID, &s.Aisle, &s.Capacity, &s.OccupiedCapacity, &s.Status); err != nil {
			return nil, fmt.Errorf("scan estante: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
