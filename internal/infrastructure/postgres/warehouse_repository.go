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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL
// (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de almacenes. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id_almacen, nombre_almacen, capacidad, capacidad_ocupada, ubicacion, id_persona`

// Create persiste un nuevo almacén.
func (r *WarehouseRepo) Create(warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO almacen (nombre_almacen, capacidad, capacidad_ocupada, ubicacion, id_persona)
		VALUES ($1, $2, 0, $3, $4)
		RETURNING id_almacen`
	err := r.q.QueryRow(context.Background(), query,
		warehouse.Name, warehouse.Capacity, warehouse.Location, warehouse.PersonID,
	).Scan(&warehouse.ID)
	if err != nil {
		return fmt.Errorf("insert almacen: %w", err)
	}
	return nil
}

// GetByID obtiene un almacén por ID.
func (r *WarehouseRepo) GetByID(id int64) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM almacen WHERE id_almacen = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene un almacén y bloquea la fila (SELECT FOR UPDATE).
func (r *WarehouseRepo) GetForUpdate(id int64) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM almacen WHERE id_almacen = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetByShelf obtiene el almacén dueño de un estante.
func (r *WarehouseRepo) GetByShelf(shelfID int64) (*entity.Warehouse, error) {
	query := `
		SELECT a.id_almacen, a.nombre_almacen, a.capacidad, a.capacidad_ocupada, a.ubicacion, a.id_persona
		FROM almacen a
		JOIN estante e ON e.id_almacen = a.id_almacen
		WHERE e.id_estante = $1`
	return r.scanOne(query, shelfID)
}

// GetByShelfForUpdate obtiene el almacén dueño de un estante y lo bloquea.
// El FOR UPDATE va solo sobre almacen para no bloquear el estante dos veces.
func (r *WarehouseRepo) GetByShelfForUpdate(shelfID int64) (*entity.Warehouse, error) {
	query := `
		SELECT a.id_almacen, a.nombre_almacen, a.capacidad, a.capacidad_ocupada, a.ubicacion, a.id_persona
		FROM almacen a
		JOIN estante e ON e.id_almacen = a.id_almacen
		WHERE e.id_estante = $1
		FOR UPDATE OF a`
	return r.scanOne(query, shelfID)
}

// Update actualiza los datos editables de un almacén. No toca capacidad_ocupada.
func (r *WarehouseRepo) Update(warehouse *entity.Warehouse) error {
	query := `
		UPDATE almacen
		SET nombre_almacen = $2, capacidad = $3, ubicacion = $4, id_persona = $5
		WHERE id_almacen = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		warehouse.ID, warehouse.Name, warehouse.Capacity, warehouse.Location, warehouse.PersonID,
	)
	if err != nil {
		return fmt.Errorf("update almacen: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los almacenes por nombre.
func (r *WarehouseRepo) List() ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM almacen ORDER BY nombre_almacen`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list almacenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Capacity, &w.OccupiedCapacity, &w.Location, &w.PersonID); err != nil {
			return nil, fmt.Errorf("scan almacen: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Delete elimina un almacén.
func (r *WarehouseRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM almacen WHERE id_almacen = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete almacen: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountShelves cuenta los estantes de un almacén.
func (r *WarehouseRepo) CountShelves(warehouseID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM estante WHERE id_almacen = $1`, warehouseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count estantes: %w", err)
	}
	return n, nil
}

// AddOccupied aplica capacidad_ocupada = capacidad_ocupada + delta de forma atómica.
func (r *WarehouseRepo) AddOccupied(warehouseID, delta int64) error {
	query := `UPDATE almacen SET capacidad_ocupada = capacidad_ocupada + $2 WHERE id_almacen = $1`
	cmd, err := r.q.Exec(context.Background(), query, warehouseID, delta)
	if err != nil {
		return fmt.Errorf("add occupied almacen: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecomputeOccupied fija capacidad_ocupada del almacén a la suma de sus estantes.
func (r *WarehouseRepo) RecomputeOccupied(warehouseID int64) error {
	query := `
		UPDATE almacen
		SET capacidad_ocupada = COALESCE(
			(SELECT SUM(capacidad_ocupada) FROM estante WHERE id_almacen = $1), 0)
		WHERE id_almacen = $1`
	cmd, err := r.q.Exec(context.Background(), query, warehouseID)
	if err != nil {
		return fmt.Errorf("recompute almacen: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WarehouseRepo) scanOne(query string, args ...any) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&w.ID, &w.Name, &w.Capacity, &w.OccupiedCapacity, &w.Location, &w.PersonID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get almacen: %w", err)
	}
	return &w, nil
}
