package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dquispe/almacen-api/internal/domain"
	"github.com/dquispe/almacen-api/internal/domain/entity"
	"github.com/dquispe/almacen-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id_inventario, stock_producto, fecha_modificacion, id_estante, id_producto, id_proveedor, estado`

// Create persiste una nueva fila de inventario.
func (r *InventoryRepo) Create(item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventario (stock_producto, fecha_modificacion, id_estante, id_producto, id_proveedor, estado)
		VALUES ($1, now(), $2, $3, $4, 'Disponible')
		RETURNING id_inventario, fecha_modificacion`
	err := r.q.QueryRow(context.Background(), query,
		item.Stock, item.ShelfID, item.ProductID, item.SupplierID,
	).Scan(&item.ID, &item.ModifiedAt)
	if err != nil {
		return fmt.Errorf("insert inventario: %w", err)
	}
	return nil
}

// GetByID obtiene una fila de inventario por ID.
func (r *InventoryRepo) GetByID(id int64) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventario WHERE id_inventario = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene una fila y la bloquea (SELECT FOR UPDATE).
func (r *InventoryRepo) GetForUpdate(id int64) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventario WHERE id_inventario = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// FindByKey busca por la clave de negocio (producto, estante, proveedor).
// IS NOT DISTINCT FROM hace que NULL empareje con NULL en id_proveedor.
func (r *InventoryRepo) FindByKey(productID, shelfID int64, supplierID *int64) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + ` FROM inventario
		WHERE id_producto = $1 AND id_estante = $2 AND id_proveedor IS NOT DISTINCT FROM $3`
	return r.scanOne(query, productID, shelfID, supplierID)
}

// FindByKeyForUpdate como FindByKey pero bloqueando la fila.
func (r *InventoryRepo) FindByKeyForUpdate(productID, shelfID int64, supplierID *int64) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + ` FROM inventario
		WHERE id_producto = $1 AND id_estante = $2 AND id_proveedor IS NOT DISTINCT FROM $3
		FOR UPDATE`
	return r.scanOne(query, productID, shelfID, supplierID)
}

// UpdateStock fija el stock y refresca fecha_modificacion.
func (r *InventoryRepo) UpdateStock(id, stock int64) error {
	query := `UPDATE inventario SET stock_producto = $2, fecha_modificacion = now() WHERE id_inventario = $1`
	cmd, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una fila de inventario.
func (r *InventoryRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM inventario WHERE id_inventario = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const inventoryRowSelect = `
	SELECT i.id_inventario, i.stock_producto, i.fecha_modificacion, i.id_estante,
	       i.id_producto, i.id_proveedor, i.estado,
	       p.marca, c.nombre_categoria, e.pasillo, a.id_almacen, a.nombre_almacen,
	       pr.nombre_proveedor, pr.empresa
	FROM inventario i
	JOIN producto p ON p.id_producto = i.id_producto
	JOIN categoria_producto c ON c.id_categoria_producto = p.id_categoria_producto
	JOIN estante e ON e.id_estante = i.id_estante
	JOIN almacen a ON a.id_almacen = e.id_almacen
	LEFT JOIN proveedor pr ON pr.id_proveedor = i.id_proveedor`

// List lista el inventario con filtros opcionales. La búsqueda por marca es
// parcial e insensible a mayúsculas y acentos (unaccent).
func (r *InventoryRepo) List(filter repository.InventoryFilter) ([]repository.InventoryRow, error) {
	var (
		conds []string
		args  []any
	)
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		conds = append(conds, fmt.Sprintf("a.id_almacen = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("c.id_categoria_producto = $%d", len(args)))
	}
	if filter.BrandSearch != "" {
		args = append(args, "%"+filter.BrandSearch+"%")
		conds = append(conds, fmt.Sprintf("unaccent(p.marca) ILIKE unaccent($%d)", len(args)))
	}
	query := inventoryRowSelect
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	query += "\n\tORDER BY a.nombre_almacen, e.pasillo, p.marca"
	return r.scanRows(query, args...)
}

// ListByWarehouse lista el inventario de un almacén.
func (r *InventoryRepo) ListByWarehouse(warehouseID int64) ([]repository.InventoryRow, error) {
	query := inventoryRowSelect + `
	WHERE a.id_almacen = $1
	ORDER BY e.pasillo, p.marca`
	return r.scanRows(query, warehouseID)
}

// Stats devuelve los agregados globales del inventario.
func (r *InventoryRepo) Stats() (*repository.InventoryStats, error) {
	query := `
		SELECT COALESCE(COUNT(DISTINCT i.id_producto), 0),
		       COALESCE(SUM(i.stock_producto), 0),
		       (SELECT COUNT(*) FROM almacen)
		FROM inventario i`
	var s repository.InventoryStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.DistinctProducts, &s.TotalUnits, &s.Warehouses,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory stats: %w", err)
	}
	return &s, nil
}

// LocationsByProduct devuelve las ubicaciones de un producto y su stock total.
func (r *InventoryRepo) LocationsByProduct(productID int64) ([]repository.ProductLocation, int64, error) {
	query := `
		SELECT i.id_inventario, i.stock_producto, e.pasillo, a.nombre_almacen, pr.nombre_proveedor
		FROM inventario i
		JOIN estante e ON e.id_estante = i.id_estante
		JOIN almacen a ON a.id_almacen = e.id_almacen
		LEFT JOIN proveedor pr ON pr.id_proveedor = i.id_proveedor
		WHERE i.id_producto = $1
		ORDER BY a.nombre_almacen, e.pasillo`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, 0, fmt.Errorf("locations by product: %w", err)
	}
	defer rows.Close()
	var (
		list  []repository.ProductLocation
		total int64
	)
	for rows.Next() {
		var l repository.ProductLocation
		if err := rows.Scan(&l.InventoryID, &l.Stock, &l.Aisle, &l.WarehouseName, &l.SupplierName); err != nil {
			return nil, 0, fmt.Errorf("scan location: %w", err)
		}
		total += l.Stock
		list = append(list, l)
	}
	return list, total, rows.Err()
}

func (r *InventoryRepo) scanOne(query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&it.ID, &it.Stock, &it.ModifiedAt, &it.ShelfID, &it.ProductID, &it.SupplierID, &it.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get inventario: %w", err)
	}
	return &it, nil
}

func (r *InventoryRepo) scanRows(query string, args ...any) ([]repository.InventoryRow, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventario: %w", err)
	}
	defer rows.Close()
	var list []repository.InventoryRow
	for rows.Next() {
		var row repository.InventoryRow
		err := rows.Scan(
			&row.Item.ID, &row.Item.Stock, &row.Item.ModifiedAt, &row.Item.ShelfID,
			&row.Item.ProductID, &row.Item.SupplierID, &row.Item.Status,
			&row.Brand, &row.CategoryName, &row.Aisle, &row.WarehouseID, &row.WarehouseName,
			&row.SupplierName, &row.SupplierCompany,
		)
		if err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
