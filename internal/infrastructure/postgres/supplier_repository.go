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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id_proveedor, nit, nombre_proveedor, empresa, telefono, direccion`

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO proveedor (nit, nombre_proveedor, empresa, telefono, direccion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_proveedor`
	err := r.q.QueryRow(context.Background(), query,
		supplier.NIT, supplier.Name, supplier.Company, supplier.Phone, supplier.Address,
	).Scan(&supplier.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM proveedor WHERE id_proveedor = $1`
	return r.scanOne(query, id)
}

// GetByNIT obtiene un proveedor por NIT.
func (r *SupplierRepo) GetByNIT(nit string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM proveedor WHERE nit = $1`
	return r.scanOne(query, nit)
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	query := `
		UPDATE proveedor
		SET nit = $2, nombre_proveedor = $3, empresa = $4, telefono = $5, direccion = $6
		WHERE id_proveedor = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.NIT, supplier.Name, supplier.Company, supplier.Phone, supplier.Address,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los proveedores por nombre.
func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM proveedor ORDER BY nombre_proveedor`
	return r.scanList(query)
}

// Search busca por nombre, empresa o NIT, insensible a mayúsculas y acentos.
func (r *SupplierRepo) Search(term string) ([]*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + ` FROM proveedor
		WHERE unaccent(nombre_proveedor) ILIKE unaccent($1)
		   OR unaccent(empresa) ILIKE unaccent($1)
		   OR nit ILIKE $1
		ORDER BY nombre_proveedor`
	return r.scanList(query, "%"+term+"%")
}

// Delete elimina un proveedor.
func (r *SupplierRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM proveedor WHERE id_proveedor = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountOrders cuenta los pedidos de ingreso del proveedor.
func (r *SupplierRepo) CountOrders(supplierID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM pedido WHERE id_proveedor = $1`, supplierID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count pedidos proveedor: %w", err)
	}
	return n, nil
}

func (r *SupplierRepo) scanOne(query string, args ...any) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.NIT, &s.Name, &s.Company, &s.Phone, &s.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) scanList(query string, args ...any) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
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
