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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO producto (marca, fecha_fabricacion, costo_inicial, id_categoria_producto)
		VALUES ($1, $2, $3, $4)
		RETURNING id_producto`
	err := r.q.QueryRow(context.Background(), query,
		product.Brand, product.ManufactureDate, product.InitialCost, product.CategoryID,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `
		SELECT id_producto, marca, fecha_fabricacion, costo_inicial, id_categoria_producto
		FROM producto WHERE id_producto = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Brand, &p.ManufactureDate, &p.InitialCost, &p.CategoryID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE producto
		SET marca = $2, fecha_fabricacion = $3, costo_inicial = $4, id_categoria_producto = $5
		WHERE id_producto = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Brand, product.ManufactureDate, product.InitialCost, product.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los productos con su categoría.
func (r *ProductRepo) List() ([]repository.ProductRow, error) {
	query := `
		SELECT p.id_producto, p.marca, p.fecha_fabricacion, p.costo_inicial, p.id_categoria_producto,
		       c.nombre_categoria
		FROM producto p
		JOIN categoria_producto c ON c.id_categoria_producto = p.id_categoria_producto
		ORDER BY p.marca`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductRow
	for rows.Next() {
		var row repository.ProductRow
		err := rows.Scan(
			&row.Product.ID, &row.Product.Brand, &row.Product.ManufactureDate,
			&row.Product.InitialCost, &row.Product.CategoryID, &row.CategoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Delete elimina un producto.
func (r *ProductRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM producto WHERE id_producto = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateCategory persiste una nueva categoría.
func (r *ProductRepo) CreateCategory(category *entity.Category) error {
	query := `
		INSERT INTO categoria_producto (nombre_categoria, descripcion, estado)
		VALUES ($1, $2, $3)
		RETURNING id_categoria_producto`
	err := r.q.QueryRow(context.Background(), query,
		category.Name, category.Description, category.Status,
	).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetCategory obtiene una categoría activa por ID.
func (r *ProductRepo) GetCategory(id int64) (*entity.Category, error) {
	query := `
		SELECT id_categoria_producto, nombre_categoria, descripcion, estado
		FROM categoria_producto
		WHERE id_categoria_producto = $1 AND estado = 'ACTIVA'`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// ListCategories lista las categorías activas.
func (r *ProductRepo) ListCategories() ([]*entity.Category, error) {
	query := `
		SELECT id_categoria_producto, nombre_categoria, descripcion, estado
		FROM categoria_producto
		WHERE estado = 'ACTIVA'
		ORDER BY nombre_categoria`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Status); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
