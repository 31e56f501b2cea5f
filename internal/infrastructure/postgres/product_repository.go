package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, user_id, name, brand, size, sku, price, stock, image_url, status, location, warehouse, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Brand, &p.Size, &p.SKU, &p.Price, &p.Stock,
		&p.ImageURL, &p.Status, &p.Location, &p.Warehouse, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste una nueva línea. (user_id, sku, size) repetido devuelve ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.Name, p.Brand, p.Size, p.SKU, p.Price, p.Stock,
		p.ImageURL, p.Status, p.Location, p.Warehouse, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update reemplaza todos los campos editables de la línea.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $3, brand = $4, size = $5, sku = $6, price = $7, stock = $8,
			image_url = $9, status = $10, location = $11, warehouse = $12, updated_at = $13
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		p.UserID, p.ID, p.Name, p.Brand, p.Size, p.SKU, p.Price, p.Stock,
		p.ImageURL, p.Status, p.Location, p.Warehouse, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock actualiza solo el stock (usado por la salida).
func (r *ProductRepo) UpdateStock(ctx context.Context, userID, id string, stock int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, id, stock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una línea del usuario. La fila queda bloqueada si se llama dentro de una tx.
func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND id = $2 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// FindBySKUAndSize busca la línea con la misma identidad, excluyendo excludeID.
func (r *ProductRepo) FindBySKUAndSize(ctx context.Context, userID, sku, size, excludeID string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 AND sku = $2 AND size = $3 AND ($4 = '' OR id <> $4)
		ORDER BY created_at LIMIT 1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(ctx, query, userID, sku, size, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product by sku and size: %w", err)
	}
	return p, nil
}

// List pagina con filtros; el total se calcula con el mismo WHERE.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := []string{"user_id = $1"}
	args := []any{f.UserID}
	if f.Warehouse != "" {
		args = append(args, f.Warehouse)
		where = append(where, fmt.Sprintf("warehouse = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, likePattern(s))
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d OR brand ILIKE $%d)", n, n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		productColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve todas las líneas del usuario (instantánea para agregados).
func (r *ProductRepo) ListAll(ctx context.Context, userID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return collectProducts(rows)
}

// Delete elimina la línea; no toca actividades.
func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReassignWarehouse reescribe la referencia por nombre a la bodega.
func (r *ProductRepo) ReassignWarehouse(ctx context.Context, userID, oldName, newName string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE products SET warehouse = $3 WHERE user_id = $1 AND warehouse = $2`, userID, oldName, newName)
	if err != nil {
		return 0, fmt.Errorf("reassign product warehouse: %w", err)
	}
	return cmd.RowsAffected(), nil
}
