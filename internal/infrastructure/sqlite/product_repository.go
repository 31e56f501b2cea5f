package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos sobre SQLite (db o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, user_id, name, brand, size, sku, price, stock, image_url, status, location, warehouse, created_at, updated_at`

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p                entity.Product
		created, updated string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Brand, &p.Size, &p.SKU, &p.Price, &p.Stock,
		&p.ImageURL, &p.Status, &p.Location, &p.Warehouse, &created, &updated)
	if err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]*entity.Product, error) {
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

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Brand, p.Size, p.SKU, p.Price.StringFixed(2), p.Stock,
		p.ImageURL, p.Status, p.Location, p.Warehouse, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE products SET name = ?, brand = ?, size = ?, sku = ?, price = ?, stock = ?,
			image_url = ?, status = ?, location = ?, warehouse = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		p.Name, p.Brand, p.Size, p.SKU, p.Price.StringFixed(2), p.Stock,
		p.ImageURL, p.Status, p.Location, p.Warehouse, formatTime(p.UpdatedAt),
		p.UserID, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) UpdateStock(ctx context.Context, userID, id string, stock int) error {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET stock = ?, updated_at = ? WHERE user_id = ? AND id = ?`,
		stock, formatTime(time.Now()), userID, id)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, userID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE user_id = ? AND id = ?`, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) FindBySKUAndSize(ctx context.Context, userID, sku, size, excludeID string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products
		WHERE user_id = ? AND sku = ? AND size = ? AND id <> ? ORDER BY created_at LIMIT 1`,
		userID, sku, size, excludeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find product by sku and size: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := []string{"user_id = ?"}
	args := []any{f.UserID}
	if f.Warehouse != "" {
		where = append(where, "warehouse = ?")
		args = append(args, f.Warehouse)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := likePattern(s)
		where = append(where, `(name LIKE ? ESCAPE '\' OR sku LIKE ? ESCAPE '\' OR brand LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+cond+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) ListAll(ctx context.Context, userID string) ([]*entity.Product, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+productColumns+` FROM products WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return collectProducts(rows)
}

func (r *ProductRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) ReassignWarehouse(ctx context.Context, userID, oldName, newName string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET warehouse = ? WHERE user_id = ? AND warehouse = ?`, newName, userID, oldName)
	if err != nil {
		return 0, fmt.Errorf("reassign product warehouse: %w", err)
	}
	return res.RowsAffected()
}
