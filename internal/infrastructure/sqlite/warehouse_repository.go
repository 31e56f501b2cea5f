package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo bodegas sobre SQLite (db o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, user_id, name, is_default, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWarehouse(row rowScanner) (*entity.Warehouse, error) {
	var (
		w       entity.Warehouse
		created string
	)
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.IsDefault, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	w.CreatedAt = t
	return &w, nil
}

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO warehouses (`+warehouseColumns+`) VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.UserID, w.Name, w.IsDefault, formatTime(w.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) GetByID(ctx context.Context, userID, id string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRowContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE user_id = ? AND id = ?`, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

func (r *WarehouseRepo) GetDefault(ctx context.Context, userID string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRowContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE user_id = ? AND is_default = 1 ORDER BY created_at LIMIT 1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default warehouse: %w", err)
	}
	return w, nil
}

func (r *WarehouseRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Warehouse, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE user_id = ? ORDER BY created_at, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Warehouse, 0)
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WarehouseRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM warehouses WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count warehouses: %w", err)
	}
	return n, nil
}

func (r *WarehouseRepo) CountDefaults(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM warehouses WHERE user_id = ? AND is_default = 1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count default warehouses: %w", err)
	}
	return n, nil
}

func (r *WarehouseRepo) Rename(ctx context.Context, userID, id, name string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE warehouses SET name = ? WHERE user_id = ? AND id = ?`, name, userID, id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename warehouse: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault deja is_default = (id = target) en una sola sentencia.
func (r *WarehouseRepo) SetDefault(ctx context.Context, userID, id string) error {
	_, err := r.q.ExecContext(ctx, `UPDATE warehouses SET is_default = (id = ?) WHERE user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("set default warehouse: %w", err)
	}
	return nil
}
