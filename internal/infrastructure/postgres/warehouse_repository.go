package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL (pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, user_id, name, is_default, created_at`

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	if err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.IsDefault, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	query := `INSERT INTO warehouses (` + warehouseColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, w.ID, w.UserID, w.Name, w.IsDefault, w.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega del usuario.
func (r *WarehouseRepo) GetByID(ctx context.Context, userID, id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE user_id = $1 AND id = $2`
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

// GetDefault obtiene la bodega por defecto del usuario.
func (r *WarehouseRepo) GetDefault(ctx context.Context, userID string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE user_id = $1 AND is_default
		ORDER BY created_at LIMIT 1`
	w, err := scanWarehouse(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default warehouse: %w", err)
	}
	return w, nil
}

// ListByUser lista las bodegas en orden de creación.
func (r *WarehouseRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE user_id = $1 ORDER BY created_at, name`
	rows, err := r.q.Query(ctx, query, userID)
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

// CountByUser cuenta las bodegas del usuario.
func (r *WarehouseRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM warehouses WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count warehouses: %w", err)
	}
	return n, nil
}

// CountDefaults cuenta las bodegas marcadas por defecto.
func (r *WarehouseRepo) CountDefaults(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM warehouses WHERE user_id = $1 AND is_default`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count default warehouses: %w", err)
	}
	return n, nil
}

// Rename cambia solo el nombre de la bodega; la cascada la hace el caso de uso.
func (r *WarehouseRepo) Rename(ctx context.Context, userID, id, name string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE warehouses SET name = $3 WHERE user_id = $1 AND id = $2`, userID, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename warehouse: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault deja is_default = (id = target) en todas las bodegas del usuario.
func (r *WarehouseRepo) SetDefault(ctx context.Context, userID, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE warehouses SET is_default = (id = $2) WHERE user_id = $1`, userID, id)
	if err != nil {
		return fmt.Errorf("set default warehouse: %w", err)
	}
	return nil
}
