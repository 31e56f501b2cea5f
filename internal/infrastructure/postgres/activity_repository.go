package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo log de actividades sobre PostgreSQL (pool o tx).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = `id, user_id, type, product_name, sku, size, price, cost, image_url, warehouse, count, platform, created_at`

func collectActivities(rows pgx.Rows) ([]*entity.Activity, error) {
	defer rows.Close()
	list := make([]*entity.Activity, 0)
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.ProductName, &a.SKU, &a.Size, &a.Price, &a.Cost,
			&a.ImageURL, &a.Warehouse, &a.Count, &a.Platform, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Create agrega una actividad.
func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	query := `INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.UserID, a.Type, a.ProductName, a.SKU, a.Size, a.Price, a.Cost,
		a.ImageURL, a.Warehouse, a.Quantity(), a.Platform, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List filtra por tipo, bodega y rango [From, To), de la más reciente a la más antigua.
func (r *ActivityRepo) List(ctx context.Context, f repository.ActivityFilter) ([]*entity.Activity, int, error) {
	where := []string{"user_id = $1"}
	args := []any{f.UserID}
	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if f.Warehouse != "" {
		args = append(args, f.Warehouse)
		where = append(where, fmt.Sprintf("warehouse = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("created_at < $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM activities WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d`,
		activityColumns, cond, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	list, err := collectActivities(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve el historial completo del usuario, más reciente primero.
func (r *ActivityRepo) ListAll(ctx context.Context, userID string) ([]*entity.Activity, error) {
	rows, err := r.q.Query(ctx, `SELECT `+activityColumns+` FROM activities WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list all activities: %w", err)
	}
	return collectActivities(rows)
}

// ReassignWarehouse reescribe la bodega en filas históricas (cascada de renombre).
func (r *ActivityRepo) ReassignWarehouse(ctx context.Context, userID, oldName, newName string) (int64, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE activities SET warehouse = $3 WHERE user_id = $1 AND warehouse = $2`, userID, oldName, newName)
	if err != nil {
		return 0, fmt.Errorf("reassign activity warehouse: %w", err)
	}
	return cmd.RowsAffected(), nil
}
