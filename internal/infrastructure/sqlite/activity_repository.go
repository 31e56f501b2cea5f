package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo log de actividades sobre SQLite (db o tx).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

const activityColumns = `id, user_id, type, product_name, sku, size, price, cost, image_url, warehouse, count, platform, created_at`

func collectActivities(rows *sql.Rows) ([]*entity.Activity, error) {
	defer rows.Close()
	list := make([]*entity.Activity, 0)
	for rows.Next() {
		var (
			a       entity.Activity
			created string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.ProductName, &a.SKU, &a.Size, &a.Price, &a.Cost,
			&a.ImageURL, &a.Warehouse, &a.Count, &a.Platform, &created); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		t, err := parseTime(created)
		if err != nil {
			return nil, err
		}
		a.CreatedAt = t
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *ActivityRepo) Create(ctx context.Context, a *entity.Activity) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO activities (`+activityColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Type, a.ProductName, a.SKU, a.Size, a.Price.StringFixed(2), a.Cost.StringFixed(2),
		a.ImageURL, a.Warehouse, a.Quantity(), a.Platform, formatTime(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) List(ctx context.Context, f repository.ActivityFilter) ([]*entity.Activity, int, error) {
	where := []string{"user_id = ?"}
	args := []any{f.UserID}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}
	if f.Warehouse != "" {
		where = append(where, "warehouse = ?")
		args = append(args, f.Warehouse)
	}
	if f.From != nil {
		where = append(where, "created_at >= ?")
		args = append(args, formatTime(*f.From))
	}
	if f.To != nil {
		where = append(where, "created_at < ?")
		args = append(args, formatTime(*f.To))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activities: %w", err)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE `+cond+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activities: %w", err)
	}
	list, err := collectActivities(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ActivityRepo) ListAll(ctx context.Context, userID string) ([]*entity.Activity, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list all activities: %w", err)
	}
	return collectActivities(rows)
}

func (r *ActivityRepo) ReassignWarehouse(ctx context.Context, userID, oldName, newName string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `UPDATE activities SET warehouse = ? WHERE user_id = ? AND warehouse = ?`, newName, userID, oldName)
	if err != nil {
		return 0, fmt.Errorf("reassign activity warehouse: %w", err)
	}
	return res.RowsAffected()
}
