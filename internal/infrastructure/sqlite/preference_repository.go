package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.PreferenceRepository = (*PreferenceRepo)(nil)

// PreferenceRepo preferencias clave-valor en la tabla preferences.
type PreferenceRepo struct {
	q Querier
}

// NewPreferenceRepository construye el adaptador.
func NewPreferenceRepository(q Querier) *PreferenceRepo {
	return &PreferenceRepo{q: q}
}

// Set inserta o reemplaza el valor.
func (r *PreferenceRepo) Set(ctx context.Context, userID, key, value string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO preferences (user_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT (user_id, key) DO UPDATE SET value = excluded.value`, userID, key, value)
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// Get lee el valor; found=false si no existe.
func (r *PreferenceRepo) Get(ctx context.Context, userID, key string) (string, bool, error) {
	var value string
	err := r.q.QueryRowContext(ctx, `SELECT value FROM preferences WHERE user_id = ? AND key = ?`, userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference: %w", err)
	}
	return value, true, nil
}
