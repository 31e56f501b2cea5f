package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

var _ repository.PreferenceRepository = (*PreferenceRepo)(nil)

// PreferenceRepo preferencias clave-valor en la tabla preferences. Se usa cuando no hay Redis.
type PreferenceRepo struct {
	q Querier
}

// NewPreferenceRepository construye el adaptador.
func NewPreferenceRepository(q Querier) *PreferenceRepo {
	return &PreferenceRepo{q: q}
}

// Set inserta o reemplaza el valor.
func (r *PreferenceRepo) Set(ctx context.Context, userID, key, value string) error {
	query := `
		INSERT INTO preferences (user_id, key, value) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.q.Exec(ctx, query, userID, key, value); err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return nil
}

// Get lee el valor; found=false si no existe.
func (r *PreferenceRepo) Get(ctx context.Context, userID, key string) (string, bool, error) {
	var value string
	err := r.q.QueryRow(ctx, `SELECT value FROM preferences WHERE user_id = $1 AND key = $2`, userID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get preference: %w", err)
	}
	return value, true, nil
}
