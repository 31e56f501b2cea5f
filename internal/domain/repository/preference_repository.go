package repository

import "context"

// PreferenceRepository almacén clave-valor por usuario (payload del widget).
type PreferenceRepository interface {
	Set(ctx context.Context, userID, key, value string) error
	// Get devuelve found=false si la clave no existe.
	Get(ctx context.Context, userID, key string) (value string, found bool, err error)
}
