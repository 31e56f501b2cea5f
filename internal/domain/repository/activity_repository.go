package repository

import (
	"context"
	"time"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// ActivityFilter filtros del log de actividades. From inclusivo, To exclusivo.
type ActivityFilter struct {
	UserID    string
	Type      string
	Warehouse string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// ActivityRepository puerto del log append-only de actividades.
// ReassignWarehouse es la única escritura sobre filas existentes (cascada de renombre de bodega).
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	// List ordena de la más reciente a la más antigua y devuelve el total exacto.
	List(ctx context.Context, filter ActivityFilter) ([]*entity.Activity, int, error)
	ListAll(ctx context.Context, userID string) ([]*entity.Activity, error)
	ReassignWarehouse(ctx context.Context, userID, oldName, newName string) (int64, error)
}
