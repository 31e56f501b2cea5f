package repository

import (
	"context"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para bodegas (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	// GetByID devuelve nil, nil si la bodega no existe o es de otro usuario.
	GetByID(ctx context.Context, userID, id string) (*entity.Warehouse, error)
	GetDefault(ctx context.Context, userID string) (*entity.Warehouse, error)
	// ListByUser lista en orden de creación.
	ListByUser(ctx context.Context, userID string) ([]*entity.Warehouse, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountDefaults(ctx context.Context, userID string) (int, error)
	// Rename devuelve domain.ErrDuplicate si el nombre ya existe para el usuario.
	Rename(ctx context.Context, userID, id, name string) error
	// SetDefault aplica is_default = (id = target) en una sola sentencia.
	SetDefault(ctx context.Context, userID, id string) error
}
