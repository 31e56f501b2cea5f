package inventory

import (
	"context"

	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		activityRepo repository.ActivityRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}

// StockObserver recibe la notificación después de cada commit que cambia stock.
// Es de una sola vía: no devuelve error.
type StockObserver interface {
	StockChanged(ctx context.Context, userID string)
}
