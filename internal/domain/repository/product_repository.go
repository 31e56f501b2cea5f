package repository

import (
	"context"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// ProductFilter filtros del listado paginado de productos.
type ProductFilter struct {
	UserID    string
	Warehouse string // vacío = todas
	Status    string // vacío = todos
	Search    string // subcadena sin distinguir mayúsculas sobre name, sku y brand
	Limit     int
	Offset    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// Update reemplaza la fila completa (mismo ID y usuario).
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, userID, id string, stock int) error
	GetByID(ctx context.Context, userID, id string) (*entity.Product, error)
	// FindBySKUAndSize busca otra línea con la misma identidad; excludeID se ignora si está vacío.
	FindBySKUAndSize(ctx context.Context, userID, sku, size, excludeID string) (*entity.Product, error)
	// List devuelve la página pedida y el total exacto de filas que cumplen el filtro.
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	ListAll(ctx context.Context, userID string) ([]*entity.Product, error)
	Delete(ctx context.Context, userID, id string) error
	// ReassignWarehouse cambia la referencia por nombre de oldName a newName; devuelve filas afectadas.
	ReassignWarehouse(ctx context.Context, userID, oldName, newName string) (int64, error)
}
