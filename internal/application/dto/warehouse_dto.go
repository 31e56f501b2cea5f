package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// RenameWarehouseRequest entrada para renombrar. OldName es opcional; si viene debe coincidir con el actual.
type RenameWarehouseRequest struct {
	OldName string `json:"old_name" validate:"omitempty,max=100"`
	Name    string `json:"name" validate:"required,min=1,max=100"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// WarehouseListResponse bodegas en orden de creación.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
}

// RenameWarehouseResponse bodega renombrada y filas actualizadas en cascada.
type RenameWarehouseResponse struct {
	Warehouse         WarehouseResponse `json:"warehouse"`
	ProductsUpdated   int64             `json:"products_updated"`
	ActivitiesUpdated int64             `json:"activities_updated"`
}

// WarehouseSummaryResponse stock y valor en existencia de una bodega.
type WarehouseSummaryResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	TotalStock int             `json:"total_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// NewWarehouseResponse convierte la entidad.
func NewWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		IsDefault: w.IsDefault,
		CreatedAt: w.CreatedAt,
	}
}
