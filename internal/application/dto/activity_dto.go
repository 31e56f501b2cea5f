package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// ActivityListRequest filtros de GET /api/activities. From y To son fechas YYYY-MM-DD inclusivas.
type ActivityListRequest struct {
	PageRequest
	Type      string `query:"type" validate:"omitempty,oneof=inbound outbound pending"`
	Warehouse string `query:"warehouse"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// ActivityResponse salida de una actividad.
type ActivityResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Size        string          `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	ImageURL    string          `json:"image_url"`
	Warehouse   string          `json:"warehouse"`
	Count       int             `json:"count"`
	Platform    string          `json:"platform,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ActivityListResponse lista paginada, de la más reciente a la más antigua.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// NewActivityResponse convierte la entidad.
func NewActivityResponse(a *entity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Type:        a.Type,
		ProductName: a.ProductName,
		SKU:         a.SKU,
		Size:        a.Size,
		Price:       a.Price,
		Cost:        a.Cost,
		ImageURL:    a.ImageURL,
		Warehouse:   a.Warehouse,
		Count:       a.Quantity(),
		Platform:    a.Platform,
		CreatedAt:   a.CreatedAt,
	}
}
