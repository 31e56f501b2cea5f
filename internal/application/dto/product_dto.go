package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// UpsertProductRequest entrada para dar de alta o editar una línea.
// ConfirmMerge autoriza la fusión si ya existe la misma SKU y talla.
type UpsertProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Brand        string          `json:"brand" validate:"max=100"`
	Size         string          `json:"size" validate:"required,max=20"`
	SKU          string          `json:"sku" validate:"required,max=100"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock" validate:"min=0"`
	ImageURL     string          `json:"image_url" validate:"omitempty,url"`
	Status       string          `json:"status" validate:"omitempty,oneof=instock shipping sold"`
	Location     string          `json:"location" validate:"max=100"`
	Warehouse    string          `json:"warehouse" validate:"max=100"`
	ConfirmMerge bool            `json:"confirm_merge"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Warehouse string `query:"warehouse"`
	Status    string `query:"status" validate:"omitempty,oneof=instock shipping sold"`
	Search    string `query:"search" validate:"max=100"`
}

// OutboundRequest venta de una unidad. SellingPrice ausente = al costo.
type OutboundRequest struct {
	SellingPrice *decimal.Decimal `json:"selling_price"`
	Platform     string           `json:"platform" validate:"max=50"`
}

// ProductResponse salida de un producto. Price es el costo unitario.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Size      string          `json:"size"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	ImageURL  string          `json:"image_url"`
	Status    string          `json:"status"`
	Location  string          `json:"location"`
	Warehouse string          `json:"warehouse"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// UpsertProductResponse línea escrita y si hubo fusión.
type UpsertProductResponse struct {
	Product ProductResponse `json:"product"`
	Merged  bool            `json:"merged"`
}

// MergeConflictResponse 409 cuando la fusión no fue confirmada.
type MergeConflictResponse struct {
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	ExistingID    string          `json:"existing_id"`
	ExistingStock int             `json:"existing_stock"`
	ExistingCost  decimal.Decimal `json:"existing_cost"`
}

// NewProductResponse convierte la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Brand:     p.Brand,
		Size:      p.Size,
		SKU:       p.SKU,
		Price:     p.Price,
		Stock:     p.Stock,
		ImageURL:  p.ImageURL,
		Status:    p.Status,
		Location:  p.Location,
		Warehouse: p.Warehouse,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProductResponses convierte una lista; nunca devuelve nil.
func NewProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}
