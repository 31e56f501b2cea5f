package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un producto. Los define el operador; el motor no los deriva del stock.
const (
	ProductStatusInStock  = "instock"
	ProductStatusShipping = "shipping"
	ProductStatusSold     = "sold"
)

// Product representa una línea física de inventario (SKU + talla) de un usuario.
// Price es el costo unitario (promedio ponderado tras una fusión), no el precio de venta.
type Product struct {
	ID        string
	UserID    string
	Name      string
	Brand     string
	Size      string
	SKU       string // código de artículo del fabricante; con Size identifica la línea
	Price     decimal.Decimal
	Stock     int
	ImageURL  string
	Status    string
	Location  string
	Warehouse string // nombre de la bodega, no su ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsInStock indica si la línea cuenta para los totales de inventario.
func (p *Product) IsInStock() bool {
	return p.Status == ProductStatusInStock
}

// ValidProductStatus valida el estado recibido.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusInStock, ProductStatusShipping, ProductStatusSold:
		return true
	}
	return false
}
