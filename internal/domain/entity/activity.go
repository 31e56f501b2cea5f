package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de actividad.
const (
	ActivityTypeInbound  = "inbound"  // entrada
	ActivityTypeOutbound = "outbound" // salida (venta), siempre 1 unidad
	ActivityTypePending  = "pending"  // reservado para importación de pedidos
)

// Activity es un registro append-only de entrada o salida.
// En una salida Price es el precio de venta y Cost el costo unitario al momento de la venta.
// En una entrada Price y Cost son el costo unitario del lote entrante.
type Activity struct {
	ID          string
	UserID      string
	Type        string
	ProductName string
	SKU         string
	Size        string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	ImageURL    string
	Warehouse   string
	Count       int
	Platform    string
	CreatedAt   time.Time
}

// Quantity devuelve las unidades del registro; filas antiguas sin count valen 1.
func (a *Activity) Quantity() int {
	if a.Count <= 0 {
		return 1
	}
	return a.Count
}

// ValidActivityType valida el tipo recibido en filtros.
func ValidActivityType(t string) bool {
	switch t {
	case ActivityTypeInbound, ActivityTypeOutbound, ActivityTypePending:
		return true
	}
	return false
}
