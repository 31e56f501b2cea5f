package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// Reglas puras del libro de productos. No acceden a persistencia: reciben y devuelven valores.

// MergeInbound fusiona un lote entrante sobre la línea existente.
// El resultado conserva el ID de la existente; el registro entrante se descarta.
func MergeInbound(existing, incoming entity.Product, now time.Time) entity.Product {
	merged := existing
	merged.Price = CostCalculator(existing.Stock, existing.Price, incoming.Stock, incoming.Price)
	merged.Stock = existing.Stock + incoming.Stock
	if incoming.Location != "" {
		merged.Location = incoming.Location
	}
	switch {
	case incoming.Warehouse != "":
		merged.Warehouse = incoming.Warehouse
	case existing.Warehouse != "":
		merged.Warehouse = existing.Warehouse
	default:
		merged.Warehouse = entity.FallbackWarehouseName
	}
	merged.Status = entity.ProductStatusInStock
	merged.UpdatedAt = now
	return merged
}

// NewInboundActivity arma la entrada para la línea escrita. Precio y costo son los del lote
// entrante (no el promedio) y Count la cantidad entrante.
func NewInboundActivity(line entity.Product, incoming entity.Product, now time.Time) entity.Activity {
	return entity.Activity{
		UserID:      line.UserID,
		Type:        entity.ActivityTypeInbound,
		ProductName: line.Name,
		SKU:         line.SKU,
		Size:        line.Size,
		Price:       incoming.Price,
		Cost:        incoming.Price,
		ImageURL:    line.ImageURL,
		Warehouse:   line.Warehouse,
		Count:       incoming.Stock,
		CreatedAt:   now,
	}
}

// ApplyOutbound descuenta una unidad. Falla sin modificar el producto si no hay stock.
// El estado no cambia aunque el stock llegue a 0.
func ApplyOutbound(p *entity.Product) error {
	if p.Stock < 1 {
		return domain.ErrInsufficientStock
	}
	p.Stock--
	return nil
}

// NewOutboundActivity arma la salida de una unidad. Cost es el costo del producto antes de descontar.
func NewOutboundActivity(p entity.Product, sellingPrice decimal.Decimal, platform string, now time.Time) entity.Activity {
	return entity.Activity{
		UserID:      p.UserID,
		Type:        entity.ActivityTypeOutbound,
		ProductName: p.Name,
		SKU:         p.SKU,
		Size:        p.Size,
		Price:       sellingPrice,
		Cost:        p.Price,
		ImageURL:    p.ImageURL,
		Warehouse:   p.Warehouse,
		Count:       1,
		Platform:    platform,
		CreatedAt:   now,
	}
}
