// Package analytics es el motor de agregación del dashboard y las estadísticas.
//
// Todas las funciones son puras: reciben una instantánea de productos y actividades
// y un instante "now" explícito cuya zona horaria define los cortes de día y mes.
// No guardan estado entre llamadas; se recalculan completas cada vez.
package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

const (
	// TopLimit número de entradas en los rankings de marcas y productos.
	TopLimit = 5
	// TrendDays longitud fija de la serie de ventas.
	TrendDays = 30
	// UnknownBrand etiqueta para productos sin marca.
	UnknownBrand = "其他"

	isoDate = "2006-01-02"
)

// Snapshot estado leído del almacén sobre el que se proyectan los agregados.
type Snapshot struct {
	Products   []*entity.Product
	Activities []*entity.Activity
}

// SalesTotal suma de ventas y número de salidas.
type SalesTotal struct {
	Amount decimal.Decimal
	Count  int
}

// WarehouseTotals stock y valor (costo * stock) de una bodega.
type WarehouseTotals struct {
	Stock int
	Value decimal.Decimal
}

// MonthlySummary resumen del mes calendario en curso.
type MonthlySummary struct {
	SalesTotal    decimal.Decimal
	CostTotal     decimal.Decimal
	Profit        decimal.Decimal
	ProfitRate    decimal.Decimal // porcentaje, 0 si no hay ventas
	InboundCount  int
	OutboundCount int
}

// TrendPoint ventas de un día.
type TrendPoint struct {
	Date   time.Time
	Label  string // "M/D"
	Amount decimal.Decimal
}

// RankEntry entrada de un ranking.
type RankEntry struct {
	Name  string
	Value int
}

// LifetimeTotals totales históricos que muestra el perfil.
type LifetimeTotals struct {
	TotalStock    int
	TotalInbound  int
	TotalOutbound int
}

// PendingCount cuenta actividades pendientes (hoy nada las produce).
func PendingCount(activities []*entity.Activity) int {
	n := 0
	for _, a := range activities {
		if a.Type == entity.ActivityTypePending {
			n++
		}
	}
	return n
}

// isToday compara por prefijo de la fecha ISO, sin intervalos.
func isToday(t, now time.Time) bool {
	return strings.HasPrefix(t.In(now.Location()).Format(time.RFC3339), now.Format(isoDate))
}

func sameMonth(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// TodaySales suma el precio de las salidas de hoy.
func TodaySales(activities []*entity.Activity, now time.Time) SalesTotal {
	out := SalesTotal{Amount: decimal.Zero}
	for _, a := range activities {
		if a.Type != entity.ActivityTypeOutbound || !isToday(a.CreatedAt, now) {
			continue
		}
		out.Amount = out.Amount.Add(a.Price)
		out.Count++
	}
	return out
}

// InboundToday suma las unidades que entraron hoy.
func InboundToday(activities []*entity.Activity, now time.Time) int {
	n := 0
	for _, a := range activities {
		if a.Type == entity.ActivityTypeInbound && isToday(a.CreatedAt, now) {
			n += a.Quantity()
		}
	}
	return n
}

// TotalStock suma el stock de las líneas en existencia.
func TotalStock(products []*entity.Product) int {
	n := 0
	for _, p := range products {
		if p.IsInStock() {
			n += p.Stock
		}
	}
	return n
}

// TotalStockForWarehouse suma el stock en existencia de una bodega.
func TotalStockForWarehouse(products []*entity.Product, name string) int {
	return ForWarehouse(products, name).Stock
}

// TotalValueForWarehouse suma costo * stock en existencia de una bodega.
func TotalValueForWarehouse(products []*entity.Product, name string) decimal.Decimal {
	return ForWarehouse(products, name).Value
}

// ForWarehouse calcula stock y valor en una sola pasada.
func ForWarehouse(products []*entity.Product, name string) WarehouseTotals {
	out := WarehouseTotals{Value: decimal.Zero}
	for _, p := range products {
		if p.Warehouse != name || !p.IsInStock() {
			continue
		}
		out.Stock += p.Stock
		out.Value = out.Value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	return out
}

// Monthly resume ventas, costo, margen y movimientos del mes de now.
func Monthly(activities []*entity.Activity, now time.Time) MonthlySummary {
	out := MonthlySummary{SalesTotal: decimal.Zero, CostTotal: decimal.Zero}
	for _, a := range activities {
		if !sameMonth(a.CreatedAt, now) {
			continue
		}
		switch a.Type {
		case entity.ActivityTypeOutbound:
			out.SalesTotal = out.SalesTotal.Add(a.Price)
			out.CostTotal = out.CostTotal.Add(a.Cost)
			out.OutboundCount++
		case entity.ActivityTypeInbound:
			out.InboundCount += a.Quantity()
		}
	}
	out.Profit = out.SalesTotal.Sub(out.CostTotal)
	out.ProfitRate = decimal.Zero
	if !out.SalesTotal.IsZero() {
		out.ProfitRate = out.Profit.Div(out.SalesTotal).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return out
}

// SalesTrend devuelve exactamente TrendDays puntos, del más antiguo a hoy.
func SalesTrend(activities []*entity.Activity, now time.Time) []TrendPoint {
	loc := now.Location()
	points := make([]TrendPoint, TrendDays)
	index := make(map[string]int, TrendDays)
	for i := 0; i < TrendDays; i++ {
		day := time.Date(now.Year(), now.Month(), now.Day()-(TrendDays-1-i), 0, 0, 0, 0, loc)
		points[i] = TrendPoint{
			Date:   day,
			Label:  fmt.Sprintf("%d/%d", day.Month(), day.Day()),
			Amount: decimal.Zero,
		}
		index[day.Format(isoDate)] = i
	}
	for _, a := range activities {
		if a.Type != entity.ActivityTypeOutbound {
			continue
		}
		if i, ok := index[a.CreatedAt.In(loc).Format(isoDate)]; ok {
			points[i].Amount = points[i].Amount.Add(a.Price)
		}
	}
	return points
}

// TopBrands agrupa el stock en existencia por marca.
func TopBrands(products []*entity.Product) []RankEntry {
	r := newRanking()
	for _, p := range products {
		if !p.IsInStock() {
			continue
		}
		brand := p.Brand
		if brand == "" {
			brand = UnknownBrand
		}
		r.add(brand, p.Stock)
	}
	return r.top(TopLimit)
}

// TopProducts cuenta salidas por nombre de producto.
func TopProducts(activities []*entity.Activity) []RankEntry {
	r := newRanking()
	for _, a := range activities {
		if a.Type == entity.ActivityTypeOutbound {
			r.add(a.ProductName, 1)
		}
	}
	return r.top(TopLimit)
}

// Lifetime totales para el perfil: stock actual, unidades entradas y salidas.
func Lifetime(snap Snapshot) LifetimeTotals {
	out := LifetimeTotals{TotalStock: TotalStock(snap.Products)}
	for _, a := range snap.Activities {
		switch a.Type {
		case entity.ActivityTypeInbound:
			out.TotalInbound += a.Quantity()
		case entity.ActivityTypeOutbound:
			out.TotalOutbound++
		}
	}
	return out
}

// ShippingProducts líneas marcadas en tránsito (vista de pedidos pendientes de envío).
func ShippingProducts(products []*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0)
	for _, p := range products {
		if p.Status == entity.ProductStatusShipping {
			out = append(out, p)
		}
	}
	return out
}

// MonthLabel etiqueta del mes, ej: "2026年3月".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%d年%d月", t.Year(), int(t.Month()))
}

// ranking acumula valores por nombre recordando el orden de aparición,
// que es el desempate del ordenamiento estable.
type ranking struct {
	entries []RankEntry
	pos     map[string]int
}

func newRanking() *ranking {
	return &ranking{pos: make(map[string]int)}
}

func (r *ranking) add(name string, v int) {
	if i, ok := r.pos[name]; ok {
		r.entries[i].Value += v
		return
	}
	r.pos[name] = len(r.entries)
	r.entries = append(r.entries, RankEntry{Name: name, Value: v})
}

func (r *ranking) top(limit int) []RankEntry {
	out := slices.Clone(r.entries)
	slices.SortStableFunc(out, func(a, b RankEntry) int {
		return b.Value - a.Value
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []RankEntry{}
	}
	return out
}
