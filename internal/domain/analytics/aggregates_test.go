package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resell-inventory/internal/domain/analytics"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

var (
	shanghai = time.FixedZone("CST", 8*3600)
	testNow  = time.Date(2026, 3, 15, 10, 30, 0, 0, shanghai)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func outbound(name string, price, cost string, at time.Time) *entity.Activity {
	return &entity.Activity{Type: entity.ActivityTypeOutbound, ProductName: name, Price: dec(price), Cost: dec(cost), Count: 1, CreatedAt: at}
}

func inbound(count int, at time.Time) *entity.Activity {
	return &entity.Activity{Type: entity.ActivityTypeInbound, Price: dec("100"), Cost: dec("100"), Count: count, CreatedAt: at}
}

func product(brand, warehouse, status string, stock int, price string) *entity.Product {
	return &entity.Product{Brand: brand, Warehouse: warehouse, Status: status, Stock: stock, Price: dec(price)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen mensual
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthly_VentaYEntradasDelMes(t *testing.T) {
	acts := []*entity.Activity{
		outbound("Dunk", "100", "60", testNow.Add(-time.Hour)),
		inbound(5, testNow.AddDate(0, 0, -3)),
	}

	got := analytics.Monthly(acts, testNow)

	assert.True(t, got.SalesTotal.Equal(dec("100")))
	assert.True(t, got.CostTotal.Equal(dec("60")))
	assert.True(t, got.Profit.Equal(dec("40")))
	assert.True(t, got.ProfitRate.Equal(dec("40")), "margen esperado 40%%, obtenido %s", got.ProfitRate)
	assert.Equal(t, 5, got.InboundCount)
	assert.Equal(t, 1, got.OutboundCount)
}

func TestMonthly_SinVentasMargenCero(t *testing.T) {
	got := analytics.Monthly([]*entity.Activity{inbound(2, testNow)}, testNow)

	assert.True(t, got.SalesTotal.IsZero())
	assert.True(t, got.ProfitRate.IsZero(), "sin ventas el margen es 0, no NaN")
	assert.Equal(t, 2, got.InboundCount)
}

func TestMonthly_IgnoraOtrosMesesYContarSinCountComoUno(t *testing.T) {
	acts := []*entity.Activity{
		outbound("Dunk", "500", "300", testNow.AddDate(0, -1, 0)),
		inbound(0, testNow), // fila antigua sin count
	}

	got := analytics.Monthly(acts, testNow)

	assert.Equal(t, 0, got.OutboundCount)
	assert.Equal(t, 1, got.InboundCount)
}

func TestMonthly_CorteDeMesEnZonaLocal(t *testing.T) {
	// 2026-02-28 17:00 UTC es 2026-03-01 01:00 en UTC+8.
	at := time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC)

	got := analytics.Monthly([]*entity.Activity{outbound("Dunk", "10", "5", at)}, testNow)

	assert.Equal(t, 1, got.OutboundCount, "el mes se evalúa en la zona de now")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas de hoy y pendientes
// ──────────────────────────────────────────────────────────────────────────────

func TestTodaySales_SoloSalidasDeHoy(t *testing.T) {
	acts := []*entity.Activity{
		outbound("A", "300", "200", testNow.Add(-2*time.Hour)),
		outbound("B", "150.50", "100", testNow.Add(-9*time.Hour)),
		outbound("C", "999", "1", testNow.AddDate(0, 0, -1)),
		inbound(3, testNow),
	}

	got := analytics.TodaySales(acts, testNow)

	assert.Equal(t, 2, got.Count)
	assert.Equal(t, "450.50", got.Amount.StringFixed(2))
}

func TestInboundToday_SumaUnidades(t *testing.T) {
	acts := []*entity.Activity{inbound(3, testNow), inbound(2, testNow.Add(-time.Hour)), inbound(7, testNow.AddDate(0, 0, -1))}
	assert.Equal(t, 5, analytics.InboundToday(acts, testNow))
}

func TestPendingCount(t *testing.T) {
	acts := []*entity.Activity{{Type: entity.ActivityTypePending}, inbound(1, testNow), {Type: entity.ActivityTypePending}}
	assert.Equal(t, 2, analytics.PendingCount(acts))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tendencia de 30 días
// ──────────────────────────────────────────────────────────────────────────────

func TestSalesTrend_SinActividadTreintaCeros(t *testing.T) {
	points := analytics.SalesTrend(nil, testNow)

	require.Len(t, points, analytics.TrendDays)
	for _, p := range points {
		assert.True(t, p.Amount.IsZero())
	}
	assert.Equal(t, "2/14", points[0].Label)
	assert.Equal(t, "3/15", points[29].Label, "el último punto es hoy")
}

func TestSalesTrend_AcumulaPorDia(t *testing.T) {
	acts := []*entity.Activity{
		outbound("A", "100", "50", testNow),
		outbound("B", "50", "20", testNow.Add(-time.Hour)),
		outbound("C", "70", "20", testNow.AddDate(0, 0, -2)),
		outbound("D", "1000", "20", testNow.AddDate(0, 0, -45)),
		inbound(4, testNow),
	}

	points := analytics.SalesTrend(acts, testNow)

	assert.True(t, points[29].Amount.Equal(dec("150")))
	assert.True(t, points[27].Amount.Equal(dec("70")))
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Amount)
	}
	assert.True(t, total.Equal(dec("220")), "ventas fuera de la ventana no cuentan")
}

// ──────────────────────────────────────────────────────────────────────────────
// Rankings
// ──────────────────────────────────────────────────────────────────────────────

func TestTopBrands_AgrupaYEtiquetaSinMarca(t *testing.T) {
	products := []*entity.Product{
		product("Nike", "W", entity.ProductStatusInStock, 3, "1"),
		product("", "W", entity.ProductStatusInStock, 4, "1"),
		product("Nike", "W", entity.ProductStatusInStock, 2, "1"),
		product("Adidas", "W", entity.ProductStatusSold, 10, "1"),
	}

	got := analytics.TopBrands(products)

	require.Len(t, got, 2)
	assert.Equal(t, analytics.RankEntry{Name: "Nike", Value: 5}, got[0])
	assert.Equal(t, analytics.RankEntry{Name: analytics.UnknownBrand, Value: 4}, got[1])
}

func TestTopBrands_LimiteYEmpateEstable(t *testing.T) {
	var products []*entity.Product
	for _, b := range []string{"A", "B", "C", "D", "E", "F"} {
		products = append(products, product(b, "W", entity.ProductStatusInStock, 1, "1"))
	}

	got := analytics.TopBrands(products)

	require.Len(t, got, analytics.TopLimit)
	assert.Equal(t, "A", got[0].Name, "en empate se conserva el orden de aparición")
	assert.Equal(t, "E", got[4].Name)
}

func TestTopProducts_CuentaSalidas(t *testing.T) {
	acts := []*entity.Activity{
		outbound("Jordan 1", "1", "1", testNow),
		outbound("Dunk", "1", "1", testNow),
		outbound("Dunk", "1", "1", testNow),
		inbound(9, testNow),
	}

	got := analytics.TopProducts(acts)

	require.Len(t, got, 2)
	assert.Equal(t, analytics.RankEntry{Name: "Dunk", Value: 2}, got[0])
	assert.Equal(t, analytics.RankEntry{Name: "Jordan 1", Value: 1}, got[1])
}

func TestTopProducts_VacioNoEsNil(t *testing.T) {
	got := analytics.TopProducts(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas y totales
// ──────────────────────────────────────────────────────────────────────────────

func TestForWarehouse_SoloEnExistencia(t *testing.T) {
	products := []*entity.Product{
		product("Nike", "杭州一号仓", entity.ProductStatusInStock, 2, "500"),
		product("Nike", "杭州一号仓", entity.ProductStatusShipping, 5, "500"),
		product("Nike", "上海浦东仓", entity.ProductStatusInStock, 1, "800"),
	}

	got := analytics.ForWarehouse(products, "杭州一号仓")

	assert.Equal(t, 2, got.Stock)
	assert.True(t, got.Value.Equal(dec("1000")))
	assert.Equal(t, 2, analytics.TotalStockForWarehouse(products, "杭州一号仓"))
	assert.True(t, analytics.TotalValueForWarehouse(products, "上海浦东仓").Equal(dec("800")))
	assert.True(t, analytics.TotalValueForWarehouse(products, "北京大兴仓").IsZero())
}

func TestLifetime(t *testing.T) {
	snap := analytics.Snapshot{
		Products:   []*entity.Product{product("N", "W", entity.ProductStatusInStock, 4, "1"), product("N", "W", entity.ProductStatusSold, 9, "1")},
		Activities: []*entity.Activity{inbound(3, testNow), inbound(2, testNow), outbound("x", "1", "1", testNow)},
	}

	got := analytics.Lifetime(snap)

	assert.Equal(t, analytics.LifetimeTotals{TotalStock: 4, TotalInbound: 5, TotalOutbound: 1}, got)
}

func TestShippingProducts(t *testing.T) {
	products := []*entity.Product{
		product("N", "W", entity.ProductStatusShipping, 1, "1"),
		product("N", "W", entity.ProductStatusInStock, 1, "1"),
	}
	assert.Len(t, analytics.ShippingProducts(products), 1)
	assert.NotNil(t, analytics.ShippingProducts(nil))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "2026年3月", analytics.MonthLabel(testNow))
}
