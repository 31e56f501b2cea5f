package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Ventas de hoy, pendientes y totales por bodega.
type DashboardSummaryDTO struct {
	PendingCount    int                 `json:"pending_count"`
	TodaySales      decimal.Decimal     `json:"today_sales"`
	TodaySalesCount int                 `json:"today_sales_count"`
	InboundToday    int                 `json:"inbound_today"`
	TotalStock      int                 `json:"total_stock"`
	Warehouses      []WarehouseTotalDTO `json:"warehouses"`
	DateLabel       string              `json:"date_label"` // ej: "2026年3月"
}

// WarehouseTotalDTO stock y valor en existencia de una bodega.
type WarehouseTotalDTO struct {
	Name       string          `json:"name"`
	IsDefault  bool            `json:"is_default"`
	TotalStock int             `json:"total_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	// Mes calendario en curso
	SalesTotal    decimal.Decimal `json:"sales_total"`
	CostTotal     decimal.Decimal `json:"cost_total"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitRate    decimal.Decimal `json:"profit_rate"` // porcentaje
	InboundCount  int             `json:"inbound_count"`
	OutboundCount int             `json:"outbound_count"`

	Trend       []TrendPointDTO `json:"trend"` // siempre 30 puntos, del más antiguo a hoy
	TopBrands   []RankDTO       `json:"top_brands"`
	TopProducts []RankDTO       `json:"top_products"`
	DateLabel   string          `json:"date_label"`
}

// TrendPointDTO ventas de un día.
type TrendPointDTO struct {
	Date   string          `json:"date"`  // YYYY-MM-DD
	Label  string          `json:"label"` // M/D
	Amount decimal.Decimal `json:"amount"`
}

// RankDTO entrada de ranking (marca o producto).
type RankDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ProfileStatsDTO respuesta de GET /api/dashboard/profile.
type ProfileStatsDTO struct {
	TotalStock    int `json:"total_stock"`
	TotalInbound  int `json:"total_inbound"`
	TotalOutbound int `json:"total_outbound"`
}
