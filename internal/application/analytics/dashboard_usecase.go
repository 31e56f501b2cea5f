// Package analytics contiene los casos de uso de lectura del dashboard y las estadísticas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/domain/analytics"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

// DashboardUseCase proyecta productos y actividades en los indicadores del dashboard.
//
// Cada llamada lee una instantánea completa y recalcula todo; no hay caché.
type DashboardUseCase struct {
	productRepo   repository.ProductRepository
	activityRepo  repository.ActivityRepository
	warehouseRepo repository.WarehouseRepository
	loc           *time.Location
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. loc es la zona de los cortes de día y mes.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	warehouseRepo repository.WarehouseRepository,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{
		productRepo:   productRepo,
		activityRepo:  activityRepo,
		warehouseRepo: warehouseRepo,
		loc:           loc,
		now:           time.Now,
	}
}

type snapshot struct {
	analytics.Snapshot
	warehouses []*entity.Warehouse
}

// load lee las tres colecciones en paralelo.
func (uc *DashboardUseCase) load(ctx context.Context, userID string, withWarehouses bool) (*snapshot, error) {
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type activitiesResult struct {
		list []*entity.Activity
		err  error
	}
	type warehousesResult struct {
		list []*entity.Warehouse
		err  error
	}

	productsCh := make(chan productsResult, 1)
	activitiesCh := make(chan activitiesResult, 1)
	warehousesCh := make(chan warehousesResult, 1)

	go func() {
		list, err := uc.productRepo.ListAll(ctx, userID)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.activityRepo.ListAll(ctx, userID)
		activitiesCh <- activitiesResult{list, err}
	}()
	go func() {
		if !withWarehouses {
			warehousesCh <- warehousesResult{}
			return
		}
		list, err := uc.warehouseRepo.ListByUser(ctx, userID)
		warehousesCh <- warehousesResult{list, err}
	}()

	products := <-productsCh
	activities := <-activitiesCh
	warehouses := <-warehousesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if activities.err != nil {
		return nil, fmt.Errorf("dashboard: actividades: %w", activities.err)
	}
	if warehouses.err != nil {
		return nil, fmt.Errorf("dashboard: bodegas: %w", warehouses.err)
	}
	return &snapshot{
		Snapshot:   analytics.Snapshot{Products: products.list, Activities: activities.list},
		warehouses: warehouses.list,
	}, nil
}

// GetSummary ventas de hoy, pendientes y totales por bodega.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	snap, err := uc.load(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)

	today := analytics.TodaySales(snap.Activities, now)
	warehouses := make([]dto.WarehouseTotalDTO, 0, len(snap.warehouses))
	for _, w := range snap.warehouses {
		totals := analytics.ForWarehouse(snap.Products, w.Name)
		warehouses = append(warehouses, dto.WarehouseTotalDTO{
			Name:       w.Name,
			IsDefault:  w.IsDefault,
			TotalStock: totals.Stock,
			TotalValue: totals.Value,
		})
	}

	return &dto.DashboardSummaryDTO{
		PendingCount:    analytics.PendingCount(snap.Activities),
		TodaySales:      today.Amount.Round(2),
		TodaySalesCount: today.Count,
		InboundToday:    analytics.InboundToday(snap.Activities, now),
		TotalStock:      analytics.TotalStock(snap.Products),
		Warehouses:      warehouses,
		DateLabel:       analytics.MonthLabel(now),
	}, nil
}

// GetStats resumen mensual, tendencia de 30 días y rankings.
func (uc *DashboardUseCase) GetStats(ctx context.Context, userID string) (*dto.DashboardStatsDTO, error) {
	snap, err := uc.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	now := uc.now().In(uc.loc)

	month := analytics.Monthly(snap.Activities, now)
	trend := analytics.SalesTrend(snap.Activities, now)
	points := make([]dto.TrendPointDTO, 0, len(trend))
	for _, p := range trend {
		points = append(points, dto.TrendPointDTO{
			Date:   p.Date.Format(time.DateOnly),
			Label:  p.Label,
			Amount: p.Amount.Round(2),
		})
	}

	return &dto.DashboardStatsDTO{
		SalesTotal:    month.SalesTotal.Round(2),
		CostTotal:     month.CostTotal.Round(2),
		Profit:        month.Profit.Round(2),
		ProfitRate:    month.ProfitRate,
		InboundCount:  month.InboundCount,
		OutboundCount: month.OutboundCount,
		Trend:         points,
		TopBrands:     toRankDTO(analytics.TopBrands(snap.Products)),
		TopProducts:   toRankDTO(analytics.TopProducts(snap.Activities)),
		DateLabel:     analytics.MonthLabel(now),
	}, nil
}

// GetProfile totales históricos del perfil.
func (uc *DashboardUseCase) GetProfile(ctx context.Context, userID string) (*dto.ProfileStatsDTO, error) {
	snap, err := uc.load(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	totals := analytics.Lifetime(snap.Snapshot)
	return &dto.ProfileStatsDTO{
		TotalStock:    totals.TotalStock,
		TotalInbound:  totals.TotalInbound,
		TotalOutbound: totals.TotalOutbound,
	}, nil
}

func toRankDTO(entries []analytics.RankEntry) []dto.RankDTO {
	out := make([]dto.RankDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.RankDTO{Name: e.Name, Value: e.Value})
	}
	return out
}
