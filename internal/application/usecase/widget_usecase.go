package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/domain/analytics"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
	"github.com/jhoicas/resell-inventory/pkg/logger"
)

// WidgetUseCase publica el resumen de stock para el widget de pantalla de inicio.
// Implementa inventory.StockObserver.
type WidgetUseCase struct {
	productRepo  repository.ProductRepository
	activityRepo repository.ActivityRepository
	prefs        repository.PreferenceRepository
	loc          *time.Location
	log          *logger.Logger
	now          func() time.Time
}

// NewWidgetUseCase construye el caso de uso.
func NewWidgetUseCase(
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	prefs repository.PreferenceRepository,
	loc *time.Location,
	log *logger.Logger,
) *WidgetUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &WidgetUseCase{
		productRepo:  productRepo,
		activityRepo: activityRepo,
		prefs:        prefs,
		loc:          loc,
		log:          log,
		now:          time.Now,
	}
}

// StockChanged recalcula y guarda el payload. Los errores solo se registran.
func (uc *WidgetUseCase) StockChanged(ctx context.Context, userID string) {
	data, err := uc.build(ctx, userID)
	if err == nil {
		var raw []byte
		raw, err = json.Marshal(data)
		if err == nil {
			err = uc.prefs.Set(ctx, userID, entity.WidgetDataKey, string(raw))
		}
	}
	if err != nil && uc.log != nil {
		uc.log.WithUser(userID).Warn().Err(err).Msg("no se pudo publicar el widget")
	}
}

// Get devuelve el último payload publicado; si no hay ninguno lo calcula sin guardarlo.
func (uc *WidgetUseCase) Get(ctx context.Context, userID string) (*dto.WidgetResponse, error) {
	raw, found, err := uc.prefs.Get(ctx, userID, entity.WidgetDataKey)
	if err != nil {
		return nil, err
	}
	var data entity.WidgetData
	if found {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("widget: payload inválido: %w", err)
		}
	} else {
		data, err = uc.build(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	return &dto.WidgetResponse{
		TotalStock:   data.TotalStock,
		InboundToday: data.InboundToday,
		LastUpdated:  data.LastUpdated,
	}, nil
}

func (uc *WidgetUseCase) build(ctx context.Context, userID string) (entity.WidgetData, error) {
	products, err := uc.productRepo.ListAll(ctx, userID)
	if err != nil {
		return entity.WidgetData{}, fmt.Errorf("widget: productos: %w", err)
	}
	activities, err := uc.activityRepo.ListAll(ctx, userID)
	if err != nil {
		return entity.WidgetData{}, fmt.Errorf("widget: actividades: %w", err)
	}
	now := uc.now().In(uc.loc)
	return entity.WidgetData{
		TotalStock:   analytics.TotalStock(products),
		InboundToday: analytics.InboundToday(activities, now),
		LastUpdated:  now.Format(time.TimeOnly),
	}, nil
}
