package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

// ActivityUseCase consulta del log de actividades. Las altas ocurren solo dentro de las transacciones del libro.
type ActivityUseCase struct {
	repo repository.ActivityRepository
	loc  *time.Location
}

// NewActivityUseCase construye el caso de uso. loc define cómo se interpretan las fechas del filtro.
func NewActivityUseCase(repo repository.ActivityRepository, loc *time.Location) *ActivityUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &ActivityUseCase{repo: repo, loc: loc}
}

// Query lista actividades de la más reciente a la más antigua con el total exacto.
func (uc *ActivityUseCase) Query(ctx context.Context, userID string, in dto.ActivityListRequest) (*dto.ActivityListResponse, error) {
	if in.Type != "" && !entity.ValidActivityType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()
	filter := repository.ActivityFilter{
		UserID:    userID,
		Type:      in.Type,
		Warehouse: in.Warehouse,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.From != "" {
		from, err := time.ParseInLocation(time.DateOnly, in.From, uc.loc)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.ParseInLocation(time.DateOnly, in.To, uc.loc)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// To es inclusivo en la petición y exclusivo en el repositorio
		to = to.AddDate(0, 0, 1)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, domain.ErrInvalidInput
	}

	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.NewActivityResponse(a))
	}
	return &dto.ActivityListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}
