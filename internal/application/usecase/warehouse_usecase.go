package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/application/inventory"
	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/analytics"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

// WarehouseUseCase registro de bodegas: siembra inicial, bodega por defecto y renombre en cascada.
type WarehouseUseCase struct {
	repo        repository.WarehouseRepository
	productRepo repository.ProductRepository
	txRunner    inventory.TxRunner
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	repo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	txRunner inventory.TxRunner,
) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, productRepo: productRepo, txRunner: txRunner}
}

// List devuelve las bodegas en orden de creación, sembrando las iniciales si no hay ninguna.
func (uc *WarehouseUseCase) List(ctx context.Context, userID string) (*dto.WarehouseListResponse, error) {
	if _, err := uc.EnsureSeeded(ctx, userID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, dto.NewWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{Items: items}, nil
}

// EnsureSeeded crea las bodegas iniciales (la primera por defecto) solo si el usuario no tiene ninguna.
// Devuelve true si sembró. Una siembra concurrente que choca con el índice único cuenta como ya sembrado.
func (uc *WarehouseUseCase) EnsureSeeded(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUnauthorized
	}
	seeded := false
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.ActivityRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		n, err := warehouseRepo.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		now := time.Now().UTC()
		for i, name := range entity.DefaultWarehouseNames {
			w := &entity.Warehouse{
				ID:        uuid.New().String(),
				UserID:    userID,
				Name:      name,
				IsDefault: i == 0,
				// desplazamiento para que el orden de creación sea estable
				CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			}
			if err := warehouseRepo.Create(ctx, w); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if errors.Is(err, domain.ErrDuplicate) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return seeded, nil
}

// Create agrega una bodega. Es la bodega por defecto solo si es la primera del usuario.
func (uc *WarehouseUseCase) Create(ctx context.Context, userID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.ActivityRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		n, err := warehouseRepo.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		w.IsDefault = n == 0
		return warehouseRepo.Create(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewWarehouseResponse(w)
	return &out, nil
}

// SetDefault marca la bodega como única por defecto con una sola sentencia condicional.
// Antes del commit verifica que quede exactamente una; si no, revierte con ErrConflict.
func (uc *WarehouseUseCase) SetDefault(ctx context.Context, userID, id string) (*dto.WarehouseResponse, error) {
	var target *entity.Warehouse
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.ActivityRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		w, err := warehouseRepo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		if err := warehouseRepo.SetDefault(ctx, userID, id); err != nil {
			return err
		}
		n, err := warehouseRepo.CountDefaults(ctx, userID)
		if err != nil {
			return err
		}
		if n != 1 {
			return domain.ErrConflict
		}
		w.IsDefault = true
		target = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewWarehouseResponse(target)
	return &out, nil
}

// Rename cambia el nombre y reescribe la referencia en productos y actividades, todo en una transacción.
func (uc *WarehouseUseCase) Rename(ctx context.Context, userID, id string, in dto.RenameWarehouseRequest) (*dto.RenameWarehouseResponse, error) {
	newName := strings.TrimSpace(in.Name)
	if newName == "" {
		return nil, domain.ErrInvalidInput
	}
	out := &dto.RenameWarehouseResponse{}
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		activityRepo repository.ActivityRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		w, err := warehouseRepo.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}
		if w == nil {
			return domain.ErrNotFound
		}
		if in.OldName != "" && in.OldName != w.Name {
			// otro cliente la renombró antes
			return domain.ErrConflict
		}
		oldName := w.Name
		if oldName != newName {
			if err := warehouseRepo.Rename(ctx, userID, id, newName); err != nil {
				return err
			}
			if out.ProductsUpdated, err = productRepo.ReassignWarehouse(ctx, userID, oldName, newName); err != nil {
				return err
			}
			if out.ActivitiesUpdated, err = activityRepo.ReassignWarehouse(ctx, userID, oldName, newName); err != nil {
				return err
			}
		}
		w.Name = newName
		out.Warehouse = dto.NewWarehouseResponse(w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Summary totales en existencia de una bodega.
func (uc *WarehouseUseCase) Summary(ctx context.Context, userID, id string) (*dto.WarehouseSummaryResponse, error) {
	w, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.productRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	totals := analytics.ForWarehouse(products, w.Name)
	return &dto.WarehouseSummaryResponse{
		ID:         w.ID,
		Name:       w.Name,
		TotalStock: totals.Stock,
		TotalValue: totals.Value,
	}, nil
}
