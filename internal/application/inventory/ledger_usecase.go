package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/inventory"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

// LedgerUseCase registra entradas, fusiones, bajas y salidas del libro de productos.
// Cada mutación y su actividad se escriben en la misma transacción.
type LedgerUseCase struct {
	txRunner        TxRunner
	productRepo     repository.ProductRepository
	observer        StockObserver
	defaultPlatform string
}

// NewLedgerUseCase construye el caso de uso. observer puede ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	observer StockObserver,
	defaultPlatform string,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:        txRunner,
		productRepo:     productRepo,
		observer:        observer,
		defaultPlatform: defaultPlatform,
	}
}

// ProductDraft datos capturados para una línea. Status vacío = instock al crear, sin cambio al editar.
type ProductDraft struct {
	Name      string
	Brand     string
	Size      string
	SKU       string
	Price     decimal.Decimal
	Stock     int
	ImageURL  string
	Status    string
	Location  string
	Warehouse string
}

// MergeConfirmFunc decide si se fusiona el lote con la línea existente.
type MergeConfirmFunc func(existing entity.Product) bool

// UpsertInput entrada de AddOrUpdate. EditingID vacío = alta de un lote nuevo.
type UpsertInput struct {
	UserID    string
	EditingID string
	Draft     ProductDraft
	Confirm   MergeConfirmFunc
}

// UpsertResult línea escrita; Merged indica si hubo fusión.
type UpsertResult struct {
	Product *entity.Product
	Merged  bool
}

// MergeDeclinedError se devuelve cuando existe la línea (sku, talla) y no se confirmó la fusión.
// Lleva la línea existente para mostrar su stock y costo.
type MergeDeclinedError struct {
	Existing entity.Product
}

func (e *MergeDeclinedError) Error() string {
	return fmt.Sprintf("ya existe %s talla %s con stock %d: %s", e.Existing.SKU, e.Existing.Size, e.Existing.Stock, domain.ErrMergeDeclined)
}

func (e *MergeDeclinedError) Unwrap() error { return domain.ErrMergeDeclined }

// OutboundInput entrada de Outbound. SellingPrice nil = se vende al costo.
type OutboundInput struct {
	UserID       string
	ProductID    string
	SellingPrice *decimal.Decimal
	Platform     string
}

func validateDraft(d *ProductDraft) error {
	d.Name = strings.TrimSpace(d.Name)
	d.SKU = strings.TrimSpace(d.SKU)
	d.Size = strings.TrimSpace(d.Size)
	d.Warehouse = strings.TrimSpace(d.Warehouse)
	if d.Name == "" || d.SKU == "" || d.Size == "" {
		return domain.ErrInvalidInput
	}
	if d.Price.IsNegative() || d.Stock < 0 {
		return domain.ErrInvalidInput
	}
	if d.Status != "" && !entity.ValidProductStatus(d.Status) {
		return domain.ErrInvalidInput
	}
	return nil
}

func (d ProductDraft) toProduct(userID string) entity.Product {
	return entity.Product{
		UserID:    userID,
		Name:      d.Name,
		Brand:     d.Brand,
		Size:      d.Size,
		SKU:       d.SKU,
		Price:     d.Price.Round(2),
		Stock:     d.Stock,
		ImageURL:  d.ImageURL,
		Status:    d.Status,
		Location:  d.Location,
		Warehouse: d.Warehouse,
	}
}

// AddOrUpdate escribe el lote: alta directa, edición en sitio o fusión confirmada con la línea
// (sku, talla) existente. Toda escritura con cantidad entrante registra una actividad inbound.
func (uc *LedgerUseCase) AddOrUpdate(ctx context.Context, in UpsertInput) (*UpsertResult, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateDraft(&in.Draft); err != nil {
		return nil, err
	}
	incoming := in.Draft.toProduct(in.UserID)
	editing := in.EditingID != ""
	now := time.Now().UTC()

	var result UpsertResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		activityRepo repository.ActivityRepository,
		warehouseRepo repository.WarehouseRepository,
	) error {
		var current *entity.Product
		if editing {
			p, err := productRepo.GetByID(ctx, in.UserID, in.EditingID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			current = p
		}

		match, err := productRepo.FindBySKUAndSize(ctx, in.UserID, incoming.SKU, incoming.Size, in.EditingID)
		if err != nil {
			return err
		}

		var line entity.Product
		switch {
		case match != nil && editing:
			// Una edición no fusiona: dejaría dos líneas con la misma identidad.
			return domain.ErrDuplicate
		case match != nil:
			if in.Confirm == nil || !in.Confirm(*match) {
				return &MergeDeclinedError{Existing: *match}
			}
			line = inventory.MergeInbound(*match, incoming, now)
			if err := productRepo.Update(ctx, &line); err != nil {
				return err
			}
			result.Merged = true
		case editing:
			line = incoming
			line.ID = current.ID
			line.CreatedAt = current.CreatedAt
			line.UpdatedAt = now
			if line.Status == "" {
				line.Status = current.Status
			}
			if line.Warehouse == "" {
				line.Warehouse = current.Warehouse
			}
			if err := productRepo.Update(ctx, &line); err != nil {
				return err
			}
		default:
			line = incoming
			line.ID = uuid.New().String()
			line.CreatedAt = now
			line.UpdatedAt = now
			if line.Status == "" {
				line.Status = entity.ProductStatusInStock
			}
			if line.Warehouse == "" {
				name, err := defaultWarehouseName(ctx, warehouseRepo, in.UserID)
				if err != nil {
					return err
				}
				line.Warehouse = name
			}
			if err := productRepo.Create(ctx, &line); err != nil {
				return err
			}
		}

		if incoming.Stock >= 1 {
			act := inventory.NewInboundActivity(line, incoming, now)
			act.ID = uuid.New().String()
			if err := activityRepo.Create(ctx, &act); err != nil {
				return err
			}
		}
		result.Product = &line
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, in.UserID)
	return &result, nil
}

func defaultWarehouseName(ctx context.Context, repo repository.WarehouseRepository, userID string) (string, error) {
	w, err := repo.GetDefault(ctx, userID)
	if err != nil {
		return "", err
	}
	if w == nil {
		return entity.FallbackWarehouseName, nil
	}
	return w.Name, nil
}

// Delete borra la línea física. Las actividades se conservan.
func (uc *LedgerUseCase) Delete(ctx context.Context, userID, id string) error {
	p, err := uc.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.productRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.notify(ctx, userID)
	return nil
}

// Outbound vende una unidad: relee el stock dentro de la transacción, lo descuenta y registra
// la salida con el costo previo. El estado del producto no cambia.
func (uc *LedgerUseCase) Outbound(ctx context.Context, in OutboundInput) (*entity.Activity, error) {
	if in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SellingPrice != nil && in.SellingPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	platform := strings.TrimSpace(in.Platform)
	if platform == "" {
		platform = uc.defaultPlatform
	}
	now := time.Now().UTC()

	var act entity.Activity
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		activityRepo repository.ActivityRepository,
		_ repository.WarehouseRepository,
	) error {
		p, err := productRepo.GetByID(ctx, in.UserID, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		price := p.Price
		if in.SellingPrice != nil {
			price = in.SellingPrice.Round(2)
		}
		act = inventory.NewOutboundActivity(*p, price, platform, now)
		if err := inventory.ApplyOutbound(p); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, in.UserID, p.ID, p.Stock); err != nil {
			return err
		}
		act.ID = uuid.New().String()
		return activityRepo.Create(ctx, &act)
	})
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, in.UserID)
	return &act, nil
}

func (uc *LedgerUseCase) notify(ctx context.Context, userID string) {
	if uc.observer != nil {
		uc.observer.StockChanged(ctx, userID)
	}
}
