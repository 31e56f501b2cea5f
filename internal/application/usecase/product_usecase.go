package usecase

import (
	"context"
	"io"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/analytics"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

// ProductExporter escribe las líneas de inventario en un formato descargable.
type ProductExporter interface {
	WriteProducts(w io.Writer, sheet string, products []*entity.Product) error
}

// ProductUseCase consultas de productos. Las escrituras pasan por el LedgerUseCase.
type ProductUseCase struct {
	repo     repository.ProductRepository
	exporter ProductExporter
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, exporter ProductExporter) *ProductUseCase {
	return &ProductUseCase{repo: repo, exporter: exporter}
}

// List lista productos con filtros y el total exacto.
func (uc *ProductUseCase) List(ctx context.Context, userID string, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	if in.Status != "" && !entity.ValidProductStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		UserID:    userID,
		Warehouse: in.Warehouse,
		Status:    in.Status,
		Search:    in.Search,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: dto.NewProductResponses(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(ctx context.Context, userID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.NewProductResponse(p)
	return &out, nil
}

// ListShipping productos en tránsito (pedidos pendientes de envío).
func (uc *ProductUseCase) ListShipping(ctx context.Context, userID string) ([]dto.ProductResponse, error) {
	all, err := uc.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(analytics.ShippingProducts(all)), nil
}

// Export escribe el libro de inventario; warehouse vacío exporta todas las bodegas.
func (uc *ProductUseCase) Export(ctx context.Context, userID, warehouse string, w io.Writer) error {
	all, err := uc.repo.ListAll(ctx, userID)
	if err != nil {
		return err
	}
	sheet := "全部"
	selected := all
	if warehouse != "" {
		sheet = warehouse
		selected = make([]*entity.Product, 0, len(all))
		for _, p := range all {
			if p.Warehouse == warehouse {
				selected = append(selected, p)
			}
		}
	}
	return uc.exporter.WriteProducts(w, sheet, selected)
}
