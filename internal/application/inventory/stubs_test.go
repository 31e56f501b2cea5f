package inventory_test

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
)

// ─── Stubs en memoria ────────────────────────────────────────────────────────
// memStore emula la transacción: si fn falla se restaura la copia tomada al inicio.

type memStore struct {
	products   map[string]entity.Product
	activities []entity.Activity
	warehouses []entity.Warehouse
	txCount    int
}

func newMemStore() *memStore {
	return &memStore{products: map[string]entity.Product{}}
}

func (s *memStore) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	s.txCount++
	products := maps.Clone(s.products)
	activities := slices.Clone(s.activities)
	if err := fn(&stubProductRepo{s}, &stubActivityRepo{s}, &stubWarehouseRepo{s}); err != nil {
		s.products = products
		s.activities = activities
		return err
	}
	return nil
}

func (s *memStore) put(p entity.Product) { s.products[p.ID] = p }

type stubProductRepo struct{ s *memStore }

func (r *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *stubProductRepo) UpdateStock(_ context.Context, _ string, id string, stock int) error {
	p := r.s.products[id]
	p.Stock = stock
	r.s.products[id] = p
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, userID, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return &p, nil
}

func (r *stubProductRepo) FindBySKUAndSize(_ context.Context, userID, sku, size, excludeID string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.UserID == userID && p.SKU == sku && p.Size == size && p.ID != excludeID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	all, _ := r.ListAll(ctx, f.UserID)
	return all, len(all), nil
}

func (r *stubProductRepo) ListAll(_ context.Context, userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.UserID == userID {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Delete(_ context.Context, _ string, id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *stubProductRepo) ReassignWarehouse(context.Context, string, string, string) (int64, error) {
	return 0, nil
}

type stubActivityRepo struct{ s *memStore }

func (r *stubActivityRepo) Create(_ context.Context, a *entity.Activity) error {
	r.s.activities = append(r.s.activities, *a)
	return nil
}

func (r *stubActivityRepo) List(context.Context, repository.ActivityFilter) ([]*entity.Activity, int, error) {
	return nil, len(r.s.activities), nil
}

func (r *stubActivityRepo) ListAll(context.Context, string) ([]*entity.Activity, error) {
	return nil, nil
}

func (r *stubActivityRepo) ReassignWarehouse(context.Context, string, string, string) (int64, error) {
	return 0, nil
}

type stubWarehouseRepo struct{ s *memStore }

func (r *stubWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses = append(r.s.warehouses, *w)
	return nil
}

func (r *stubWarehouseRepo) GetByID(context.Context, string, string) (*entity.Warehouse, error) {
	return nil, nil
}

func (r *stubWarehouseRepo) GetDefault(_ context.Context, userID string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.UserID == userID && w.IsDefault {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *stubWarehouseRepo) ListByUser(context.Context, string) ([]*entity.Warehouse, error) {
	return nil, nil
}

func (r *stubWarehouseRepo) CountByUser(context.Context, string) (int, error) {
	return len(r.s.warehouses), nil
}

func (r *stubWarehouseRepo) CountDefaults(context.Context, string) (int, error) { return 1, nil }

func (r *stubWarehouseRepo) Rename(context.Context, string, string, string) error { return nil }

func (r *stubWarehouseRepo) SetDefault(context.Context, string, string) error { return nil }

// spyObserver cuenta notificaciones por usuario.
type spyObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *spyObserver) StockChanged(_ context.Context, userID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, userID)
}
