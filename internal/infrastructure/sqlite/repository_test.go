package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resell-inventory/internal/domain"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
	"github.com/jhoicas/resell-inventory/internal/infrastructure/sqlite"
)

var base = time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)

func newProduct(id, sku, size string, at time.Time) *entity.Product {
	return &entity.Product{
		ID: id, UserID: "u-1", Name: "Dunk Low " + id, Brand: "Nike", Size: size, SKU: sku,
		Price: decimal.RequireFromString("649.50"), Stock: 2, Status: entity.ProductStatusInStock,
		Warehouse: "杭州一号仓", CreatedAt: at, UpdatedAt: at,
	}
}

// ─── Productos ───────────────────────────────────────────────────────────────

func TestProductRepo_CreateYLeerConservaTipos(t *testing.T) {
	repo := sqlite.NewProductRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	p := newProduct("p-1", "DD1391-100", "42", base.Add(123*time.Nanosecond))

	require.NoError(t, repo.Create(ctx, p))
	got, err := repo.GetByID(ctx, "u-1", "p-1")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(p.Price), "el decimal debe volver exacto")
	assert.True(t, got.CreatedAt.Equal(p.CreatedAt))
	assert.Equal(t, "杭州一号仓", got.Warehouse)

	other, err := repo.GetByID(ctx, "u-2", "p-1")
	require.NoError(t, err)
	assert.Nil(t, other, "un producto de otro usuario no existe")
}

func TestProductRepo_IdentidadUnica(t *testing.T) {
	repo := sqlite.NewProductRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newProduct("p-1", "DD1391-100", "42", base)))

	err := repo.Create(ctx, newProduct("p-2", "DD1391-100", "42", base))

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_FindBySKUAndSizeExcluyeID(t *testing.T) {
	repo := sqlite.NewProductRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newProduct("p-1", "DD1391-100", "42", base)))

	found, err := repo.FindBySKUAndSize(ctx, "u-1", "DD1391-100", "42", "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "p-1", found.ID)

	self, err := repo.FindBySKUAndSize(ctx, "u-1", "DD1391-100", "42", "p-1")
	require.NoError(t, err)
	assert.Nil(t, self)
}

func TestProductRepo_ListBuscaSinMayusculasYCuenta(t *testing.T) {
	repo := sqlite.NewProductRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		p := newProduct(fmt.Sprintf("p-%d", i), fmt.Sprintf("DD%d", i), "42", base.Add(time.Duration(i)*time.Minute))
		if i == 4 {
			p.Brand = "Adidas"
			p.Warehouse = "上海浦东仓"
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	page, total, err := repo.List(ctx, repository.ProductFilter{UserID: "u-1", Search: "nike", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, total, "el total ignora la paginación")
	require.Len(t, page, 2)
	assert.Equal(t, "p-3", page[0].ID, "más reciente primero")

	byWarehouse, total, err := repo.List(ctx, repository.ProductFilter{UserID: "u-1", Warehouse: "上海浦东仓", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "p-4", byWarehouse[0].ID)

	none, total, err := repo.List(ctx, repository.ProductFilter{UserID: "u-1", Search: "_", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total, "los comodines del usuario se escapan")
	assert.Empty(t, none)
}

func TestProductRepo_ReassignWarehouse(t *testing.T) {
	repo := sqlite.NewProductRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newProduct("p-1", "A", "42", base)))
	require.NoError(t, repo.Create(ctx, newProduct("p-2", "B", "42", base)))

	n, err := repo.ReassignWarehouse(ctx, "u-1", "杭州一号仓", "杭州二号仓")

	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	all, err := repo.ListAll(ctx, "u-1")
	require.NoError(t, err)
	for _, p := range all {
		assert.Equal(t, "杭州二号仓", p.Warehouse)
	}
}

// ─── Actividades ─────────────────────────────────────────────────────────────

func TestActivityRepo_ListFiltraYOrdena(t *testing.T) {
	repo := sqlite.NewActivityRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		typ := entity.ActivityTypeInbound
		if i%2 == 1 {
			typ = entity.ActivityTypeOutbound
		}
		require.NoError(t, repo.Create(ctx, &entity.Activity{
			ID: fmt.Sprintf("a-%d", i), UserID: "u-1", Type: typ, ProductName: "Dunk",
			Price: decimal.NewFromInt(100), Cost: decimal.NewFromInt(60), Warehouse: "杭州一号仓",
			Count: 1, CreatedAt: base.AddDate(0, 0, i),
		}))
	}

	all, total, err := repo.List(ctx, repository.ActivityFilter{UserID: "u-1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, "a-3", all[0].ID, "de la más reciente a la más antigua")

	from, to := base.AddDate(0, 0, 1), base.AddDate(0, 0, 3)
	ranged, total, err := repo.List(ctx, repository.ActivityFilter{UserID: "u-1", From: &from, To: &to, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total, "From inclusivo, To exclusivo")
	assert.Equal(t, []string{"a-2", "a-1"}, []string{ranged[0].ID, ranged[1].ID})

	_, total, err = repo.List(ctx, repository.ActivityFilter{UserID: "u-1", Type: entity.ActivityTypeOutbound, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestActivityRepo_CountMinimoUno(t *testing.T) {
	repo := sqlite.NewActivityRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Activity{ID: "a-1", UserID: "u-1", Type: entity.ActivityTypeOutbound, CreatedAt: base}))
	all, err := repo.ListAll(ctx, "u-1")

	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].Count)
}

// ─── Bodegas ─────────────────────────────────────────────────────────────────

func TestWarehouseRepo_SetDefaultUnicaSentencia(t *testing.T) {
	repo := sqlite.NewWarehouseRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	for i, name := range entity.DefaultWarehouseNames {
		require.NoError(t, repo.Create(ctx, &entity.Warehouse{
			ID: fmt.Sprintf("w-%d", i), UserID: "u-1", Name: name, IsDefault: i == 0, CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}))
	}

	for i := range entity.DefaultWarehouseNames {
		id := fmt.Sprintf("w-%d", i)
		require.NoError(t, repo.SetDefault(ctx, "u-1", id))
		n, err := repo.CountDefaults(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, 1, n, "exactamente una por defecto tras marcar %s", id)
		def, err := repo.GetDefault(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, id, def.ID)
	}

	list, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultWarehouseNames[0], list[0].Name, "orden de creación")
}

func TestWarehouseRepo_RenameDuplicado(t *testing.T) {
	repo := sqlite.NewWarehouseRepository(sqlite.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &entity.Warehouse{ID: "w-1", UserID: "u-1", Name: "A", CreatedAt: base}))
	require.NoError(t, repo.Create(ctx, &entity.Warehouse{ID: "w-2", UserID: "u-1", Name: "B", CreatedAt: base}))

	assert.ErrorIs(t, repo.Rename(ctx, "u-1", "w-2", "A"), domain.ErrDuplicate)
	assert.ErrorIs(t, repo.Rename(ctx, "u-1", "w-9", "C"), domain.ErrNotFound)
}

// ─── Transacciones y preferencias ────────────────────────────────────────────

func TestTxRunner_RollbackAnteError(t *testing.T) {
	db := sqlite.NewTestDB(t)
	runner := sqlite.NewTxRunner(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := runner.Run(ctx, func(pr repository.ProductRepository, ar repository.ActivityRepository, _ repository.WarehouseRepository) error {
		require.NoError(t, pr.Create(ctx, newProduct("p-1", "A", "42", base)))
		require.NoError(t, ar.Create(ctx, &entity.Activity{ID: "a-1", UserID: "u-1", Type: entity.ActivityTypeInbound, Count: 2, CreatedAt: base}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	products, err := sqlite.NewProductRepository(db).ListAll(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, products, "la transacción se revierte completa")
	acts, err := sqlite.NewActivityRepository(db).ListAll(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestPreferenceRepo_SetReemplaza(t *testing.T) {
	repo := sqlite.NewPreferenceRepository(sqlite.NewTestDB(t))
	ctx := context.Background()

	_, found, err := repo.Get(ctx, "u-1", entity.WidgetDataKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "u-1", entity.WidgetDataKey, `{"totalStock":1}`))
	require.NoError(t, repo.Set(ctx, "u-1", entity.WidgetDataKey, `{"totalStock":2}`))

	v, found, err := repo.Get(ctx, "u-1", entity.WidgetDataKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"totalStock":2}`, v)
}
