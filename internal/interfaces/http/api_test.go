package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/resell-inventory/internal/application/analytics"
	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/application/inventory"
	"github.com/jhoicas/resell-inventory/internal/application/usecase"
	"github.com/jhoicas/resell-inventory/internal/infrastructure/export"
	"github.com/jhoicas/resell-inventory/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/resell-inventory/internal/interfaces/http"
	"github.com/jhoicas/resell-inventory/pkg/logger"
)

const testTimeout = 5 * time.Second

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre SQLite en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := sqlite.NewTestDB(t)
	txRunner := sqlite.NewTxRunner(db)
	products := sqlite.NewProductRepository(db)
	activities := sqlite.NewActivityRepository(db)
	warehouses := sqlite.NewWarehouseRepository(db)
	prefs := sqlite.NewPreferenceRepository(db)

	widgetUC := usecase.NewWidgetUseCase(products, activities, prefs, time.UTC, logger.Nop())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		WarehouseUC:    usecase.NewWarehouseUseCase(warehouses, products, txRunner),
		ProductUC:      usecase.NewProductUseCase(products, export.NewProductWorkbook(time.UTC)),
		LedgerUC:       inventory.NewLedgerUseCase(txRunner, products, widgetUC, "得物"),
		ActivityUC:     usecase.NewActivityUseCase(activities, time.UTC),
		DashboardUC:    appanalytics.NewDashboardUseCase(products, activities, warehouses, time.UTC),
		WidgetUC:       widgetUC,
		HealthChecks:   map[string]apphttp.HealthCheck{"db": db.PingContext},
		JWTSecret:      testJWTSecret,
		RequestTimeout: testTimeout,
	})
	return &testAPI{t: t, app: app, token: bearer(t, testUserID)}
}

// do lanza la petición autenticada; body se serializa a JSON si no es nil.
func (a *testAPI) do(method, path string, body any) *http.Response {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", a.token)
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func jordanDraft(price string, stock int) map[string]any {
	return map[string]any{
		"name":  "Air Jordan 1 Chicago",
		"brand": "Nike",
		"sku":   "DZ5485-612",
		"size":  "42",
		"price": price,
		"stock": stock,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Health y autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_PublicoYConectado(t *testing.T) {
	api := newTestAPI(t)

	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	decodeInto(t, resp, &body)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "connected", body["db"])
}

func TestAPI_SinTokenDevuelve401(t *testing.T) {
	api := newTestAPI(t)

	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/api/products", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouses_ListaSiembraBodegasPorDefecto(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodGet, "/api/warehouses", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.WarehouseListResponse
	decodeInto(t, resp, &out)
	require.Len(t, out.Items, 4)
	assert.Equal(t, "杭州一号仓", out.Items[0].Name)
	assert.True(t, out.Items[0].IsDefault)

	// Segunda lectura no vuelve a sembrar.
	var again dto.WarehouseListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/warehouses", nil), &again)
	assert.Len(t, again.Items, 4)
}

func TestWarehouses_RenombrarConNombreAnteriorDistintoEs409(t *testing.T) {
	api := newTestAPI(t)
	var list dto.WarehouseListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/warehouses", nil), &list)

	resp := api.do(http.MethodPut, "/api/warehouses/"+list.Items[1].ID+"/name", map[string]string{
		"old_name": "otro nombre",
		"name":     "深圳仓",
	})

	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decodeError(t, resp).Code)
}

func TestWarehouses_RenombrarCascadaAProductos(t *testing.T) {
	api := newTestAPI(t)
	var list dto.WarehouseListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/warehouses", nil), &list)
	first := list.Items[0]

	resp := api.do(http.MethodPost, "/api/products", jordanDraft("600", 2))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = api.do(http.MethodPut, "/api/warehouses/"+first.ID+"/name", map[string]string{
		"old_name": first.Name,
		"name":     "杭州总仓",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.RenameWarehouseResponse
	decodeInto(t, resp, &out)
	assert.Equal(t, "杭州总仓", out.Warehouse.Name)
	assert.EqualValues(t, 1, out.ProductsUpdated)
	assert.EqualValues(t, 1, out.ActivitiesUpdated)
}

func TestWarehouses_CambiarDefault(t *testing.T) {
	api := newTestAPI(t)
	var list dto.WarehouseListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/warehouses", nil), &list)

	resp := api.do(http.MethodPut, "/api/warehouses/"+list.Items[2].ID+"/default", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var after dto.WarehouseListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/warehouses", nil), &after)
	defaults := 0
	for _, w := range after.Items {
		if w.IsDefault {
			defaults++
			assert.Equal(t, list.Items[2].ID, w.ID)
		}
	}
	assert.Equal(t, 1, defaults, "debe quedar exactamente una bodega por defecto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos: alta, fusión, validación, salida
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_AltaValidaCampos(t *testing.T) {
	api := newTestAPI(t)
	draft := jordanDraft("600", 1)
	delete(draft, "name")

	resp := api.do(http.MethodPost, "/api/products", draft)

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body dto.ValidationErrorResponse
	decodeInto(t, resp, &body)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "required", body.Fields["name"])
}

func TestProducts_PrecioNegativoEs400(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodPost, "/api/products", jordanDraft("-1", 1))

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProducts_FusionSinConfirmarDevuelve409ConLineaExistente(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(http.MethodPost, "/api/products", jordanDraft("600", 2))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created dto.UpsertProductResponse
	decodeInto(t, resp, &created)

	resp = api.do(http.MethodPost, "/api/products", jordanDraft("660", 1))

	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	var conflict dto.MergeConflictResponse
	decodeInto(t, resp, &conflict)
	assert.Equal(t, "MERGE_REQUIRED", conflict.Code)
	assert.Equal(t, created.Product.ID, conflict.ExistingID)
	assert.Equal(t, 2, conflict.ExistingStock)
	assert.True(t, decimal.NewFromInt(600).Equal(conflict.ExistingCost))
}

func TestProducts_FusionConfirmadaPromediaCosto(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(http.MethodPost, "/api/products", jordanDraft("600", 2))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	draft := jordanDraft("660", 1)
	draft["confirm_merge"] = true
	resp = api.do(http.MethodPost, "/api/products", draft)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var out dto.UpsertProductResponse
	decodeInto(t, resp, &out)
	assert.True(t, out.Merged)
	assert.Equal(t, 3, out.Product.Stock)
	assert.True(t, decimal.NewFromInt(620).Equal(out.Product.Price), "costo promedio ponderado, obtenido %s", out.Product.Price)

	var page dto.ProductListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/products", nil), &page)
	assert.Equal(t, 1, page.Page.Total, "la fusión no crea una segunda línea")
}

func TestProducts_SalidaDescuentaYSinStockEs409(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(http.MethodPost, "/api/products", jordanDraft("600", 1))
	var created dto.UpsertProductResponse
	decodeInto(t, resp, &created)
	id := created.Product.ID

	resp = api.do(http.MethodPost, "/api/products/"+id+"/outbound", map[string]any{"selling_price": "899"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var act dto.ActivityResponse
	decodeInto(t, resp, &act)
	assert.Equal(t, "outbound", act.Type)
	assert.Equal(t, "得物", act.Platform)
	assert.True(t, decimal.NewFromInt(899).Equal(act.Price))
	assert.True(t, decimal.NewFromInt(600).Equal(act.Cost))

	var product dto.ProductResponse
	decodeInto(t, api.do(http.MethodGet, "/api/products/"+id, nil), &product)
	assert.Equal(t, 0, product.Stock)

	resp = api.do(http.MethodPost, "/api/products/"+id+"/outbound", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, resp).Code)
}

func TestProducts_InexistenteEs404(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodGet, "/api/products/no-existe", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestProducts_BorrarConservaHistorial(t *testing.T) {
	api := newTestAPI(t)
	var created dto.UpsertProductResponse
	decodeInto(t, api.do(http.MethodPost, "/api/products", jordanDraft("600", 2)), &created)

	resp := api.do(http.MethodDelete, "/api/products/"+created.Product.ID, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var acts dto.ActivityListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/activities?type=inbound", nil), &acts)
	assert.Equal(t, 1, acts.Page.Total)
}

func TestProducts_ExportaXLSX(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(http.MethodPost, "/api/products", jordanDraft("600", 2))
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/products/export", nil)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, export.ContentType, resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "un .xlsx es un zip")
}

// ──────────────────────────────────────────────────────────────────────────────
// Actividades, tablero y widget
// ──────────────────────────────────────────────────────────────────────────────

func TestActivities_FiltroDeFechaInvalido(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(http.MethodGet, "/api/activities?from=15-03-2026", nil)

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	var body dto.ValidationErrorResponse
	decodeInto(t, resp, &body)
	assert.Equal(t, "datetime", body.Fields["from"])
}

func TestActivities_MasRecientePrimero(t *testing.T) {
	api := newTestAPI(t)
	var created dto.UpsertProductResponse
	decodeInto(t, api.do(http.MethodPost, "/api/products", jordanDraft("600", 2)), &created)
	resp := api.do(http.MethodPost, "/api/products/"+created.Product.ID+"/outbound", nil)
	resp.Body.Close()

	var acts dto.ActivityListResponse
	decodeInto(t, api.do(http.MethodGet, "/api/activities", nil), &acts)

	require.Len(t, acts.Items, 2)
	assert.Equal(t, "outbound", acts.Items[0].Type)
	assert.Equal(t, "inbound", acts.Items[1].Type)
	assert.Equal(t, 2, acts.Items[1].Count)
}

func TestDashboard_ResumenYEstadisticas(t *testing.T) {
	api := newTestAPI(t)
	var created dto.UpsertProductResponse
	decodeInto(t, api.do(http.MethodPost, "/api/products", jordanDraft("600", 3)), &created)
	resp := api.do(http.MethodPost, "/api/products/"+created.Product.ID+"/outbound", map[string]any{"selling_price": "750"})
	resp.Body.Close()

	var summary dto.DashboardSummaryDTO
	resp = api.do(http.MethodGet, "/api/dashboard/summary", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &summary)
	assert.Equal(t, 2, summary.TotalStock)
	assert.Equal(t, 3, summary.InboundToday)
	assert.Equal(t, 1, summary.TodaySalesCount)
	assert.True(t, decimal.NewFromInt(750).Equal(summary.TodaySales))

	var stats dto.DashboardStatsDTO
	resp = api.do(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeInto(t, resp, &stats)
	assert.True(t, decimal.NewFromInt(150).Equal(stats.Profit))
	assert.Len(t, stats.Trend, 30)
}

func TestWidget_SePublicaTrasCadaMovimiento(t *testing.T) {
	api := newTestAPI(t)
	resp := api.do(http.MethodPost, "/api/products", jordanDraft("600", 4))
	resp.Body.Close()

	resp = api.do(http.MethodGet, "/api/widget", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var widget dto.WidgetResponse
	decodeInto(t, resp, &widget)
	assert.Equal(t, 4, widget.TotalStock)
	assert.Equal(t, 4, widget.InboundToday)
	assert.NotEmpty(t, widget.LastUpdated)
}
