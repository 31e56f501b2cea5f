package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/resell-inventory/internal/application/analytics"
	"github.com/jhoicas/resell-inventory/internal/application/inventory"
	"github.com/jhoicas/resell-inventory/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	LedgerUC       *inventory.LedgerUseCase
	ActivityUC     *usecase.ActivityUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	WidgetUC       *usecase.WidgetUseCase
	HealthChecks   map[string]HealthCheck
	JWTSecret      string
	RequestTimeout time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.HealthChecks))

	// Todo /api requiere Bearer Token; el usuario sale del token.
	api := app.Group("/api", RequestTimeout(deps.RequestTimeout), AuthMiddleware(deps.JWTSecret))

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Put("/:id/name", warehouseHandler.Rename)
	warehouses.Put("/:id/default", warehouseHandler.SetDefault)
	warehouses.Get("/:id/summary", warehouseHandler.Summary)

	// Las rutas fijas van antes de /:id.
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.LedgerUC)
	products.Get("/", productHandler.List)
	products.Get("/shipping", productHandler.ListShipping)
	products.Get("/export", productHandler.Export)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/outbound", productHandler.Outbound)

	activityHandler := NewActivityHandler(deps.ActivityUC)
	api.Get("/activities", activityHandler.List)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.WidgetUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/profile", dashboardHandler.GetProfile)

	api.Get("/widget", dashboardHandler.GetWidget)
}
