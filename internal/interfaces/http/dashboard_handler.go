package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/resell-inventory/internal/application/analytics"
	"github.com/jhoicas/resell-inventory/internal/application/usecase"
)

// DashboardHandler lecturas agregadas: tablero, estadísticas, perfil y widget.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	widget *usecase.WidgetUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, widget *usecase.WidgetUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, widget: widget}
}

// GetSummary GET /api/dashboard/summary
//
// Pendientes, ventas de hoy, entradas de hoy, stock total y totales por bodega.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetSummary(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStats GET /api/dashboard/stats
//
// Resumen del mes en curso, tendencia de 30 días y rankings de marcas y productos.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetStats(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetProfile GET /api/dashboard/profile
func (h *DashboardHandler) GetProfile(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetProfile(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetWidget GET /api/widget
func (h *DashboardHandler) GetWidget(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.widget.Get(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
