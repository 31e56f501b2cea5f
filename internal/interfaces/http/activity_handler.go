package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/application/usecase"
)

// ActivityHandler historial de movimientos.
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List GET /api/activities?type=&warehouse=&from=YYYY-MM-DD&to=YYYY-MM-DD&limit=&offset=
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ActivityListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.Query(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
