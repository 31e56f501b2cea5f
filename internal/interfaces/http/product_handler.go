package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resell-inventory/internal/application/dto"
	"github.com/jhoicas/resell-inventory/internal/application/inventory"
	"github.com/jhoicas/resell-inventory/internal/application/usecase"
	"github.com/jhoicas/resell-inventory/internal/domain/entity"
	"github.com/jhoicas/resell-inventory/internal/infrastructure/export"
)

// ProductHandler consultas y movimientos del libro de productos.
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	ledger *inventory.LedgerUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, ledger *inventory.LedgerUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, ledger: ledger}
}

// List GET /api/products?warehouse=&status=&search=&limit=&offset=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.ProductListRequest
	if ok, err := bindQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListShipping GET /api/products/shipping
func (h *ProductHandler) ListShipping(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ListShipping(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// Export GET /api/products/export?warehouse= devuelve el libro .xlsx.
func (h *ProductHandler) Export(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var buf bytes.Buffer
	if err := h.uc.Export(c.UserContext(), userID, c.Query("warehouse"), &buf); err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.xlsx"`)
	return c.Send(buf.Bytes())
}

// Create POST /api/products. Si la (sku, talla) ya existe y confirm_merge es false responde 409
// con el stock y costo de la línea existente.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	return h.upsert(c, "")
}

// Update PUT /api/products/:id edita la línea en sitio.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	return h.upsert(c, id)
}

func (h *ProductHandler) upsert(c *fiber.Ctx, editingID string) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.UpsertProductRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	if in.Price.IsNegative() {
		return validationError(c, map[string]string{"price": "min"})
	}
	confirm := in.ConfirmMerge
	res, err := h.ledger.AddOrUpdate(c.UserContext(), inventory.UpsertInput{
		UserID:    userID,
		EditingID: editingID,
		Draft: inventory.ProductDraft{
			Name:      in.Name,
			Brand:     in.Brand,
			Size:      in.Size,
			SKU:       in.SKU,
			Price:     in.Price,
			Stock:     in.Stock,
			ImageURL:  in.ImageURL,
			Status:    in.Status,
			Location:  in.Location,
			Warehouse: in.Warehouse,
		},
		Confirm: func(entity.Product) bool { return confirm },
	})
	if err != nil {
		return writeError(c, err)
	}
	status := fiber.StatusOK
	if editingID == "" && !res.Merged {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.UpsertProductResponse{
		Product: dto.NewProductResponse(res.Product),
		Merged:  res.Merged,
	})
}

// Delete DELETE /api/products/:id. El historial de actividades se conserva.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	if err := h.ledger.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Outbound POST /api/products/:id/outbound vende una unidad.
func (h *ProductHandler) Outbound(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in dto.OutboundRequest
	// Cuerpo opcional: sin cuerpo se vende al costo en la plataforma por defecto.
	if len(c.Body()) > 0 {
		if ok, err := bindBody(c, &in); !ok {
			return err
		}
	}
	act, err := h.ledger.Outbound(c.UserContext(), inventory.OutboundInput{
		UserID:       userID,
		ProductID:    c.Params("id"),
		SellingPrice: in.SellingPrice,
		Platform:     in.Platform,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewActivityResponse(act))
}
