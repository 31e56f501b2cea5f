// Package export genera el libro de inventario en formato xlsx.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/resell-inventory/internal/domain/entity"
)

// ContentType del archivo generado.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var productHeaders = []any{"名称", "品牌", "货号", "尺码", "成本价", "库存", "库存价值", "状态", "库位", "仓库", "入库时间"}

var statusLabels = map[string]string{
	entity.ProductStatusInStock:  "在库",
	entity.ProductStatusShipping: "发货中",
	entity.ProductStatusSold:     "已售",
}

// ProductWorkbook escribe una hoja con una fila por línea y una fila final de totales en existencia.
type ProductWorkbook struct {
	loc *time.Location
}

// NewProductWorkbook construye el exportador; loc es la zona de las fechas mostradas.
func NewProductWorkbook(loc *time.Location) *ProductWorkbook {
	if loc == nil {
		loc = time.UTC
	}
	return &ProductWorkbook{loc: loc}
}

// WriteProducts genera el xlsx en w.
func (x *ProductWorkbook) WriteProducts(w io.Writer, sheet string, products []*entity.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(sheet)
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("nombre de hoja: %w", err)
	}
	if err := f.SetSheetRow(name, "A1", &productHeaders); err != nil {
		return fmt.Errorf("encabezados: %w", err)
	}

	totalStock := 0
	totalValue := decimal.Zero
	for i, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
		if p.IsInStock() {
			totalStock += p.Stock
			totalValue = totalValue.Add(value)
		}
		row := []any{
			p.Name, p.Brand, p.SKU, p.Size,
			p.Price.InexactFloat64(), p.Stock, value.InexactFloat64(),
			statusLabel(p.Status), p.Location, p.Warehouse,
			p.CreatedAt.In(x.loc).Format(time.DateTime),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("fila %d: %w", i+2, err)
		}
	}

	totals := []any{"合计", "", "", "", "", totalStock, totalValue.InexactFloat64()}
	cell, _ := excelize.CoordinatesToCellName(1, len(products)+2)
	if err := f.SetSheetRow(name, cell, &totals); err != nil {
		return fmt.Errorf("fila de totales: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("escribir xlsx: %w", err)
	}
	return nil
}

func statusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

// sheetName respeta las reglas de Excel: sin []:*?/\ y máximo 31 caracteres.
func sheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		return "Sheet1"
	}
	if r := []rune(s); len(r) > 31 {
		s = string(r[:31])
	}
	return s
}
