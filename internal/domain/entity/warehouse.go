package entity

import "time"

// Warehouse representa una bodega de un usuario. Los productos y actividades la referencian por nombre.
type Warehouse struct {
	ID        string
	UserID    string
	Name      string // único por usuario
	IsDefault bool   // exactamente una por usuario
	CreatedAt time.Time
}

// DefaultWarehouseNames bodegas sembradas en el primer acceso; la primera queda como predeterminada.
var DefaultWarehouseNames = []string{"杭州一号仓", "上海浦东仓", "北京大兴仓", "广州白云仓"}

// FallbackWarehouseName se usa cuando ni la entrada ni el producto existente traen bodega.
const FallbackWarehouseName = "杭州一号仓"
