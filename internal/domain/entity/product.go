package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. La estrategia de distribución
// es un atributo del producto; sus asignaciones por bodega viven en
// ProductWarehouseAssignment y se regeneran al guardar la estrategia.
type Product struct {
	ID          string
	SKU         string // código único de catálogo
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Strategy    string          // nationwide | zonal_with_fallback | central | zonal_only (vacío = sin asignar)
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
