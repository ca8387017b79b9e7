package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operaciones válidas para un ajuste de stock.
const (
	StockOpSet       = "set"
	StockOpIncrement = "increment"
	StockOpDecrement = "decrement"
)

// StockAdjustmentRequest entrada para POST /stock/adjustments.
// set requiere quantity >= 0; increment/decrement requieren quantity > 0.
type StockAdjustmentRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid"`
	WarehouseID string `json:"warehouse_id" validate:"required,uuid"`
	Operation   string `json:"operation" validate:"required,oneof=set increment decrement"`
	Quantity    int64  `json:"quantity"`
}

// StockRecordResponse una fila del libro de stock.
type StockRecordResponse struct {
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StockSummaryResponse filas de stock de un producto en todas sus bodegas,
// con total de unidades y valor a precio de venta.
type StockSummaryResponse struct {
	ProductID  string                `json:"product_id"`
	Records    []StockRecordResponse `json:"records"`
	Total      int64                 `json:"total"`
	TotalValue decimal.Decimal       `json:"total_value"`
}
