package inventory

import (
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TotalUnits suma las cantidades de un conjunto de registros de stock
// (servicio de dominio, puro).
func TotalUnits(records []*entity.StockRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.Quantity
	}
	return total
}

// Valuation valor del inventario a precio de venta.
// Valor = Unidades * PrecioUnitario
func Valuation(units int64, unitPrice decimal.Decimal) decimal.Decimal {
	if units <= 0 {
		return decimal.Zero
	}
	return unitPrice.Mul(decimal.NewFromInt(units))
}
