package entity

import "time"

// StockRecord cantidad disponible de un producto en una bodega.
// Invariante: Quantity nunca es negativa; los decrementos que la dejarían
// por debajo de cero fallan en lugar de recortar.
type StockRecord struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
