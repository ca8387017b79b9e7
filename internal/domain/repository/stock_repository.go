package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// StockRepository define el puerto del libro de stock por (producto, bodega).
// Get devuelve un registro en cero si no existe fila. Decrement es condicional
// y atómico en el almacenamiento: falla con domain.ErrInsufficientStock si la
// cantidad resultante quedaría negativa (invariante S1).
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.StockRecord, error)
	Set(productID, warehouseID string, qty int64) error
	Increment(productID, warehouseID string, delta int64) error
	Decrement(productID, warehouseID string, delta int64) error
	ListByProduct(productID string) ([]*entity.StockRecord, error)
	HasNonZeroByWarehouse(warehouseID string) (bool, error)
	DeleteByProduct(productID string) error
}
