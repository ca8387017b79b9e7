package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Create y Update persisten también las membresías de zona (tier zonal) y los
// pincodes asignados (tier división). GetByID devuelve (nil, nil) si no existe.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(tier string, activeOnly bool, limit, offset int) ([]*entity.Warehouse, error)
	ListChildren(parentID string) ([]*entity.Warehouse, error)
	ListZonalByZone(zoneID string) ([]*entity.Warehouse, error)
	FindDivisionByPincode(pincode string) (*entity.Warehouse, error)
	Delete(id string) error
}
