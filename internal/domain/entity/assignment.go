package entity

import "time"

// Roles de una bodega dentro de la cadena de despacho de un producto.
const (
	RolePrimary  = "primary"
	RoleFallback = "fallback"
)

// ProductWarehouseAssignment vincula un producto con una bodega y su rol en la
// cadena de fallback. Position ordena los fallbacks en el orden declarado.
// El conjunto completo se reemplaza cada vez que el administrador guarda la
// estrategia de distribución del producto.
type ProductWarehouseAssignment struct {
	ID          string
	ProductID   string
	WarehouseID string
	Role        string // primary | fallback
	TargetQty   int64
	Position    int
	CreatedAt   time.Time
}
