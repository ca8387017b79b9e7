package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
// ParentWarehouseID: opcional para tier zonal (central), obligatorio para división (zonal).
// ZoneIDs aplica solo a tier zonal; Pincodes solo a tier división.
type CreateWarehouseRequest struct {
	Name              string   `json:"name" validate:"required,min=1,max=200"`
	Tier              string   `json:"tier" validate:"required,oneof=central zonal division"`
	Address           string   `json:"address"`
	ParentWarehouseID *string  `json:"parent_warehouse_id"`
	ZoneIDs           []string `json:"zone_ids"`
	Pincodes          []string `json:"pincodes"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega. El tier no cambia.
type UpdateWarehouseRequest struct {
	Name              *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Address           *string  `json:"address"`
	Active            *bool    `json:"active"`
	ParentWarehouseID *string  `json:"parent_warehouse_id"`
	ZoneIDs           []string `json:"zone_ids"`
	Pincodes          []string `json:"pincodes"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Tier              string    `json:"tier"`
	Active            bool      `json:"active"`
	Address           string    `json:"address"`
	ParentWarehouseID *string   `json:"parent_warehouse_id,omitempty"`
	ZoneIDs           []string  `json:"zone_ids,omitempty"`
	Pincodes          []string  `json:"pincodes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// AvailablePincodesResponse pincodes de las zonas del padre zonal aún no
// reclamados por ninguna bodega de división hermana.
type AvailablePincodesResponse struct {
	ZonalWarehouseID string   `json:"zonal_warehouse_id"`
	Pincodes         []string `json:"pincodes"`
}
