package dto

import "time"

// CreateZoneRequest entrada para crear una zona geográfica.
type CreateZoneRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	State    string   `json:"state" validate:"required,min=1,max=100"`
	Pincodes []string `json:"pincodes"`
}

// UpdateZoneRequest entrada para actualizar una zona.
type UpdateZoneRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	State  *string `json:"state" validate:"omitempty,min=1,max=100"`
	Active *bool   `json:"active"`
}

// AssignPincodesRequest entrada para agregar pincodes a una zona.
type AssignPincodesRequest struct {
	Pincodes []string `json:"pincodes" validate:"required,min=1"`
}

// ZoneResponse salida de una zona con sus pincodes.
type ZoneResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	Active    bool      `json:"active"`
	Pincodes  []string  `json:"pincodes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ZoneListResponse lista paginada de zonas.
type ZoneListResponse struct {
	Items []ZoneResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
