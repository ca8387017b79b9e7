package dto

import "time"

// SaveStrategyRequest entrada para PUT /products/:id/distribution-strategy.
// PrimaryWarehouseIDs vacío con strategy=nationwide significa "todas las zonales activas".
type SaveStrategyRequest struct {
	Strategy             string   `json:"strategy" validate:"required,oneof=nationwide zonal_with_fallback central zonal_only"`
	PrimaryWarehouseIDs  []string `json:"primary_warehouse_ids"`
	FallbackWarehouseIDs []string `json:"fallback_warehouse_ids"`
	EnableFallback       bool     `json:"enable_fallback"`
	InitialStock         int64    `json:"initial_stock" validate:"min=0"`
	ZoneDistributionQty  int64    `json:"zone_distribution_qty" validate:"min=0"`
}

// AssignmentResponse una fila producto-bodega resultante de la expansión.
type AssignmentResponse struct {
	WarehouseID string `json:"warehouse_id"`
	Role        string `json:"role"`
	TargetQty   int64  `json:"target_qty"`
	Position    int    `json:"position"`
}

// SaveStrategyResponse resultado de aplicar la estrategia: asignaciones generadas.
type SaveStrategyResponse struct {
	ProductID   string               `json:"product_id"`
	Strategy    string               `json:"strategy"`
	Assignments []AssignmentResponse `json:"assignments"`
	AppliedAt   time.Time            `json:"applied_at"`
}
