package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// AssignmentRepository define el puerto para las asignaciones producto-bodega.
// ListByProduct devuelve primero los roles primary y luego los fallback en su
// orden de declaración (Position ascendente).
type AssignmentRepository interface {
	Create(a *entity.ProductWarehouseAssignment) error
	ListByProduct(productID string) ([]*entity.ProductWarehouseAssignment, error)
	DeleteByProduct(productID string) error
}
