package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository sobre la tabla
// product_warehouse_assignment. Constraint único por (product_id, warehouse_id).
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador de asignaciones. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create persiste una asignación producto-bodega.
func (r *AssignmentRepo) Create(a *entity.ProductWarehouseAssignment) error {
	query := `
		INSERT INTO product_warehouse_assignment (id, product_id, warehouse_id, role, target_qty, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ProductID, a.WarehouseID, a.Role, a.TargetQty, a.Position, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// ListByProduct lista las asignaciones de un producto, primarias primero y
// luego fallbacks en su orden de declaración.
func (r *AssignmentRepo) ListByProduct(productID string) ([]*entity.ProductWarehouseAssignment, error) {
	query := `
		SELECT id, product_id, warehouse_id, role, target_qty, position, created_at
		FROM product_warehouse_assignment
		WHERE product_id = $1
		ORDER BY CASE role WHEN 'primary' THEN 0 ELSE 1 END, position`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductWarehouseAssignment
	for rows.Next() {
		var a entity.ProductWarehouseAssignment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.WarehouseID, &a.Role,
			&a.TargetQty, &a.Position, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina todas las asignaciones de un producto.
func (r *AssignmentRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM product_warehouse_assignment WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete assignments by product: %w", err)
	}
	return nil
}
