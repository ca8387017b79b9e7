package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre la tabla stock_ledger.
// La clave primaria es (product_id, warehouse_id) y la columna quantity lleva
// CHECK (quantity >= 0) como respaldo del decremento condicional.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador del libro de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devuelve el registro de stock; en cero si no existe fila.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_ledger WHERE product_id = $1 AND warehouse_id = $2`
	var rec entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &rec, nil
}

// Set fija la cantidad absoluta (upsert).
func (r *StockRepo) Set(productID, warehouseID string, qty int64) error {
	query := `
		INSERT INTO stock_ledger (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, productID, warehouseID, qty, time.Now())
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

// Increment suma delta a la cantidad (upsert si no hay fila).
func (r *StockRepo) Increment(productID, warehouseID string, delta int64) error {
	query := `
		INSERT INTO stock_ledger (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock_ledger.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query, productID, warehouseID, delta, time.Now())
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// Decrement resta delta de forma condicional y atómica. Si no hay fila o la
// cantidad no alcanza, no modifica nada y devuelve ErrInsufficientStock.
func (r *StockRepo) Decrement(productID, warehouseID string, delta int64) error {
	query := `
		UPDATE stock_ledger SET quantity = quantity - $3, updated_at = $4
		WHERE product_id = $1 AND warehouse_id = $2 AND quantity >= $3`
	tag, err := r.q.Exec(context.Background(), query, productID, warehouseID, delta, time.Now())
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// ListByProduct lista los registros de stock de un producto ordenados por bodega.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock_ledger WHERE product_id = $1 ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var rec entity.StockRecord
		if err := rows.Scan(&rec.ProductID, &rec.WarehouseID, &rec.Quantity, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// HasNonZeroByWarehouse indica si la bodega retiene stock de algún producto.
func (r *StockRepo) HasNonZeroByWarehouse(warehouseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM stock_ledger WHERE warehouse_id = $1 AND quantity > 0)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, warehouseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check warehouse stock: %w", err)
	}
	return exists, nil
}

// DeleteByProduct elimina todos los registros de stock de un producto.
func (r *StockRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_ledger WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete stock by product: %w", err)
	}
	return nil
}
