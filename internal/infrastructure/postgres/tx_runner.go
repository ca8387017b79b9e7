package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Logistica-api/internal/application/distribution"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var (
	_ distribution.TxRunner    = (*TxRunner)(nil)
	_ usecase.RegistryTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta funciones de caso de uso dentro de una transacción,
// entregando repositorios ligados a la tx. Rollback diferido; Commit solo si
// la función termina sin error.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el ejecutor transaccional sobre el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con repositorios de asignaciones, stock y productos ligados a
// una misma transacción (reemplazo atómico de la estrategia de un producto).
func (t *TxRunner) Run(ctx context.Context, fn func(
	assignRepo repository.AssignmentRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewAssignmentRepository(tx), NewStockRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RunRegistry ejecuta fn con repositorios de zonas y bodegas ligados a una
// misma transacción (escrituras del registro de jerarquía).
func (t *TxRunner) RunRegistry(ctx context.Context, fn func(
	zoneRepo repository.ZoneRepository,
	whRepo repository.WarehouseRepository,
) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewZoneRepository(tx), NewWarehouseRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
