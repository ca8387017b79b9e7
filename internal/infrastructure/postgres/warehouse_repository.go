package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository sobre PostgreSQL (usable
// con pool o tx). Las membresías de zona van en zone_warehouse y los pincodes
// de división en division_pincodes, con constraint único por
// (parent_zonal_id, pincode) como respaldo de la exclusividad entre hermanas.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega nueva con sus membresías de zona o pincodes.
func (r *WarehouseRepo) Create(wh *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, tier, active, parent_warehouse_id, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		wh.ID, wh.Name, wh.Tier, wh.Active, wh.ParentWarehouseID, wh.Address,
		wh.CreatedAt, wh.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return r.writeRelations(wh)
}

// GetByID obtiene una bodega con sus zonas y pincodes cargados.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	query := `
		SELECT id, name, tier, active, parent_warehouse_id, address, created_at, updated_at
		FROM warehouses WHERE id = $1`
	var w entity.Warehouse
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.Name, &w.Tier, &w.Active, &w.ParentWarehouseID, &w.Address,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if err := r.loadRelations(&w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Update actualiza una bodega y reescribe sus membresías/pincodes.
func (r *WarehouseRepo) Update(wh *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, active = $3, parent_warehouse_id = $4, address = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		wh.ID, wh.Name, wh.Active, wh.ParentWarehouseID, wh.Address, wh.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM zone_warehouse WHERE warehouse_id = $1`, wh.ID); err != nil {
		return fmt.Errorf("clear zone memberships: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM division_pincodes WHERE warehouse_id = $1`, wh.ID); err != nil {
		return fmt.Errorf("clear division pincodes: %w", err)
	}
	return r.writeRelations(wh)
}

// List lista bodegas con filtros opcionales de tier y actividad.
func (r *WarehouseRepo) List(tier string, activeOnly bool, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, tier, active, parent_warehouse_id, address, created_at, updated_at
		FROM warehouses
		WHERE ($1 = '' OR tier = $1) AND (NOT $2 OR active)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	return r.queryWarehouses(query, tier, activeOnly, limit, offset)
}

// ListChildren lista las bodegas cuyo padre es parentID.
func (r *WarehouseRepo) ListChildren(parentID string) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, name, tier, active, parent_warehouse_id, address, created_at, updated_at
		FROM warehouses WHERE parent_warehouse_id = $1 ORDER BY name`
	return r.queryWarehouses(query, parentID)
}

// ListZonalByZone lista las bodegas zonales que atienden una zona.
func (r *WarehouseRepo) ListZonalByZone(zoneID string) ([]*entity.Warehouse, error) {
	query := `
		SELECT w.id, w.name, w.tier, w.active, w.parent_warehouse_id, w.address, w.created_at, w.updated_at
		FROM warehouses w JOIN zone_warehouse zw ON zw.warehouse_id = w.id
		WHERE zw.zone_id = $1 AND w.tier = 'zonal' ORDER BY w.name`
	return r.queryWarehouses(query, zoneID)
}

// FindDivisionByPincode devuelve la bodega de división activa que reclama el
// pincode; (nil, nil) si ninguna.
func (r *WarehouseRepo) FindDivisionByPincode(pincode string) (*entity.Warehouse, error) {
	query := `
		SELECT w.id
		FROM warehouses w JOIN division_pincodes dp ON dp.warehouse_id = w.id
		WHERE dp.pincode = $1 AND w.tier = 'division' AND w.active`
	var id string
	err := r.q.QueryRow(context.Background(), query, pincode).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find division by pincode: %w", err)
	}
	return r.GetByID(id)
}

// Delete elimina una bodega; membresías y pincodes caen por ON DELETE CASCADE.
func (r *WarehouseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

// writeRelations inserta membresías de zona (zonal) y pincodes (división).
func (r *WarehouseRepo) writeRelations(wh *entity.Warehouse) error {
	ctx := context.Background()
	for _, zoneID := range wh.ZoneIDs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO zone_warehouse (warehouse_id, zone_id) VALUES ($1, $2)`,
			wh.ID, zoneID,
		)
		if err != nil {
			return fmt.Errorf("insert zone membership: %w", err)
		}
	}
	for _, pc := range wh.Pincodes {
		_, err := r.q.Exec(ctx,
			`INSERT INTO division_pincodes (warehouse_id, parent_zonal_id, pincode) VALUES ($1, $2, $3)`,
			wh.ID, wh.ParentWarehouseID, pc,
		)
		if err != nil {
			if isUniqueViolation(err) {
				// Respaldo del chequeo de exclusividad del use case ante carreras.
				return &domain.PincodeConflictError{Pincode: pc}
			}
			return fmt.Errorf("insert division pincode: %w", err)
		}
	}
	return nil
}

func (r *WarehouseRepo) loadRelations(w *entity.Warehouse) error {
	ctx := context.Background()
	switch w.Tier {
	case entity.TierZonal:
		rows, err := r.q.Query(ctx,
			`SELECT zone_id FROM zone_warehouse WHERE warehouse_id = $1 ORDER BY zone_id`, w.ID)
		if err != nil {
			return fmt.Errorf("list zone memberships: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var zoneID string
			if err := rows.Scan(&zoneID); err != nil {
				return fmt.Errorf("scan zone membership: %w", err)
			}
			w.ZoneIDs = append(w.ZoneIDs, zoneID)
		}
		return rows.Err()
	case entity.TierDivision:
		rows, err := r.q.Query(ctx,
			`SELECT pincode FROM division_pincodes WHERE warehouse_id = $1 ORDER BY pincode`, w.ID)
		if err != nil {
			return fmt.Errorf("list division pincodes: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var pc string
			if err := rows.Scan(&pc); err != nil {
				return fmt.Errorf("scan division pincode: %w", err)
			}
			w.Pincodes = append(w.Pincodes, pc)
		}
		return rows.Err()
	}
	return nil
}

func (r *WarehouseRepo) queryWarehouses(query string, args ...any) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Tier, &w.Active, &w.ParentWarehouseID,
			&w.Address, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, w := range list {
		if err := r.loadRelations(w); err != nil {
			return nil, err
		}
	}
	return list, nil
}
