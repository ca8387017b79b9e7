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

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

// ZoneRepo implementación de ZoneRepository sobre PostgreSQL (usable con pool o tx).
// Los pincodes viven en zone_pincodes con constraint único global sobre pincode,
// el respaldo en almacenamiento de la invariante "un pincode, una zona".
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador de zonas. Pasar pool o tx (Querier).
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

// Create persiste una zona nueva con sus pincodes.
func (r *ZoneRepo) Create(zone *entity.Zone) error {
	query := `
		INSERT INTO zones (id, name, state, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		zone.ID, zone.Name, zone.State, zone.Active, zone.CreatedAt, zone.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert zone: %w", err)
	}
	return r.AddPincodes(zone.ID, zone.Pincodes)
}

// GetByID obtiene una zona con sus pincodes.
func (r *ZoneRepo) GetByID(id string) (*entity.Zone, error) {
	query := `
		SELECT id, name, state, active, created_at, updated_at
		FROM zones WHERE id = $1`
	var z entity.Zone
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&z.ID, &z.Name, &z.State, &z.Active, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	pincodes, err := r.pincodesOf(z.ID)
	if err != nil {
		return nil, err
	}
	z.Pincodes = pincodes
	return &z, nil
}

// Update actualiza nombre, estado y flag de actividad de una zona.
func (r *ZoneRepo) Update(zone *entity.Zone) error {
	query := `
		UPDATE zones SET name = $2, state = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		zone.ID, zone.Name, zone.State, zone.Active, zone.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update zone: %w", err)
	}
	return nil
}

// List lista zonas con paginación.
func (r *ZoneRepo) List(limit, offset int) ([]*entity.Zone, error) {
	query := `
		SELECT id, name, state, active, created_at, updated_at
		FROM zones ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryZones(query, limit, offset)
}

// ListActive lista las zonas activas ordenadas por nombre.
func (r *ZoneRepo) ListActive() ([]*entity.Zone, error) {
	query := `
		SELECT id, name, state, active, created_at, updated_at
		FROM zones WHERE active ORDER BY name`
	return r.queryZones(query)
}

// AddPincodes agrega pincodes a una zona. La violación del constraint único
// sobre pincode se traduce a ErrPincodeAlreadyAssigned.
func (r *ZoneRepo) AddPincodes(zoneID string, pincodes []string) error {
	for _, pc := range pincodes {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO zone_pincodes (zone_id, pincode) VALUES ($1, $2)`,
			zoneID, pc,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrPincodeAlreadyAssigned
			}
			return fmt.Errorf("insert zone pincode: %w", err)
		}
	}
	return nil
}

// GetByPincode resuelve el pincode a la zona que lo posee; (nil, nil) si ninguna.
func (r *ZoneRepo) GetByPincode(pincode string) (*entity.Zone, error) {
	query := `
		SELECT z.id, z.name, z.state, z.active, z.created_at, z.updated_at
		FROM zones z JOIN zone_pincodes zp ON zp.zone_id = z.id
		WHERE zp.pincode = $1`
	var z entity.Zone
	err := r.q.QueryRow(context.Background(), query, pincode).Scan(
		&z.ID, &z.Name, &z.State, &z.Active, &z.CreatedAt, &z.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone by pincode: %w", err)
	}
	pincodes, err := r.pincodesOf(z.ID)
	if err != nil {
		return nil, err
	}
	z.Pincodes = pincodes
	return &z, nil
}

func (r *ZoneRepo) queryZones(query string, args ...any) ([]*entity.Zone, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Zone
	for rows.Next() {
		var z entity.Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.State, &z.Active, &z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		list = append(list, &z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, z := range list {
		pincodes, err := r.pincodesOf(z.ID)
		if err != nil {
			return nil, err
		}
		z.Pincodes = pincodes
	}
	return list, nil
}

func (r *ZoneRepo) pincodesOf(zoneID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT pincode FROM zone_pincodes WHERE zone_id = $1 ORDER BY pincode`, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list zone pincodes: %w", err)
	}
	defer rows.Close()
	var pincodes []string
	for rows.Next() {
		var pc string
		if err := rows.Scan(&pc); err != nil {
			return nil, fmt.Errorf("scan pincode: %w", err)
		}
		pincodes = append(pincodes, pc)
	}
	return pincodes, rows.Err()
}
