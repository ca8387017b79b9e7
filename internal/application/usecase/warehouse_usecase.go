package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// WarehouseUseCase registro de bodegas: CRUD con validación de la jerarquía de
// tres niveles (central → zonal → división) y exclusividad de pincodes entre
// bodegas de división hermanas.
type WarehouseUseCase struct {
	repo      repository.WarehouseRepository
	zoneRepo  repository.ZoneRepository
	stockRepo repository.StockRepository
	txRunner  RegistryTxRunner
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	repo repository.WarehouseRepository,
	zoneRepo repository.ZoneRepository,
	stockRepo repository.StockRepository,
	txRunner RegistryTxRunner,
) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, zoneRepo: zoneRepo, stockRepo: stockRepo, txRunner: txRunner}
}

// Create valida y persiste una bodega nueva. Orden de validación:
//  1. campos requeridos por tier,
//  2. referencia al padre (existencia, actividad y tier esperado),
//  3. exclusividad de pincodes entre hermanas (PincodeConflictError).
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now()
	wh := &entity.Warehouse{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Tier:              in.Tier,
		Active:            true,
		ParentWarehouseID: in.ParentWarehouseID,
		Address:           in.Address,
		ZoneIDs:           dedupeStrings(in.ZoneIDs),
		Pincodes:          normalizePincodes(in.Pincodes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.validate(wh); err != nil {
		return nil, err
	}
	err := uc.txRunner.RunRegistry(ctx, func(_ repository.ZoneRepository, whRepo repository.WarehouseRepository) error {
		return whRepo.Create(wh)
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, nil
	}
	return toWarehouseResponse(wh), nil
}

// Update aplica cambios a una bodega existente y re-valida la jerarquía
// completa (mismas reglas y orden que Create). El tier es inmutable.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, nil
	}
	if in.Name != nil {
		wh.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		wh.Address = *in.Address
	}
	if in.Active != nil {
		wh.Active = *in.Active
	}
	if in.ParentWarehouseID != nil {
		wh.ParentWarehouseID = in.ParentWarehouseID
		if *in.ParentWarehouseID == "" {
			wh.ParentWarehouseID = nil
		}
	}
	if in.ZoneIDs != nil {
		wh.ZoneIDs = dedupeStrings(in.ZoneIDs)
	}
	if in.Pincodes != nil {
		wh.Pincodes = normalizePincodes(in.Pincodes)
	}
	wh.UpdatedAt = time.Now()
	if err := uc.validate(wh); err != nil {
		return nil, err
	}
	err = uc.txRunner.RunRegistry(ctx, func(_ repository.ZoneRepository, whRepo repository.WarehouseRepository) error {
		return whRepo.Update(wh)
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// List lista bodegas con filtros opcionales de tier y actividad.
func (uc *WarehouseUseCase) List(tier string, activeOnly bool, limit, offset int) (*dto.WarehouseListResponse, error) {
	if tier != "" && !entity.IsValidTier(tier) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(tier, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega. Falla con ErrHasDependents si otra bodega la
// referencia como padre o si conserva filas de stock distintas de cero; el
// borrado nunca es en cascada.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	wh, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	children, err := uc.repo.ListChildren(id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return domain.ErrHasDependents
	}
	hasStock, err := uc.stockRepo.HasNonZeroByWarehouse(id)
	if err != nil {
		return err
	}
	if hasStock {
		return domain.ErrHasDependents
	}
	return uc.txRunner.RunRegistry(ctx, func(_ repository.ZoneRepository, whRepo repository.WarehouseRepository) error {
		return whRepo.Delete(id)
	})
}

// AvailablePincodes devuelve los pincodes de las zonas que atiende una bodega
// zonal que ninguna bodega de división hermana ha reclamado todavía.
func (uc *WarehouseUseCase) AvailablePincodes(zonalID string) (*dto.AvailablePincodesResponse, error) {
	wh, err := uc.repo.GetByID(zonalID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if wh.Tier != entity.TierZonal {
		return nil, domain.ErrInvalidInput
	}
	claimed := make(map[string]bool)
	children, err := uc.repo.ListChildren(zonalID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		for _, pc := range child.Pincodes {
			claimed[pc] = true
		}
	}
	var available []string
	for _, zoneID := range wh.ZoneIDs {
		zone, err := uc.zoneRepo.GetByID(zoneID)
		if err != nil {
			return nil, err
		}
		if zone == nil {
			continue
		}
		for _, pc := range zone.Pincodes {
			if !claimed[pc] {
				available = append(available, pc)
			}
		}
	}
	sort.Strings(available)
	return &dto.AvailablePincodesResponse{ZonalWarehouseID: zonalID, Pincodes: available}, nil
}

// validate hace cumplir las invariantes de la jerarquía sobre la entidad ya
// armada, en el orden: campos por tier → referencia al padre → exclusividad
// de pincodes (W4, por padre zonal).
func (uc *WarehouseUseCase) validate(wh *entity.Warehouse) error {
	if wh.Name == "" || !entity.IsValidTier(wh.Tier) {
		return domain.ErrInvalidInput
	}

	// 1. Campos requeridos por tier.
	switch wh.Tier {
	case entity.TierCentral:
		if wh.ParentWarehouseID != nil || len(wh.ZoneIDs) > 0 || len(wh.Pincodes) > 0 {
			return domain.ErrInvalidInput
		}
	case entity.TierZonal:
		if len(wh.ZoneIDs) == 0 || len(wh.Pincodes) > 0 {
			return domain.ErrInvalidInput
		}
	case entity.TierDivision:
		if wh.ParentWarehouseID == nil || len(wh.Pincodes) == 0 || len(wh.ZoneIDs) > 0 {
			return domain.ErrInvalidInput
		}
	}

	// 2. Referencia al padre: debe existir, estar activa y ser del tier esperado.
	var parent *entity.Warehouse
	if wh.ParentWarehouseID != nil {
		p, err := uc.repo.GetByID(*wh.ParentWarehouseID)
		if err != nil {
			return err
		}
		expected := entity.TierCentral // padre opcional de una zonal
		if wh.Tier == entity.TierDivision {
			expected = entity.TierZonal
		}
		if p == nil || !p.Active || p.Tier != expected {
			return fmt.Errorf("padre %s: %w", *wh.ParentWarehouseID, domain.ErrUnknownWarehouse)
		}
		parent = p
	}

	// Las zonas de una bodega zonal deben existir en el directorio.
	for _, zoneID := range wh.ZoneIDs {
		zone, err := uc.zoneRepo.GetByID(zoneID)
		if err != nil {
			return err
		}
		if zone == nil {
			return fmt.Errorf("zona %s: %w", zoneID, domain.ErrNotFound)
		}
	}

	// 3. Exclusividad de pincodes entre divisiones hermanas (W4) y pertenencia
	// a las zonas del padre zonal.
	if wh.Tier == entity.TierDivision {
		served := make(map[string]bool)
		for _, zoneID := range parent.ZoneIDs {
			zone, err := uc.zoneRepo.GetByID(zoneID)
			if err != nil {
				return err
			}
			if zone == nil {
				continue
			}
			for _, pc := range zone.Pincodes {
				served[pc] = true
			}
		}
		siblings, err := uc.repo.ListChildren(parent.ID)
		if err != nil {
			return err
		}
		owners := make(map[string]string)
		for _, sib := range siblings {
			if sib.ID == wh.ID {
				continue
			}
			for _, pc := range sib.Pincodes {
				owners[pc] = sib.ID
			}
		}
		for _, pc := range wh.Pincodes {
			if !served[pc] {
				return domain.ErrInvalidInput
			}
			if ownerID, taken := owners[pc]; taken {
				return &domain.PincodeConflictError{Pincode: pc, OwnerID: ownerID}
			}
		}
	}
	return nil
}

// dedupeStrings deduplica preservando orden.
func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:                w.ID,
		Name:              w.Name,
		Tier:              w.Tier,
		Active:            w.Active,
		Address:           w.Address,
		ParentWarehouseID: w.ParentWarehouseID,
		ZoneIDs:           w.ZoneIDs,
		Pincodes:          w.Pincodes,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}
