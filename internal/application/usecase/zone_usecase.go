package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ZoneUseCase directorio de zonas: CRUD, asignación de pincodes y lookup
// pincode → zona. Hace cumplir la exclusividad de pincodes entre zonas.
type ZoneUseCase struct {
	repo     repository.ZoneRepository
	txRunner RegistryTxRunner
}

// NewZoneUseCase construye el caso de uso.
func NewZoneUseCase(repo repository.ZoneRepository, txRunner RegistryTxRunner) *ZoneUseCase {
	return &ZoneUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una zona con sus pincodes iniciales. Falla con
// ErrPincodeAlreadyAssigned si algún pincode ya pertenece a otra zona.
func (uc *ZoneUseCase) Create(ctx context.Context, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.State) == "" {
		return nil, domain.ErrInvalidInput
	}
	pincodes := normalizePincodes(in.Pincodes)
	for _, pc := range pincodes {
		owner, err := uc.repo.GetByPincode(pc)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			return nil, domain.ErrPincodeAlreadyAssigned
		}
	}
	now := time.Now()
	zone := &entity.Zone{
		ID:        uuid.New().String(),
		Name:      in.Name,
		State:     in.State,
		Active:    true,
		Pincodes:  pincodes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.RunRegistry(ctx, func(zoneRepo repository.ZoneRepository, _ repository.WarehouseRepository) error {
		return zoneRepo.Create(zone)
	})
	if err != nil {
		return nil, err
	}
	return toZoneResponse(zone), nil
}

// GetByID obtiene una zona por ID.
func (uc *ZoneUseCase) GetByID(id string) (*dto.ZoneResponse, error) {
	zone, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, nil
	}
	return toZoneResponse(zone), nil
}

// Update actualiza nombre, estado o flag de actividad de una zona.
func (uc *ZoneUseCase) Update(ctx context.Context, id string, in dto.UpdateZoneRequest) (*dto.ZoneResponse, error) {
	zone, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, nil
	}
	if in.Name != nil {
		zone.Name = *in.Name
	}
	if in.State != nil {
		zone.State = *in.State
	}
	if in.Active != nil {
		zone.Active = *in.Active
	}
	zone.UpdatedAt = time.Now()
	err = uc.txRunner.RunRegistry(ctx, func(zoneRepo repository.ZoneRepository, _ repository.WarehouseRepository) error {
		return zoneRepo.Update(zone)
	})
	if err != nil {
		return nil, err
	}
	return toZoneResponse(zone), nil
}

// List lista zonas con paginación.
func (uc *ZoneUseCase) List(limit, offset int) (*dto.ZoneListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		items = append(items, *toZoneResponse(z))
	}
	return &dto.ZoneListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListActive lista las zonas activas (sin paginación, para selects de la consola).
func (uc *ZoneUseCase) ListActive() ([]dto.ZoneResponse, error) {
	list, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		items = append(items, *toZoneResponse(z))
	}
	return items, nil
}

// AssignPincodes agrega pincodes a una zona existente. Un pincode que ya
// pertenece a esta misma zona se ignora; uno que pertenece a otra zona falla
// con ErrPincodeAlreadyAssigned y no se aplica ningún cambio.
func (uc *ZoneUseCase) AssignPincodes(ctx context.Context, zoneID string, in dto.AssignPincodesRequest) (*dto.ZoneResponse, error) {
	zone, err := uc.repo.GetByID(zoneID)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, domain.ErrNotFound
	}
	pincodes := normalizePincodes(in.Pincodes)
	if len(pincodes) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var toAdd []string
	for _, pc := range pincodes {
		owner, err := uc.repo.GetByPincode(pc)
		if err != nil {
			return nil, err
		}
		if owner != nil {
			if owner.ID == zoneID {
				continue // ya pertenece a esta zona
			}
			return nil, domain.ErrPincodeAlreadyAssigned
		}
		toAdd = append(toAdd, pc)
	}
	if len(toAdd) > 0 {
		err = uc.txRunner.RunRegistry(ctx, func(zoneRepo repository.ZoneRepository, _ repository.WarehouseRepository) error {
			return zoneRepo.AddPincodes(zoneID, toAdd)
		})
		if err != nil {
			return nil, err
		}
	}
	updated, err := uc.repo.GetByID(zoneID)
	if err != nil {
		return nil, err
	}
	return toZoneResponse(updated), nil
}

// LookupByPincode resuelve un pincode a su zona. Devuelve (nil, nil) si ninguna
// zona lo posee; el handler lo traduce a 404.
func (uc *ZoneUseCase) LookupByPincode(pincode string) (*dto.ZoneResponse, error) {
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return nil, domain.ErrInvalidInput
	}
	zone, err := uc.repo.GetByPincode(pincode)
	if err != nil {
		return nil, err
	}
	if zone == nil {
		return nil, nil
	}
	return toZoneResponse(zone), nil
}

// normalizePincodes recorta espacios, descarta vacíos y deduplica preservando orden.
func normalizePincodes(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, pc := range in {
		pc = strings.TrimSpace(pc)
		if pc == "" || seen[pc] {
			continue
		}
		seen[pc] = true
		out = append(out, pc)
	}
	return out
}

func toZoneResponse(z *entity.Zone) *dto.ZoneResponse {
	if z == nil {
		return nil
	}
	return &dto.ZoneResponse{
		ID:        z.ID,
		Name:      z.Name,
		State:     z.State,
		Active:    z.Active,
		Pincodes:  z.Pincodes,
		CreatedAt: z.CreatedAt,
		UpdatedAt: z.UpdatedAt,
	}
}
