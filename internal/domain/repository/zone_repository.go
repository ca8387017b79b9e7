package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// ZoneRepository define el puerto de persistencia para Zone (DIP).
// GetByPincode devuelve (nil, nil) si ninguna zona posee el pincode.
type ZoneRepository interface {
	Create(zone *entity.Zone) error
	GetByID(id string) (*entity.Zone, error)
	Update(zone *entity.Zone) error
	List(limit, offset int) ([]*entity.Zone, error)
	ListActive() ([]*entity.Zone, error)
	AddPincodes(zoneID string, pincodes []string) error
	GetByPincode(pincode string) (*entity.Zone, error)
}
