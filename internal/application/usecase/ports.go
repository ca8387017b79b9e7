package usecase

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// RegistryTxRunner ejecuta escrituras del registro (zonas y bodegas) dentro de
// una transacción de BD, pasando repositorios atados a esa tx. Garantiza que un
// alta o edición con varias filas (membresías, pincodes) sea todo-o-nada.
type RegistryTxRunner interface {
	RunRegistry(ctx context.Context, fn func(
		zoneRepo repository.ZoneRepository,
		whRepo repository.WarehouseRepository,
	) error) error
}
