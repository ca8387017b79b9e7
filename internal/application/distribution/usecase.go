package distribution

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// maxWarehouses tope al listar bodegas para la expansión "todas las zonales".
const maxWarehouses = 1000

// ApplyStrategyUseCase expande la estrategia de distribución elegida por el
// administrador en el conjunto de reemplazo de asignaciones producto-bodega y
// siembra el stock inicial, de forma transaccional.
//
// Tabla de expansión:
//
//	nationwide           primarias = zonales seleccionadas o TODAS las zonales
//	                     activas; fallback = centrales activas (orden por
//	                     nombre) + fallbacks declarados.
//	zonal_with_fallback  primarias = zonales seleccionadas (no vacío);
//	                     fallback = centrales seleccionadas solo si el flag
//	                     de fallback está habilitado.
//	central              primarias = centrales seleccionadas (no vacío); sin fallback.
//	zonal_only           primarias = zonales seleccionadas (no vacío); el
//	                     fallback queda deshabilitado aunque el flag venga en true.
//
// Cantidades: bodegas centrales reciben initial_stock; zonales reciben
// zone_distribution_qty (50 por defecto).
type ApplyStrategyUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewApplyStrategyUseCase construye el caso de uso.
func NewApplyStrategyUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *ApplyStrategyUseCase {
	return &ApplyStrategyUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Apply valida la estrategia, la expande y reemplaza en una sola transacción
// las asignaciones y el stock sembrado del producto. Un fallo no aplica nada.
func (uc *ApplyStrategyUseCase) Apply(ctx context.Context, productID string, in dto.SaveStrategyRequest) (*dto.SaveStrategyResponse, error) {
	if !entity.IsValidStrategy(in.Strategy) || in.InitialStock < 0 || in.ZoneDistributionQty < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	zoneQty := in.ZoneDistributionQty
	if zoneQty == 0 {
		zoneQty = entity.DefaultZoneDistributionQty
	}

	plan, err := uc.expand(in, zoneQty)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]*entity.ProductWarehouseAssignment, 0, len(plan))
	for i, p := range plan {
		rows = append(rows, &entity.ProductWarehouseAssignment{
			ID:          uuid.New().String(),
			ProductID:   productID,
			WarehouseID: p.warehouseID,
			Role:        p.role,
			TargetQty:   p.qty,
			Position:    i,
			CreatedAt:   now,
		})
	}

	// Reemplazo total: borra asignaciones y stock sembrado anteriores, inserta
	// el plan nuevo y actualiza la estrategia en el producto. Commit o nada.
	err = uc.txRunner.Run(ctx, func(
		assignRepo repository.AssignmentRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := assignRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		if err := stockRepo.DeleteByProduct(productID); err != nil {
			return err
		}
		for _, row := range rows {
			if err := assignRepo.Create(row); err != nil {
				return err
			}
			if err := stockRepo.Set(productID, row.WarehouseID, row.TargetQty); err != nil {
				return err
			}
		}
		return productRepo.UpdateStrategy(productID, in.Strategy)
	})
	if err != nil {
		return nil, err
	}

	out := &dto.SaveStrategyResponse{
		ProductID:   productID,
		Strategy:    in.Strategy,
		Assignments: make([]dto.AssignmentResponse, 0, len(rows)),
		AppliedAt:   now,
	}
	for _, row := range rows {
		out.Assignments = append(out.Assignments, dto.AssignmentResponse{
			WarehouseID: row.WarehouseID,
			Role:        row.Role,
			TargetQty:   row.TargetQty,
			Position:    row.Position,
		})
	}
	return out, nil
}

// plannedRow fila del plan antes de materializarse como asignación.
type plannedRow struct {
	warehouseID string
	role        string
	qty         int64
}

// expand aplica la tabla de expansión de forma determinista y devuelve el plan
// ordenado: primarias primero, fallbacks después, sin IDs repetidos (gana la
// primera aparición).
func (uc *ApplyStrategyUseCase) expand(in dto.SaveStrategyRequest, zoneQty int64) ([]plannedRow, error) {
	var plan []plannedRow
	seen := make(map[string]bool)
	add := func(id, role string, qty int64) {
		if seen[id] {
			return
		}
		seen[id] = true
		plan = append(plan, plannedRow{warehouseID: id, role: role, qty: qty})
	}

	primaryTier := entity.TierZonal
	primaryQty := zoneQty
	if in.Strategy == entity.StrategyCentral {
		primaryTier = entity.TierCentral
		primaryQty = in.InitialStock
	}

	primaries := in.PrimaryWarehouseIDs
	if len(primaries) == 0 {
		if in.Strategy != entity.StrategyNationwide {
			return nil, domain.ErrEmptyPrimarySelection
		}
		// nationwide sin selección explícita: todas las zonales activas.
		all, err := uc.warehouseRepo.List(entity.TierZonal, true, maxWarehouses, 0)
		if err != nil {
			return nil, err
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		for _, w := range all {
			primaries = append(primaries, w.ID)
		}
	} else {
		for _, id := range primaries {
			if err := uc.requireActive(id, primaryTier); err != nil {
				return nil, err
			}
		}
	}
	for _, id := range primaries {
		add(id, entity.RolePrimary, primaryQty)
	}

	switch in.Strategy {
	case entity.StrategyNationwide:
		// Orden de fallback fijado: centrales activas por nombre, luego los
		// fallbacks declarados por el administrador.
		centrals, err := uc.warehouseRepo.List(entity.TierCentral, true, maxWarehouses, 0)
		if err != nil {
			return nil, err
		}
		sort.Slice(centrals, func(i, j int) bool { return centrals[i].Name < centrals[j].Name })
		for _, c := range centrals {
			add(c.ID, entity.RoleFallback, in.InitialStock)
		}
		for _, id := range in.FallbackWarehouseIDs {
			w, err := uc.lookupActive(id)
			if err != nil {
				return nil, err
			}
			qty := zoneQty
			if w.Tier == entity.TierCentral {
				qty = in.InitialStock
			}
			add(id, entity.RoleFallback, qty)
		}
	case entity.StrategyZonalWithFallback:
		if in.EnableFallback {
			for _, id := range in.FallbackWarehouseIDs {
				if err := uc.requireActive(id, entity.TierCentral); err != nil {
					return nil, err
				}
				add(id, entity.RoleFallback, in.InitialStock)
			}
		}
	case entity.StrategyCentral, entity.StrategyZonalOnly:
		// Sin filas de fallback: zonal_only ignora el flag incluso si viene en true.
	}

	return plan, nil
}

// lookupActive devuelve la bodega si existe y está activa.
func (uc *ApplyStrategyUseCase) lookupActive(id string) (*entity.Warehouse, error) {
	w, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil || !w.Active {
		return nil, fmt.Errorf("bodega %s: %w", id, domain.ErrUnknownWarehouse)
	}
	return w, nil
}

// requireActive exige además que la bodega sea del tier esperado.
func (uc *ApplyStrategyUseCase) requireActive(id, tier string) error {
	w, err := uc.lookupActive(id)
	if err != nil {
		return err
	}
	if w.Tier != tier {
		return fmt.Errorf("bodega %s no es tier %s: %w", id, tier, domain.ErrInvalidInput)
	}
	return nil
}
