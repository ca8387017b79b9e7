package fulfillment

import (
	"context"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ResolveUseCase recorre la cadena de fallback para decidir qué bodega
// satisface un pedido: zona del pincode → bodega de división que lo reclama →
// zonales de la zona con rol primary → fallbacks declarados en orden.
//
// El caso de uso no muta nada: el caller decrementa el stock de la bodega
// elegida y, si el decremento pierde la carrera contra otro pedido, debe
// re-resolver en lugar de asumir la elección anterior.
type ResolveUseCase struct {
	zoneRepo      repository.ZoneRepository
	warehouseRepo repository.WarehouseRepository
	assignRepo    repository.AssignmentRepository
	stockRepo     repository.StockRepository
}

// NewResolveUseCase construye el caso de uso.
func NewResolveUseCase(
	zoneRepo repository.ZoneRepository,
	warehouseRepo repository.WarehouseRepository,
	assignRepo repository.AssignmentRepository,
	stockRepo repository.StockRepository,
) *ResolveUseCase {
	return &ResolveUseCase{
		zoneRepo:      zoneRepo,
		warehouseRepo: warehouseRepo,
		assignRepo:    assignRepo,
		stockRepo:     stockRepo,
	}
}

// Resolve devuelve la primera bodega de la cadena con cantidad suficiente y la
// lista de candidatas consultadas. Si la cadena se agota devuelve la respuesta
// con la cadena completa y cantidades observadas junto con ErrOutOfStock.
// Si ninguna zona posee el pincode devuelve ErrUnroutablePincode.
func (uc *ResolveUseCase) Resolve(ctx context.Context, in dto.ResolveFulfillmentRequest) (*dto.ResolveFulfillmentResponse, error) {
	if in.ProductID == "" || in.Pincode == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// 1. pincode → zona.
	zone, err := uc.zoneRepo.GetByPincode(in.Pincode)
	if err != nil {
		return nil, err
	}
	if zone == nil || !zone.Active {
		return nil, domain.ErrUnroutablePincode
	}

	// 2. Candidatas de la zona: división que reclama el pincode y zonales de la zona.
	division, err := uc.warehouseRepo.FindDivisionByPincode(in.Pincode)
	if err != nil {
		return nil, err
	}
	zonals, err := uc.warehouseRepo.ListZonalByZone(zone.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := uc.assignRepo.ListByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.buildChain(division, zonals, assignments)
	if err != nil {
		return nil, err
	}

	// 3. Recorrer la cadena consultando el libro de stock. El primer candidato
	// con cantidad suficiente gana; se reporta todo lo consultado.
	resp := &dto.ResolveFulfillmentResponse{
		ProductID: in.ProductID,
		Pincode:   in.Pincode,
		Quantity:  in.Quantity,
	}
	for _, cand := range candidates {
		rec, err := uc.stockRepo.Get(in.ProductID, cand.ID)
		if err != nil {
			return nil, err
		}
		resp.Candidates = append(resp.Candidates, dto.CandidateStock{
			WarehouseID: cand.ID,
			Tier:        cand.Tier,
			Quantity:    rec.Quantity,
		})
		if rec.Quantity >= in.Quantity {
			resp.WarehouseID = cand.ID
			return resp, nil
		}
	}
	return resp, domain.ErrOutOfStock
}

// buildChain arma la lista ordenada de candidatas, deduplicada por ID de
// bodega conservando la primera aparición:
//  1. la división activa que reclama el pincode, si existe;
//  2. las zonales activas de la zona con asignación primary para el producto,
//     en el orden de declaración de la asignación;
//  3. cada bodega con rol fallback, en su orden de declaración.
func (uc *ResolveUseCase) buildChain(
	division *entity.Warehouse,
	zonals []*entity.Warehouse,
	assignments []*entity.ProductWarehouseAssignment,
) ([]*entity.Warehouse, error) {
	var chain []*entity.Warehouse
	seen := make(map[string]bool)
	add := func(w *entity.Warehouse) {
		if w == nil || !w.Active || seen[w.ID] {
			return
		}
		seen[w.ID] = true
		chain = append(chain, w)
	}

	add(division)

	zonalByID := make(map[string]*entity.Warehouse, len(zonals))
	for _, z := range zonals {
		zonalByID[z.ID] = z
	}
	for _, a := range assignments {
		if a.Role != entity.RolePrimary {
			continue
		}
		add(zonalByID[a.WarehouseID])
	}
	for _, a := range assignments {
		if a.Role != entity.RoleFallback {
			continue
		}
		w, err := uc.warehouseRepo.GetByID(a.WarehouseID)
		if err != nil {
			return nil, err
		}
		add(w)
	}
	return chain, nil
}
