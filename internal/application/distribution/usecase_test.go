package distribution_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/distribution"
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el runner toma un snapshot
// antes del callback y lo restaura si este falla, igual que un ROLLBACK.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	assignments map[string][]*entity.ProductWarehouseAssignment // productID → filas
	stock       map[string]map[string]int64                     // productID → warehouseID → qty
	strategies  map[string]string                               // productID → estrategia
}

func newMemState() *memState {
	return &memState{
		assignments: make(map[string][]*entity.ProductWarehouseAssignment),
		stock:       make(map[string]map[string]int64),
		strategies:  make(map[string]string),
	}
}

func (s *memState) clone() *memState {
	cp := newMemState()
	for k, rows := range s.assignments {
		cp.assignments[k] = append([]*entity.ProductWarehouseAssignment(nil), rows...)
	}
	for k, byWh := range s.stock {
		m := make(map[string]int64, len(byWh))
		for wh, q := range byWh {
			m[wh] = q
		}
		cp.stock[k] = m
	}
	for k, v := range s.strategies {
		cp.strategies[k] = v
	}
	return cp
}

type memAssignRepo struct {
	state *memState
	// failAfter fuerza un error del almacenamiento después de N inserts (-1 = nunca).
	failAfter int
	inserted  int
}

func (r *memAssignRepo) Create(a *entity.ProductWarehouseAssignment) error {
	if r.failAfter >= 0 && r.inserted >= r.failAfter {
		return errors.New("fallo simulado de almacenamiento")
	}
	r.inserted++
	cp := *a
	r.state.assignments[a.ProductID] = append(r.state.assignments[a.ProductID], &cp)
	return nil
}

func (r *memAssignRepo) ListByProduct(productID string) ([]*entity.ProductWarehouseAssignment, error) {
	rows := append([]*entity.ProductWarehouseAssignment(nil), r.state.assignments[productID]...)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Role != rows[j].Role {
			return rows[i].Role == entity.RolePrimary
		}
		return rows[i].Position < rows[j].Position
	})
	return rows, nil
}

func (r *memAssignRepo) DeleteByProduct(productID string) error {
	delete(r.state.assignments, productID)
	return nil
}

type memStockRepo struct{ state *memState }

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID,
		Quantity: r.state.stock[productID][warehouseID], UpdatedAt: time.Now()}, nil
}

func (r *memStockRepo) Set(productID, warehouseID string, qty int64) error {
	if r.state.stock[productID] == nil {
		r.state.stock[productID] = make(map[string]int64)
	}
	r.state.stock[productID][warehouseID] = qty
	return nil
}

func (r *memStockRepo) Increment(productID, warehouseID string, delta int64) error {
	return r.Set(productID, warehouseID, r.state.stock[productID][warehouseID]+delta)
}

func (r *memStockRepo) Decrement(productID, warehouseID string, delta int64) error {
	cur := r.state.stock[productID][warehouseID]
	if cur < delta {
		return domain.ErrInsufficientStock
	}
	return r.Set(productID, warehouseID, cur-delta)
}

func (r *memStockRepo) ListByProduct(productID string) ([]*entity.StockRecord, error) {
	var out []*entity.StockRecord
	for wh, q := range r.state.stock[productID] {
		out = append(out, &entity.StockRecord{ProductID: productID, WarehouseID: wh, Quantity: q})
	}
	return out, nil
}

func (r *memStockRepo) HasNonZeroByWarehouse(warehouseID string) (bool, error) {
	for _, byWh := range r.state.stock {
		if byWh[warehouseID] > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStockRepo) DeleteByProduct(productID string) error {
	delete(r.state.stock, productID)
	return nil
}

type memProductRepo struct {
	state    *memState
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Strategy = r.state.strategies[id]
	return &cp, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStrategy(id, strategy string) error {
	r.state.strategies[id] = strategy
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type memWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) Update(w *entity.Warehouse) error { return r.Create(w) }

func (r *memWarehouseRepo) List(tier string, activeOnly bool, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if tier != "" && w.Tier != tier {
			continue
		}
		if activeOnly && !w.Active {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memWarehouseRepo) ListChildren(string) ([]*entity.Warehouse, error)    { return nil, nil }
func (r *memWarehouseRepo) ListZonalByZone(string) ([]*entity.Warehouse, error) { return nil, nil }
func (r *memWarehouseRepo) FindDivisionByPincode(string) (*entity.Warehouse, error) {
	return nil, nil
}
func (r *memWarehouseRepo) Delete(id string) error {
	delete(r.warehouses, id)
	return nil
}

// memTxRunner snapshot + restore en error, como una transacción real.
type memTxRunner struct {
	state     *memState
	assign    *memAssignRepo
	products  *memProductRepo
	failAfter int // -1 = nunca falla
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	repository.AssignmentRepository,
	repository.StockRepository,
	repository.ProductRepository,
) error) error {
	snapshot := t.state.clone()
	t.assign.failAfter = t.failAfter
	t.assign.inserted = 0
	err := fn(t.assign, &memStockRepo{state: t.state}, t.products)
	if err != nil {
		*t.state = *snapshot
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc     *distribution.ApplyStrategyUseCase
	state  *memState
	whRepo *memWarehouseRepo
	runner *memTxRunner
	prodID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	state := newMemState()
	whRepo := &memWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	prodRepo := &memProductRepo{state: state, products: make(map[string]*entity.Product)}
	assign := &memAssignRepo{state: state, failAfter: -1}
	runner := &memTxRunner{state: state, assign: assign, products: prodRepo, failAfter: -1}

	now := time.Now()
	require.NoError(t, prodRepo.Create(&entity.Product{
		ID: "prod-1", SKU: "SKU-1", Name: "Producto",
		Price: decimal.NewFromInt(99), Active: true, CreatedAt: now, UpdatedAt: now,
	}))
	return &fixture{
		uc:     distribution.NewApplyStrategyUseCase(runner, prodRepo, whRepo),
		state:  state,
		whRepo: whRepo,
		runner: runner,
		prodID: "prod-1",
	}
}

func (fx *fixture) seedWarehouse(t *testing.T, id, name, tier string, active bool) {
	t.Helper()
	require.NoError(t, fx.whRepo.Create(&entity.Warehouse{
		ID: id, Name: name, Tier: tier, Active: active,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func rowsByRole(rows []dto.AssignmentResponse, role string) []dto.AssignmentResponse {
	var out []dto.AssignmentResponse
	for _, r := range rows {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Expansión por estrategia
// ──────────────────────────────────────────────────────────────────────────────

// nationwide sin selección: todas las zonales activas como primarias con la
// cantidad por zona, y las centrales activas (por nombre) como fallback.
func TestApply_Nationwide_SinSeleccion(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "z-b", "Zonal B", entity.TierZonal, true)
	fx.seedWarehouse(t, "z-a", "Zonal A", entity.TierZonal, true)
	fx.seedWarehouse(t, "z-off", "Zonal Inactiva", entity.TierZonal, false)
	fx.seedWarehouse(t, "c-1", "Central 1", entity.TierCentral, true)

	out, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
		Strategy:     entity.StrategyNationwide,
		InitialStock: 500,
	})
	require.NoError(t, err)

	primaries := rowsByRole(out.Assignments, entity.RolePrimary)
	require.Len(t, primaries, 2, "solo las zonales activas participan")
	assert.Equal(t, "z-a", primaries[0].WarehouseID, "las zonales se ordenan por nombre")
	assert.Equal(t, "z-b", primaries[1].WarehouseID)
	for _, p := range primaries {
		assert.Equal(t, int64(entity.DefaultZoneDistributionQty), p.TargetQty,
			"sin zone_distribution_qty explícita aplica el default de 50")
	}

	fallbacks := rowsByRole(out.Assignments, entity.RoleFallback)
	require.Len(t, fallbacks, 1)
	assert.Equal(t, "c-1", fallbacks[0].WarehouseID)
	assert.Equal(t, int64(500), fallbacks[0].TargetQty, "las centrales siembran initial_stock")

	// El stock queda sembrado igual que el plan.
	assert.Equal(t, int64(50), fx.state.stock[fx.prodID]["z-a"])
	assert.Equal(t, int64(500), fx.state.stock[fx.prodID]["c-1"])
	assert.Equal(t, entity.StrategyNationwide, fx.state.strategies[fx.prodID])
}

// Un ID repetido entre primarias y fallbacks aparece una sola vez (gana la
// primera aparición, como primaria).
func TestApply_Nationwide_DeduplicaSeleccion(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "z-1", "Zonal 1", entity.TierZonal, true)
	fx.seedWarehouse(t, "c-1", "Central 1", entity.TierCentral, true)

	out, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
		Strategy:             entity.StrategyNationwide,
		PrimaryWarehouseIDs:  []string{"z-1"},
		FallbackWarehouseIDs: []string{"z-1", "c-1"},
		InitialStock:         100,
		ZoneDistributionQty:  25,
	})
	require.NoError(t, err)

	ids := make(map[string]int)
	for _, a := range out.Assignments {
		ids[a.WarehouseID]++
	}
	assert.Equal(t, 1, ids["z-1"], "una bodega no puede aparecer dos veces en el plan")
	primaries := rowsByRole(out.Assignments, entity.RolePrimary)
	require.Len(t, primaries, 1)
	assert.Equal(t, int64(25), primaries[0].TargetQty)
}

func TestApply_ZonalWithFallback_RespetaFlag(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "z-1", "Zonal 1", entity.TierZonal, true)
	fx.seedWarehouse(t, "c-1", "Central 1", entity.TierCentral, true)
	ctx := context.Background()

	// Flag apagado: sin filas de fallback aunque vengan IDs.
	out, err := fx.uc.Apply(ctx, fx.prodID, dto.SaveStrategyRequest{
		Strategy:             entity.StrategyZonalWithFallback,
		PrimaryWarehouseIDs:  []string{"z-1"},
		FallbackWarehouseIDs: []string{"c-1"},
		EnableFallback:       false,
		InitialStock:         200,
	})
	require.NoError(t, err)
	assert.Empty(t, rowsByRole(out.Assignments, entity.RoleFallback))

	// Flag encendido: la central declarada entra como fallback con initial_stock.
	out, err = fx.uc.Apply(ctx, fx.prodID, dto.SaveStrategyRequest{
		Strategy:             entity.StrategyZonalWithFallback,
		PrimaryWarehouseIDs:  []string{"z-1"},
		FallbackWarehouseIDs: []string{"c-1"},
		EnableFallback:       true,
		InitialStock:         200,
	})
	require.NoError(t, err)
	fallbacks := rowsByRole(out.Assignments, entity.RoleFallback)
	require.Len(t, fallbacks, 1)
	assert.Equal(t, "c-1", fallbacks[0].WarehouseID)
	assert.Equal(t, int64(200), fallbacks[0].TargetQty)
}

// zonal_only nunca produce filas de fallback, aunque el flag venga en true.
func TestApply_ZonalOnly_IgnoraFallback(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "z-1", "Zonal 1", entity.TierZonal, true)
	fx.seedWarehouse(t, "c-1", "Central 1", entity.TierCentral, true)

	out, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
		Strategy:             entity.StrategyZonalOnly,
		PrimaryWarehouseIDs:  []string{"z-1"},
		FallbackWarehouseIDs: []string{"c-1"},
		EnableFallback:       true,
		InitialStock:         100,
	})
	require.NoError(t, err)
	assert.Empty(t, rowsByRole(out.Assignments, entity.RoleFallback),
		"zonal_only no admite fallback")
}

func TestApply_Central_PrimariasCentrales(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "c-1", "Central 1", entity.TierCentral, true)

	out, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
		Strategy:            entity.StrategyCentral,
		PrimaryWarehouseIDs: []string{"c-1"},
		InitialStock:        999,
	})
	require.NoError(t, err)

	primaries := rowsByRole(out.Assignments, entity.RolePrimary)
	require.Len(t, primaries, 1)
	assert.Equal(t, int64(999), primaries[0].TargetQty,
		"las primarias centrales siembran initial_stock, no la cantidad por zona")
	assert.Empty(t, rowsByRole(out.Assignments, entity.RoleFallback))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SeleccionPrimariaVacia(t *testing.T) {
	fx := newFixture(t)

	for _, strategy := range []string{
		entity.StrategyZonalWithFallback,
		entity.StrategyCentral,
		entity.StrategyZonalOnly,
	} {
		_, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
			Strategy: strategy, InitialStock: 10,
		})
		assert.ErrorIs(t, err, domain.ErrEmptyPrimarySelection,
			"estrategia %s sin primarias debe fallar", strategy)
	}
}

func TestApply_BodegaDesconocidaOInactiva(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "z-off", "Zonal Inactiva", entity.TierZonal, false)

	_, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
		Strategy:            entity.StrategyZonalOnly,
		PrimaryWarehouseIDs: []string{"no-existe"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownWarehouse)

	_, err = fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
		Strategy:            entity.StrategyZonalOnly,
		PrimaryWarehouseIDs: []string{"z-off"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownWarehouse,
		"una bodega inactiva no puede seleccionarse")
}

func TestApply_TierEquivocado(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "c-1", "Central 1", entity.TierCentral, true)

	_, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{
		Strategy:            entity.StrategyZonalOnly,
		PrimaryWarehouseIDs: []string{"c-1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"una central no puede ser primaria de una estrategia zonal")
}

func TestApply_EstrategiaInvalida(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Apply(context.Background(), fx.prodID, dto.SaveStrategyRequest{Strategy: "regional"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_ProductoInexistente(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Apply(context.Background(), "prod-fantasma", dto.SaveStrategyRequest{
		Strategy: entity.StrategyNationwide,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad del reemplazo
// ──────────────────────────────────────────────────────────────────────────────

// Si la escritura falla a mitad del plan nuevo, las asignaciones y el stock
// anteriores deben sobrevivir intactos.
func TestApply_FalloParcial_ConservaEstadoAnterior(t *testing.T) {
	fx := newFixture(t)
	fx.seedWarehouse(t, "z-1", "Zonal 1", entity.TierZonal, true)
	fx.seedWarehouse(t, "z-2", "Zonal 2", entity.TierZonal, true)
	fx.seedWarehouse(t, "c-1", "Central 1", entity.TierCentral, true)
	ctx := context.Background()

	// Primera aplicación correcta.
	_, err := fx.uc.Apply(ctx, fx.prodID, dto.SaveStrategyRequest{
		Strategy:            entity.StrategyZonalOnly,
		PrimaryWarehouseIDs: []string{"z-1"},
		ZoneDistributionQty: 80,
	})
	require.NoError(t, err)
	require.Equal(t, int64(80), fx.state.stock[fx.prodID]["z-1"])

	// Segunda aplicación: el almacenamiento falla tras el primer insert.
	fx.runner.failAfter = 1
	_, err = fx.uc.Apply(ctx, fx.prodID, dto.SaveStrategyRequest{
		Strategy:             entity.StrategyNationwide,
		PrimaryWarehouseIDs:  []string{"z-1", "z-2"},
		FallbackWarehouseIDs: []string{"c-1"},
		InitialStock:         300,
	})
	require.Error(t, err)

	// El estado previo sobrevive completo.
	assert.Equal(t, entity.StrategyZonalOnly, fx.state.strategies[fx.prodID])
	assert.Equal(t, int64(80), fx.state.stock[fx.prodID]["z-1"])
	rows := fx.state.assignments[fx.prodID]
	require.Len(t, rows, 1)
	assert.Equal(t, "z-1", rows[0].WarehouseID)
}
