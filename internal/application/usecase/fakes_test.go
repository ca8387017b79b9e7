package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. Imitan el contrato de los adaptadores de PostgreSQL,
// incluida la exclusividad de pincodes (constraint única) y el decremento
// condicional del libro de stock.
// ──────────────────────────────────────────────────────────────────────────────

type fakeZoneRepo struct {
	mu    sync.Mutex
	zones map[string]*entity.Zone
}

func newFakeZoneRepo() *fakeZoneRepo {
	return &fakeZoneRepo{zones: make(map[string]*entity.Zone)}
}

func (f *fakeZoneRepo) Create(z *entity.Zone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, pc := range z.Pincodes {
		if f.ownerLocked(pc) != nil {
			return domain.ErrPincodeAlreadyAssigned
		}
	}
	cp := *z
	f.zones[z.ID] = &cp
	return nil
}

func (f *fakeZoneRepo) GetByID(id string) (*entity.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	z, ok := f.zones[id]
	if !ok {
		return nil, nil
	}
	cp := *z
	return &cp, nil
}

func (f *fakeZoneRepo) Update(z *entity.Zone) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *z
	f.zones[z.ID] = &cp
	return nil
}

func (f *fakeZoneRepo) List(limit, offset int) ([]*entity.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Zone
	for _, z := range f.zones {
		cp := *z
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeZoneRepo) ListActive() ([]*entity.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Zone
	for _, z := range f.zones {
		if z.Active {
			cp := *z
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeZoneRepo) AddPincodes(zoneID string, pincodes []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	z, ok := f.zones[zoneID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, pc := range pincodes {
		if owner := f.ownerLocked(pc); owner != nil && owner.ID != zoneID {
			return domain.ErrPincodeAlreadyAssigned
		}
	}
	z.Pincodes = append(z.Pincodes, pincodes...)
	return nil
}

func (f *fakeZoneRepo) GetByPincode(pincode string) (*entity.Zone, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner := f.ownerLocked(pincode)
	if owner == nil {
		return nil, nil
	}
	cp := *owner
	return &cp, nil
}

func (f *fakeZoneRepo) ownerLocked(pincode string) *entity.Zone {
	for _, z := range f.zones {
		for _, pc := range z.Pincodes {
			if pc == pincode {
				return z
			}
		}
	}
	return nil
}

type fakeWarehouseRepo struct {
	mu         sync.Mutex
	warehouses map[string]*entity.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
}

func (f *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *w
	f.warehouses[w.ID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *w
	f.warehouses[w.ID] = &cp
	return nil
}

func (f *fakeWarehouseRepo) List(tier string, activeOnly bool, limit, offset int) ([]*entity.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range f.warehouses {
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

func (f *fakeWarehouseRepo) ListChildren(parentID string) ([]*entity.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range f.warehouses {
		if w.ParentWarehouseID != nil && *w.ParentWarehouseID == parentID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) ListZonalByZone(zoneID string) ([]*entity.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range f.warehouses {
		if w.Tier != entity.TierZonal {
			continue
		}
		for _, z := range w.ZoneIDs {
			if z == zoneID {
				cp := *w
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeWarehouseRepo) FindDivisionByPincode(pincode string) (*entity.Warehouse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.warehouses {
		if w.Tier != entity.TierDivision || !w.Active {
			continue
		}
		for _, pc := range w.Pincodes {
			if pc == pincode {
				cp := *w
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeWarehouseRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.warehouses, id)
	return nil
}

type fakeStockRepo struct {
	mu    sync.Mutex
	stock map[string]map[string]int64 // productID → warehouseID → qty
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stock: make(map[string]map[string]int64)}
}

func (f *fakeStockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	qty := f.stock[productID][warehouseID]
	return &entity.StockRecord{ProductID: productID, WarehouseID: warehouseID, Quantity: qty, UpdatedAt: time.Now()}, nil
}

func (f *fakeStockRepo) Set(productID, warehouseID string, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock[productID] == nil {
		f.stock[productID] = make(map[string]int64)
	}
	f.stock[productID][warehouseID] = qty
	return nil
}

func (f *fakeStockRepo) Increment(productID, warehouseID string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock[productID] == nil {
		f.stock[productID] = make(map[string]int64)
	}
	f.stock[productID][warehouseID] += delta
	return nil
}

// Decrement imita el UPDATE condicional del adaptador: o aplica todo el delta
// o falla sin tocar la fila.
func (f *fakeStockRepo) Decrement(productID, warehouseID string, delta int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur := f.stock[productID][warehouseID]
	if cur < delta {
		return domain.ErrInsufficientStock
	}
	f.stock[productID][warehouseID] = cur - delta
	return nil
}

func (f *fakeStockRepo) ListByProduct(productID string) ([]*entity.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.StockRecord
	for whID, qty := range f.stock[productID] {
		out = append(out, &entity.StockRecord{ProductID: productID, WarehouseID: whID, Quantity: qty, UpdatedAt: time.Now()})
	}
	return out, nil
}

func (f *fakeStockRepo) HasNonZeroByWarehouse(warehouseID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, byWh := range f.stock {
		if byWh[warehouseID] > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStockRepo) DeleteByProduct(productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stock, productID)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) UpdateStrategy(id, strategy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok {
		p.Strategy = strategy
	}
	return nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// fakeRegistryTxRunner ejecuta el callback directamente sobre los repos dados
// (sin transacción real; los fakes son atómicos por mutex).
type fakeRegistryTxRunner struct {
	zoneRepo repository.ZoneRepository
	whRepo   repository.WarehouseRepository
}

func (f *fakeRegistryTxRunner) RunRegistry(_ context.Context, fn func(repository.ZoneRepository, repository.WarehouseRepository) error) error {
	return fn(f.zoneRepo, f.whRepo)
}
