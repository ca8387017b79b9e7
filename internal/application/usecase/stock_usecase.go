package usecase

import (
	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/inventory"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

// StockUseCase operaciones sobre el libro de stock: ajustes (set, increment,
// decrement) y resumen por producto. La atomicidad de un decremento frente a
// llamadas concurrentes la garantiza el repositorio (update condicional en
// almacenamiento); aquí solo se valida la entrada y la existencia de los
// recursos referenciados.
type StockUseCase struct {
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, productRepo: productRepo, warehouseRepo: warehouseRepo}
}

// Adjust aplica un ajuste de stock. set exige quantity >= 0; increment y
// decrement exigen quantity > 0. decrement falla con ErrInsufficientStock en
// lugar de dejar la cantidad negativa.
func (uc *StockUseCase) Adjust(in dto.StockAdjustmentRequest) (*dto.StockRecordResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Operation {
	case dto.StockOpSet:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
	case dto.StockOpIncrement, dto.StockOpDecrement:
		if in.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	switch in.Operation {
	case dto.StockOpSet:
		err = uc.stockRepo.Set(in.ProductID, in.WarehouseID, in.Quantity)
	case dto.StockOpIncrement:
		err = uc.stockRepo.Increment(in.ProductID, in.WarehouseID, in.Quantity)
	case dto.StockOpDecrement:
		err = uc.stockRepo.Decrement(in.ProductID, in.WarehouseID, in.Quantity)
	}
	if err != nil {
		return nil, err
	}

	rec, err := uc.stockRepo.Get(in.ProductID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	return &dto.StockRecordResponse{
		ProductID:   rec.ProductID,
		WarehouseID: rec.WarehouseID,
		Quantity:    rec.Quantity,
		UpdatedAt:   rec.UpdatedAt,
	}, nil
}

// Summary devuelve las filas de stock de un producto en todas sus bodegas,
// el total de unidades y el valor del inventario a precio de venta.
func (uc *StockUseCase) Summary(productID string) (*dto.StockSummaryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	records, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := &dto.StockSummaryResponse{ProductID: productID, Records: make([]dto.StockRecordResponse, 0, len(records))}
	for _, r := range records {
		out.Records = append(out.Records, dto.StockRecordResponse{
			ProductID:   r.ProductID,
			WarehouseID: r.WarehouseID,
			Quantity:    r.Quantity,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	out.Total = inventory.TotalUnits(records)
	out.TotalValue = inventory.Valuation(out.Total, product.Price)
	return out, nil
}
