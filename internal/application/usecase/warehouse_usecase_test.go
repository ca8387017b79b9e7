package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Logistica-api/internal/application/dto"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/domain"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

type warehouseFixture struct {
	uc        *usecase.WarehouseUseCase
	zoneRepo  *fakeZoneRepo
	whRepo    *fakeWarehouseRepo
	stockRepo *fakeStockRepo
}

func newWarehouseFixture() *warehouseFixture {
	zoneRepo := newFakeZoneRepo()
	whRepo := newFakeWarehouseRepo()
	stockRepo := newFakeStockRepo()
	tx := &fakeRegistryTxRunner{zoneRepo: zoneRepo, whRepo: whRepo}
	return &warehouseFixture{
		uc:        usecase.NewWarehouseUseCase(whRepo, zoneRepo, stockRepo, tx),
		zoneRepo:  zoneRepo,
		whRepo:    whRepo,
		stockRepo: stockRepo,
	}
}

func (fx *warehouseFixture) seedZone(t *testing.T, id string, pincodes ...string) {
	t.Helper()
	require.NoError(t, fx.zoneRepo.Create(&entity.Zone{
		ID: id, Name: "Zona " + id, State: "Estado", Active: true,
		Pincodes: pincodes, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
}

func (fx *warehouseFixture) createZonal(t *testing.T, zoneIDs ...string) *dto.WarehouseResponse {
	t.Helper()
	out, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "Zonal", Tier: entity.TierZonal, ZoneIDs: zoneIDs,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos requeridos por tier
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseCreate_Central(t *testing.T) {
	fx := newWarehouseFixture()

	out, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "Central Nacional", Tier: entity.TierCentral, Address: "Bodega 1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TierCentral, out.Tier)
	assert.True(t, out.Active)
	assert.Nil(t, out.ParentWarehouseID)
}

func TestWarehouseCreate_CentralConPadre_Falla(t *testing.T) {
	fx := newWarehouseFixture()
	parent := "alguna-bodega"

	_, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "Central", Tier: entity.TierCentral, ParentWarehouseID: &parent,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"una central no admite padre")
}

func TestWarehouseCreate_ZonalSinZonas_Falla(t *testing.T) {
	fx := newWarehouseFixture()

	_, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "Zonal", Tier: entity.TierZonal,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"una zonal debe atender al menos una zona")
}

func TestWarehouseCreate_ZonalConZonaInexistente_Falla(t *testing.T) {
	fx := newWarehouseFixture()

	_, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "Zonal", Tier: entity.TierZonal, ZoneIDs: []string{"zona-fantasma"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWarehouseCreate_DivisionSinPadre_Falla(t *testing.T) {
	fx := newWarehouseFixture()

	_, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "División", Tier: entity.TierDivision, Pincodes: []string{"110001"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"una división requiere padre zonal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Referencia al padre
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseCreate_DivisionConPadreInexistente_Falla(t *testing.T) {
	fx := newWarehouseFixture()
	parent := "no-existe"

	_, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "División", Tier: entity.TierDivision,
		ParentWarehouseID: &parent, Pincodes: []string{"110001"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownWarehouse)
}

func TestWarehouseCreate_DivisionConPadreCentral_Falla(t *testing.T) {
	fx := newWarehouseFixture()
	central, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "Central", Tier: entity.TierCentral,
	})
	require.NoError(t, err)

	_, err = fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "División", Tier: entity.TierDivision,
		ParentWarehouseID: &central.ID, Pincodes: []string{"110001"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownWarehouse,
		"el padre de una división debe ser zonal")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pincodes de división: pertenencia a las zonas del padre y exclusividad
// entre hermanas
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseCreate_DivisionValida(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110001", "110002")
	zonal := fx.createZonal(t, "zona-norte")

	out, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "División A", Tier: entity.TierDivision,
		ParentWarehouseID: &zonal.ID, Pincodes: []string{"110001"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"110001"}, out.Pincodes)
}

func TestWarehouseCreate_DivisionPincodeFueraDeZonasDelPadre_Falla(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110001")
	zonal := fx.createZonal(t, "zona-norte")

	_, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "División A", Tier: entity.TierDivision,
		ParentWarehouseID: &zonal.ID, Pincodes: []string{"560001"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el pincode debe pertenecer a las zonas atendidas por el padre")
}

func TestWarehouseCreate_PincodeDeHermana_Conflicto(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110001", "110002")
	zonal := fx.createZonal(t, "zona-norte")
	ctx := context.Background()

	divA, err := fx.uc.Create(ctx, dto.CreateWarehouseRequest{
		Name: "División A", Tier: entity.TierDivision,
		ParentWarehouseID: &zonal.ID, Pincodes: []string{"110001"},
	})
	require.NoError(t, err)

	_, err = fx.uc.Create(ctx, dto.CreateWarehouseRequest{
		Name: "División B", Tier: entity.TierDivision,
		ParentWarehouseID: &zonal.ID, Pincodes: []string{"110001"},
	})
	require.Error(t, err)

	var conflict *domain.PincodeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "110001", conflict.Pincode)
	assert.Equal(t, divA.ID, conflict.OwnerID, "el error debe identificar a la dueña actual")
	assert.ErrorIs(t, err, domain.ErrPincodeConflict)
}

func TestWarehouseUpdate_RevalidaJerarquia(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110001", "110002")
	zonal := fx.createZonal(t, "zona-norte")
	ctx := context.Background()

	div, err := fx.uc.Create(ctx, dto.CreateWarehouseRequest{
		Name: "División A", Tier: entity.TierDivision,
		ParentWarehouseID: &zonal.ID, Pincodes: []string{"110001"},
	})
	require.NoError(t, err)

	// Ampliar a un segundo pincode servido: válido.
	out, err := fx.uc.Update(ctx, div.ID, dto.UpdateWarehouseRequest{
		Pincodes: []string{"110001", "110002"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"110001", "110002"}, out.Pincodes)

	// Cambiar a un pincode fuera de las zonas del padre: inválido.
	_, err = fx.uc.Update(ctx, div.ID, dto.UpdateWarehouseRequest{
		Pincodes: []string{"999999"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete y pincodes disponibles
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseDelete_ConHijas_Falla(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110001")
	zonal := fx.createZonal(t, "zona-norte")
	ctx := context.Background()

	_, err := fx.uc.Create(ctx, dto.CreateWarehouseRequest{
		Name: "División A", Tier: entity.TierDivision,
		ParentWarehouseID: &zonal.ID, Pincodes: []string{"110001"},
	})
	require.NoError(t, err)

	err = fx.uc.Delete(ctx, zonal.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents,
		"una bodega con hijas no debe poder borrarse")
}

func TestWarehouseDelete_ConStock_Falla(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110001")
	zonal := fx.createZonal(t, "zona-norte")

	require.NoError(t, fx.stockRepo.Set("prod-1", zonal.ID, 10))

	err := fx.uc.Delete(context.Background(), zonal.ID)
	assert.ErrorIs(t, err, domain.ErrHasDependents,
		"una bodega que retiene stock no debe poder borrarse")
}

func TestWarehouseDelete_SinDependencias(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110001")
	zonal := fx.createZonal(t, "zona-norte")
	ctx := context.Background()

	require.NoError(t, fx.uc.Delete(ctx, zonal.ID))

	out, err := fx.uc.GetByID(zonal.ID)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestWarehouseAvailablePincodes(t *testing.T) {
	fx := newWarehouseFixture()
	fx.seedZone(t, "zona-norte", "110003", "110001", "110002")
	zonal := fx.createZonal(t, "zona-norte")
	ctx := context.Background()

	_, err := fx.uc.Create(ctx, dto.CreateWarehouseRequest{
		Name: "División A", Tier: entity.TierDivision,
		ParentWarehouseID: &zonal.ID, Pincodes: []string{"110002"},
	})
	require.NoError(t, err)

	out, err := fx.uc.AvailablePincodes(zonal.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"110001", "110003"}, out.Pincodes,
		"debe excluir los reclamados por hermanas y ordenar el resto")
}

func TestWarehouseAvailablePincodes_SoloZonal(t *testing.T) {
	fx := newWarehouseFixture()
	central, err := fx.uc.Create(context.Background(), dto.CreateWarehouseRequest{
		Name: "Central", Tier: entity.TierCentral,
	})
	require.NoError(t, err)

	_, err = fx.uc.AvailablePincodes(central.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
