package entity

import "time"

// Niveles de la jerarquía de bodegas: central → zonal → división.
const (
	TierCentral  = "central"
	TierZonal    = "zonal"
	TierDivision = "division"
)

// Warehouse representa una bodega dentro de la red de tres niveles.
// Conceptualmente es una unión etiquetada por Tier aunque se persista plana:
//   - central: sin padre.
//   - zonal: padre central opcional; atiende una o más zonas (ZoneIDs).
//   - división: padre zonal obligatorio; atiende pincodes asignados en exclusiva
//     respecto a sus bodegas hermanas bajo el mismo padre zonal.
type Warehouse struct {
	ID                string
	Name              string
	Tier              string
	Active            bool
	ParentWarehouseID *string
	Address           string
	ZoneIDs           []string // solo tier zonal
	Pincodes          []string // solo tier división
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidTier indica si el string corresponde a un nivel de bodega conocido.
func IsValidTier(t string) bool {
	return t == TierCentral || t == TierZonal || t == TierDivision
}
