package entity

// Estrategias de distribución de stock de un producto (enumeración cerrada).
const (
	StrategyNationwide        = "nationwide"
	StrategyZonalWithFallback = "zonal_with_fallback"
	StrategyCentral           = "central"
	StrategyZonalOnly         = "zonal_only"
)

// DefaultZoneDistributionQty cantidad sembrada por bodega zonal cuando el
// administrador no indica otra.
const DefaultZoneDistributionQty = 50

// IsValidStrategy indica si el string corresponde a una estrategia conocida.
func IsValidStrategy(s string) bool {
	switch s {
	case StrategyNationwide, StrategyZonalWithFallback, StrategyCentral, StrategyZonalOnly:
		return true
	}
	return false
}
