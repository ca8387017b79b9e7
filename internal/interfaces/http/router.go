package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Logistica-api/internal/application/auth"
	"github.com/jhoicas/Logistica-api/internal/application/distribution"
	"github.com/jhoicas/Logistica-api/internal/application/fulfillment"
	"github.com/jhoicas/Logistica-api/internal/application/usecase"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ZoneUC      *usecase.ZoneUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	StockUC     *usecase.StockUseCase
	StrategyUC  *distribution.ApplyStrategyUseCase
	ResolveUC   *fulfillment.ResolveUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Zones (protegido; escrituras solo admin)
	zones := protected.Group("/zones")
	zoneHandler := NewZoneHandler(deps.ZoneUC)
	zones.Get("/", zoneHandler.List)
	zones.Get("/active", zoneHandler.ListActive)
	zones.Get("/lookup", zoneHandler.LookupByPincode)
	zones.Get("/:id", zoneHandler.GetByID)
	zones.Post("/", adminOnly, zoneHandler.Create)
	zones.Put("/:id", adminOnly, zoneHandler.Update)
	zones.Post("/:id/pincodes", adminOnly, zoneHandler.AssignPincodes)

	// Warehouses (protegido; escrituras solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Get("/:id/available-pincodes", warehouseHandler.AvailablePincodes)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Products y estrategia de distribución (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StrategyUC)
	stockHandler := NewStockHandler(deps.StockUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/stock-summary", stockHandler.Summary)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/distribution-strategy", productHandler.SaveStrategy)

	// Stock (protegido)
	stock := protected.Group("/stock")
	stock.Post("/adjustments", stockHandler.Adjust)

	// Fulfillment (protegido, solo lectura)
	ffGroup := protected.Group("/fulfillment")
	fulfillmentHandler := NewFulfillmentHandler(deps.ResolveUC)
	ffGroup.Post("/resolve", fulfillmentHandler.Resolve)
}
