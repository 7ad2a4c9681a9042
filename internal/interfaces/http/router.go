package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	Ledger          *inventory.LedgerUseCase
	Deriver         *inventory.AlertDeriver
	AlertUC         *inventory.AlertUseCase
	StockCardUC     *inventory.StockCardUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	CategoryUC      *usecase.CategoryUseCase
	SupplierUC      *usecase.SupplierUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", adminOnly, authHandler.Register)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockCardUC)
	products.Get("/", productHandler.List)
	products.Get("/expiring", productHandler.ListExpiring)
	products.Post("/", writers, productHandler.Create)
	products.Get("/:id/stock-card.pdf", productHandler.StockCard)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)

	// Directorio: categorías y proveedores
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", writers, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", writers, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Deactivate)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", writers, supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", writers, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Deactivate)

	// Inventory: libro de movimientos y reposición
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.ReplenishmentUC)
	invGroup.Post("/movements", writers, inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Get("/replenishment", inventoryHandler.Replenishment)
	invGroup.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)

	// Alertas
	alertHandler := NewAlertHandler(deps.AlertUC, deps.Deriver)
	invGroup.Get("/alerts", alertHandler.List)
	invGroup.Get("/alerts/summary", alertHandler.Summary)
	invGroup.Post("/alerts/sweep", adminOnly, alertHandler.Sweep)
	invGroup.Get("/alerts/:id", alertHandler.Get)
	invGroup.Post("/alerts/:id/resolve", writers, alertHandler.Resolve)
}
