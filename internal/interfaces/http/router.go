package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/maestros-api/internal/application/auth"
	"github.com/jhoicas/maestros-api/internal/application/customer"
	"github.com/jhoicas/maestros-api/internal/application/item"
	"github.com/jhoicas/maestros-api/internal/domain/entity"
	"github.com/jhoicas/maestros-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *customer.UseCase
	ItemUC     *item.UseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	JWTIssuer  string
	Logger     *logger.Logger
}

// Router registra las rutas de la API.
// Las rutas estáticas van antes de /:id para que no las capture el parámetro.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/validate", authHandler.Validate)
	authGroup.Post("/register", requireAuth, adminOnly, authHandler.Register)

	// Customers (protegido)
	customers := api.Group("/customers", requireAuth)
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/all", customerHandler.ListAll)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/outstanding", customerHandler.GetOutstanding)
	customers.Get("/statistics", customerHandler.GetStatistics)
	customers.Get("/type/:type", customerHandler.GetByType)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Put("/:id/restore", adminOnly, customerHandler.Restore)
	customers.Delete("/:id/permanent", adminOnly, customerHandler.PermanentlyDelete)

	// Items (protegido)
	items := api.Group("/items", requireAuth)
	itemHandler := NewItemHandler(deps.ItemUC, log)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/all", itemHandler.ListAll)
	items.Get("/search", itemHandler.Search)
	items.Get("/sellable", itemHandler.GetSellable)
	items.Get("/purchasable", itemHandler.GetPurchasable)
	items.Get("/low-stock", itemHandler.GetLowStock)
	items.Get("/statistics", itemHandler.GetStatistics)
	items.Get("/type/:type", itemHandler.GetByType)
	items.Get("/sku/:sku", itemHandler.GetBySKU)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Put("/:id/restore", adminOnly, itemHandler.Restore)
	items.Delete("/:id/permanent", adminOnly, itemHandler.PermanentlyDelete)
}
