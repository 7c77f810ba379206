package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/retail-admin/internal/application/auth"
	"github.com/jhoicas/retail-admin/internal/application/forecasting"
	"github.com/jhoicas/retail-admin/internal/application/inventory"
	"github.com/jhoicas/retail-admin/internal/application/orders"
	"github.com/jhoicas/retail-admin/internal/application/usecase"
	"github.com/jhoicas/retail-admin/internal/application/vision"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	AlertUC       *usecase.AlertUseCase
	ModuleService *usecase.ModuleService
	InventoryUC   *inventory.UseCase
	MovementUC    *inventory.MovementUseCase
	OrderUC       *orders.OrderUseCase
	CustomerUC    *orders.CustomerUseCase
	ForecastUC    *forecasting.UseCase
	VisionUC      *vision.UseCase
	JWTSecret     string
	CSRF          bool
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	if deps.CSRF {
		api.Use(CSRFMiddleware())
	}

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", authHandler.Login)
	// entrega la cookie csrftoken antes del primer POST
	api.Get("/auth/csrf", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", authHandler.ListUsers)
	users.Post("/", authHandler.CreateUser)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Create)
	products.Get("/:id/", productHandler.GetByID)
	products.Put("/:id/", RequireRole(entity.RoleAdmin, entity.RoleManager), productHandler.Update)

	// Inventory
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.MovementUC)
	inv.Get("/levels/", inventoryHandler.ListLevels)
	inv.Get("/levels/:id/", inventoryHandler.GetLevel)
	inv.Patch("/levels/:id/", inventoryHandler.AdjustLevel)
	inv.Get("/transactions/", inventoryHandler.ListTransactions)
	inv.Get("/stores/", inventoryHandler.ListStores)
	inv.Get("/movements/", inventoryHandler.ListMovements)
	inv.Post("/movements/", inventoryHandler.CreateMovement)
	inv.Post("/movements/:id/approve/", RequireRole(entity.RoleAdmin, entity.RoleManager), inventoryHandler.ApproveMovement)
	inv.Post("/movements/:id/cancel/", inventoryHandler.CancelMovement)

	// Orders
	ord := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.CustomerUC)
	ord.Get("/orders/", orderHandler.List)
	ord.Post("/orders/", orderHandler.Create)
	ord.Get("/orders/:id/", orderHandler.GetByID)
	ord.Patch("/orders/:id/", orderHandler.Update)
	ord.Post("/orders/:id/confirm/", orderHandler.Confirm)
	ord.Get("/customers/", orderHandler.ListCustomers)
	ord.Post("/customers/", orderHandler.CreateCustomer)

	// Alerts
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Post("/:id/acknowledge/", alertHandler.Acknowledge)

	// Forecasting (módulo opcional)
	fc := protected.Group("/forecasting", RequireModule(usecase.ModuleForecasting, deps.ModuleService))
	forecastHandler := NewForecastHandler(deps.ForecastUC)
	fc.Get("/results/", forecastHandler.ListResults)
	fc.Post("/results/", forecastHandler.CreateResult)
	fc.Get("/models/", forecastHandler.ListModels)
	fc.Post("/models/:id/run/", forecastHandler.RunModel)
	fc.Get("/recommendations/", forecastHandler.Recommendations)

	// Vision (módulo opcional)
	vis := protected.Group("/vision", RequireModule(usecase.ModuleVision, deps.ModuleService))
	visionHandler := NewVisionHandler(deps.VisionUC)
	vis.Get("/shelf-analysis/", visionHandler.ListShelfAnalyses)
	vis.Post("/shelf-analysis/", visionHandler.CreateShelfAnalysis)
	vis.Get("/detection-models/", visionHandler.ListDetectionModels)
	vis.Post("/detection-tasks/", visionHandler.CreateDetectionTask)
}
