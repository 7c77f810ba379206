package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/retail-admin/internal/application/auth"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/forecasting"
	"github.com/jhoicas/retail-admin/internal/application/inventory"
	"github.com/jhoicas/retail-admin/internal/application/orders"
	"github.com/jhoicas/retail-admin/internal/application/usecase"
	"github.com/jhoicas/retail-admin/internal/application/vision"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
	"github.com/jhoicas/retail-admin/internal/infrastructure/memory"
	"github.com/jhoicas/retail-admin/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/retail-admin/internal/interfaces/http"
	"github.com/jhoicas/retail-admin/pkg/config"
	"github.com/jhoicas/retail-admin/pkg/logger"
)

// repositories agrupa los adaptadores de persistencia del driver elegido.
type repositories struct {
	tx        inventory.TxRunner
	stores    repository.StoreRepository
	products  repository.ProductRepository
	levels    repository.InventoryLevelRepository
	txns      repository.InventoryTransactionRepository
	movements repository.StockMovementRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	forecasts repository.ForecastRepository
	vision    repository.VisionRepository
	alerts    repository.AlertRepository
	users     repository.UserRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var repos repositories
	switch cfg.DB.Driver {
	case config.DriverMemory:
		db := memory.NewDB()
		if err := memory.Seed(db, memory.SeedOptions{AdminEmail: cfg.Seed.AdminEmail, AdminPassword: cfg.Seed.AdminPassword}); err != nil {
			log.Fatal().Err(err).Msg("sembrar almacén en memoria")
		}
		repos = repositories{
			tx:        memory.NewTxRunner(db),
			stores:    memory.NewStoreRepository(db),
			products:  memory.NewProductRepository(db),
			levels:    memory.NewInventoryLevelRepository(db),
			txns:      memory.NewInventoryTransactionRepository(db),
			movements: memory.NewStockMovementRepository(db),
			customers: memory.NewCustomerRepository(db),
			orders:    memory.NewOrderRepository(db),
			forecasts: memory.NewForecastRepository(db),
			vision:    memory.NewVisionRepository(db),
			alerts:    memory.NewAlertRepository(db),
			users:     memory.NewUserRepository(db),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = repositories{
			tx:        postgres.NewTxRunner(pool),
			stores:    postgres.NewStoreRepository(pool),
			products:  postgres.NewProductRepository(pool),
			levels:    postgres.NewInventoryLevelRepository(pool),
			txns:      postgres.NewInventoryTransactionRepository(pool),
			movements: postgres.NewStockMovementRepository(pool),
			customers: postgres.NewCustomerRepository(pool),
			orders:    postgres.NewOrderRepository(pool),
			forecasts: postgres.NewForecastRepository(pool),
			vision:    postgres.NewVisionRepository(pool),
			alerts:    postgres.NewAlertRepository(pool),
			users:     postgres.NewUserRepository(pool),
		}
	}

	inventoryUC := inventory.NewUseCase(repos.tx, repos.levels, repos.txns, repos.stores)
	movementUC := inventory.NewMovementUseCase(repos.tx, repos.movements, repos.levels, repos.stores, repos.products)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.levels)
	userUC := usecase.NewUserUseCase(repos.users)
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// En postgres el administrador inicial se crea si se configuró y aún no existe.
	if cfg.DB.Driver == config.DriverPostgres && cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		_, err := userUC.Create(ctx, dto.CreateUserRequest{
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
			Name:     "Administrador",
			Role:     "admin",
		})
		if err != nil && !errors.Is(err, domain.ErrEmailAlreadyExists) {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerPath != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerPath,
				Path:     "docs",
				Title:    "Retail Admin API",
			}))
		} else {
			log.Warn().Str("path", cfg.HTTP.SwaggerPath).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		ProductUC:     usecase.NewProductUseCase(repos.products),
		AlertUC:       usecase.NewAlertUseCase(repos.alerts),
		ModuleService: usecase.NewModuleService(cfg.Modules),
		InventoryUC:   inventoryUC,
		MovementUC:    movementUC,
		OrderUC:       orders.NewOrderUseCase(repos.tx, inventoryUC, repos.orders, repos.customers, repos.products, repos.stores),
		CustomerUC:    orders.NewCustomerUseCase(repos.customers),
		ForecastUC:    forecasting.NewUseCase(repos.forecasts, repos.products, replenishmentUC),
		VisionUC:      vision.NewUseCase(repos.vision, repos.stores),
		JWTSecret:     cfg.JWT.Secret,
		CSRF:          cfg.HTTP.CSRF,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
