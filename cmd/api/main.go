package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Botiquin-api/internal/application/allowance"
	appanalytics "github.com/jhoicas/Botiquin-api/internal/application/analytics"
	"github.com/jhoicas/Botiquin-api/internal/application/auth"
	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
	"github.com/jhoicas/Botiquin-api/internal/application/usecase"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/allowancepkg"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/cache"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Botiquin-api/internal/interfaces/http"
	"github.com/jhoicas/Botiquin-api/pkg/config"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	// Caché de reportes de estado: opcional, sin REDIS_URL se calcula siempre.
	var statusCache inventory.StatusCache
	if cfg.Redis.Enabled() {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer client.Close()
			statusCache = cache.NewStatusCache(client, cfg.App.Name, cfg.Redis.TTL)
			log.Info().Msg("caché de estado en redis habilitada")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	repos := postgres.NewStatusRepositories(pool)
	txRunner := postgres.NewTxRunner(pool)

	statusUC := inventory.NewStatusUseCase(repos, statusCache, log, cfg.Inventory.ExpiryWarningDays)
	shortageUC := inventory.NewShortageUseCase(statusUC)
	expiryUC := inventory.NewExpiryUseCase(repos, cfg.Inventory.ExpiryWarningDays)
	registerTxUC := inventory.NewRegisterTransactionUseCase(txRunner, repos.Items, repos.Transactions, statusCache, log)

	catalogUC := usecase.NewCatalogUseCase(repos.Molecules, repos.Equipments, statusCache, log)
	locationUC := usecase.NewLocationUseCase(repos.Locations, statusCache, log)
	containerUC := usecase.NewContainerUseCase(repos.Containers, repos.Locations, statusCache, log)
	itemUC := usecase.NewItemUseCase(usecase.ItemRepositories{
		Items:        repos.Items,
		Transactions: repos.Transactions,
		Molecules:    repos.Molecules,
		Equipments:   repos.Equipments,
		Containers:   repos.Containers,
		Locations:    repos.Locations,
	}, txRunner, statusCache, log)
	vesselUC := usecase.NewVesselUseCase(repos.Vessel, cfg.Inventory.ExpiryWarningDays, statusCache, log)
	userUC := usecase.NewUserUseCase(userRepo)
	allowanceUC := allowance.NewUseCase(
		repos.Allowances, repos.ReqQtys, repos.Molecules, repos.Equipments,
		txRunner, allowancepkg.Codec{}, statusCache, log,
	)
	dashboardUC := appanalytics.NewDashboardUseCase(statusUC, vesselUC)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.App.AdminEmail).Msg("administrador inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    httpRouter.BodyLimit,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`).
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Botiquín API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		StatusUC:    statusUC,
		ShortageUC:  shortageUC,
		ExpiryUC:    expiryUC,
		RegisterTx:  registerTxUC,
		ItemUC:      itemUC,
		CatalogUC:   catalogUC,
		LocationUC:  locationUC,
		ContainerUC: containerUC,
		VesselUC:    vesselUC,
		AllowanceUC: allowanceUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
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
