package http

import (
	"github.com/gofiber/fiber/v2"
	appallowance "github.com/jhoicas/Botiquin-api/internal/application/allowance"
	appanalytics "github.com/jhoicas/Botiquin-api/internal/application/analytics"
	"github.com/jhoicas/Botiquin-api/internal/application/auth"
	"github.com/jhoicas/Botiquin-api/internal/application/inventory"
	"github.com/jhoicas/Botiquin-api/internal/application/usecase"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	StatusUC    *inventory.StatusUseCase
	ShortageUC  *inventory.ShortageUseCase
	ExpiryUC    *inventory.ExpiryUseCase
	RegisterTx  *inventory.RegisterTransactionUseCase
	ItemUC      *usecase.ItemUseCase
	CatalogUC   *usecase.CatalogUseCase
	LocationUC  *usecase.LocationUseCase
	ContainerUC *usecase.ContainerUseCase
	VesselUC    *usecase.VesselUseCase
	AllowanceUC *appallowance.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
// Lectura: cualquier rol. Escritura de stock y catálogo: admin o medic.
// Dotaciones, usuarios y ajustes del buque: admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	readers := RequireRole(entity.RoleAdmin, entity.RoleMedic, entity.RoleViewer)
	writers := RequireRole(entity.RoleAdmin, entity.RoleMedic)
	admins := RequireRole(entity.RoleAdmin)

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", admins, authHandler.Register)

	// Usuarios (admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", admins)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id/status", userHandler.SetStatus)

	// Estado de inventario y movimientos
	inventoryHandler := NewInventoryHandler(deps.StatusUC, deps.ShortageUC, deps.ExpiryUC, deps.RegisterTx)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/status", readers, inventoryHandler.GetStatus)
	invGroup.Get("/shortages", readers, inventoryHandler.GetShortages)
	invGroup.Get("/expiring", readers, inventoryHandler.GetExpiring)
	invGroup.Post("/transactions", writers, inventoryHandler.RegisterTransaction)

	// Unidades en stock
	itemHandler := NewItemHandler(deps.ItemUC, deps.RegisterTx)
	items := protected.Group("/items")
	items.Get("/", readers, itemHandler.List)
	items.Post("/", writers, itemHandler.Create)
	items.Get("/:id", readers, itemHandler.GetByID)
	items.Put("/:id", writers, itemHandler.Update)
	items.Delete("/:id", writers, itemHandler.Delete)
	items.Get("/:id/transactions", readers, itemHandler.Transactions)
	items.Post("/:id/perish", writers, itemHandler.Perish)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	molecules := protected.Group("/molecules")
	molecules.Get("/", readers, catalogHandler.ListMolecules)
	molecules.Post("/", writers, catalogHandler.CreateMolecule)
	molecules.Get("/:id", readers, catalogHandler.GetMolecule)
	molecules.Put("/:id", writers, catalogHandler.UpdateMolecule)
	molecules.Delete("/:id", writers, catalogHandler.DeleteMolecule)
	equipments := protected.Group("/equipments")
	equipments.Get("/", readers, catalogHandler.ListEquipments)
	equipments.Post("/", writers, catalogHandler.CreateEquipment)
	equipments.Get("/:id", readers, catalogHandler.GetEquipment)
	equipments.Put("/:id", writers, catalogHandler.UpdateEquipment)
	equipments.Delete("/:id", writers, catalogHandler.DeleteEquipment)

	// Ubicaciones y contenedores
	locationHandler := NewLocationHandler(deps.LocationUC, deps.ContainerUC)
	locations := protected.Group("/locations")
	locations.Get("/", readers, locationHandler.ListLocations)
	locations.Post("/", writers, locationHandler.CreateLocation)
	locations.Get("/:id", readers, locationHandler.GetLocation)
	locations.Put("/:id", writers, locationHandler.UpdateLocation)
	locations.Delete("/:id", writers, locationHandler.DeleteLocation)
	containers := protected.Group("/containers")
	containers.Get("/", readers, locationHandler.ListContainers)
	containers.Post("/", writers, locationHandler.CreateContainer)
	containers.Get("/:id", readers, locationHandler.GetContainer)
	containers.Put("/:id", writers, locationHandler.UpdateContainer)
	containers.Delete("/:id", writers, locationHandler.DeleteContainer)

	// Dotaciones
	allowanceHandler := NewAllowanceHandler(deps.AllowanceUC)
	allowances := protected.Group("/allowances")
	allowances.Get("/", readers, allowanceHandler.List)
	allowances.Post("/", admins, allowanceHandler.Create)
	allowances.Post("/import", admins, allowanceHandler.Import)
	allowances.Get("/:id", readers, allowanceHandler.GetByID)
	allowances.Put("/:id", admins, allowanceHandler.Update)
	allowances.Delete("/:id", admins, allowanceHandler.Delete)
	allowances.Patch("/:id/active", admins, allowanceHandler.SetActive)
	allowances.Get("/:id/requirements", readers, allowanceHandler.GetRequirements)
	allowances.Put("/:id/requirements", admins, allowanceHandler.SetRequirements)
	allowances.Get("/:id/export", admins, allowanceHandler.Export)

	// Buque y dashboard
	vesselHandler := NewVesselHandler(deps.VesselUC)
	protected.Get("/vessel", readers, vesselHandler.Get)
	protected.Put("/vessel", admins, vesselHandler.Save)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", readers, dashboardHandler.GetSummary)
}
