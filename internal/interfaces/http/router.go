package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/auth"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/entity"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/catalog"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/draft"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/views"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CargoUC     *catalog.CargoUseCase
	ReferenceUC *catalog.ReferenceUseCase
	ViewsUC     *views.UseCase
	LedgerUC    *ledger.UseCase
	DraftStore  *draft.Store
	AuthUC      *auth.UseCase
	PDF         ledger.RecordPDFGenerator
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

	// Datos de referencia (protegido)
	refHandler := NewReferenceHandler(deps.ReferenceUC)
	categories := protected.Group("/categories")
	categories.Post("/", refHandler.CreateCategory)
	categories.Get("/", refHandler.ListCategories)
	categories.Put("/:id", refHandler.UpdateCategory)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), refHandler.DeleteCategory)

	brands := protected.Group("/brands")
	brands.Post("/", refHandler.CreateBrand)
	brands.Get("/", refHandler.ListBrands)
	brands.Delete("/:id", RequireRole(entity.RoleAdmin), refHandler.DeleteBrand)

	units := protected.Group("/units")
	units.Post("/", refHandler.CreateUnit)
	units.Get("/", refHandler.ListUnits)
	units.Delete("/:id", RequireRole(entity.RoleAdmin), refHandler.DeleteUnit)

	// Catálogo de cargos y variantes (protegido)
	cargos := protected.Group("/cargos")
	cargoHandler := NewCargoHandler(deps.CargoUC, deps.ViewsUC)
	cargos.Post("/", cargoHandler.Create)
	cargos.Get("/", cargoHandler.List)
	cargos.Get("/grouped", cargoHandler.Grouped)
	cargos.Get("/:id", cargoHandler.GetByID)
	cargos.Put("/:id", cargoHandler.Update)
	cargos.Delete("/:id", RequireRole(entity.RoleAdmin), cargoHandler.Delete)
	cargos.Post("/:id/models", cargoHandler.CreateModel)
	cargos.Put("/:id/models/:modelId", cargoHandler.UpdateModel)
	cargos.Delete("/:id/models/:modelId", cargoHandler.DeleteModel)
	cargos.Patch("/:id/models/:modelId/quantity", cargoHandler.AdjustQuantity)

	// Libro de registros (protegido)
	records := protected.Group("/records")
	recordHandler := NewRecordHandler(deps.LedgerUC, deps.PDF)
	records.Post("/", recordHandler.CreateDraft)
	records.Get("/", recordHandler.List)
	records.Get("/:id", recordHandler.GetByID)
	records.Put("/:id", recordHandler.SaveDraft)
	records.Delete("/:id", recordHandler.Delete)
	records.Post("/:id/submit", recordHandler.Submit)
	records.Get("/:id/pdf", recordHandler.GetPDF)

	// Sesiones de borrador (protegido)
	drafts := protected.Group("/drafts")
	draftHandler := NewDraftHandler(deps.DraftStore, deps.LedgerUC)
	drafts.Post("/", draftHandler.Open)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Cancel)
	drafts.Post("/:id/select-cargo", draftHandler.SelectCargo)
	drafts.Post("/:id/select-model", draftHandler.SelectModel)
	drafts.Post("/:id/select-destination", draftHandler.SelectDestination)
	drafts.Post("/:id/picks", draftHandler.AddPick)
	drafts.Post("/:id/reset", draftHandler.Reset)
	drafts.Post("/:id/finalize", draftHandler.Finalize)
}
