package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/auth"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/catalog"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/draft"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/ledger"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/application/views"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/domain/repository"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/infrastructure/memory"
	infrapdf "github.com/mmdxiaoxin/ProcureSellManage/internal/infrastructure/pdf"
	"github.com/mmdxiaoxin/ProcureSellManage/internal/infrastructure/postgres"
	httpRouter "github.com/mmdxiaoxin/ProcureSellManage/internal/interfaces/http"
	"github.com/mmdxiaoxin/ProcureSellManage/pkg/config"
	"github.com/mmdxiaoxin/ProcureSellManage/pkg/logger"
)

// repos agrupa los puertos de persistencia que el resto del cableado usa,
// independiente del backend elegido (postgres o memory).
type repos struct {
	cargo    repository.CargoRepository
	record   repository.RecordRepository
	category repository.CategoryRepository
	brand    repository.BrandRepository
	unit     repository.UnitRepository
	user     repository.UserRepository
	txRunner ledger.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Inventory.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.Inventory.Backend {
	case "memory":
		store := memory.NewStore()
		r = repos{
			cargo:    memory.NewCargoRepository(store),
			record:   memory.NewRecordRepository(store),
			category: memory.NewCategoryRepository(store),
			brand:    memory.NewBrandRepository(store),
			unit:     memory.NewUnitRepository(store),
			user:     memory.NewUserRepository(store),
			txRunner: memory.NewTxRunner(store),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			cargo:    postgres.NewCargoRepository(pool),
			record:   postgres.NewRecordRepository(pool),
			category: postgres.NewCategoryRepository(pool),
			brand:    postgres.NewBrandRepository(pool),
			unit:     postgres.NewUnitRepository(pool),
			user:     postgres.NewUserRepository(pool),
			txRunner: postgres.NewTxRunner(pool),
		}
	}

	cargoUC := catalog.NewCargoUseCase(r.cargo)
	referenceUC := catalog.NewReferenceUseCase(r.category, r.brand, r.unit)
	viewsUC := views.NewUseCase(r.cargo, r.category)
	ledgerUC := ledger.NewUseCase(r.txRunner, r.record, ledger.Policy{
		AllowNegativeStock: cfg.Inventory.AllowNegative,
	})
	draftStore := draft.NewStore(r.cargo, r.unit)
	authUC := auth.NewUseCase(r.user, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: comprobante imprimible de cada registro de movimiento
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CargoUC:     cargoUC,
		ReferenceUC: referenceUC,
		ViewsUC:     viewsUC,
		LedgerUC:    ledgerUC,
		DraftStore:  draftStore,
		AuthUC:      authUC,
		PDF:         pdfGenerator,
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
