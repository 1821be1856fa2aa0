package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Hornada-api/internal/application/analytics"
	"github.com/jhoicas/Hornada-api/internal/application/inventory"
	appreturns "github.com/jhoicas/Hornada-api/internal/application/returns"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/memory"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/migration"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Hornada-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/ws"
	httpRouter "github.com/jhoicas/Hornada-api/internal/interfaces/http"
	"github.com/jhoicas/Hornada-api/pkg/config"
	"github.com/jhoicas/Hornada-api/pkg/logger"
)

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
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		batchRepo        repository.BatchRepository
		returnRepo       repository.ReturnRepository
		auditRepo        repository.AuditLogRepository
		notificationRepo repository.NotificationRepository
		analyticsRepo    repository.AnalyticsRepository
		invTx            inventory.TxRunner
		retTx            appreturns.ReturnsTxRunner
	)

	if cfg.DB.Driver == "memory" {
		// Modo sin base de datos: store en memoria con lotes de demostración.
		store := memory.NewSeeded()
		batchRepo = store.Batches()
		returnRepo = store.Returns()
		auditRepo = store.AuditLogs()
		notificationRepo = store.Notifications()
		analyticsRepo = store.Analytics()
		invTx = store
		retTx = store
		log.Warn().Msg("corriendo con store en memoria; los datos se pierden al apagar")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.Migrations.Run {
			m, err := migration.New(cfg.DB.ConnectionString(), cfg.Migrations.Path, log.Zerolog())
			if err != nil {
				log.Fatal().Err(err).Msg("preparar migraciones")
			}
			if err := m.Up(); err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			m.Close()
		}

		batchRepo = postgres.NewBatchRepository(pool)
		returnRepo = postgres.NewReturnRepository(pool)
		auditRepo = postgres.NewAuditLogRepository(pool)
		notificationRepo = postgres.NewNotificationRepository(pool)
		analyticsRepo = postgres.NewAnalyticsRepository(pool)
		txRunner := postgres.NewTxRunner(pool)
		invTx = txRunner
		retTx = txRunner
	}

	hub := ws.NewHub(log.Zerolog())
	notifier := notify.NewNotifier(notificationRepo, hub)

	policy := batch.AgePolicy{
		FreshMaxDays:  cfg.Inventory.FreshMaxDays,
		MediumMaxDays: cfg.Inventory.MediumMaxDays,
	}
	opTimeout := cfg.Inventory.OpTimeout()

	receiveUC := inventory.NewReceiveStockUseCase(batchRepo, auditRepo, notifier, policy, time.Now, log, opTimeout)
	queryUC := inventory.NewBatchQueryUseCase(batchRepo, policy, time.Now, opTimeout)
	reviewUC := inventory.NewReviewUseCase(batchRepo, policy, time.Now, opTimeout)
	deductionUC := inventory.NewDeductionUseCase(invTx, auditRepo, notifier, time.Now, log, opTimeout)

	processReturnUC := appreturns.NewProcessReturnUseCase(retTx, returnRepo, auditRepo, notifier, time.Now, log, opTimeout)
	historyUC := appreturns.NewHistoryUseCase(returnRepo, time.Now, opTimeout)
	slipGenerator := infrapdf.NewSlipGenerator(cfg.App.Name)
	slipUC := appreturns.NewSlipUseCase(returnRepo, slipGenerator, opTimeout)

	returnsReportUC := appanalytics.NewReturnsReportUseCase(analyticsRepo, time.Now, opTimeout)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hornada API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReceiveStock:     receiveUC,
		BatchQuery:       queryUC,
		Review:           reviewUC,
		Deduction:        deductionUC,
		ProcessReturn:    processReturnUC,
		ReturnHistory:    historyUC,
		ReturnSlip:       slipUC,
		ReturnsReport:    returnsReportUC,
		NotificationRepo: notificationRepo,
		Hub:              hub,
		JWTSecret:        cfg.JWT.Secret,
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
