package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hornada-api/internal/application/analytics"
	"github.com/jhoicas/Hornada-api/internal/application/inventory"
	"github.com/jhoicas/Hornada-api/internal/application/returns"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReceiveStock     *inventory.ReceiveStockUseCase
	BatchQuery       *inventory.BatchQueryUseCase
	Review           *inventory.ReviewUseCase
	Deduction        *inventory.DeductionUseCase
	ProcessReturn    *returns.ProcessReturnUseCase
	ReturnHistory    *returns.HistoryUseCase
	ReturnSlip       *returns.SlipUseCase
	ReturnsReport    *analytics.ReturnsReportUseCase
	NotificationRepo repository.NotificationRepository
	Hub              *ws.Hub
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lotes (protegido). /review va antes de /:id para que Fiber no lo
	// capture como id.
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.ReceiveStock, deps.BatchQuery, deps.Review)
	batches.Post("/", RequireRole("admin", "panadero"), batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/review", batchHandler.Review)
	batches.Get("/:id", batchHandler.GetByID)

	// Inventario: stock y deducciones FIFO (protegido)
	invGroup := protected.Group("/inventory")
	deductionHandler := NewDeductionHandler(deps.Deduction)
	invGroup.Get("/stock/:productID", batchHandler.GetStock)
	invGroup.Post("/deductions", RequireRole("admin", "vendedor"), deductionHandler.Deduct)

	// Devoluciones de fin de día (protegido)
	returnsGroup := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.ProcessReturn, deps.ReturnHistory, deps.ReturnSlip)
	returnsGroup.Post("/", RequireRole("admin"), returnHandler.Process)
	returnsGroup.Get("/", returnHandler.List)
	returnsGroup.Get("/:id", returnHandler.GetByID)
	returnsGroup.Get("/:id/slip", returnHandler.DownloadSlip)

	// Analítica de mermas (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.ReturnsReport)
	analyticsGroup.Get("/returns", analyticsHandler.GetReturnsReport)

	// Avisos al personal (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationRepo)
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	// Feed de avisos en tiempo real; la auth va en el upgrade (token query param)
	wsHandler := NewWSHandler(deps.Hub, deps.JWTSecret)
	app.Use("/ws/notifications", wsHandler.Upgrade)
	app.Get("/ws/notifications", wsHandler.Feed())
}
