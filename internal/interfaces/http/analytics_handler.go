package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hornada-api/internal/application/analytics"
	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain"
)

// AnalyticsHandler maneja los endpoints de analítica de devoluciones.
type AnalyticsHandler struct {
	uc *analytics.ReturnsReportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.ReturnsReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetReturnsReport godoc
// @Summary      Reporte de pérdida por devoluciones
// @Description  Totales del período (actas, lotes, unidades y valor devuelto,
//               porcentaje promedio) más el desglose por producto ordenado por
//               valor devuelto.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Inicio del período (YYYY-MM-DD). Default: hace 30 días."
// @Param        to     query  string  false  "Fin del período (YYYY-MM-DD) inclusive. Default: hoy."
// @Param        top_n  query  int     false  "Máx. productos en el desglose (default 20, max 200)."
// @Success      200  {object}  dto.ReturnsAnalyticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/returns [get]
func (h *AnalyticsHandler) GetReturnsReport(c *fiber.Ctx) error {
	dr := dto.DateRangeRequest{From: c.Query("from"), To: c.Query("to")}
	topN := c.QueryInt("top_n")

	report, err := h.uc.GetReturnsReport(c.Context(), dr, topN)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "rango de fechas inválido",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	return c.JSON(report)
}
