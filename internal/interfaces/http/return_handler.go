package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/application/returns"
	"github.com/jhoicas/Hornada-api/internal/domain"
)

// ReturnHandler maneja las devoluciones de fin de día (protegido).
type ReturnHandler struct {
	process *returns.ProcessReturnUseCase
	history *returns.HistoryUseCase
	slip    *returns.SlipUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(process *returns.ProcessReturnUseCase, history *returns.HistoryUseCase, slip *returns.SlipUseCase) *ReturnHandler {
	return &ReturnHandler{process: process, history: history, slip: slip}
}

// Process godoc
// @Summary      Procesar la devolución de fin de día
// @Description  Marca los lotes seleccionados como devueltos, calcula el valor
//               a recuperar según el porcentaje pactado por lote y deja el acta
//               registrada. Los lotes en batches_to_keep no se tocan.
// @Tags         returns
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessReturnRequest  true  "batches_to_return ([{batch_id, return_percentage}]), batches_to_keep, idempotency_key (opcional)"
// @Success      200   {object}  dto.ProcessReturnResponse
// @Failure      400   {object}  dto.ProcessReturnResponse
// @Failure      404   {object}  dto.ProcessReturnResponse
// @Failure      409   {object}  dto.ProcessReturnResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Process(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ProcessReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.process.ProcessReturn(c.Context(), userID, in)
	if err != nil {
		return h.processFailure(c, err)
	}
	return c.JSON(out)
}

// processFailure traduce el error de dominio al contrato {success:false, error}.
func (h *ReturnHandler) processFailure(c *fiber.Ctx, err error) error {
	fail := dto.ProcessReturnResponse{Success: false}
	switch {
	case errors.Is(err, domain.ErrNoBatchesSelected):
		// Texto exacto que muestra la pantalla de devoluciones.
		fail.Error = "No batches selected."
		return c.Status(fiber.StatusBadRequest).JSON(fail)
	case errors.Is(err, domain.ErrInvalidPercentage), errors.Is(err, domain.ErrInvalidInput):
		fail.Error = err.Error()
		return c.Status(fiber.StatusBadRequest).JSON(fail)
	case errors.Is(err, domain.ErrBatchNotFound):
		fail.Error = err.Error()
		return c.Status(fiber.StatusNotFound).JSON(fail)
	case errors.Is(err, domain.ErrBatchNotActive), errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicateReturn):
		fail.Error = err.Error()
		return c.Status(fiber.StatusConflict).JSON(fail)
	default:
		fail.Error = err.Error()
		return c.Status(fiber.StatusInternalServerError).JSON(fail)
	}
}

// List godoc
// @Summary      Historial de devoluciones
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Fecha inicial YYYY-MM-DD (default: hace 30 días)"
// @Param        to      query  string  false  "Fecha final YYYY-MM-DD inclusive (default: hoy)"
// @Param        limit   query  int     false  "Tamaño de página (default 20, máx 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ReturnListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	dr := dto.DateRangeRequest{From: c.Query("from"), To: c.Query("to")}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	out, err := h.history.ListReturns(c.Context(), dr, page)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de un acta de devolución
// @Tags         returns
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del acta"
// @Success      200  {object}  dto.ReturnRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id} [get]
func (h *ReturnHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.history.GetReturn(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acta no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadSlip godoc
// @Summary      Descargar el acta de devolución en PDF
// @Tags         returns
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del acta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/returns/{id}/slip [get]
func (h *ReturnHandler) DownloadSlip(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdf, filename, err := h.slip.DownloadSlip(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "acta no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
