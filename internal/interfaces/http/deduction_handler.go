package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/application/inventory"
	"github.com/jhoicas/Hornada-api/internal/domain"
)

// DeductionHandler maneja las deducciones FIFO de venta (protegido).
type DeductionHandler struct {
	uc *inventory.DeductionUseCase
}

// NewDeductionHandler construye el handler.
func NewDeductionHandler(uc *inventory.DeductionUseCase) *DeductionHandler {
	return &DeductionHandler{uc: uc}
}

// Deduct godoc
// @Summary      Descontar stock empezando por la hornada más vieja
// @Description  Descuenta la cantidad pedida recorriendo los lotes activos del
//               producto en orden FIFO. Todo o nada: si el stock activo total
//               no alcanza, no se toca ningún lote.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeductionRequest  true  "product_id, quantity, reason (opcional)"
// @Success      200   {object}  dto.DeductionResponse
// @Failure      400   {object}  dto.DeductionResponse
// @Failure      409   {object}  dto.DeductionResponse
// @Router       /api/inventory/deductions [post]
func (h *DeductionHandler) Deduct(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.DeductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.DeductFromOldestBatches(c.Context(), userID, in)
	if err != nil {
		fail := dto.DeductionResponse{
			Success:   false,
			ProductID: in.ProductID,
			Requested: in.Quantity,
		}
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			fail.Error = "stock insuficiente para cubrir la cantidad pedida"
			return c.Status(fiber.StatusConflict).JSON(fail)
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity):
			fail.Error = err.Error()
			return c.Status(fiber.StatusBadRequest).JSON(fail)
		default:
			fail.Error = err.Error()
			return c.Status(fiber.StatusInternalServerError).JSON(fail)
		}
	}
	return c.JSON(out)
}
