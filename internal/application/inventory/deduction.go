package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
	"github.com/jhoicas/Hornada-api/pkg/logger"
)

// DeductionUseCase consume stock de los lotes más viejos primero (FIFO) para
// satisfacer una venta. Corre en una sola transacción con bloqueo de filas
// (SELECT FOR UPDATE): dos ventas simultáneas del mismo producto jamás ven la
// misma cantidad disponible.
type DeductionUseCase struct {
	txRunner  TxRunner
	auditRepo repository.AuditLogRepository
	notifier  Notifier
	clock     Clock
	log       *logger.Logger
	timeout   time.Duration
}

// NewDeductionUseCase construye el caso de uso.
func NewDeductionUseCase(
	txRunner TxRunner,
	auditRepo repository.AuditLogRepository,
	notifier Notifier,
	clock Clock,
	log *logger.Logger,
	timeout time.Duration,
) *DeductionUseCase {
	return &DeductionUseCase{
		txRunner:  txRunner,
		auditRepo: auditRepo,
		notifier:  notifier,
		clock:     clock,
		log:       log,
		timeout:   timeout,
	}
}

// DeductFromOldestBatches aplica la deducción FIFO todo-o-nada: si el stock
// activo no alcanza para la cantidad pedida, no se toca ningún lote y se
// devuelve ErrInsufficientStock.
func (uc *DeductionUseCase) DeductFromOldestBatches(ctx context.Context, actorID string, in dto.DeductionRequest) (*dto.DeductionResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !batch.ValidQuantity(in.Quantity) || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidQuantity
	}

	now := uc.clock()
	resp := &dto.DeductionResponse{
		ProductID: in.ProductID,
		Requested: in.Quantity,
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	err := uc.txRunner.Run(opCtx, func(batchRepo repository.BatchRepository) error {
		// 1) Bloquear los lotes activos del producto en orden FIFO
		locked, err := batchRepo.ListActiveByProductForUpdate(opCtx, in.ProductID)
		if err != nil {
			return err
		}

		// 2) Reordenar por edad en memoria; el ORDER BY ya viene FIFO pero el
		//    orden de consumo lo decide el dominio, no el SQL
		ordered := batch.SortByAge(locked)

		// 3) Verificar disponibilidad total (todo o nada)
		available := batch.TotalStock(ordered)
		if available.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		// 4) Consumir del más viejo al más nuevo, arrastrando el restante
		remaining := in.Quantity
		for _, b := range ordered {
			if !remaining.GreaterThan(decimal.Zero) {
				break
			}
			take := decimal.Min(b.Quantity, remaining)
			if take.IsZero() {
				continue
			}
			newQty := b.Quantity.Sub(take)
			status := b.Status
			if newQty.IsZero() {
				status = entity.BatchStatusDepleted
			}
			if err := batchRepo.UpdateQuantityStatus(opCtx, b.ID, newQty, status); err != nil {
				return err
			}
			remaining = remaining.Sub(take)
			resp.Deductions = append(resp.Deductions, dto.BatchDeductionDTO{
				BatchID:   b.ID,
				Deducted:  take,
				Remaining: newQty,
				Status:    status,
			})
		}

		resp.RemainingStock = available.Sub(in.Quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp.Success = true

	// 5) Bitácora y aviso de agotamiento, después del commit
	recordAudit(uc.auditRepo, uc.log, entity.AuditActionStockDeducted, "batch", in.ProductID, actorID, map[string]any{
		"product_id": in.ProductID,
		"requested":  in.Quantity,
		"reason":     in.Reason,
		"deductions": resp.Deductions,
	}, now)
	if resp.RemainingStock.IsZero() {
		sendNotification(uc.notifier, uc.log, &entity.Notification{
			ID:          uuid.New().String(),
			Type:        entity.NotificationTypeLowStock,
			Title:       "Producto agotado",
			Message:     fmt.Sprintf("El producto %s se quedó sin stock activo", in.ProductID),
			RelatedType: "batch",
			RelatedID:   in.ProductID,
			CreatedAt:   now,
		})
	}

	return resp, nil
}
