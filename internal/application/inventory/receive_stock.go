package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
	"github.com/jhoicas/Hornada-api/pkg/logger"
)

// ReceiveStockUseCase registra la recepción de una hornada. La reposición
// siempre crea un lote nuevo; los lotes existentes jamás suman cantidad.
type ReceiveStockUseCase struct {
	batchRepo repository.BatchRepository
	auditRepo repository.AuditLogRepository
	notifier  Notifier
	policy    batch.AgePolicy
	clock     Clock
	log       *logger.Logger
	timeout   time.Duration
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(
	batchRepo repository.BatchRepository,
	auditRepo repository.AuditLogRepository,
	notifier Notifier,
	policy batch.AgePolicy,
	clock Clock,
	log *logger.Logger,
	timeout time.Duration,
) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{
		batchRepo: batchRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
		policy:    policy,
		clock:     clock,
		log:       log,
		timeout:   timeout,
	}
}

// ReceiveStock valida la entrada, crea el lote y dispara bitácora y aviso
// después de persistir.
func (uc *ReceiveStockUseCase) ReceiveStock(ctx context.Context, actorID string, in dto.CreateBatchRequest) (*dto.BatchDTO, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !batch.ValidQuantity(in.Quantity) || in.Quantity.IsZero() {
		return nil, domain.ErrInvalidQuantity
	}
	if in.OriginalPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.clock()

	dateAdded := now
	if in.DateAdded != "" {
		parsed, ok := batch.ParseDate(in.DateAdded)
		if !ok {
			return nil, fmt.Errorf("fecha %q: %w", in.DateAdded, domain.ErrInvalidInput)
		}
		dateAdded = parsed
	}

	salePrice := in.OriginalPrice
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		salePrice = *in.SalePrice
	}

	b := &entity.Batch{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		OriginalPrice: in.OriginalPrice,
		SalePrice:     salePrice,
		DateAdded:     dateAdded,
		Status:        entity.BatchStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	if err := uc.batchRepo.Create(opCtx, b); err != nil {
		return nil, err
	}

	recordAudit(uc.auditRepo, uc.log, entity.AuditActionBatchReceived, "batch", b.ID, actorID, map[string]any{
		"product_id": b.ProductID,
		"quantity":   b.Quantity,
		"date_added": b.DateAdded.Format("2006-01-02"),
	}, now)
	sendNotification(uc.notifier, uc.log, &entity.Notification{
		ID:          uuid.New().String(),
		Type:        entity.NotificationTypeBatchReceived,
		Title:       "Hornada recibida",
		Message:     fmt.Sprintf("Entraron %s unidades de %s", b.Quantity, b.ProductID),
		RelatedType: "batch",
		RelatedID:   b.ID,
		CreatedAt:   now,
	})

	out := ToBatchDTO(b, uc.policy, now)
	return &out, nil
}

// ToBatchDTO convierte la entidad al DTO de respuesta con la edad calculada.
func ToBatchDTO(b *entity.Batch, policy batch.AgePolicy, now time.Time) dto.BatchDTO {
	age := batch.Age(b.DateAdded, now)
	category := policy.Categorize(age)
	return dto.BatchDTO{
		ID:            b.ID,
		ProductID:     b.ProductID,
		Quantity:      b.Quantity,
		OriginalPrice: b.OriginalPrice,
		SalePrice:     b.SalePrice,
		DateAdded:     b.DateAdded.Format("2006-01-02"),
		Status:        b.Status,
		AgeDays:       age,
		AgeCategory:   category,
		Colors:        batch.Colors(category),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
