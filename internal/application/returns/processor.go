package returns

import (
	"context"
	"encoding/json"
	"errors"
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

// ProcessReturnUseCase ejecuta la devolución de fin de día: marca los lotes
// seleccionados como devueltos, calcula el valor recuperado con el precio
// autoritativo de cada lote y registra el acta, todo en una transacción.
// La bitácora y el aviso al personal se disparan después del commit.
type ProcessReturnUseCase struct {
	txRunner   ReturnsTxRunner
	returnRepo repository.ReturnRepository
	auditRepo  repository.AuditLogRepository
	notifier   Notifier
	clock      Clock
	log        *logger.Logger
	timeout    time.Duration
}

// NewProcessReturnUseCase construye el caso de uso.
func NewProcessReturnUseCase(
	txRunner ReturnsTxRunner,
	returnRepo repository.ReturnRepository,
	auditRepo repository.AuditLogRepository,
	notifier Notifier,
	clock Clock,
	log *logger.Logger,
	timeout time.Duration,
) *ProcessReturnUseCase {
	return &ProcessReturnUseCase{
		txRunner:   txRunner,
		returnRepo: returnRepo,
		auditRepo:  auditRepo,
		notifier:   notifier,
		clock:      clock,
		log:        log,
		timeout:    timeout,
	}
}

// ProcessReturn valida la selección, aplica la devolución y devuelve el acta.
// Precio original y cantidad se leen de la fila del lote, nunca del cliente;
// el cliente solo decide qué lotes devuelve y a qué porcentaje.
func (uc *ProcessReturnUseCase) ProcessReturn(ctx context.Context, actorID string, in dto.ProcessReturnRequest) (*dto.ProcessReturnResponse, error) {
	// 1) Validaciones de entrada (fuera de la tx)
	if len(in.BatchesToReturn) == 0 {
		return nil, domain.ErrNoBatchesSelected
	}
	pctByID := make(map[string]dto.ReturnBatchInput, len(in.BatchesToReturn))
	ids := make([]string, 0, len(in.BatchesToReturn))
	for _, sel := range in.BatchesToReturn {
		if sel.BatchID == "" {
			return nil, fmt.Errorf("lote sin id en la selección: %w", domain.ErrInvalidInput)
		}
		if _, dup := pctByID[sel.BatchID]; dup {
			return nil, fmt.Errorf("lote %s repetido en la selección: %w", sel.BatchID, domain.ErrInvalidInput)
		}
		if !batch.ValidPercentage(sel.ReturnPercentage) {
			return nil, fmt.Errorf("lote %s con porcentaje %s: %w", sel.BatchID, sel.ReturnPercentage, domain.ErrInvalidPercentage)
		}
		pctByID[sel.BatchID] = sel
		ids = append(ids, sel.BatchID)
	}
	kept := make([]string, 0, len(in.BatchesToKeep))
	for _, id := range in.BatchesToKeep {
		if id == "" {
			continue
		}
		if _, both := pctByID[id]; both {
			return nil, fmt.Errorf("lote %s está a la vez en devolver y conservar: %w", id, domain.ErrInvalidInput)
		}
		kept = append(kept, id)
	}

	opCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// 2) Guardia de idempotencia: si la clave ya existe, devolver el acta
	//    original en lugar de acreditar dos veces
	if in.IdempotencyKey != "" {
		existing, err := uc.returnRepo.GetByIdempotencyKey(opCtx, in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return uc.alreadyProcessed(existing), nil
		}
	}

	now := uc.clock()
	record := &entity.ReturnRecord{
		ID:             uuid.New().String(),
		ProcessedBy:    actorID,
		KeptBatchIDs:   kept,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
	}

	err := uc.txRunner.RunReturns(opCtx, func(
		batchRepo repository.BatchRepository,
		returnRepo repository.ReturnRepository,
	) error {
		// 3) Bloquear los lotes seleccionados (FOR UPDATE en orden de id)
		locked, err := batchRepo.GetManyForUpdate(opCtx, ids)
		if err != nil {
			return err
		}
		if len(locked) != len(ids) {
			return fmt.Errorf("la selección trae lotes inexistentes: %w", domain.ErrBatchNotFound)
		}
		for _, b := range locked {
			if !b.IsActive() {
				return fmt.Errorf("lote %s en estado %s: %w", b.ID, b.Status, domain.ErrBatchNotActive)
			}
		}

		// 4) Calcular las líneas del más viejo al más nuevo (el acta se lee
		//    en el mismo orden en que se revisó la vitrina)
		for _, b := range batch.SortByAge(locked) {
			sel := pctByID[b.ID]
			perUnit, value := batch.ReturnValue(b.OriginalPrice, b.Quantity, sel.ReturnPercentage)
			record.Lines = append(record.Lines, entity.ReturnLine{
				BatchID:          b.ID,
				ProductID:        b.ProductID,
				Quantity:         b.Quantity,
				OriginalPrice:    b.OriginalPrice,
				ReturnPercentage: sel.ReturnPercentage,
				ValuePerUnit:     perUnit,
				Value:            value,
			})
			record.TotalQuantity = record.TotalQuantity.Add(b.Quantity)
			record.TotalValue = record.TotalValue.Add(value)
		}

		// 5) Transicionar cada lote a returned, condicionado a que siga activo
		for _, line := range record.Lines {
			updated, err := batchRepo.MarkReturned(opCtx, line.BatchID)
			if err != nil {
				return err
			}
			if !updated {
				return fmt.Errorf("lote %s cambió de estado durante la devolución: %w", line.BatchID, domain.ErrConflict)
			}
		}

		// 6) Insertar el acta en la misma transacción
		return returnRepo.Create(opCtx, record)
	})
	if err != nil {
		// Carrera de idempotencia: otro request con la misma clave ganó el
		// commit; se devuelve su acta como éxito repetido
		if in.IdempotencyKey != "" && (errors.Is(err, domain.ErrDuplicateReturn) || errors.Is(err, domain.ErrConflict)) {
			if existing, lookupErr := uc.returnRepo.GetByIdempotencyKey(opCtx, in.IdempotencyKey); lookupErr == nil && existing != nil {
				return uc.alreadyProcessed(existing), nil
			}
		}
		return nil, err
	}

	// 7) Bitácora y aviso, después del commit (best-effort)
	uc.audit(actorID, record, now)
	uc.notify(record, now)

	return uc.toResponse(record, false), nil
}

func (uc *ProcessReturnUseCase) alreadyProcessed(rec *entity.ReturnRecord) *dto.ProcessReturnResponse {
	return uc.toResponse(rec, true)
}

func (uc *ProcessReturnUseCase) toResponse(rec *entity.ReturnRecord, repeated bool) *dto.ProcessReturnResponse {
	return &dto.ProcessReturnResponse{
		Success:          true,
		ReturnID:         rec.ID,
		TotalValue:       rec.TotalValue,
		TotalQuantity:    rec.TotalQuantity,
		Lines:            toLineDTOs(rec.Lines),
		KeptBatchIDs:     rec.KeptBatchIDs,
		AlreadyProcessed: repeated,
	}
}

func toLineDTOs(lines []entity.ReturnLine) []dto.ReturnLineDTO {
	out := make([]dto.ReturnLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ReturnLineDTO{
			BatchID:          l.BatchID,
			ProductID:        l.ProductID,
			Quantity:         l.Quantity,
			OriginalPrice:    l.OriginalPrice,
			ReturnPercentage: l.ReturnPercentage,
			ValuePerUnit:     l.ValuePerUnit,
			Value:            l.Value,
		})
	}
	return out
}

// audit registra el acta en la bitácora; un fallo solo genera warning.
func (uc *ProcessReturnUseCase) audit(actorID string, rec *entity.ReturnRecord, now time.Time) {
	details, err := json.Marshal(map[string]any{
		"return_id":      rec.ID,
		"total_value":    rec.TotalValue,
		"total_quantity": rec.TotalQuantity,
		"batch_count":    len(rec.Lines),
		"kept_count":     len(rec.KeptBatchIDs),
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("bitácora: no se pudo serializar el detalle de la devolución")
	}

	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		Action:     entity.AuditActionReturnProcessed,
		TargetType: "return",
		TargetID:   rec.ID,
		ActorID:    actorID,
		Status:     entity.AuditStatusSuccess,
		Details:    details,
		CreatedAt:  now,
	}
	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("return_id", rec.ID).
			Msg("bitácora: fallo al registrar la devolución (el acta ya quedó aplicada)")
	}
}

// notify avisa al personal del acta procesada; fire-and-forget.
func (uc *ProcessReturnUseCase) notify(rec *entity.ReturnRecord, now time.Time) {
	if uc.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	n := &entity.Notification{
		ID:          uuid.New().String(),
		Type:        entity.NotificationTypeReturnProcessed,
		Title:       "Devolución procesada",
		Message:     fmt.Sprintf("Se devolvieron %d lotes por un valor de %s", len(rec.Lines), rec.TotalValue),
		RelatedType: "return",
		RelatedID:   rec.ID,
		CreatedAt:   now,
	}
	if err := uc.notifier.Notify(ctx, n); err != nil {
		uc.log.Warn().Err(err).Str("return_id", rec.ID).Msg("notificación: fallo al publicar el aviso")
	}
}

// Plazo propio para efectos posteriores al commit.
const sideEffectTimeout = 3 * time.Second
