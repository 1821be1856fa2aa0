package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
	"github.com/jhoicas/Hornada-api/pkg/logger"
)

// Plazo propio para efectos posteriores al commit; la operación principal
// no espera por la bitácora ni por los avisos.
const sideEffectTimeout = 3 * time.Second

// recordAudit escribe en la bitácora después del commit; un fallo solo
// genera warning, nunca revierte la operación documentada.
func recordAudit(auditRepo repository.AuditLogRepository, log *logger.Logger, action, targetType, targetID, actorID string, details any, now time.Time) {
	payload, err := json.Marshal(details)
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("bitácora: no se pudo serializar el detalle")
		payload = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		ActorID:    actorID,
		Status:     entity.AuditStatusSuccess,
		Details:    payload,
		CreatedAt:  now,
	}
	if err := auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", action).Str("target_id", targetID).
			Msg("bitácora: fallo al registrar (la operación principal ya quedó aplicada)")
	}
}

// sendNotification publica un aviso al personal después del commit.
func sendNotification(notifier Notifier, log *logger.Logger, n *entity.Notification) {
	if notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
	defer cancel()

	if err := notifier.Notify(ctx, n); err != nil {
		log.Warn().Err(err).Str("type", n.Type).Msg("notificación: fallo al publicar el aviso")
	}
}
