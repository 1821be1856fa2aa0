// Package notify implementa el puerto Notifier: guarda el aviso y lo publica
// en vivo por websocket.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/application/inventory"
	"github.com/jhoicas/Hornada-api/internal/application/returns"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/ws"
)

var (
	_ inventory.Notifier = (*Notifier)(nil)
	_ returns.Notifier   = (*Notifier)(nil)
)

// Notifier persiste cada aviso en la tabla de notificaciones y lo difunde a
// los websockets conectados. El broadcast nunca falla la operación: si el
// insert funcionó, el aviso ya quedó en la campanita.
type Notifier struct {
	repo repository.NotificationRepository
	hub  *ws.Hub
}

// NewNotifier construye el notificador compuesto.
func NewNotifier(repo repository.NotificationRepository, hub *ws.Hub) *Notifier {
	return &Notifier{repo: repo, hub: hub}
}

// Notify guarda el aviso y lo publica.
func (n *Notifier) Notify(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := n.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("guardar aviso: %w", err)
	}

	if n.hub != nil {
		payload, err := json.Marshal(toDTO(notification))
		if err == nil {
			n.hub.Broadcast(payload)
		}
	}
	return nil
}

func toDTO(n *entity.Notification) dto.NotificationDTO {
	return dto.NotificationDTO{
		ID:          n.ID,
		Type:        n.Type,
		Title:       n.Title,
		Message:     n.Message,
		RelatedType: n.RelatedType,
		RelatedID:   n.RelatedID,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
