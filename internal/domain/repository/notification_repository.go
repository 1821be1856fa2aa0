package repository

import (
	"context"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia de avisos al personal.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
