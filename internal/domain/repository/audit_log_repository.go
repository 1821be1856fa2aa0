package repository

import (
	"context"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

// AuditLogRepository define el puerto de la bitácora de operaciones.
// Es de solo escritura desde este servicio; la consulta vive en el back-office.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}
