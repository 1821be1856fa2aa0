package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de lotes atado a esa tx. Garantiza atomicidad de la deducción FIFO.
type TxRunner interface {
	Run(ctx context.Context, fn func(batchRepo repository.BatchRepository) error) error
}

// Clock entrega el "ahora" del negocio. Se inyecta para que la edad de los
// lotes sea determinista en tests; en producción es time.Now.
type Clock func() time.Time

// Notifier publica avisos al personal (tabla de notificaciones + websocket).
// Es fire-and-forget: sus errores se registran como warning y nunca afectan
// la operación principal.
type Notifier interface {
	Notify(ctx context.Context, n *entity.Notification) error
}
