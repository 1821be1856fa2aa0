package returns

import (
	"context"
	"time"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

// ReturnsTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de lotes y de actas: los cambios de estado de los lotes y el
// insert del acta viven o mueren juntos.
type ReturnsTxRunner interface {
	RunReturns(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		returnRepo repository.ReturnRepository,
	) error) error
}

// Clock entrega el "ahora" del negocio; inyectable para tests deterministas.
type Clock func() time.Time

// Notifier publica avisos al personal. Fire-and-forget tras el commit.
type Notifier interface {
	Notify(ctx context.Context, n *entity.Notification) error
}

// SlipGenerator arma el PDF del acta de devolución para imprimir.
type SlipGenerator interface {
	Generate(record *entity.ReturnRecord) ([]byte, error)
}
