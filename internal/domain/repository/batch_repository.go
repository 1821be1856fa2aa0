package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

// BatchFilter acota los listados de lotes; campos vacíos no filtran.
type BatchFilter struct {
	ProductID string
	Status    string
	Limit     int
	Offset    int
}

// BatchRepository define el puerto de persistencia para lotes.
// Los listados devuelven siempre en orden FIFO (date_added, created_at, id)
// para que el orden sea determinista incluso con hornadas del mismo día.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	List(ctx context.Context, filter BatchFilter) ([]*entity.Batch, error)
	ListActiveByProduct(ctx context.Context, productID string) ([]*entity.Batch, error)

	// ListActiveByProductForUpdate bloquea las filas (SELECT FOR UPDATE);
	// solo tiene sentido dentro de una transacción.
	ListActiveByProductForUpdate(ctx context.Context, productID string) ([]*entity.Batch, error)

	// GetManyForUpdate bloquea los lotes indicados en orden de id estable
	// para evitar deadlocks entre devoluciones concurrentes.
	GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Batch, error)

	// UpdateQuantityStatus persiste el resultado de una deducción. La cantidad
	// solo decrece; el llamador es responsable de validar eso.
	UpdateQuantityStatus(ctx context.Context, id string, quantity decimal.Decimal, status string) error

	// MarkReturned pasa el lote a returned con cantidad 0, condicionado a que
	// siga activo. Devuelve false si otra operación ganó la carrera.
	MarkReturned(ctx context.Context, id string) (bool, error)
}
