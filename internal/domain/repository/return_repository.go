package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

// ReturnRepository define el puerto de persistencia para actas de devolución.
// Las actas son inmutables: solo se insertan y se consultan.
type ReturnRepository interface {
	Create(ctx context.Context, record *entity.ReturnRecord) error
	GetByID(ctx context.Context, id string) (*entity.ReturnRecord, error)
	// GetByIdempotencyKey devuelve (nil, nil) si la clave no existe todavía.
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.ReturnRecord, error)
	List(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.ReturnRecord, error)
}
