package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

const returnColumns = `id, processed_by, total_quantity, total_value, batches, kept_batch_ids, idempotency_key, created_at`

// ReturnRepo implementación de ReturnRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas del acta viajan como jsonb: el acta es inmutable y siempre se
// lee completa, no hace falta una tabla de detalle.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador de actas. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste el acta completa (cabecera + líneas jsonb).
// Con clave de idempotencia repetida devuelve domain.ErrDuplicateReturn.
func (r *ReturnRepo) Create(ctx context.Context, record *entity.ReturnRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	lines, err := json.Marshal(record.Lines)
	if err != nil {
		return fmt.Errorf("marshal return lines: %w", err)
	}
	kept, err := json.Marshal(record.KeptBatchIDs)
	if err != nil {
		return fmt.Errorf("marshal kept batch ids: %w", err)
	}
	query := `
		INSERT INTO returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(ctx, query,
		record.ID, record.ProcessedBy, record.TotalQuantity, record.TotalValue,
		lines, kept, nullIfEmpty(record.IdempotencyKey), record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert return: %w", domain.ErrDuplicateReturn)
		}
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// GetByID obtiene un acta por ID. Devuelve domain.ErrNotFound si no existe.
func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.ReturnRecord, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	rec, err := scanReturn(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return rec, nil
}

// GetByIdempotencyKey busca un acta por clave de idempotencia.
// Devuelve (nil, nil) si la clave no se ha usado todavía.
func (r *ReturnRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.ReturnRecord, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE idempotency_key = $1`
	rec, err := scanReturn(r.q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return by idempotency key: %w", err)
	}
	return rec, nil
}

// List lista actas por rango de created_at ([from, to)), más recientes primero.
func (r *ReturnRepo) List(ctx context.Context, from, to time.Time, limit, offset int) ([]*entity.ReturnRecord, error) {
	query := `
		SELECT ` + returnColumns + `
		FROM returns
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()

	var list []*entity.ReturnRecord
	for rows.Next() {
		rec, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("list returns scan: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanReturn(row pgx.Row) (*entity.ReturnRecord, error) {
	var rec entity.ReturnRecord
	var lines, kept []byte
	var key *string
	err := row.Scan(
		&rec.ID, &rec.ProcessedBy, &rec.TotalQuantity, &rec.TotalValue,
		&lines, &kept, &key, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &rec.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal return lines: %w", err)
	}
	if len(kept) > 0 {
		if err := json.Unmarshal(kept, &rec.KeptBatchIDs); err != nil {
			return nil, fmt.Errorf("unmarshal kept batch ids: %w", err)
		}
	}
	if key != nil {
		rec.IdempotencyKey = *key
	}
	return &rec, nil
}
