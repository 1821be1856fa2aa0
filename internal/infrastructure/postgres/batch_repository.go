package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// Columnas de batches en el orden en que las escanea scanBatch.
const batchColumns = `id, product_id, quantity, original_price, sale_price, date_added, status, created_at, updated_at`

// Orden FIFO canónico: la fecha de horneado manda; created_at e id desempatan
// hornadas del mismo día para que el orden sea determinista.
const fifoOrder = ` ORDER BY date_added ASC, created_at ASC, id ASC`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(ctx context.Context, batch *entity.Batch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.ProductID, batch.Quantity, batch.OriginalPrice, batch.SalePrice,
		batch.DateAdded, batch.Status, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert batch: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve domain.ErrBatchNotFound si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

// List lista lotes con filtros opcionales, siempre en orden FIFO.
func (r *BatchRepo) List(ctx context.Context, filter repository.BatchFilter) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + ` FROM batches WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	query += fifoOrder + fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return collectBatches(rows, "list batches")
}

// ListActiveByProduct lista los lotes activos de un producto en orden FIFO.
func (r *BatchRepo) ListActiveByProduct(ctx context.Context, productID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches WHERE product_id = $1 AND status = 'active'` + fifoOrder
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list active batches: %w", err)
	}
	return collectBatches(rows, "list active batches")
}

// ListActiveByProductForUpdate lista los lotes activos bloqueando las filas
// (SELECT FOR UPDATE). Solo tiene sentido dentro de una transacción: dos
// deducciones del mismo producto quedan serializadas aquí.
func (r *BatchRepo) ListActiveByProductForUpdate(ctx context.Context, productID string) ([]*entity.Batch, error) {
	query := `SELECT ` + batchColumns + `
		FROM batches WHERE product_id = $1 AND status = 'active'` + fifoOrder + `
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list active batches for update: %w", err)
	}
	return collectBatches(rows, "list active batches for update")
}

// GetManyForUpdate bloquea los lotes indicados. El ORDER BY id fija el orden
// de adquisición de locks: dos devoluciones con lotes en común no se
// bloquean mutuamente en cruz.
func (r *BatchRepo) GetManyForUpdate(ctx context.Context, ids []string) ([]*entity.Batch, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + batchColumns + `
		FROM batches WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get batches for update: %w", err)
	}
	return collectBatches(rows, "get batches for update")
}

// UpdateQuantityStatus persiste el resultado de una deducción sobre un lote.
func (r *BatchRepo) UpdateQuantityStatus(ctx context.Context, id string, quantity decimal.Decimal, status string) error {
	query := `
		UPDATE batches
		SET quantity = $2, status = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity, status)
	if err != nil {
		return fmt.Errorf("update batch quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBatchNotFound
	}
	return nil
}

// MarkReturned pasa el lote a returned con cantidad cero, condicionado a que
// siga activo. Devuelve false (sin error) si otra operación ganó la carrera.
func (r *BatchRepo) MarkReturned(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE batches
		SET status = 'returned', quantity = 0, updated_at = now()
		WHERE id = $1 AND status = 'active'`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("mark batch returned: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.ProductID, &b.Quantity, &b.OriginalPrice, &b.SalePrice,
		&b.DateAdded, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBatches(rows pgx.Rows, op string) ([]*entity.Batch, error) {
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
