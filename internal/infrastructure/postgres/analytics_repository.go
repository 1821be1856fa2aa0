package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Hornada-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura sobre las actas de devolución.
// Las líneas viven en el jsonb `batches`; se expanden con jsonb_array_elements.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetReturnTotals resume las devoluciones del período [startDate, endDate).
// Usa COALESCE para devolver ceros si el período no tiene actas.
func (r *AnalyticsRepo) GetReturnTotals(
	ctx context.Context,
	startDate, endDate time.Time,
) (*repository.ReturnTotalsResult, error) {
	const query = `
	SELECT
	    COUNT(DISTINCT r.id)                                          AS return_count,
	    COUNT(*)                                                      AS batch_count,
	    COALESCE(SUM((l.elem->>'quantity')::numeric),           0)    AS total_quantity,
	    COALESCE(SUM((l.elem->>'value')::numeric),              0)    AS total_value,
	    COALESCE(ROUND(AVG((l.elem->>'return_percentage')::numeric), 2), 0) AS avg_percentage
	FROM returns r
	CROSS JOIN LATERAL jsonb_array_elements(r.batches) AS l(elem)
	WHERE r.created_at >= $1 AND r.created_at < $2`

	var res repository.ReturnTotalsResult
	err := r.pool.QueryRow(ctx, query, startDate, endDate).Scan(
		&res.ReturnCount,
		&res.BatchCount,
		&res.TotalQuantity,
		&res.TotalValue,
		&res.AvgPercentage,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetReturnTotals: %w", err)
	}
	return &res, nil
}

// GetReturnsByProduct agrupa las líneas de devolución por producto,
// ordenadas por valor devuelto descendente.
func (r *AnalyticsRepo) GetReturnsByProduct(
	ctx context.Context,
	startDate, endDate time.Time,
	limit int,
) ([]repository.ProductReturnResult, error) {
	const query = `
	SELECT
	    l.elem->>'product_id'                        AS product_id,
	    COUNT(*)                                     AS batch_count,
	    SUM((l.elem->>'quantity')::numeric)          AS quantity_returned,
	    SUM((l.elem->>'value')::numeric)             AS value_returned
	FROM returns r
	CROSS JOIN LATERAL jsonb_array_elements(r.batches) AS l(elem)
	WHERE r.created_at >= $1 AND r.created_at < $2
	GROUP BY l.elem->>'product_id'
	ORDER BY value_returned DESC, product_id ASC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, startDate, endDate, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetReturnsByProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductReturnResult
	for rows.Next() {
		var row repository.ProductReturnResult
		if err := rows.Scan(
			&row.ProductID,
			&row.BatchCount,
			&row.QuantityReturned,
			&row.ValueReturned,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetReturnsByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.GetReturnsByProduct rows: %w", err)
	}
	if results == nil {
		results = []repository.ProductReturnResult{}
	}
	return results, nil
}
