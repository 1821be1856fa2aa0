package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReturnTotalsResult resultado crudo del resumen de devoluciones de un período.
// Lo produce la DB; el use case lo convierte en DTO.
type ReturnTotalsResult struct {
	ReturnCount   int             // actas registradas
	BatchCount    int             // lotes devueltos (líneas)
	TotalQuantity decimal.Decimal // unidades devueltas
	TotalValue    decimal.Decimal // valor recuperado
	AvgPercentage decimal.Decimal // porcentaje de devolución promedio por línea
}

// ProductReturnResult resultado crudo de devoluciones agrupadas por producto.
type ProductReturnResult struct {
	ProductID        string
	BatchCount       int
	QuantityReturned decimal.Decimal
	ValueReturned    decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para analítica de mermas.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetReturnTotals resume las devoluciones del período; devuelve ceros
	// (no error) cuando el período no tiene actas.
	GetReturnTotals(ctx context.Context, startDate, endDate time.Time) (*ReturnTotalsResult, error)

	// GetReturnsByProduct agrupa las líneas de devolución por producto,
	// ordenadas por valor devuelto descendente. limit acota el resultado.
	GetReturnsByProduct(ctx context.Context, startDate, endDate time.Time, limit int) ([]ProductReturnResult, error)
}
