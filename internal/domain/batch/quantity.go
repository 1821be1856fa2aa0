package batch

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

// ValidQuantity acepta cantidades no negativas; cero es válido (lote agotado).
func ValidQuantity(q decimal.Decimal) bool {
	return !q.IsNegative()
}

// IsValidQuantity valida una cantidad recibida como texto. Rechaza vacío,
// no numérico y negativos.
func IsValidQuantity(s string) bool {
	q, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return ValidQuantity(q)
}

// ValidPercentage acepta porcentajes de devolución dentro de [0, 100].
func ValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(decimal.NewFromInt(100))
}

// TotalStock suma las cantidades de los lotes recibidos; lista vacía suma
// cero. Aritmética decimal exacta, apta para cantidades fraccionarias
// (ej. 10.5 kg de masa madre).
func TotalStock(batches []*entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		if b == nil {
			continue
		}
		total = total.Add(b.Quantity)
	}
	return total
}
