package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnRecord representa la cabecera de un acta de devolución de fin de día.
// Es inmutable una vez registrada: correcciones se hacen con un acta nueva.
type ReturnRecord struct {
	ID             string
	ProcessedBy    string // usuario que ejecutó la devolución
	TotalQuantity  decimal.Decimal
	TotalValue     decimal.Decimal
	Lines          []ReturnLine // ordenadas del lote más viejo al más nuevo
	KeptBatchIDs   []string     // lotes revisados pero conservados en venta
	IdempotencyKey string       // opcional; evita dobles envíos del front
	CreatedAt      time.Time
}

// ReturnLine representa un lote devuelto dentro del acta, con el valor
// recuperado calculado al momento de procesar.
type ReturnLine struct {
	BatchID          string          `json:"batch_id"`
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	OriginalPrice    decimal.Decimal `json:"original_price"`
	ReturnPercentage decimal.Decimal `json:"return_percentage"` // 0-100
	ValuePerUnit     decimal.Decimal `json:"value_per_unit"`    // OriginalPrice * ReturnPercentage / 100
	Value            decimal.Decimal `json:"value"`             // ValuePerUnit * Quantity
}
