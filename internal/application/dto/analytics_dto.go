package dto

import "github.com/shopspring/decimal"

// ReturnsSummaryDTO resumen de mermas/devoluciones de un período.
type ReturnsSummaryDTO struct {
	From          string          `json:"from"` // 2006-01-02
	To            string          `json:"to"`   // inclusivo
	ReturnCount   int             `json:"return_count"`
	BatchCount    int             `json:"batch_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	AvgPercentage decimal.Decimal `json:"avg_percentage"` // promedio simple por línea
}

// ProductReturnsDTO devoluciones acumuladas de un producto en el período.
type ProductReturnsDTO struct {
	ProductID        string          `json:"product_id"`
	BatchCount       int             `json:"batch_count"`
	QuantityReturned decimal.Decimal `json:"quantity_returned"`
	ValueReturned    decimal.Decimal `json:"value_returned"`
}

// ReturnsAnalyticsResponse respuesta de GET /api/analytics/returns.
type ReturnsAnalyticsResponse struct {
	Summary   ReturnsSummaryDTO   `json:"summary"`
	ByProduct []ProductReturnsDTO `json:"by_product"`
}
