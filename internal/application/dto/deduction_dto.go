package dto

import "github.com/shopspring/decimal"

// DeductionRequest body para POST /api/inventory/deductions (venta FIFO).
type DeductionRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"` // venta | degustacion | merma
}

// BatchDeductionDTO lo consumido de un lote concreto durante la deducción.
type BatchDeductionDTO struct {
	BatchID   string          `json:"batch_id"`
	Deducted  decimal.Decimal `json:"deducted"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
}

// DeductionResponse resultado estructurado de la deducción FIFO.
type DeductionResponse struct {
	Success        bool                `json:"success"`
	ProductID      string              `json:"product_id"`
	Requested      decimal.Decimal     `json:"requested"`
	Deductions     []BatchDeductionDTO `json:"deductions,omitempty"`
	RemainingStock decimal.Decimal     `json:"remaining_stock"`
	Error          string              `json:"error,omitempty"`
}
