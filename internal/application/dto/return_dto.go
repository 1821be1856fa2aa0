package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnBatchInput un lote seleccionado para devolver. El porcentaje acepta
// número o cadena numérica; precio y cantidad NO se aceptan del cliente:
// se leen de la fila autoritativa del lote.
type ReturnBatchInput struct {
	BatchID          string          `json:"batch_id"`
	ReturnPercentage decimal.Decimal `json:"return_percentage"` // 0-100
}

// ProcessReturnRequest body para POST /api/returns (devolución de fin de día).
type ProcessReturnRequest struct {
	BatchesToReturn []ReturnBatchInput `json:"batches_to_return"`
	BatchesToKeep   []string           `json:"batches_to_keep,omitempty"`
	IdempotencyKey  string             `json:"idempotency_key,omitempty"`
}

// ReturnLineDTO una línea del acta con su valor ya calculado.
type ReturnLineDTO struct {
	BatchID          string          `json:"batch_id"`
	ProductID        string          `json:"product_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	OriginalPrice    decimal.Decimal `json:"original_price"`
	ReturnPercentage decimal.Decimal `json:"return_percentage"`
	ValuePerUnit     decimal.Decimal `json:"value_per_unit"`
	Value            decimal.Decimal `json:"value"`
}

// ProcessReturnResponse resultado estructurado de la devolución.
type ProcessReturnResponse struct {
	Success          bool            `json:"success"`
	ReturnID         string          `json:"return_id,omitempty"`
	TotalValue       decimal.Decimal `json:"total_value"`
	TotalQuantity    decimal.Decimal `json:"total_quantity"`
	Lines            []ReturnLineDTO `json:"lines,omitempty"`
	KeptBatchIDs     []string        `json:"kept_batch_ids,omitempty"`
	AlreadyProcessed bool            `json:"already_processed,omitempty"` // true si la clave de idempotencia ya existía
	Error            string          `json:"error,omitempty"`
}

// ReturnRecordDTO acta completa para historial y consulta.
type ReturnRecordDTO struct {
	ID            string          `json:"id"`
	ProcessedBy   string          `json:"processed_by"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Lines         []ReturnLineDTO `json:"lines"`
	KeptBatchIDs  []string        `json:"kept_batch_ids,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReturnListResponse historial paginado de actas.
type ReturnListResponse struct {
	Items []ReturnRecordDTO `json:"items"`
	Page  PageResponse      `json:"page"`
}
