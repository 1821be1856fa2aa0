package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la bitácora.
const (
	AuditActionBatchReceived   = "batch_received"
	AuditActionStockDeducted   = "stock_deducted"
	AuditActionReturnProcessed = "return_processed"
)

// Estados de una entrada de bitácora.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// AuditLog representa una entrada de la bitácora de operaciones de inventario.
// Se escribe después del commit de la operación principal; su fallo nunca
// revierte la operación que documenta.
type AuditLog struct {
	ID         string
	Action     string
	TargetType string // batch | return
	TargetID   string
	ActorID    string
	Status     string
	Details    json.RawMessage // payload específico de la acción
	CreatedAt  time.Time
}
