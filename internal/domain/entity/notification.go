package entity

import "time"

// Tipos de notificación para el personal.
const (
	NotificationTypeReturnProcessed = "return_processed"
	NotificationTypeLowStock        = "low_stock"
	NotificationTypeBatchReceived   = "batch_received"
)

// Notification representa un aviso interno para el personal de la panadería.
// La entrega (push, correo, campanita del front) es responsabilidad de la
// aplicación principal; aquí solo se registra y se publica por websocket.
type Notification struct {
	ID          string
	Type        string
	Title       string
	Message     string
	RelatedType string // batch | return
	RelatedID   string
	Read        bool
	CreatedAt   time.Time
}
