package dto

import "time"

// NotificationDTO aviso para la campanita del personal.
type NotificationDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	RelatedType string    `json:"related_type,omitempty"`
	RelatedID   string    `json:"related_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationListResponse respuesta de GET /api/notifications.
type NotificationListResponse struct {
	Items []NotificationDTO `json:"items"`
}
