package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lote.
const (
	BatchStatusActive   = "active"   // Disponible para venta
	BatchStatusDepleted = "depleted" // Agotado por ventas (cantidad 0)
	BatchStatusReturned = "returned" // Devuelto al final del día (cantidad 0)
)

// Batch representa una hornada: el stock recibido de un producto en una fecha.
// OriginalPrice y DateAdded son inmutables tras la creación; Quantity solo
// decrece (ventas) y Status solo avanza hacia depleted o returned.
type Batch struct {
	ID            string
	ProductID     string
	Quantity      decimal.Decimal
	OriginalPrice decimal.Decimal // precio de compra/producción por unidad
	SalePrice     decimal.Decimal // precio de venta por unidad
	DateAdded     time.Time       // fecha de horneado/recepción (solo fecha)
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive indica si el lote sigue disponible para venta o devolución.
func (b *Batch) IsActive() bool {
	return b.Status == BatchStatusActive
}
