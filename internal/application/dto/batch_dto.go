package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/domain/batch"
)

// CreateBatchRequest body para POST /api/batches (recepción de una hornada).
// Quantity y los precios aceptan número o cadena numérica; DateAdded acepta
// fecha o fecha-hora ISO-8601 y por defecto es hoy.
type CreateBatchRequest struct {
	ProductID     string           `json:"product_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	OriginalPrice decimal.Decimal  `json:"original_price"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"` // default: original_price
	DateAdded     string           `json:"date_added,omitempty"`
}

// BatchDTO representa un lote en respuestas, con la edad ya calculada.
type BatchDTO struct {
	ID            string               `json:"id"`
	ProductID     string               `json:"product_id"`
	Quantity      decimal.Decimal      `json:"quantity"`
	OriginalPrice decimal.Decimal      `json:"original_price"`
	SalePrice     decimal.Decimal      `json:"sale_price"`
	DateAdded     string               `json:"date_added"` // 2006-01-02
	Status        string               `json:"status"`
	AgeDays       int                  `json:"age_days"`
	AgeCategory   string               `json:"age_category"`
	Colors        batch.CategoryColors `json:"colors"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// BatchListResponse listado paginado de lotes.
type BatchListResponse struct {
	Items []BatchDTO   `json:"items"`
	Page  PageResponse `json:"page"`
}

// StockResponse stock activo total de un producto.
type StockResponse struct {
	ProductID  string          `json:"product_id"`
	TotalStock decimal.Decimal `json:"total_stock"`
	BatchCount int             `json:"batch_count"`
	OldestDate string          `json:"oldest_date,omitempty"` // fecha del lote más viejo aún activo
}

// ReviewItemDTO un lote dentro de la revisión de fin de día.
type ReviewItemDTO struct {
	BatchID         string               `json:"batch_id"`
	ProductID       string               `json:"product_id"`
	Quantity        decimal.Decimal      `json:"quantity"`
	OriginalPrice   decimal.Decimal      `json:"original_price"`
	SalePrice       decimal.Decimal      `json:"sale_price"`
	DateAdded       string               `json:"date_added"`
	AgeDays         int                  `json:"age_days"`
	AgeCategory     string               `json:"age_category"`
	Colors          batch.CategoryColors `json:"colors"`
	FIFORank        int                  `json:"fifo_rank"` // 1 = vender/devolver primero (por producto)
	SuggestedAction string               `json:"suggested_action"`
}

// ReviewResponse la foto completa que ve el panadero antes de devolver.
type ReviewResponse struct {
	GeneratedAt   time.Time                  `json:"generated_at"`
	Items         []ReviewItemDTO            `json:"items"`
	ProductTotals map[string]decimal.Decimal `json:"product_totals"` // stock activo por producto
}
