package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/application/inventory"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/memory"
	"github.com/jhoicas/Hornada-api/pkg/logger"
)

func newReceiveStock(store *memory.Store, notifier inventory.Notifier) *inventory.ReceiveStockUseCase {
	return inventory.NewReceiveStockUseCase(
		store.Batches(), store.AuditLogs(), notifier,
		batch.DefaultAgePolicy(), fixedNow, logger.Nop(), time.Second,
	)
}

func TestReceiveStock_CreaElLoteYDevuelveLaEdad(t *testing.T) {
	store := memory.NewStore()
	spy := &notifierSpy{}
	uc := newReceiveStock(store, spy)

	created, err := uc.ReceiveStock(context.Background(), testActorID, dto.CreateBatchRequest{
		ProductID:     "pan-frances",
		Quantity:      qty("40"),
		OriginalPrice: qty("300"),
		DateAdded:     "2025-01-26",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	assert.Equal(t, "pan-frances", created.ProductID)
	assert.Equal(t, entity.BatchStatusActive, created.Status)
	assert.Equal(t, "2025-01-26", created.DateAdded)
	assert.Equal(t, 2, created.AgeDays, "del 26 al 28 van dos días")
	assert.Equal(t, batch.CategoryFresh, created.AgeCategory)
	assert.Equal(t, "300", created.SalePrice.String(), "sin precio de venta se usa el original")

	// El lote quedó persistido tal cual
	persisted, err := store.Batches().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "40", persisted.Quantity.String())
	assert.Equal(t, entity.BatchStatusActive, persisted.Status)

	// Y salió el aviso de recepción
	avisos := spy.all()
	require.Len(t, avisos, 1)
	assert.Equal(t, entity.NotificationTypeBatchReceived, avisos[0].Type)
	assert.Equal(t, created.ID, avisos[0].RelatedID)
}

func TestReceiveStock_FechaViejaClasificaComoViejo(t *testing.T) {
	store := memory.NewStore()
	uc := newReceiveStock(store, nil)
	salePrice := qty("500")

	created, err := uc.ReceiveStock(context.Background(), testActorID, dto.CreateBatchRequest{
		ProductID:     "pan-frances",
		Quantity:      qty("10"),
		OriginalPrice: qty("300"),
		SalePrice:     &salePrice,
		DateAdded:     "2025-01-20",
	})
	require.NoError(t, err)

	assert.Equal(t, 8, created.AgeDays)
	assert.Equal(t, batch.CategoryOld, created.AgeCategory)
	assert.Equal(t, "500", created.SalePrice.String())
}

func TestReceiveStock_SinFechaUsaHoy(t *testing.T) {
	store := memory.NewStore()
	uc := newReceiveStock(store, nil)

	created, err := uc.ReceiveStock(context.Background(), testActorID, dto.CreateBatchRequest{
		ProductID:     "croissant",
		Quantity:      qty("18"),
		OriginalPrice: qty("1200"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-01-28", created.DateAdded)
	assert.Equal(t, 0, created.AgeDays)
	assert.Equal(t, batch.CategoryFresh, created.AgeCategory)
}

func TestReceiveStock_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := newReceiveStock(store, nil)
	negativo := qty("-100")

	casos := []struct {
		nombre string
		in     dto.CreateBatchRequest
		want   error
	}{
		{"producto vacío", dto.CreateBatchRequest{Quantity: qty("5"), OriginalPrice: qty("100")}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateBatchRequest{ProductID: "pan", Quantity: decimal.Zero, OriginalPrice: qty("100")}, domain.ErrInvalidQuantity},
		{"cantidad negativa", dto.CreateBatchRequest{ProductID: "pan", Quantity: qty("-5"), OriginalPrice: qty("100")}, domain.ErrInvalidQuantity},
		{"precio negativo", dto.CreateBatchRequest{ProductID: "pan", Quantity: qty("5"), OriginalPrice: qty("-1")}, domain.ErrInvalidInput},
		{"precio de venta negativo", dto.CreateBatchRequest{ProductID: "pan", Quantity: qty("5"), OriginalPrice: qty("100"), SalePrice: &negativo}, domain.ErrInvalidInput},
		{"fecha ilegible", dto.CreateBatchRequest{ProductID: "pan", Quantity: qty("5"), OriginalPrice: qty("100"), DateAdded: "26/01/2025"}, domain.ErrInvalidInput},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			created, err := uc.ReceiveStock(context.Background(), testActorID, c.in)
			assert.Nil(t, created)
			assert.ErrorIs(t, err, c.want)
		})
	}
}
