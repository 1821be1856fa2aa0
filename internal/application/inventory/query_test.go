package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hornada-api/internal/application/inventory"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/domain/repository"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/memory"
)

func newQuery(store *memory.Store) *inventory.BatchQueryUseCase {
	return inventory.NewBatchQueryUseCase(
		store.Batches(), batch.DefaultAgePolicy(), fixedNow, time.Second,
	)
}

func TestGetBatch_CalculaEdadCategoriaYColores(t *testing.T) {
	store := memory.NewStore()
	id := seedBatch(t, store, "croissant", "1200", "18", "2025-01-21")
	uc := newQuery(store)

	got, err := uc.GetBatch(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, 7, got.AgeDays, "del 21 al 28 van siete días")
	assert.Equal(t, batch.CategoryMedium, got.AgeCategory, "siete días todavía es medio; viejo arranca en ocho")
	assert.Equal(t, batch.Colors(batch.CategoryMedium), got.Colors)
	assert.Equal(t, "2025-01-21", got.DateAdded)
}

func TestGetBatch_Errores(t *testing.T) {
	store := memory.NewStore()
	uc := newQuery(store)

	_, err := uc.GetBatch(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetBatch(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestListBatches_FiltraYOrdenaFIFO(t *testing.T) {
	store := memory.NewStore()
	idNuevo := seedBatch(t, store, "pan-frances", "300", "15", "2025-01-25")
	idViejo := seedBatch(t, store, "pan-frances", "300", "10", "2025-01-20")
	idOtro := seedBatch(t, store, "croissant", "1200", "18", "2025-01-22")
	idDevuelto := seedBatch(t, store, "pan-frances", "300", "5", "2025-01-18")
	marcado, err := store.Batches().MarkReturned(context.Background(), idDevuelto)
	require.NoError(t, err)
	require.True(t, marcado)

	uc := newQuery(store)

	t.Run("por producto", func(t *testing.T) {
		resp, err := uc.ListBatches(context.Background(), repository.BatchFilter{ProductID: "pan-frances"})
		require.NoError(t, err)
		require.Len(t, resp.Items, 3)
		// FIFO: primero el devuelto del 18, luego el del 20 y el del 25
		assert.Equal(t, idDevuelto, resp.Items[0].ID)
		assert.Equal(t, idViejo, resp.Items[1].ID)
		assert.Equal(t, idNuevo, resp.Items[2].ID)
	})

	t.Run("por producto y estado", func(t *testing.T) {
		resp, err := uc.ListBatches(context.Background(), repository.BatchFilter{
			ProductID: "pan-frances",
			Status:    entity.BatchStatusActive,
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, idViejo, resp.Items[0].ID)
	})

	t.Run("sin filtros trae todo", func(t *testing.T) {
		resp, err := uc.ListBatches(context.Background(), repository.BatchFilter{})
		require.NoError(t, err)
		assert.Len(t, resp.Items, 4)
		_ = idOtro
	})

	t.Run("paginación con límites saneados", func(t *testing.T) {
		resp, err := uc.ListBatches(context.Background(), repository.BatchFilter{Limit: -1})
		require.NoError(t, err)
		assert.Equal(t, 20, resp.Page.Limit, "límite por defecto")

		resp, err = uc.ListBatches(context.Background(), repository.BatchFilter{Limit: 500, Offset: -3})
		require.NoError(t, err)
		assert.Equal(t, 100, resp.Page.Limit, "tope máximo")
		assert.Equal(t, 0, resp.Page.Offset)

		resp, err = uc.ListBatches(context.Background(), repository.BatchFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, resp.Items, 2, "offset 2 de 4 lotes")
	})
}

func TestGetStock_SumaSoloLotesActivos(t *testing.T) {
	store := memory.NewStore()
	seedBatch(t, store, "pan-frances", "300", "10", "2025-01-20")
	seedBatch(t, store, "pan-frances", "300", "15", "2025-01-25")
	idFuera := seedBatch(t, store, "pan-frances", "300", "99", "2025-01-15")
	marcado, err := store.Batches().MarkReturned(context.Background(), idFuera)
	require.NoError(t, err)
	require.True(t, marcado)
	seedBatch(t, store, "croissant", "1200", "18", "2025-01-22")

	uc := newQuery(store)
	resp, err := uc.GetStock(context.Background(), "pan-frances")
	require.NoError(t, err)

	assert.Equal(t, "25", resp.TotalStock.String())
	assert.Equal(t, 2, resp.BatchCount)
	assert.Equal(t, "2025-01-20", resp.OldestDate, "el devuelto del 15 ya no es el más viejo")
}

func TestGetStock_ProductoSinLotes(t *testing.T) {
	store := memory.NewStore()
	uc := newQuery(store)

	resp, err := uc.GetStock(context.Background(), "torta-mil-hojas")
	require.NoError(t, err)

	assert.True(t, resp.TotalStock.IsZero())
	assert.Zero(t, resp.BatchCount)
	assert.Empty(t, resp.OldestDate)

	_, err = uc.GetStock(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
