package returns_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/application/returns"
	"github.com/jhoicas/Hornada-api/internal/domain"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/memory"
)

// seedReturn inserta un acta mínima con fecha fija y devuelve su id.
func seedReturn(t *testing.T, store *memory.Store, createdAt time.Time, totalValue string) string {
	t.Helper()
	rec := &entity.ReturnRecord{
		ProcessedBy:   testActorID,
		TotalQuantity: decimal.NewFromInt(5),
		TotalValue:    decimal.RequireFromString(totalValue),
		Lines: []entity.ReturnLine{{
			BatchID:          "lote-demo",
			ProductID:        "pan-frances",
			Quantity:         decimal.NewFromInt(5),
			OriginalPrice:    decimal.NewFromInt(100),
			ReturnPercentage: decimal.NewFromInt(20),
			ValuePerUnit:     decimal.NewFromInt(20),
			Value:            decimal.NewFromInt(100),
		}},
		CreatedAt: createdAt,
	}
	require.NoError(t, store.Returns().Create(context.Background(), rec))
	return rec.ID
}

func newHistory(store *memory.Store) *returns.HistoryUseCase {
	return returns.NewHistoryUseCase(store.Returns(), fixedNow, time.Second)
}

func TestGetReturn_DevuelveElActaCompleta(t *testing.T) {
	store := memory.NewStore()
	id := seedReturn(t, store, fixedNow().AddDate(0, 0, -1), "100")
	uc := newHistory(store)

	got, err := uc.GetReturn(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, testActorID, got.ProcessedBy)
	assert.Equal(t, "100", got.TotalValue.String())
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "pan-frances", got.Lines[0].ProductID)
	assert.Equal(t, "20", got.Lines[0].ValuePerUnit.String())
}

func TestGetReturn_Errores(t *testing.T) {
	uc := newHistory(memory.NewStore())

	_, err := uc.GetReturn(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetReturn(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListReturns_SinRangoTraeLosUltimosTreintaDias(t *testing.T) {
	store := memory.NewStore()
	idAyer := seedReturn(t, store, fixedNow().AddDate(0, 0, -1), "100")
	idQuincena := seedReturn(t, store, fixedNow().AddDate(0, 0, -15), "250")
	seedReturn(t, store, fixedNow().AddDate(0, 0, -45), "999") // fuera de la ventana
	uc := newHistory(store)

	resp, err := uc.ListReturns(context.Background(), dto.DateRangeRequest{}, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2, "el acta de hace 45 días queda fuera")
	// Más recientes primero
	assert.Equal(t, idAyer, resp.Items[0].ID)
	assert.Equal(t, idQuincena, resp.Items[1].ID)
	assert.Equal(t, 20, resp.Page.Limit, "límite por defecto")
}

func TestListReturns_RangoExplicitoConToInclusivo(t *testing.T) {
	store := memory.NewStore()
	// Acta de la noche del 27: debe entrar aunque `to` sea 2025-01-27
	idNoche := seedReturn(t, store, time.Date(2025, 1, 27, 22, 45, 0, 0, time.UTC), "300")
	seedReturn(t, store, time.Date(2025, 1, 28, 9, 0, 0, 0, time.UTC), "400") // ya es del 28
	seedReturn(t, store, time.Date(2025, 1, 14, 12, 0, 0, 0, time.UTC), "500")
	uc := newHistory(store)

	resp, err := uc.ListReturns(context.Background(), dto.DateRangeRequest{
		From: "2025-01-15",
		To:   "2025-01-27",
	}, dto.PageRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, idNoche, resp.Items[0].ID)
}

func TestListReturns_RangoIlegible(t *testing.T) {
	uc := newHistory(memory.NewStore())

	_, err := uc.ListReturns(context.Background(), dto.DateRangeRequest{From: "hoy"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListReturns_Paginacion(t *testing.T) {
	store := memory.NewStore()
	for i := 1; i <= 3; i++ {
		seedReturn(t, store, fixedNow().AddDate(0, 0, -i), "100")
	}
	uc := newHistory(store)

	resp, err := uc.ListReturns(context.Background(), dto.DateRangeRequest{}, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Page.Limit)

	resp, err = uc.ListReturns(context.Background(), dto.DateRangeRequest{}, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Page.Offset)
}
