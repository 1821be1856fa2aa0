package batch_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Hornada-api/internal/domain/batch"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

func TestValidQuantity_NoNegativas(t *testing.T) {
	assert.True(t, batch.ValidQuantity(decimal.Zero), "cero es válido: lote agotado")
	assert.True(t, batch.ValidQuantity(decimal.NewFromInt(12)))
	assert.True(t, batch.ValidQuantity(decimal.RequireFromString("10.5")))
	assert.False(t, batch.ValidQuantity(decimal.NewFromInt(-1)), "negativos nunca")
}

func TestIsValidQuantity_Cadenas(t *testing.T) {
	validas := []string{"0", "10", "10.5", "0.001"}
	for _, s := range validas {
		assert.True(t, batch.IsValidQuantity(s), "cadena %q debe ser válida", s)
	}

	invalidas := []string{"", "abc", "-3", "10,5", "diez"}
	for _, s := range invalidas {
		assert.False(t, batch.IsValidQuantity(s), "cadena %q debe rechazarse", s)
	}
}

func TestValidPercentage_RangoCerrado(t *testing.T) {
	for _, s := range []string{"0", "20", "100"} {
		assert.True(t, batch.ValidPercentage(decimal.RequireFromString(s)), "%s%% está en rango", s)
	}
	for _, s := range []string{"-5", "100.01", "150"} {
		assert.False(t, batch.ValidPercentage(decimal.RequireFromString(s)), "%s%% está fuera de rango", s)
	}
}

func TestTotalStock_VaciaSumaCero(t *testing.T) {
	assert.True(t, batch.TotalStock(nil).IsZero())
	assert.True(t, batch.TotalStock([]*entity.Batch{}).IsZero())
}

func TestTotalStock_SumaFraccionariaExacta(t *testing.T) {
	lotes := []*entity.Batch{
		{ID: "a", Quantity: decimal.RequireFromString("10.5")},
		{ID: "b", Quantity: decimal.RequireFromString("4.25")},
		{ID: "c", Quantity: decimal.NewFromInt(3)},
	}

	total := batch.TotalStock(lotes)

	assert.Equal(t, "17.75", total.String(), "la suma decimal debe ser exacta")
}

func TestTotalStock_IndependienteDelOrden(t *testing.T) {
	a := &entity.Batch{ID: "a", Quantity: decimal.RequireFromString("1.1")}
	b := &entity.Batch{ID: "b", Quantity: decimal.RequireFromString("2.2")}
	c := &entity.Batch{ID: "c", Quantity: decimal.RequireFromString("3.3")}

	directo := batch.TotalStock([]*entity.Batch{a, b, c})
	permutado := batch.TotalStock([]*entity.Batch{c, a, b})

	assert.True(t, directo.Equal(permutado),
		"cualquier permutación del mismo conjunto debe sumar igual: %s vs %s", directo, permutado)
}

func TestTotalStock_IgnoraNil(t *testing.T) {
	lotes := []*entity.Batch{nil, {ID: "a", Quantity: decimal.NewFromInt(7)}, nil}
	assert.Equal(t, "7", batch.TotalStock(lotes).String())
}
