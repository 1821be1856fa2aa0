package batch_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Hornada-api/internal/domain/batch"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de referencia de la fórmula de devolución, acordados con contabilidad:
//
//	precio 100, cantidad 5,  20%  → 20 por unidad, 100 el lote
//	precio 150, cantidad 10, 100% → 150 por unidad, 1500 el lote
//	precio 80,  cantidad 12, 20%  → 16 por unidad, 192 el lote
//	precio 150, cantidad 15, 100% → 150 por unidad, 2250 el lote
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnValue_VectoresExactos(t *testing.T) {
	casos := []struct {
		precio, cantidad, porcentaje string
		porUnidad, valor             string
	}{
		{"100", "5", "20", "20", "100"},
		{"150", "10", "100", "150", "1500"},
		{"80", "12", "20", "16", "192"},
		{"150", "15", "100", "150", "2250"},
	}

	for _, c := range casos {
		porUnidad, valor := batch.ReturnValue(
			decimal.RequireFromString(c.precio),
			decimal.RequireFromString(c.cantidad),
			decimal.RequireFromString(c.porcentaje),
		)

		assert.Equal(t, c.porUnidad, porUnidad.String(),
			"valor por unidad para precio %s al %s%%", c.precio, c.porcentaje)
		assert.Equal(t, c.valor, valor.String(),
			"valor del lote para precio %s, cantidad %s, %s%%", c.precio, c.cantidad, c.porcentaje)
	}
}

func TestReturnValue_PorcentajeCeroAnulaElValor(t *testing.T) {
	porUnidad, valor := batch.ReturnValue(
		decimal.NewFromInt(90), decimal.NewFromInt(4), decimal.Zero)

	assert.True(t, porUnidad.IsZero())
	assert.True(t, valor.IsZero(), "al 0 por ciento no se acredita nada (merma total)")
}

func TestReturnValue_FraccionesExactas(t *testing.T) {
	// 33.5 * 12.5% = 4.1875 por unidad; * 2.4 = 10.05 el lote
	porUnidad, valor := batch.ReturnValue(
		decimal.RequireFromString("33.5"),
		decimal.RequireFromString("2.4"),
		decimal.RequireFromString("12.5"),
	)

	assert.Equal(t, "4.1875", porUnidad.String())
	assert.Equal(t, "10.05", valor.String())
}
