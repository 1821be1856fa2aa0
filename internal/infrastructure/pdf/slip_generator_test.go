package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

func sampleRecord() *entity.ReturnRecord {
	return &entity.ReturnRecord{
		ID:            "3f2c8a90-1111-2222-3333-444455556666",
		ProcessedBy:   "maria",
		TotalQuantity: decimal.NewFromInt(15),
		TotalValue:    decimal.NewFromInt(1600),
		Lines: []entity.ReturnLine{
			{
				BatchID:          "lote-a",
				ProductID:        "pan-frances",
				Quantity:         decimal.NewFromInt(5),
				OriginalPrice:    decimal.NewFromInt(100),
				ReturnPercentage: decimal.NewFromInt(20),
				ValuePerUnit:     decimal.NewFromInt(20),
				Value:            decimal.NewFromInt(100),
			},
			{
				BatchID:          "lote-b",
				ProductID:        "croissant",
				Quantity:         decimal.NewFromInt(10),
				OriginalPrice:    decimal.NewFromInt(150),
				ReturnPercentage: decimal.NewFromInt(100),
				ValuePerUnit:     decimal.NewFromInt(150),
				Value:            decimal.NewFromInt(1500),
			},
		},
		KeptBatchIDs: []string{"lote-c"},
		CreatedAt:    time.Date(2025, 1, 28, 21, 15, 0, 0, time.UTC),
	}
}

func TestGenerate_ProduceUnPDFValido(t *testing.T) {
	gen := NewSlipGenerator("Panadería La Espiga")

	pdf, err := gen.Generate(sampleRecord())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "los bytes deben arrancar con la firma PDF")
	assert.Greater(t, len(pdf), 2000, "un acta con tabla y QR no puede pesar tan poco")
}

func TestGenerate_ActaSinLineas(t *testing.T) {
	rec := sampleRecord()
	rec.Lines = nil
	rec.TotalQuantity = decimal.Zero
	rec.TotalValue = decimal.Zero

	pdf, err := NewSlipGenerator("").Generate(rec)
	require.NoError(t, err, "un acta donde todo se conservó también se imprime")
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestNewSlipGenerator_NombrePorDefecto(t *testing.T) {
	gen := NewSlipGenerator("")
	assert.Equal(t, "Hornada", gen.bakeryName)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "DEV-3f2c8a90", shortID("3f2c8a90-1111-2222-3333-444455556666"))
	assert.Equal(t, "DEV-abc", shortID("abc"))
}

func TestFormatMoney(t *testing.T) {
	casos := map[string]string{
		"0":       "0",
		"300":     "300",
		"1600":    "1.600",
		"25000":   "25.000",
		"1000000": "1.000.000",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, formatMoney(entrada), "formato de %s", entrada)
	}
}
