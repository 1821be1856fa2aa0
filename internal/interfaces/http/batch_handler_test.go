package http_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hornada-api/internal/application/dto"
	"github.com/jhoicas/Hornada-api/internal/domain/batch"
)

// createBatch registra una hornada como panadero y devuelve el lote creado.
func createBatch(t *testing.T, app *fiber.App, body string) dto.BatchDTO {
	t.Helper()
	resp, err := app.Test(jsonReq(t, http.MethodPost, "/api/batches", tokenForRole(t, "panadero"), body), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Success bool         `json:"success"`
		Batch   dto.BatchDTO `json:"batch"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.True(t, out.Success)
	return out.Batch
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/batches
// ──────────────────────────────────────────────────────────────────────────────

func TestPOSTBatches_RegistraLaHornada(t *testing.T) {
	app, _ := newAPIApp(t)

	creado := createBatch(t, app,
		`{"product_id":"pan-frances","quantity":"40","original_price":"300","sale_price":"500","date_added":"2025-01-26"}`)

	assert.NotEmpty(t, creado.ID)
	assert.Equal(t, "pan-frances", creado.ProductID)
	assert.Equal(t, "40", creado.Quantity.String())
	assert.Equal(t, "500", creado.SalePrice.String())
	assert.Equal(t, 2, creado.AgeDays)
	assert.Equal(t, batch.CategoryFresh, creado.AgeCategory)
	assert.Equal(t, "#e8f5e9", creado.Colors.Background, "paleta de fresco")
}

func TestPOSTBatches_VendedorNoPuede(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq(t, http.MethodPost, "/api/batches", tokenForRole(t, "vendedor"),
		`{"product_id":"pan-frances","quantity":"40","original_price":"300"}`), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPOSTBatches_CantidadInvalida(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq(t, http.MethodPost, "/api/batches", tokenForRole(t, "panadero"),
		`{"product_id":"pan-frances","quantity":"0","original_price":"300"}`), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/batches, /:id, /review y /api/inventory/stock/:productID
// ──────────────────────────────────────────────────────────────────────────────

func TestGETBatches_ListaFIFOConFiltros(t *testing.T) {
	app, _ := newAPIApp(t)
	viejo := createBatch(t, app, `{"product_id":"pan-frances","quantity":"10","original_price":"300","date_added":"2025-01-20"}`)
	nuevo := createBatch(t, app, `{"product_id":"pan-frances","quantity":"15","original_price":"300","date_added":"2025-01-25"}`)
	createBatch(t, app, `{"product_id":"croissant","quantity":"18","original_price":"1200","date_added":"2025-01-22"}`)

	resp, err := app.Test(jsonReq(t, http.MethodGet, "/api/batches?product_id=pan-frances",
		tokenForRole(t, "vendedor"), ""), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.BatchListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 2)
	assert.Equal(t, viejo.ID, out.Items[0].ID, "el más viejo primero")
	assert.Equal(t, nuevo.ID, out.Items[1].ID)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestGETBatchByID_DetalleYNoEncontrado(t *testing.T) {
	app, _ := newAPIApp(t)
	creado := createBatch(t, app, `{"product_id":"croissant","quantity":"18","original_price":"1200","date_added":"2025-01-21"}`)
	token := tokenForRole(t, "vendedor")

	resp, err := app.Test(jsonReq(t, http.MethodGet, "/api/batches/"+creado.ID, token, ""), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.BatchDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 7, got.AgeDays)
	assert.Equal(t, batch.CategoryMedium, got.AgeCategory)

	perdido, err := app.Test(jsonReq(t, http.MethodGet, "/api/batches/no-existe", token, ""), -1)
	require.NoError(t, err)
	defer perdido.Body.Close()
	assert.Equal(t, http.StatusNotFound, perdido.StatusCode)
}

func TestGETBatchesReview_FotoDeFinDeDia(t *testing.T) {
	app, _ := newAPIApp(t)
	viejo := createBatch(t, app, `{"product_id":"pan-frances","quantity":"10","original_price":"300","date_added":"2025-01-20"}`)
	createBatch(t, app, `{"product_id":"pan-frances","quantity":"15","original_price":"300","date_added":"2025-01-25"}`)

	resp, err := app.Test(jsonReq(t, http.MethodGet, "/api/batches/review", tokenForRole(t, "panadero"), ""), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ReviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 2)
	assert.Equal(t, viejo.ID, out.Items[0].BatchID, "el de ocho días encabeza la revisión")
	assert.Equal(t, batch.ActionReturn, out.Items[0].SuggestedAction)
	assert.Equal(t, 1, out.Items[0].FIFORank)
	assert.Equal(t, "25", out.ProductTotals["pan-frances"].String())
}

func TestGETStock_SumaActivaDelProducto(t *testing.T) {
	app, _ := newAPIApp(t)
	createBatch(t, app, `{"product_id":"pan-frances","quantity":"10","original_price":"300","date_added":"2025-01-20"}`)
	createBatch(t, app, `{"product_id":"pan-frances","quantity":"15","original_price":"300","date_added":"2025-01-25"}`)

	resp, err := app.Test(jsonReq(t, http.MethodGet, "/api/inventory/stock/pan-frances",
		tokenForRole(t, "vendedor"), ""), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.StockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "25", out.TotalStock.String())
	assert.Equal(t, 2, out.BatchCount)
	assert.Equal(t, "2025-01-20", out.OldestDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/inventory/deductions
// ──────────────────────────────────────────────────────────────────────────────

func TestPOSTDeductions_VentaFIFO(t *testing.T) {
	app, _ := newAPIApp(t)
	viejo := createBatch(t, app, `{"product_id":"pan-frances","quantity":"10","original_price":"300","date_added":"2025-01-20"}`)
	nuevo := createBatch(t, app, `{"product_id":"pan-frances","quantity":"15","original_price":"300","date_added":"2025-01-25"}`)

	resp, err := app.Test(jsonReq(t, http.MethodPost, "/api/inventory/deductions",
		tokenForRole(t, "vendedor"),
		`{"product_id":"pan-frances","quantity":"12","reason":"venta"}`), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.DeductionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.True(t, out.Success)
	require.Len(t, out.Deductions, 2)
	assert.Equal(t, viejo.ID, out.Deductions[0].BatchID)
	assert.Equal(t, "0", out.Deductions[0].Remaining.String())
	assert.Equal(t, "depleted", out.Deductions[0].Status)
	assert.Equal(t, nuevo.ID, out.Deductions[1].BatchID)
	assert.Equal(t, "13", out.Deductions[1].Remaining.String())
	assert.Equal(t, "13", out.RemainingStock.String())
}

func TestPOSTDeductions_StockInsuficiente(t *testing.T) {
	app, _ := newAPIApp(t)
	createBatch(t, app, `{"product_id":"pan-frances","quantity":"10","original_price":"300","date_added":"2025-01-20"}`)

	resp, err := app.Test(jsonReq(t, http.MethodPost, "/api/inventory/deductions",
		tokenForRole(t, "vendedor"),
		`{"product_id":"pan-frances","quantity":"11"}`), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var out dto.DeductionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Success)
	assert.Equal(t, "pan-frances", out.ProductID)
	assert.Equal(t, "11", out.Requested.String())
	assert.NotEmpty(t, out.Error)
}

func TestPOSTDeductions_PanaderoNoVende(t *testing.T) {
	app, _ := newAPIApp(t)

	resp, err := app.Test(jsonReq(t, http.MethodPost, "/api/inventory/deductions",
		tokenForRole(t, "panadero"),
		`{"product_id":"pan-frances","quantity":"1"}`), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
