// Package pdf implementa la generación del acta de devolución imprimible
// que el panadero firma cuando retira producto al final del día.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Panadería  │  ACTA DE DEVOLUCIÓN + N° + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Procesada por / Lotes devueltos / Lotes en venta   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Cant | P.Orig | %Dev | V.Unit | Valor     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Unidades devueltas / VALOR RECUPERADO              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del acta + leyenda                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreturns "github.com/jhoicas/Hornada-api/internal/application/returns"
	"github.com/jhoicas/Hornada-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 141, Green: 85, Blue: 36} // marrón pan
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appreturns.SlipGenerator = (*SlipGenerator)(nil)

// SlipGenerator arma el acta de devolución en PDF usando Maroto v2.
type SlipGenerator struct {
	bakeryName string
}

// NewSlipGenerator construye el generador con el nombre de la panadería
// que encabeza el acta.
func NewSlipGenerator(bakeryName string) *SlipGenerator {
	if bakeryName == "" {
		bakeryName = "Hornada"
	}
	return &SlipGenerator{bakeryName: bakeryName}
}

// Generate genera el PDF del acta y devuelve sus bytes.
func (g *SlipGenerator) Generate(record *entity.ReturnRecord) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Acta de Devolución", true).
		WithAuthor(g.bakeryName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(record))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(record.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(record))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(record) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar acta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la panadería (izq) y número + fecha del acta (der).
func (g *SlipGenerator) headerRow(record *entity.ReturnRecord) core.Row {
	fecha := record.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.bakeryName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Control de producto del día", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ACTA DE DEVOLUCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(record.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: quién procesó y cuántos lotes se retiraron o siguieron en venta.
func summaryRow(record *entity.ReturnRecord) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("RESUMEN DE LA OPERACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Procesada por: %s   |   Lotes devueltos: %d   |   Lotes que siguen en venta: %d",
				nonEmpty(record.ProcessedBy, "—"),
				len(record.Lines),
				len(record.KeptBatchIDs),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de lotes devueltos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Cant.", 1, align.Center),
		h("P. Orig.", 2, align.Right),
		h("% Dev.", 1, align.Center),
		h("V. Unit.", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableLineRows: una fila por lote devuelto, del más viejo al más nuevo.
func tableLineRows(lines []entity.ReturnLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(
				l.ProductID,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.OriginalPrice.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				l.ReturnPercentage.String()+"%",
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.ValuePerUnit.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.Value.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: unidades devueltas y valor recuperado.
func totalsRow(record *entity.ReturnRecord) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(20).Add(
		col.New(3), // espacio izquierdo
		col.New(4).Add(
			label("Unidades devueltas:"),
			grandLabel("VALOR RECUPERADO:"),
		),
		col.New(3).Add(
			value(record.TotalQuantity.String()),
			grandValue("$"+formatMoney(record.TotalValue.StringFixed(0))),
		),
		col.New(2), // espacio derecho
	)
}

// footerRows: QR con el ID del acta para consultarla desde el back-office.
func footerRows(record *entity.ReturnRecord) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(record.ID, props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Escanea el código QR para consultar\nesta acta en el sistema.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
				text.New("Acta N° "+record.ID, props.Text{
					Size: 7, Top: 18, Left: 3, Color: colorGray,
				}),
				text.New("Firma del responsable: ______________________", props.Text{
					Size: 9, Top: 30, Left: 3,
				}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"El producto devuelto se retira de la venta y se valoriza al porcentaje "+
					"acordado con producción. Conserve esta acta como soporte del cierre del día.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID toma el primer bloque del UUID para mostrarlo como número de acta.
func shortID(id string) string {
	if len(id) > 8 {
		return "DEV-" + id[:8]
	}
	return "DEV-" + id
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
