// Package pdf genera el informe de stock impreso.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtros     │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant. | P.Unit | Valor          │
//	│    (agrupada por categoría, con subtotal por grupo)          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: productos / unidades / valor en stock              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.StockReportPDFGenerator = (*MarotoStockReportGenerator)(nil)

// MarotoStockReportGenerator implementa report.StockReportPDFGenerator usando Maroto v2.
type MarotoStockReportGenerator struct {
	author string
}

// NewMarotoStockReportGenerator construye el generador. author aparece en los metadatos del PDF.
func NewMarotoStockReportGenerator(author string) *MarotoStockReportGenerator {
	return &MarotoStockReportGenerator{author: author}
}

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStockReportGenerator) GenerateStockReportPDF(
	_ context.Context,
	meta report.StockReportMeta,
	rep *dto.ProductReportResponse,
	money *report.MoneyFormatter,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(meta.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rep.Items, money)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep, money))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(meta report.StockReportMeta) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(meta.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Filtros: "+meta.Filters, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+meta.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Cant.", 2, align.Right),
		h("P. Unit.", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableRows: los items llegan ordenados por categoría; cada cambio de categoría abre
// un grupo y cierra el anterior con su subtotal.
func tableRows(items []dto.ProductResponse, money *report.MoneyFormatter) []core.Row {
	var (
		rows     []core.Row
		current  string
		subtotal = decimal.Zero
		started  bool
	)
	closeGroup := func() {
		if started {
			rows = append(rows, subtotalRow(current, subtotal, money))
		}
	}
	for _, p := range items {
		if !started || p.Category != current {
			closeGroup()
			current, subtotal, started = p.Category, decimal.Zero, true
			rows = append(rows, row.New(7).Add(col.New(12).Add(
				text.New(current, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
			)))
		}
		subtotal = subtotal.Add(p.StockValue)
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(p.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.FormatInt(p.Quantity, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.Format(p.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(money.Format(p.StockValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	closeGroup()

	if len(items) == 0 {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Ningún producto coincide con los filtros.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	return rows
}

func subtotalRow(category string, value decimal.Decimal, money *report.MoneyFormatter) core.Row {
	return row.New(6).Add(
		col.New(8),
		col.New(4).Add(text.New(fmt.Sprintf("Subtotal %s: %s", category, money.Format(value)), props.Text{
			Style: fontstyle.Italic, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
		})),
	)
}

func totalsRow(rep *dto.ProductReportResponse, money *report.MoneyFormatter) core.Row {
	var units int64
	for _, p := range rep.Items {
		units += p.Quantity
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Productos:"),
			label("Unidades:"),
			text.New("VALOR EN STOCK:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2}),
		),
		col.New(3).Add(
			value(strconv.Itoa(rep.Total)),
			value(strconv.FormatInt(units, 10)),
			text.New(money.Format(rep.TotalValue), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1}),
		),
	)
}
