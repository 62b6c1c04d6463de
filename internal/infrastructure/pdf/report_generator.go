// Package pdf serializa reportes tabulares a PDF con Maroto v2.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dquispe/almacen-api/internal/application/usecase"
)

var _ usecase.ReportExporter = (*ReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportGenerator genera el PDF de un reporte: título, encabezados en negrita
// y una fila por registro.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// Export genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) Export(title string, columns []string, rows [][]string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(10).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(columns))
	for _, r := range rows {
		m.AddRows(dataRow(r, len(columns)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(columns []string) core.Row {
	width := colWidth(len(columns))
	cols := make([]core.Col, 0, len(columns))
	for _, name := range columns {
		cols = append(cols, col.New(width).Add(
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}),
		))
	}
	return row.New(7).Add(cols...)
}

func dataRow(values []string, n int) core.Row {
	width := colWidth(n)
	cols := make([]core.Col, 0, n)
	for i := 0; i < n; i++ {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		cols = append(cols, col.New(width).Add(
			text.New(value, props.Text{Size: 8, Color: colorGray}),
		))
	}
	return row.New(6).Add(cols...)
}

// colWidth reparte las 12 columnas de la grilla de maroto entre n celdas.
func colWidth(n int) int {
	if n <= 0 {
		return 12
	}
	w := 12 / n
	if w < 1 {
		w = 1
	}
	return w
}
