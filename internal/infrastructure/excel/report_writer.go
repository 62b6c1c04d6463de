// Package excel serializa reportes tabulares a XLSX con excelize.
package excel

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dquispe/almacen-api/internal/application/usecase"
)

var _ usecase.ReportExporter = (*ReportWriter)(nil)

// ReportWriter escribe un reporte como libro de una sola hoja: título en la
// primera fila, encabezados en la segunda, datos a partir de la tercera.
type ReportWriter struct{}

// NewReportWriter construye el escritor.
func NewReportWriter() *ReportWriter { return &ReportWriter{} }

// Export genera el XLSX y devuelve sus bytes.
func (w *ReportWriter) Export(title string, columns []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda encabezado: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, fmt.Errorf("excel: encabezado: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("excel: estilo encabezado: %w", err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+3)
			if err != nil {
				return nil, fmt.Errorf("excel: celda dato: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("excel: dato: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
