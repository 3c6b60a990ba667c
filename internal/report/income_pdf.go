package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/RelojeriaCentral/taller-api/internal/models"
)

const dateFormat = "02/01/2006"

// IncomePDF renders the income report for a date range: title, range line,
// one row per entry and a closing total row.
func IncomePDF(
	incomes []models.Income,
	start, end time.Time,
	total int64,
) ([]byte, error) {

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Reporte de ingresos", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Reporte de ingresos", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8,
		fmt.Sprintf("Periodo: %s - %s", start.Format(dateFormat), end.Format(dateFormat)),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	// header row
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(220, 220, 220)
	pdf.CellFormat(40, 8, "Fecha", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "Valor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(110, 8, "Descripción", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, in := range incomes {
		pdf.CellFormat(40, 7, in.Date.Format(dateFormat), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("$ %d", in.Value), "1", 0, "R", false, 0, "")
		pdf.CellFormat(110, 7, in.Description, "1", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(80, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(110, 8, fmt.Sprintf("$ %d", total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
