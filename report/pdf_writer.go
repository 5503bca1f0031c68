package report

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 5.0
)

// Widths sum to the printable width of A4 landscape with 20mm margins.
var pdfColumnWidths = []float64{18, 38, 24, 24, 24, 26, 103}

// PDFWriter prints rows as an A4 landscape table.
type PDFWriter struct {
	Title string
}

func (w *PDFWriter) Write(path string, rows []Row) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	_, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, translate(w.title()), "", 1, "L", false, 0, "")
	totals := Summarize(rows)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf(
		"Generated %s - %d rows, %d employees, total deduction %s",
		time.Now().Format("2006-01-02 15:04"),
		totals.Rows,
		totals.Employees,
		totals.Amount.StringFixed(2),
	), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	writePDFHeader(pdf)

	last := len(Columns) - 1
	for _, row := range rows {
		values := row.Values()
		lines := pdf.SplitLines([]byte(translate(values[last])), pdfColumnWidths[last])
		height := float64(max(1, len(lines))) * pdfLineHeight

		if pdf.GetY()+height > pageHeight-pdfMargin {
			pdf.AddPage()
			writePDFHeader(pdf)
		}

		x, y := pdf.GetXY()
		for col, value := range values[:last] {
			align := "L"
			if col == amountColumn {
				align = "R"
			}
			pdf.CellFormat(pdfColumnWidths[col], height, translate(value), "1", 0, align, false, 0, "")
		}
		pdf.MultiCell(pdfColumnWidths[last], pdfLineHeight, translate(values[last]), "1", "L", false)
		pdf.SetXY(x, y+height)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf output %s: %w", path, err)
	}
	return nil
}

func (w *PDFWriter) title() string {
	if w.Title == "" {
		return "Late Arrival Deductions"
	}
	return w.Title
}

func writePDFHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for col, header := range Columns {
		pdf.CellFormat(pdfColumnWidths[col], 7, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
}
