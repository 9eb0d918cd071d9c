package app

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/developingAlex/jacow-validator/internal/report"
)

// WriteReportPDF renders the validation report as a minimal PDF, one
// section per category. Layout is intentionally simple: a heading line
// with the rolled-up status, then the message.
func WriteReportPDF(rep *report.Report, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "JACoW template conformance report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Overall: %s", rep.Overall()), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	for _, c := range rep.Ordered() {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s [%s]", c.Title, c.OK), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		if c.Message != "" {
			pdf.MultiCell(0, 5, c.Message, "", "L", false)
		}
		pdf.Ln(2)
	}
	return pdf.OutputFileAndClose(outPath)
}
