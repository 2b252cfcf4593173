package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/readhtml/internal/frame"
)

const (
	pdfMaxCellChars = 40
	pdfRowHeight    = 6.0
)

// PDF writes each table as a bordered grid under a "Table N" heading. Wide
// tables switch to landscape; columns share the printable width equally.
func PDF(w io.Writer, tables ...*frame.Table) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 9)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, t := range tables {
		orientation := "P"
		width := len(t.IndexNames) + len(t.Columns)
		if width > 6 {
			orientation = "L"
		}
		pdf.AddPageFormat(orientation, pdf.GetPageSizeStr("A4"))

		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Table %d", i+1), "", 1, "L", false, 0, "")
		if width == 0 {
			continue
		}

		pageW, _ := pdf.GetPageSize()
		left, _, right, _ := pdf.GetMargins()
		colW := (pageW - left - right) / float64(width)

		head := headerLines(t)
		if t.PositionalColumns {
			line := append([]string(nil), t.IndexNames...)
			for _, l := range t.Columns {
				line = append(line, l.String())
			}
			head = [][]string{line}
		}
		pdf.SetFont("Helvetica", "B", 9)
		for _, line := range head {
			for _, text := range line {
				pdf.CellFormat(colW, pdfRowHeight, tr(clip(text)), "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.SetFont("Helvetica", "", 9)
		for _, line := range bodyLines(t) {
			for _, text := range line {
				pdf.CellFormat(colW, pdfRowHeight, tr(clip(text)), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
	if len(tables) == 0 {
		pdf.AddPage()
	}
	return pdf.Output(w)
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= pdfMaxCellChars {
		return s
	}
	return string(r[:pdfMaxCellChars-1]) + "…"
}
