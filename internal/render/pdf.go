package render

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/mattn/go-runewidth"

	"github.com/michelgermain/gnucash-expenses/internal/report"
)

const (
	pdfFont       = "Helvetica"
	pdfMargin     = 15.0
	pdfLineHeight = 6.0
	pdfMinColumn  = 6
)

// PDF writes doc as a paginated A4 document: a running header with the
// document title, page numbers in the footer and column headers repeated
// at the top of every page a table continues on.
func PDF(w io.Writer, doc report.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(pdfFont, "B", 14)
		pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "C", false, 0, "")
		pdf.Ln(2)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfMargin)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	for _, t := range doc.Tables {
		writePDFTable(pdf, tr, t)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func writePDFTable(pdf *fpdf.Fpdf, tr func(string) string, t report.Table) {
	widths := pdfColumnWidths(pdf, t)

	// Keep the title together with the header and at least one row.
	ensureRoom(pdf, 4*pdfLineHeight)
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, pdfLineHeight+2, tr(t.Title), "", 1, "L", false, 0, "")
	pdfHeader(pdf, tr, t, widths)

	pdf.SetFont(pdfFont, "", 10)
	for _, row := range t.Rows {
		if ensureRoom(pdf, pdfLineHeight) {
			pdfHeader(pdf, tr, t, widths)
			pdf.SetFont(pdfFont, "", 10)
		}
		pdfRow(pdf, tr, t, widths, row)
	}
	if len(t.Footer) > 0 {
		if ensureRoom(pdf, pdfLineHeight) {
			pdfHeader(pdf, tr, t, widths)
		}
		pdf.SetFont(pdfFont, "B", 10)
		pdfRow(pdf, tr, t, widths, t.Footer)
	}
	pdf.Ln(pdfLineHeight)
}

// ensureRoom starts a new page when fewer than h millimetres remain above
// the bottom margin and reports whether it did.
func ensureRoom(pdf *fpdf.Fpdf, h float64) bool {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h <= pageH-pdfMargin-pdfLineHeight {
		return false
	}
	pdf.AddPage()
	return true
}

func pdfHeader(pdf *fpdf.Fpdf, tr func(string) string, t report.Table, widths []float64) {
	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range t.Columns {
		pdf.CellFormat(widths[i], pdfLineHeight, tr(col), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func pdfRow(pdf *fpdf.Fpdf, tr func(string) string, t report.Table, widths []float64, row []string) {
	for i := range t.Columns {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		align := "L"
		if i >= t.Amounts {
			align = "R"
		}
		pdf.CellFormat(widths[i], pdfLineHeight, tr(cell), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

// pdfColumnWidths shares the printable width between columns in proportion
// to their widest cell.
func pdfColumnWidths(pdf *fpdf.Fpdf, t report.Table) []float64 {
	chars := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		chars[i] = max(pdfMinColumn, runewidth.StringWidth(col))
	}
	for _, row := range rows(t) {
		for i := 0; i < len(row) && i < len(chars); i++ {
			chars[i] = max(chars[i], runewidth.StringWidth(row[i]))
		}
	}
	total := 0
	for _, c := range chars {
		total += c
	}

	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin
	widths := make([]float64, len(chars))
	for i, c := range chars {
		widths[i] = usable * float64(c) / float64(total)
	}
	return widths
}
