// Package report renders the monthly PDF statement: a summary header
// followed by the filtered transactions in a fixed column layout.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"financetrack/internal/core"
)

// Statement bundles everything the PDF needs. Transactions are expected to
// be pre-filtered; the renderer does not apply criteria itself.
type Statement struct {
	Month        core.MonthKey
	Transactions []core.Transaction
	Totals       core.Totals
	GeneratedAt  time.Time
}

const (
	pageWidth  = 210.0
	marginLeft = 14.0
)

// Column layout: Date, Description, Category, Group, Amount.
var (
	columnHeads  = []string{"Date", "Description", "Category", "Group", "Amount"}
	columnWidths = []float64{28, 62, 30, 30, 32}
)

// WriteStatement renders the statement as a paginated A4 PDF.
func WriteStatement(w io.Writer, stmt Statement) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("FinanceTrack Statement", false)
	doc.SetAutoPageBreak(true, 20)
	doc.AliasNbPages("")

	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(150, 150, 150)
		doc.CellFormat(0, 10, "FinanceTrack Pro - Professional Financial Management", "", 0, "L", false, 0, "")
		doc.SetX(marginLeft)
		doc.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", doc.PageNo()), "", 0, "C", false, 0, "")
	})

	doc.AddPage()
	writeHeader(doc, stmt)
	writeSummary(doc, stmt)
	writeTable(doc, stmt)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render statement pdf: %w", err)
	}
	return nil
}

func writeHeader(doc *fpdf.Fpdf, stmt Statement) {
	// Brand band
	doc.SetFillColor(22, 163, 74)
	doc.Rect(0, 0, pageWidth, 40, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 24)
	doc.Text(marginLeft, 20, "FinanceTrack Pro")
	doc.SetFont("Helvetica", "", 12)
	doc.Text(marginLeft, 30, "Monthly Financial Statement")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 16)
	doc.Text(marginLeft, 55, fmt.Sprintf("Statement for %s", monthTitle(stmt.Month)))

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	doc.Text(marginLeft, 62, fmt.Sprintf("Generated on %s", stmt.GeneratedAt.Format("January 2, 2006")))
}

func writeSummary(doc *fpdf.Fpdf, stmt Statement) {
	doc.SetFillColor(240, 240, 240)
	doc.RoundedRect(marginLeft, 70, 182, 35, 3, "1234", "F")

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 11)
	doc.Text(20, 80, "Summary")

	doc.SetFont("Helvetica", "", 10)
	doc.Text(20, 90, "Income:")
	doc.Text(20, 97, "Expenses:")
	doc.SetFont("Helvetica", "B", 10)
	doc.SetTextColor(18, 164, 84)
	doc.Text(70, 90, core.FormatCents(stmt.Totals.Income))
	doc.SetTextColor(233, 41, 41)
	doc.Text(70, 97, core.FormatCents(stmt.Totals.Expense))

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 10)
	doc.Text(120, 90, "Net:")
	doc.Text(120, 97, "Transactions:")
	doc.SetFont("Helvetica", "B", 10)
	doc.Text(155, 90, core.FormatCents(stmt.Totals.Net))
	doc.Text(155, 97, fmt.Sprintf("%d", stmt.Totals.Count))
}

func writeTable(doc *fpdf.Fpdf, stmt Statement) {
	doc.SetY(115)

	// Header row
	doc.SetFillColor(22, 163, 74)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 10)
	for i, head := range columnHeads {
		align := "L"
		if i == len(columnHeads)-1 {
			align = "R"
		}
		doc.CellFormat(columnWidths[i], 8, head, "1", 0, align, true, 0, "")
	}
	doc.Ln(-1)

	// Body
	doc.SetFont("Helvetica", "", 9)
	for _, t := range stmt.Transactions {
		doc.SetTextColor(0, 0, 0)
		doc.CellFormat(columnWidths[0], 7, t.Date.Key(), "1", 0, "L", false, 0, "")
		doc.CellFormat(columnWidths[1], 7, t.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(columnWidths[2], 7, string(t.Category), "1", 0, "L", false, 0, "")
		doc.CellFormat(columnWidths[3], 7, string(t.Group), "1", 0, "L", false, 0, "")

		if t.Amount.IsIncome() {
			doc.SetTextColor(18, 164, 84)
		} else {
			doc.SetTextColor(233, 41, 41)
		}
		doc.CellFormat(columnWidths[4], 7, core.FormatCents(t.Amount.Cents), "1", 0, "R", false, 0, "")
		doc.Ln(-1)
	}

	// Footer total row
	doc.SetTextColor(0, 0, 0)
	doc.SetFillColor(250, 250, 250)
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(columnWidths[0]+columnWidths[1]+columnWidths[2]+columnWidths[3], 8, "TOTAL", "1", 0, "R", true, 0, "")
	doc.CellFormat(columnWidths[4], 8, core.FormatCents(stmt.Totals.Net), "1", 0, "R", true, 0, "")
	doc.Ln(-1)
}

func monthTitle(k core.MonthKey) string {
	t, err := time.Parse("2006-01", string(k))
	if err != nil {
		return string(k)
	}
	return t.Format("January 2006")
}
