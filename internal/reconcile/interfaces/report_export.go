package interfaces

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"gigledger/internal/reconcile/application"
	reconcile "gigledger/internal/reconcile/domain"
)

// utf8BOM makes spreadsheet tools detect the CSV encoding reliably.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var summaryHeader = []string{"Counterparty", "Job Subtotal", "Contract Subtotal", "Net Total", "Tax", "Gross"}

// ExportFileName builds the <report-name>_<YYYY-MM>.<ext> download name.
func ExportFileName(kind application.ReportKind, window reconcile.MonthlyWindow, ext string) string {
	return kind.Name() + "_" + window.Label() + "." + ext
}

// BuildSummaryCSV renders the flat summary table: BOM, one header row, one
// data row per counterparty, amounts as grouped integers without a currency
// symbol.
func BuildSummaryCSV(rows []application.SummaryRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)
	if err := writer.Write(summaryHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.CounterpartyName,
			groupThousands(row.JobSubtotal),
			groupThousands(row.ContractSubtotal),
			groupThousands(row.Total),
			groupThousands(row.Tax),
			groupThousands(row.Gross),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSummaryXLSX renders the summary table as a workbook.
func BuildSummaryXLSX(title string, window reconcile.MonthlyWindow, rows []application.SummaryRow) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "summary"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", title)
	_ = f.SetCellValue(sheet, "B1", window.Label())
	for i, header := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, header)
	}
	for i, row := range rows {
		r := i + 4
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.CounterpartyName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.JobSubtotal)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.ContractSubtotal)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Total)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Tax)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", r), row.Gross)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildSummaryPDF renders a minimal PDF of the summary table.
func BuildSummaryPDF(title string, window reconcile.MonthlyWindow, rows []application.SummaryRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, title)
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Month: %s", window.Label()))
	pdf.Ln(8)

	widths := []float64{80, 35, 35, 35, 35, 35}
	pdf.SetFont("Arial", "B", 10)
	for i, header := range summaryHeader {
		pdf.CellFormat(widths[i], 6, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 6, row.CounterpartyName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, groupThousands(row.JobSubtotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, groupThousands(row.ContractSubtotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, groupThousands(row.Total), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, groupThousands(row.Tax), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, groupThousands(row.Gross), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// groupThousands formats an integer amount with comma grouping.
func groupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}
	var buf bytes.Buffer
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	buf.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		buf.WriteByte(',')
		buf.WriteString(s[i : i+3])
	}
	if negative {
		return "-" + buf.String()
	}
	return buf.String()
}
