package infra

// pdf.go — printable daily payments report rendered locally with go-pdf/fpdf.
// Lists every payment of the day (room, vehicle, time, amount) with a trailing
// total line and record count. The totals are passed in by the caller so the
// document always matches the on-screen aggregates.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/gaibarra/motel1/internal/model"
)

// GenerateDailyReportPDF writes the day's payment report into reportDir and
// returns the absolute path of the generated file.
func GenerateDailyReportPDF(date time.Time, payments []model.Payment, total decimal.Decimal, reportDir string) (string, error) {
	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("pdf: create report dir: %w", err)
	}

	fileName := fmt.Sprintf("pagos_%s.pdf", date.Format("2006-01-02"))
	filePath := filepath.Join(reportDir, fileName)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Motel 1 — Reporte de Pagos", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, date.Format("02/01/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ─────────────────────────────────────────────────────────
	col1 := contentW * 0.15 // room
	col2 := contentW * 0.40 // vehicle
	col3 := contentW * 0.20 // time
	col4 := contentW * 0.25 // amount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Cuarto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Vehículo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Hora", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Monto", "B", 1, "R", false, 0, "")

	// ── Rows ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, p := range payments {
		vehicle := p.VehicleInfo
		if len(vehicle) > 40 {
			vehicle = vehicle[:39] + "…"
		}
		pdf.CellFormat(col1, 6, fmt.Sprintf("%d", p.RoomNumber), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, vehicle, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, p.PaymentTime.Format("15:04"), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+p.PaymentAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "Total del día:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 7, "$"+total.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Registros del día: %d", len(payments)), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
