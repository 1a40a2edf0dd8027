package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gaibarra/motel1/internal/infra"
)

// ReportService renders the daily payments report locally and handles the
// turn-close report blob. Totals always come from the PaymentService
// aggregates so the document matches what the staff sees on screen.
type ReportService struct {
	payments *PaymentService
	turns    *TurnService
	mailer   *infra.Mailer

	reportDir string
	emailTo   string
}

func NewReportService(payments *PaymentService, turns *TurnService, mailer *infra.Mailer, reportDir, emailTo string) *ReportService {
	return &ReportService{
		payments:  payments,
		turns:     turns,
		mailer:    mailer,
		reportDir: reportDir,
		emailTo:   emailTo,
	}
}

// GenerateDailyReport refreshes the payment set and renders the day's report
// as a PDF. Returns the written file path.
func (s *ReportService) GenerateDailyReport(ctx context.Context, date time.Time) (string, error) {
	if err := s.payments.Refresh(ctx); err != nil {
		return "", err
	}
	dayPayments := s.payments.PaymentsOnDate(date)
	total := s.payments.DailyTotal(date)

	path, err := infra.GenerateDailyReportPDF(date, dayPayments, total, s.reportDir)
	if err != nil {
		return "", err
	}
	log.Info().Str("path", path).Int("records", len(dayPayments)).Msg("report: daily report generated")
	return path, nil
}

// CloseTurn closes the turn, saves its report PDF, and mails it to
// administration when a mailer is configured. The mail is best-effort: the
// turn is already closed by the time it is sent, so a mail failure is logged
// and the saved report path is still returned.
func (s *ReportService) CloseTurn(ctx context.Context, turnID int) (string, error) {
	blob, err := s.turns.Close(ctx, turnID)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.reportDir, 0755); err != nil {
		return "", fmt.Errorf("report: create dir: %w", err)
	}
	path := filepath.Join(s.reportDir, fmt.Sprintf("Turno_%d_reporte.pdf", turnID))
	if err := os.WriteFile(path, blob, 0644); err != nil {
		return "", fmt.Errorf("report: save turn report: %w", err)
	}

	if s.mailer != nil && s.emailTo != "" {
		subject := fmt.Sprintf("Reporte de Turno #%d", turnID)
		body := fmt.Sprintf("Adjunto el reporte del turno de caja #%d.", turnID)
		if err := s.mailer.SendTurnReport(s.emailTo, subject, body, path); err != nil {
			log.Warn().Err(err).Int("turn", turnID).Msg("report: could not mail turn report")
		} else {
			log.Info().Str("to", s.emailTo).Int("turn", turnID).Msg("report: turn report mailed")
		}
	}

	return path, nil
}
