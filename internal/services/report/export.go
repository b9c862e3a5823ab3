package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/bobmcallan/vitae/internal/models"
	"github.com/bobmcallan/vitae/internal/reporttext"
)

// Export formats.
const (
	FormatPDF = "pdf"
	FormatTXT = "txt"
)

// PDF layout in millimetres.
const (
	pdfLeftMargin  = 15.0
	pdfTopMargin   = 20.0
	pdfTextWidth   = 180.0
	pdfFontSize    = 12.0
	pdfLineHeight  = 6.0
	pdfBottomLimit = 15.0
)

// Export renders an owned report as a download and records the access.
func (s *Service) Export(ctx context.Context, userID, reportID, format string) (*models.ReportExport, error) {
	format = strings.ToLower(format)
	if format != FormatPDF && format != FormatTXT {
		return nil, fmt.Errorf("%w: unsupported format %q", models.ErrInvalidInput, format)
	}

	report, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	text := reporttext.Format(*report)
	export := &models.ReportExport{
		Filename: fmt.Sprintf("health-report-%s.%s", report.ReportID, format),
	}

	switch format {
	case FormatPDF:
		data, err := renderPDF(text)
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		export.ContentType = "application/pdf"
		export.Data = data
	default:
		export.ContentType = "text/plain"
		export.Data = []byte(text)
	}

	if err := s.storage.ReportStore().RecordDownload(ctx, report.ReportID, s.now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("report_id", report.ReportID).Msg("Failed to record report download")
	}

	s.logger.Info().
		Str("report_id", report.ReportID).
		Str("format", format).
		Int("bytes", len(export.Data)).
		Msg("Report exported")

	return export, nil
}

// renderPDF lays the text out in one word-wrapped block of Helvetica,
// adding pages as the text overflows.
func renderPDF(text string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfLeftMargin, pdfTopMargin, pdfLeftMargin)
	pdf.SetAutoPageBreak(true, pdfBottomLimit)
	pdf.SetTitle("AI Health Consultation Report", true)
	pdf.SetCreator("vitae", true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", pdfFontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.MultiCell(pdfTextWidth, pdfLineHeight, tr(text), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
