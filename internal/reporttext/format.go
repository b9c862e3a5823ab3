package reporttext

import (
	"strconv"
	"strings"

	"github.com/bobmcallan/vitae/internal/models"
)

// DateLayout renders timestamps the way HTTP dates are written, always in UTC.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

const reportTitle = "AI Health Consultation Report"

// Format renders a report as plain text: a fixed header block with the
// patient metrics followed by the model output with markdown stripped.
func Format(report models.HealthReport) string {
	var sb strings.Builder

	sb.WriteString(reportTitle + "\n")
	sb.WriteString(strings.Repeat("=", len(reportTitle)) + "\n")
	sb.WriteString("Generated For: User " + report.UserID + "\n")
	sb.WriteString("Date: " + report.CreatedAt.UTC().Format(DateLayout) + "\n")
	sb.WriteString("\n")
	sb.WriteString("Patient Metrics:\n")
	sb.WriteString("- Age: " + FormatNumber(report.Age) + "\n")
	sb.WriteString("- Gender: " + report.Gender + "\n")
	sb.WriteString("- Height: " + FormatNumber(report.Height) + " cm\n")
	sb.WriteString("- Weight: " + FormatNumber(report.Weight) + " kg\n")
	sb.WriteString("- BMI: " + FormatNumber(report.BMI) + "\n")
	sb.WriteString(strings.Repeat("-", len(reportTitle)) + "\n")

	sb.WriteString("\n")
	sb.WriteString(StripMarkdown(report.AIGeneratedReport))

	return sb.String()
}

// StripMarkdown removes heading hashes, bold markers and '=' rules.
// Single '*' bullets are kept.
func StripMarkdown(text string) string {
	text = strings.ReplaceAll(text, "#", "")
	text = strings.ReplaceAll(text, "=", "")
	return strings.ReplaceAll(text, "**", "")
}

// FormatNumber prints a metric without trailing zeros, so 70 renders as "70".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
