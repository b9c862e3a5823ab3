package chat

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/vitae/internal/models"
	"github.com/bobmcallan/vitae/internal/reporttext"
)

const (
	historyWindow     = 5
	summaryDateLayout = "Mon Jan 02 2006"
	noReportSummary   = "No health report on file."
	notAvailable      = "N/A"
	seeFullReport     = "See full report for details."
)

// healthContext is what the latest report contributes to a chat prompt.
type healthContext struct {
	report             *models.HealthReport
	summary            string
	keyRecommendations string
}

func newHealthContext(report *models.HealthReport) healthContext {
	if report == nil {
		return healthContext{summary: noReportSummary, keyRecommendations: notAvailable}
	}
	return healthContext{
		report: report,
		summary: fmt.Sprintf("User's last report from %s indicates a BMI of %s.",
			report.CreatedAt.UTC().Format(summaryDateLayout), reporttext.FormatNumber(report.BMI)),
		keyRecommendations: seeFullReport,
	}
}

// profileValue renders a metric, or N/A when there is no report or the value is unset.
func (h healthContext) profileValue(get func(r *models.HealthReport) float64) string {
	if h.report == nil {
		return notAvailable
	}
	if v := get(h.report); v != 0 {
		return reporttext.FormatNumber(v)
	}
	return notAvailable
}

func (h healthContext) gender() string {
	if h.report == nil || h.report.Gender == "" {
		return notAvailable
	}
	return h.report.Gender
}

// buildChatPrompt renders the instruction sent to the model for one chat turn.
// history holds the conversation so far, including the question being asked.
func buildChatPrompt(h healthContext, history []models.ChatMessage, question string) string {
	var sb strings.Builder

	sb.WriteString("You are a professional and friendly health consultant AI. ")
	sb.WriteString("Respond to the user's question based on their health profile and conversation history.\n\n")

	sb.WriteString("User's Health Profile:\n")
	fmt.Fprintf(&sb, "- Age: %s\n", h.profileValue(func(r *models.HealthReport) float64 { return r.Age }))
	fmt.Fprintf(&sb, "- Gender: %s\n", h.gender())
	fmt.Fprintf(&sb, "- Height: %s cm\n", h.profileValue(func(r *models.HealthReport) float64 { return r.Height }))
	fmt.Fprintf(&sb, "- Weight: %s kg\n", h.profileValue(func(r *models.HealthReport) float64 { return r.Weight }))
	fmt.Fprintf(&sb, "- BMI: %s\n\n", h.profileValue(func(r *models.HealthReport) float64 { return r.BMI }))

	sb.WriteString("Latest Health Report Summary:\n")
	sb.WriteString(h.summary + "\n\n")

	sb.WriteString("Key Recommendations from Report:\n")
	sb.WriteString(h.keyRecommendations + "\n\n")

	sb.WriteString("Recent Chat History:\n")
	for _, m := range recent(history, historyWindow) {
		fmt.Fprintf(&sb, "%s: %s\n", m.Sender, m.Content)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "User's Question: \"%s\"\n\n", question)

	sb.WriteString("Guidelines for Response:\n")
	sb.WriteString("- Be conversational and supportive.\n")
	sb.WriteString("- Keep responses concise (1-3 paragraphs).\n")
	sb.WriteString("- Do NOT give medical diagnoses. If asked about symptoms, firmly recommend consulting a doctor.\n")
	sb.WriteString("- Use the user's health data to provide personalized, safe, general wellness advice.\n\n")

	sb.WriteString("Response:\n")
	return sb.String()
}

func recent(messages []models.ChatMessage, n int) []models.ChatMessage {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}
