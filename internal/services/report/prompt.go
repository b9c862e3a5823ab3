package report

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/vitae/internal/reporttext"
)

// consultationSections are the mandatory report sections, in order.
var consultationSections = []struct {
	title string
	brief string
}{
	{"Health Status Overview", "A brief, encouraging summary of the user's current health status based on their metrics."},
	{"Body Composition Analysis", "An explanation of what their BMI means in practical terms."},
	{"Nutritional Recommendations", "Actionable advice on diet, including types of food to focus on and hydration. Provide a sample one-day meal plan (e.g., Breakfast, Lunch, Dinner, Snacks)."},
	{"Exercise Suggestions", "Specific types of exercises suitable for the user (e.g., cardiovascular, strength training, flexibility). Suggest a weekly frequency and duration."},
	{"Lifestyle Improvements", "Recommendations on sleep, stress management, and other positive habits."},
	{"Goal Setting Advice", "Tips on how to set realistic and achievable health and fitness goals."},
}

// metrics are the computed inputs of a consultation prompt.
type metrics struct {
	Age         float64
	Gender      string
	Height      float64
	Weight      float64
	BMI         float64
	BMICategory string
	BMR         float64
}

// buildConsultationPrompt renders the instruction sent to the model for a new report.
func buildConsultationPrompt(m metrics) string {
	var sb strings.Builder

	sb.WriteString("Generate a comprehensive health consultation report (maximum 1 page) for the following user.\n")
	sb.WriteString("The report must be structured with clear sections, professional language, and a motivational tone.\n")
	sb.WriteString("Do not provide medical diagnoses. Focus on general wellness, prevention, and lifestyle improvements.\n\n")

	sb.WriteString("User Profile:\n")
	fmt.Fprintf(&sb, "- Age: %s years\n", reporttext.FormatNumber(m.Age))
	fmt.Fprintf(&sb, "- Gender: %s\n", m.Gender)
	fmt.Fprintf(&sb, "- Height: %s cm\n", reporttext.FormatNumber(m.Height))
	fmt.Fprintf(&sb, "- Weight: %s kg\n", reporttext.FormatNumber(m.Weight))
	fmt.Fprintf(&sb, "- Body Mass Index (BMI): %s (%s)\n", reporttext.FormatNumber(m.BMI), m.BMICategory)
	fmt.Fprintf(&sb, "- Basal Metabolic Rate (BMR): %s calories/day\n\n", reporttext.FormatNumber(m.BMR))

	sb.WriteString("Please provide the report with the following mandatory sections:\n")
	for i, s := range consultationSections {
		fmt.Fprintf(&sb, "%d.  **%s**: %s\n", i+1, s.title, s.brief)
	}
	sb.WriteString("\nFormat the output clearly using Markdown for headings and lists.\n")

	return sb.String()
}
