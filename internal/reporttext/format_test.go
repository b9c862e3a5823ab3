package reporttext

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/vitae/internal/models"
)

func testReport() models.HealthReport {
	return models.HealthReport{
		ReportID:    "r-1",
		UserID:      "u-42",
		Age:         30,
		Gender:      "male",
		Height:      175,
		Weight:      70.5,
		BMI:         23.02,
		BMICategory: "Normal weight",
		CreatedAt:   time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC),
		AIGeneratedReport: "# Report\n## **Overview**\nYou are doing well.\n### Diet ###\n" +
			"* Eat *more* greens\n=====\nNotes = none",
	}
}

func TestFormat_Header(t *testing.T) {
	out := Format(testReport())

	lines := strings.Split(out, "\n")
	assert.Equal(t, "AI Health Consultation Report", lines[0])
	assert.Equal(t, strings.Repeat("=", len(lines[0])), lines[1])
	assert.Equal(t, "Generated For: User u-42", lines[2])
	assert.Equal(t, "Date: Tue, 15 Oct 2024 10:00:00 GMT", lines[3])
	assert.Contains(t, out, "Patient Metrics:\n- Age: 30\n- Gender: male\n- Height: 175 cm\n- Weight: 70.5 kg\n- BMI: 23.02\n")
}

func TestFormat_ContainsMetricsAndNoMarkdown(t *testing.T) {
	r := testReport()
	out := Format(r)

	for _, want := range []string{"30", "male", "175", "70.5", "23.02"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "#")
	assert.NotContains(t, out, "**")
	assert.Contains(t, out, "* Eat *more* greens")
	assert.Contains(t, out, "Notes  none")
}

func TestFormat_DateInUTC(t *testing.T) {
	r := testReport()
	r.CreatedAt = time.Date(2024, 10, 15, 20, 30, 0, 0, time.FixedZone("AEST", 10*3600))

	assert.Contains(t, Format(r), "Date: Tue, 15 Oct 2024 10:30:00 GMT")
}

func TestFormat_EmptyReportText(t *testing.T) {
	r := testReport()
	r.AIGeneratedReport = ""

	out := Format(r)
	assert.NotEmpty(t, out)
	assert.True(t, strings.HasPrefix(out, "AI Health Consultation Report\n"))
	assert.Contains(t, out, "- BMI: 23.02")
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"## Title", " Title"},
		{"**bold** text", "bold text"},
		{"***", "*"},
		{"*#*", ""},
		{"*=*", ""},
		{"a = b", "a  b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripMarkdown(tt.in), tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "70", FormatNumber(70))
	assert.Equal(t, "22.86", FormatNumber(22.86))
	assert.Equal(t, "0", FormatNumber(0))
}
