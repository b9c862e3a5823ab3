package reporttext

import (
	"regexp"
	"strconv"
)

var cupsPattern = regexp.MustCompile(`(?i)(\d+)\s*cups?\s*\((\d+)\s*ounces?\)`)

// Hydration is the structured form of a hydration section. When no daily
// intake is recognised, Text carries the section content unchanged.
type Hydration struct {
	Found  bool   `json:"found"`
	Cups   int    `json:"cups,omitempty"`
	Ounces int    `json:"ounces,omitempty"`
	Text   string `json:"text,omitempty"`
}

// ParseHydration looks for a daily intake written as "N cups (M ounces)".
func ParseHydration(content string) Hydration {
	m := cupsPattern.FindStringSubmatch(content)
	if m == nil {
		return Hydration{Text: content}
	}

	cups, err := strconv.Atoi(m[1])
	if err != nil {
		return Hydration{Text: content}
	}
	ounces, err := strconv.Atoi(m[2])
	if err != nil {
		return Hydration{Text: content}
	}
	return Hydration{Found: true, Cups: cups, Ounces: ounces}
}
