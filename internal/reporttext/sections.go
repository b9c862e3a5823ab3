package reporttext

import "strings"

// Keyword sets used to recognise well-known sections by title.
var (
	OverviewKeywords    = []string{"overview", "congratulations", "summary"}
	CompositionKeywords = []string{"composition", "body composition", "bmi", "analysis"}
	NutritionKeywords   = []string{"nutritional", "nutrition", "dietary", "diet"}
	HydrationKeywords   = []string{"hydration", "water"}
)

// FindSection returns the first section whose title contains any keyword,
// compared case-insensitively.
func FindSection(sections []Section, keywords ...string) (Section, bool) {
	for _, s := range sections {
		if titleHasAny(s.Title, keywords) {
			return s, true
		}
	}
	return Section{}, false
}

// GenericSections returns the sections rendered as plain blocks: every section
// except those titled as an overview or a body composition, in source order.
func GenericSections(sections []Section) []Section {
	var out []Section
	for _, s := range sections {
		if titleHasAny(s.Title, []string{"overview", "composition"}) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// nutritionBodyKeywords is narrower than NutritionKeywords: a "Diet & Hydration"
// section renders as hydration.
var nutritionBodyKeywords = []string{"nutritional", "nutrition", "dietary"}

// Kind classifies a generic section for rendering its body. Nutrition is
// checked before hydration, and an exercise section only gets its own kind
// when it has no content.
func Kind(s Section) string {
	switch {
	case titleHasAny(s.Title, nutritionBodyKeywords):
		return KindNutrition
	case titleHasAny(s.Title, HydrationKeywords):
		return KindHydration
	case titleHasAny(s.Title, []string{"exercise"}) && strings.TrimSpace(s.Content) == "":
		return KindExercisePlaceholder
	}
	return KindText
}

// Section body kinds returned by Kind.
const (
	KindNutrition           = "nutrition"
	KindHydration           = "hydration"
	KindExercisePlaceholder = "exercise_placeholder"
	KindText                = "text"
)

func titleHasAny(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
