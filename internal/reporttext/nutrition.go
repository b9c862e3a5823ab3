package reporttext

import (
	"regexp"
	"strings"
)

var (
	mealPlanPattern = regexp.MustCompile(`(?i)(?:sample\s+)?meal\s+plan:?`)

	// A label opening a segment may span several words, e.g. "Mid Morning Snack:".
	leadingLabelPattern = regexp.MustCompile(`^(\w+(?:[ \t]+\w+)*):\s*`)

	// Further labels on the same segment are single capitalised words.
	inlineLabelPattern = regexp.MustCompile(`(?:^|\s)([A-Z][A-Za-z]*):`)

	caloriesPattern = regexp.MustCompile(`(?i)\(\s*(\d+)\s*calories?\s*\)`)

	listSplitPattern = regexp.MustCompile(`[*\n]`)

	// Bullet or numbered-list marker at the start of a meal plan line.
	listMarkerPattern = regexp.MustCompile(`^\s*(?:[-*•]\s*|\d+[.)]\s+)`)
)

// MealItem is one labelled entry of a meal plan.
type MealItem struct {
	Label    string `json:"label"`
	Details  string `json:"details"`
	Calories string `json:"calories,omitempty"`
}

// Nutrition is the structured form of a nutrition section.
type Nutrition struct {
	Recommendations []string   `json:"recommendations"`
	Meals           []MealItem `json:"meals"`
}

// Empty reports whether nothing was recognised.
func (n Nutrition) Empty() bool {
	return len(n.Recommendations) == 0 && len(n.Meals) == 0
}

// ParseNutrition splits a nutrition section into recommendations and, when a
// meal plan marker is present, the labelled meal items that follow it.
func ParseNutrition(content string) Nutrition {
	content = strings.TrimSpace(content)
	if content == "" {
		return Nutrition{}
	}

	loc := mealPlanPattern.FindStringIndex(content)
	if loc == nil {
		return Nutrition{Recommendations: splitList(content)}
	}

	meals, notes := parseMeals(content[loc[1]:])
	return Nutrition{
		Recommendations: append(splitList(content[:loc[0]]), notes...),
		Meals:           meals,
	}
}

// splitList breaks text on bullets and newlines, dropping empty entries.
func splitList(text string) []string {
	var items []string
	for _, part := range listSplitPattern.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// parseMeals reads the labelled items of a meal plan. Unlabelled text before
// the first item is returned as notes.
func parseMeals(text string) (meals []MealItem, notes []string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "**", "")
		line = listMarkerPattern.ReplaceAllString(line, "")

		// A '*' ends the details of the current item.
		for i, segment := range strings.Split(line, "*") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}

			m := leadingLabelPattern.FindStringSubmatchIndex(segment)
			if m == nil {
				switch {
				case len(meals) == 0:
					notes = append(notes, segment)
				case i == 0:
					// A following line continues the previous item.
					last := &meals[len(meals)-1]
					last.Details = joinDetails(last.Details, segment, "\n")
				default:
					last := &meals[len(meals)-1]
					last.Details = joinDetails(last.Details, segment, " ")
				}
				continue
			}

			label := segment[m[2]:m[3]]
			meals = append(meals, splitInline(label, segment[m[1]:])...)
		}
	}

	for i := range meals {
		meals[i] = extractCalories(meals[i])
	}
	return meals, notes
}

// splitInline separates "Oats Lunch: Salad" into one item per label.
func splitInline(label, rest string) []MealItem {
	items := []MealItem{{Label: label}}
	for {
		m := inlineLabelPattern.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		items[len(items)-1].Details = strings.TrimSpace(rest[:m[0]])
		items = append(items, MealItem{Label: rest[m[2]:m[3]]})
		rest = rest[m[1]:]
	}
	items[len(items)-1].Details = strings.TrimSpace(rest)
	return items
}

func extractCalories(item MealItem) MealItem {
	if m := caloriesPattern.FindStringSubmatchIndex(item.Details); m != nil {
		item.Calories = item.Details[m[2]:m[3]]
		item.Details = strings.TrimSpace(item.Details[:m[0]] + item.Details[m[1]:])
	}
	return item
}

func joinDetails(a, b, sep string) string {
	if a == "" {
		return b
	}
	return a + sep + b
}
