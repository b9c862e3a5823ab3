package report

import (
	"strings"

	"github.com/bobmcallan/vitae/internal/models"
	"github.com/bobmcallan/vitae/internal/reporttext"
)

const (
	defaultOverviewHeading = "Congratulations on taking the first step towards a healthier you!"
	defaultBMICategory     = "Normal Weight Range"
	noReportMessage        = "No report data available."
	noNutritionMessage     = "No nutritional information available."
	noContentMessage       = "Content not available."
)

// sectionIcons maps title keywords to icon names. The first matching rule wins.
var sectionIcons = []struct {
	keywords []string
	icon     string
}{
	{[]string{"composition", "body"}, "fas fa-chart-line"},
	{[]string{"nutritional", "nutrition", "dietary"}, "fas fa-utensils"},
	{[]string{"meal", "plan"}, "fas fa-calendar-day"},
	{[]string{"hydration", "water"}, "fas fa-tint"},
	{[]string{"exercise", "fitness"}, "fas fa-heartbeat"},
	{[]string{"lifestyle"}, "fas fa-person-walking"},
	{[]string{"goal setting"}, "fas fa-bullseye"},
}

const defaultSectionIcon = "fas fa-notes-medical"

var mealEmojis = []struct {
	keyword string
	emoji   string
}{
	{"breakfast", "🌅"},
	{"lunch", "🍽️"},
	{"dinner", "🌙"},
	{"snack", "🥜"},
}

const defaultMealEmoji = "🍴"

// BuildView turns a stored report into its display structure.
func BuildView(report *models.HealthReport) *models.ReportView {
	view := &models.ReportView{
		ReportID:  report.ReportID,
		CreatedAt: report.CreatedAt,
		Sections:  []models.SectionView{},
	}

	parsed := reporttext.Parse(report.AIGeneratedReport)
	if parsed.Empty() {
		view.Empty = true
		view.Message = noReportMessage
		return view
	}
	view.Intro = parsed.Intro

	if overview, ok := reporttext.FindSection(parsed.Sections, reporttext.OverviewKeywords...); ok {
		view.Overview = &models.OverviewBlock{Heading: overview.Title, Content: overview.Content}
	} else if parsed.Intro != "" {
		view.Overview = &models.OverviewBlock{Heading: defaultOverviewHeading, Content: parsed.Intro}
	}

	if composition, ok := reporttext.FindSection(parsed.Sections, reporttext.CompositionKeywords...); ok && report.BMI > 0 {
		category := report.BMICategory
		if category == "" {
			category = defaultBMICategory
		}
		view.Composition = &models.CompositionBlock{
			Title:       composition.Title,
			Icon:        sectionIcon(composition.Title),
			Content:     composition.Content,
			BMI:         report.BMI,
			BMICategory: category,
		}
	}

	for _, s := range reporttext.GenericSections(parsed.Sections) {
		view.Sections = append(view.Sections, buildSection(s))
	}

	return view
}

func buildSection(s reporttext.Section) models.SectionView {
	sv := models.SectionView{
		Title: s.Title,
		Icon:  sectionIcon(s.Title),
		Kind:  reporttext.Kind(s),
	}

	switch sv.Kind {
	case reporttext.KindNutrition:
		sv.Nutrition = buildNutrition(s.Content)
	case reporttext.KindHydration:
		h := reporttext.ParseHydration(s.Content)
		sv.Hydration = &models.HydrationView{Found: h.Found, Cups: h.Cups, Ounces: h.Ounces, Text: h.Text}
	case reporttext.KindExercisePlaceholder:
		sv.Placeholder = &models.PlaceholderView{
			Icon:    "💪",
			Heading: "Exercise Recommendations",
			Text:    "Exercise recommendations will be detailed in your personalized fitness plan",
		}
	default:
		sv.Text = s.Content
		if sv.Text == "" {
			sv.Text = noContentMessage
		}
	}
	return sv
}

func buildNutrition(content string) *models.NutritionView {
	n := reporttext.ParseNutrition(content)
	nv := &models.NutritionView{
		Recommendations: n.Recommendations,
		Meals:           make([]models.MealView, 0, len(n.Meals)),
	}
	if nv.Recommendations == nil {
		nv.Recommendations = []string{}
	}
	if n.Empty() {
		nv.Message = noNutritionMessage
	}
	for _, m := range n.Meals {
		nv.Meals = append(nv.Meals, models.MealView{
			Label:    m.Label,
			Details:  m.Details,
			Calories: m.Calories,
			Emoji:    mealEmoji(m.Label),
		})
	}
	return nv
}

func sectionIcon(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range sectionIcons {
		for _, k := range rule.keywords {
			if strings.Contains(lower, k) {
				return rule.icon
			}
		}
	}
	return defaultSectionIcon
}

func mealEmoji(label string) string {
	lower := strings.ToLower(label)
	for _, m := range mealEmojis {
		if strings.Contains(lower, m.keyword) {
			return m.emoji
		}
	}
	return defaultMealEmoji
}
