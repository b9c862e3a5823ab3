package models

import "time"

// ReportView is the display structure of a report: an overview block, an
// optional body composition block and the remaining sections in order.
type ReportView struct {
	ReportID    string            `json:"report_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Empty       bool              `json:"empty"`
	Message     string            `json:"message,omitempty"`
	Intro       string            `json:"intro"`
	Overview    *OverviewBlock    `json:"overview,omitempty"`
	Composition *CompositionBlock `json:"composition,omitempty"`
	Sections    []SectionView     `json:"sections"`
}

// OverviewBlock is the greeting shown at the top of a report.
type OverviewBlock struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// CompositionBlock is the body composition section with its BMI card.
type CompositionBlock struct {
	Title       string  `json:"title"`
	Icon        string  `json:"icon"`
	Content     string  `json:"content"`
	BMI         float64 `json:"bmi"`
	BMICategory string  `json:"bmi_category"`
}

// SectionView is one rendered section. Kind selects which body field is set.
type SectionView struct {
	Title       string           `json:"title"`
	Icon        string           `json:"icon"`
	Kind        string           `json:"kind"`
	Text        string           `json:"text,omitempty"`
	Nutrition   *NutritionView   `json:"nutrition,omitempty"`
	Hydration   *HydrationView   `json:"hydration,omitempty"`
	Placeholder *PlaceholderView `json:"placeholder,omitempty"`
}

// NutritionView lists recommendations and meal plan entries.
type NutritionView struct {
	Recommendations []string   `json:"recommendations"`
	Meals           []MealView `json:"meals"`
	Message         string     `json:"message,omitempty"`
}

// MealView is one meal plan entry.
type MealView struct {
	Label    string `json:"label"`
	Details  string `json:"details"`
	Calories string `json:"calories,omitempty"`
	Emoji    string `json:"emoji"`
}

// HydrationView is the daily water intake card, or pass-through text.
type HydrationView struct {
	Found  bool   `json:"found"`
	Cups   int    `json:"cups,omitempty"`
	Ounces int    `json:"ounces,omitempty"`
	Text   string `json:"text,omitempty"`
}

// PlaceholderView stands in for a section the model left empty.
type PlaceholderView struct {
	Icon    string `json:"icon"`
	Heading string `json:"heading"`
	Text    string `json:"text"`
}
