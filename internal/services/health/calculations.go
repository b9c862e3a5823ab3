// Package health computes the body metrics a consultation report is based on.
package health

import (
	"math"
	"strings"

	"github.com/bobmcallan/vitae/internal/models"
)

// BMI categories.
const (
	CategoryInvalid     = "Invalid input"
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// CalculateBMI returns the body mass index rounded to two decimals and its
// category. Height is in centimetres, weight in kilograms.
func CalculateBMI(weightKg, heightCm float64) (float64, string) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, CategoryInvalid
	}

	m := heightCm / 100
	bmi := math.Round(weightKg/(m*m)*100) / 100

	switch {
	case bmi < 18.5:
		return bmi, CategoryUnderweight
	case bmi < 25:
		return bmi, CategoryNormal
	case bmi < 30:
		return bmi, CategoryOverweight
	default:
		return bmi, CategoryObese
	}
}

// CalculateBMR returns the basal metabolic rate in kcal/day using the revised
// Harris-Benedict equation, rounded to a whole number. It returns 0 for
// non-positive metrics and for genders other than male or female.
func CalculateBMR(weightKg, heightCm, age float64, gender string) float64 {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0
	}

	var bmr float64
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case models.GenderMale:
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	case models.GenderFemale:
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
	default:
		return 0
	}
	return math.Round(bmr)
}
