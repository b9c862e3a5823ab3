// Package models defines data structures for Vitae
package models

import "time"

// Gender values accepted when generating a report.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// HealthReport is a stored AI consultation for one set of body metrics.
// AIGeneratedReport holds the raw model output and is never rewritten.
type HealthReport struct {
	ReportID          string    `json:"report_id"`
	UserID            string    `json:"user_id"`
	Age               float64   `json:"age"`
	Gender            string    `json:"gender"`
	Height            float64   `json:"height"`
	Weight            float64   `json:"weight"`
	BMI               float64   `json:"bmi"`
	BMICategory       string    `json:"bmi_category"`
	BMR               float64   `json:"bmr"`
	AIGeneratedReport string    `json:"ai_generated_report"`
	CreatedAt         time.Time `json:"created_at"`
	DownloadCount     int       `json:"download_count"`
	LastAccessed      time.Time `json:"last_accessed"`
	Tags              []string  `json:"tags"`
	Starred           bool      `json:"starred"`
}

// ReportUpdate carries the user-editable bookkeeping fields of a report.
type ReportUpdate struct {
	Starred *bool    `json:"starred,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// ReportRequest is the body-metric input for generating a report.
type ReportRequest struct {
	Height float64 `json:"height" validate:"required,gt=0,lte=300"`
	Weight float64 `json:"weight" validate:"required,gt=0,lte=700"`
	Age    float64 `json:"age" validate:"required,gt=0,lte=150"`
	Gender string  `json:"gender" validate:"required,oneof=male female other"`
}

// ReportExport is a rendered download of a report.
type ReportExport struct {
	Filename    string
	ContentType string
	Data        []byte
}
