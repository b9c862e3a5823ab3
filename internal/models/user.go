package models

import "time"

// Report format preferences.
const (
	ReportFormatPDF  = "pdf"
	ReportFormatText = "text"
)

// UserPreferences holds per-user display and assistant settings.
type UserPreferences struct {
	ReportFormat  string `json:"report_format"`
	Theme         string `json:"theme"`
	ChatHistory   bool   `json:"chat_history"`
	AIPersonality string `json:"ai_personality"`
}

// DefaultPreferences returns the preferences assigned to a new account.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		ReportFormat:  ReportFormatPDF,
		Theme:         "light",
		ChatHistory:   true,
		AIPersonality: "friendly",
	}
}

// User is an account stored in the user table.
type User struct {
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"password_hash"`
	Preferences  UserPreferences `json:"preferences"`
	CreatedAt    time.Time       `json:"created_at"`
	LastLogin    time.Time       `json:"last_login"`
}
