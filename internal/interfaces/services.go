package interfaces

import (
	"context"

	"github.com/bobmcallan/vitae/internal/models"
)

// ReportService generates, reads and exports health reports. Operations on
// a single report return models.ErrNotFound when it is missing and
// models.ErrForbidden when it belongs to another user.
type ReportService interface {
	Generate(ctx context.Context, userID string, req models.ReportRequest) (*models.HealthReport, error)
	History(ctx context.Context, userID string) ([]*models.HealthReport, error)
	Get(ctx context.Context, userID, reportID string) (*models.HealthReport, error)
	View(ctx context.Context, userID, reportID string) (*models.ReportView, error)
	Export(ctx context.Context, userID, reportID, format string) (*models.ReportExport, error)
	Update(ctx context.Context, userID, reportID string, update models.ReportUpdate) (*models.HealthReport, error)

	// Chart renders a PNG of BMI and weight across the user's reports.
	Chart(ctx context.Context, userID string) ([]byte, error)
}

// ChatService runs health chat conversations grounded on the latest report.
type ChatService interface {
	SendMessage(ctx context.Context, userID, conversationID, message string) (*models.ChatReply, error)
	History(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	Messages(ctx context.Context, userID, conversationID string) ([]models.ChatMessage, error)
}
