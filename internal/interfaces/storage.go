// Package interfaces defines service contracts for Vitae
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/vitae/internal/models"
)

// StorageManager coordinates all stores of one backend
type StorageManager interface {
	UserStore() UserStore
	ReportStore() ReportStore
	ChatStore() ChatStore

	// Lifecycle
	Close() error
}

// UserStore manages user accounts. Lookups of absent records return
// models.ErrNotFound.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
}

// ReportStore manages generated health reports.
type ReportStore interface {
	SaveReport(ctx context.Context, report *models.HealthReport) error
	GetReport(ctx context.Context, reportID string) (*models.HealthReport, error)

	// ListReports returns a user's reports, newest first.
	ListReports(ctx context.Context, userID string) ([]*models.HealthReport, error)

	// LatestReport returns the newest report of a user.
	LatestReport(ctx context.Context, userID string) (*models.HealthReport, error)

	// RecordDownload increments the download counter and stamps last access.
	RecordDownload(ctx context.Context, reportID string, at time.Time) error

	// UpdateBookkeeping sets only the starred flag and tags present in the
	// update, leaving every other field as stored, and returns the result.
	UpdateBookkeeping(ctx context.Context, reportID string, update models.ReportUpdate) (*models.HealthReport, error)
}

// ChatStore manages conversations and their messages.
type ChatStore interface {
	SaveConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error)

	// ListConversations returns a user's conversations, most recent activity first.
	ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error)

	// AppendMessage adds a message and moves last activity to the message time.
	AppendMessage(ctx context.Context, conversationID string, msg models.ChatMessage) error
}
