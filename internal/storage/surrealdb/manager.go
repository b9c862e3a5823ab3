// Package surrealdb implements the Vitae stores on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/interfaces"
	"github.com/bobmcallan/vitae/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

const (
	tableUser         = "user"
	tableReport       = "health_report"
	tableConversation = "conversation"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	userStore   *UserStore
	reportStore *ReportStore
	chatStore   *ChatStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(ctx context.Context, logger *common.Logger, config *common.Config) (*Manager, error) {
	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// SurrealDB v3 errors on querying tables that were never defined
	schema := []string{
		fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", tableUser),
		fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", tableReport),
		fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", tableConversation),
		fmt.Sprintf("DEFINE INDEX IF NOT EXISTS user_email ON TABLE %s COLUMNS email UNIQUE", tableUser),
		fmt.Sprintf("DEFINE INDEX IF NOT EXISTS report_user ON TABLE %s COLUMNS user_id", tableReport),
		fmt.Sprintf("DEFINE INDEX IF NOT EXISTS conversation_user ON TABLE %s COLUMNS user_id", tableConversation),
	}
	for _, stmt := range schema {
		if _, err := surrealdb.Query[any](ctx, db, stmt, nil); err != nil {
			db.Close(ctx)
			return nil, fmt.Errorf("failed to apply schema %q: %w", stmt, err)
		}
	}

	m := &Manager{
		db:          db,
		logger:      logger,
		userStore:   NewUserStore(db, logger),
		reportStore: NewReportStore(db, logger),
		chatStore:   NewChatStore(db, logger),
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) ReportStore() interfaces.ReportStore {
	return m.reportStore
}

func (m *Manager) ChatStore() interfaces.ChatStore {
	return m.chatStore
}

// Close closes the database connection.
func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// isNotFoundError reports whether a SurrealDB error means the record is absent.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

// isUniqueViolation reports whether a SurrealDB error is a UNIQUE index
// rejecting a duplicate value.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "index") && strings.Contains(msg, "already contains")
}

// execWrite runs a write statement. A unique index violation is returned as
// models.ErrConflict.
func execWrite(ctx context.Context, db *surrealdb.DB, sql string, vars map[string]any) error {
	results, err := surrealdb.Query[any](ctx, db, sql, vars)
	if err == nil && results != nil {
		for _, r := range *results {
			if r.Status == "ERR" {
				err = fmt.Errorf("statement failed: %v", r.Result)
				break
			}
		}
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", models.ErrConflict, err)
		}
		return err
	}
	return nil
}

var _ interfaces.StorageManager = (*Manager)(nil)
