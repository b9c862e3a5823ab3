package surrealdb

import (
	"context"
	"fmt"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/interfaces"
	"github.com/bobmcallan/vitae/internal/models"
	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// ChatStore implements interfaces.ChatStore using SurrealDB. Messages are
// embedded in their conversation record.
type ChatStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewChatStore creates a new ChatStore.
func NewChatStore(db *surrealdb.DB, logger *common.Logger) *ChatStore {
	return &ChatStore{db: db, logger: logger}
}

func (s *ChatStore) SaveConversation(ctx context.Context, conv *models.Conversation) error {
	if conv.Messages == nil {
		conv.Messages = []models.ChatMessage{}
	}
	sql := "UPSERT $rid CONTENT $conversation"
	vars := map[string]any{
		"rid":          surrealmodels.NewRecordID(tableConversation, conv.ConversationID),
		"conversation": conv,
	}

	if err := execWrite(ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

func (s *ChatStore) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conv, err := surrealdb.Select[models.Conversation](ctx, s.db, surrealmodels.NewRecordID(tableConversation, conversationID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select conversation: %w", err)
	}
	if conv == nil || conv.ConversationID == "" {
		return nil, models.ErrNotFound
	}
	return conv, nil
}

func (s *ChatStore) ListConversations(ctx context.Context, userID string) ([]*models.Conversation, error) {
	sql := "SELECT * FROM conversation WHERE user_id = $user_id ORDER BY last_activity DESC"
	vars := map[string]any{"user_id": userID}

	results, err := surrealdb.Query[[]models.Conversation](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	var convs []*models.Conversation
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			convs = append(convs, &(*results)[0].Result[i])
		}
	}
	return convs, nil
}

func (s *ChatStore) AppendMessage(ctx context.Context, conversationID string, msg models.ChatMessage) error {
	sql := "UPDATE $rid SET messages += $message, last_activity = $at"
	vars := map[string]any{
		"rid":     surrealmodels.NewRecordID(tableConversation, conversationID),
		"message": msg,
		"at":      msg.Timestamp,
	}

	results, err := surrealdb.Query[[]models.Conversation](ctx, s.db, sql, vars)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return models.ErrNotFound
	}
	return nil
}

var _ interfaces.ChatStore = (*ChatStore)(nil)
