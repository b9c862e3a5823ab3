// Package chat runs health chat conversations grounded on the user's latest report
package chat

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/interfaces"
	"github.com/bobmcallan/vitae/internal/models"
)

const (
	titleLength   = 40
	fallbackReply = "I'm sorry, I couldn't generate a response. Please try again."
)

// Service implements ChatService
type Service struct {
	storage   interfaces.StorageManager
	gemini    interfaces.GeminiClient
	logger    *common.Logger
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

// NewService creates a new chat service
func NewService(storage interfaces.StorageManager, gemini interfaces.GeminiClient, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		gemini:    gemini,
		logger:    logger,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

// SendMessage records the user's message, asks the model for a reply and
// records that too. An empty conversationID starts a new conversation.
func (s *Service) SendMessage(ctx context.Context, userID, conversationID, message string) (*models.ChatReply, error) {
	content := s.sanitize(message)
	if content == "" {
		return nil, fmt.Errorf("%w: message is required", models.ErrInvalidInput)
	}

	userMsg := s.newMessage(models.SenderUser, content)

	var conv *models.Conversation
	if conversationID == "" {
		conv = &models.Conversation{
			ConversationID: uuid.New().String(),
			UserID:         userID,
			Title:          conversationTitle(content),
			Messages:       []models.ChatMessage{userMsg},
			CreatedAt:      userMsg.Timestamp,
			LastActivity:   userMsg.Timestamp,
		}
		if err := s.storage.ChatStore().SaveConversation(ctx, conv); err != nil {
			return nil, fmt.Errorf("save conversation: %w", err)
		}
		s.logger.Info().Str("conversation_id", conv.ConversationID).Str("user_id", userID).Msg("Conversation started")
	} else {
		var err error
		conv, err = s.owned(ctx, userID, conversationID)
		if err != nil {
			return nil, err
		}
		if err := s.storage.ChatStore().AppendMessage(ctx, conv.ConversationID, userMsg); err != nil {
			return nil, fmt.Errorf("append user message: %w", err)
		}
		conv.Messages = append(conv.Messages, userMsg)
	}

	latest, err := s.storage.ReportStore().LatestReport(ctx, userID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("latest report: %w", err)
		}
		latest = nil
	}

	prompt := buildChatPrompt(newHealthContext(latest), conv.Messages, content)

	reply, err := s.gemini.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("conversation_id", conv.ConversationID).Msg("Chat generation failed")
		return nil, fmt.Errorf("%w: %v", models.ErrGeneration, err)
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = fallbackReply
	}

	aiMsg := s.newMessage(models.SenderAI, reply)
	if latest != nil {
		aiMsg.RelatedReportID = latest.ReportID
	}
	if err := s.storage.ChatStore().AppendMessage(ctx, conv.ConversationID, aiMsg); err != nil {
		return nil, fmt.Errorf("append ai message: %w", err)
	}

	s.logger.Debug().
		Str("conversation_id", conv.ConversationID).
		Int("messages", len(conv.Messages)+1).
		Msg("Chat reply recorded")

	return &models.ChatReply{ConversationID: conv.ConversationID, AIMessage: aiMsg}, nil
}

// History lists the user's conversations, most recent activity first.
func (s *Service) History(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	convs, err := s.storage.ChatStore().ListConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	out := make([]models.ConversationSummary, 0, len(convs))
	for _, c := range convs {
		out = append(out, models.ConversationSummary{
			ConversationID: c.ConversationID,
			Title:          c.Title,
			LastActivity:   c.LastActivity,
		})
	}
	return out, nil
}

// Messages returns the messages of an owned conversation in order.
func (s *Service) Messages(ctx context.Context, userID, conversationID string) ([]models.ChatMessage, error) {
	conv, err := s.owned(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.Messages == nil {
		return []models.ChatMessage{}, nil
	}
	return conv.Messages, nil
}

// owned loads a conversation, reporting another user's conversation as missing.
func (s *Service) owned(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	conv, err := s.storage.ChatStore().GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	if conv.UserID != userID {
		return nil, models.ErrNotFound
	}
	return conv, nil
}

func (s *Service) newMessage(sender, content string) models.ChatMessage {
	return models.ChatMessage{
		MessageID:   uuid.New().String(),
		Sender:      sender,
		Content:     content,
		MessageType: models.MessageTypeText,
		Timestamp:   s.now().UTC(),
	}
}

// sanitize strips all markup from user text and returns it as plain text.
func (s *Service) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(text)))
}

// conversationTitle is the first characters of the opening message followed by "...".
func conversationTitle(message string) string {
	if utf8.RuneCountInString(message) > titleLength {
		message = string([]rune(message)[:titleLength])
	}
	return message + "..."
}

// Compile-time check
var _ interfaces.ChatService = (*Service)(nil)
