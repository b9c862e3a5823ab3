package models

import "time"

// Message senders.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message types.
const (
	MessageTypeText            = "text"
	MessageTypeReportReference = "report_reference"
	MessageTypeRecommendation  = "recommendation"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	MessageID       string    `json:"message_id"`
	Sender          string    `json:"sender"`
	Content         string    `json:"content"`
	MessageType     string    `json:"message_type"`
	Timestamp       time.Time `json:"timestamp"`
	RelatedReportID string    `json:"related_report_id,omitempty"`
}

// Conversation is an ordered chat thread owned by one user.
type Conversation struct {
	ConversationID string        `json:"conversation_id"`
	UserID         string        `json:"user_id"`
	Title          string        `json:"title"`
	Messages       []ChatMessage `json:"messages"`
	CreatedAt      time.Time     `json:"created_at"`
	LastActivity   time.Time     `json:"last_activity"`
}

// ConversationSummary is the listing shape for chat history.
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	Title          string    `json:"title"`
	LastActivity   time.Time `json:"last_activity"`
}

// ChatReply is the result of sending a chat message.
type ChatReply struct {
	ConversationID string      `json:"conversation_id"`
	AIMessage      ChatMessage `json:"ai_message"`
}
