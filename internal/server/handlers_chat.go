package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/models"
)

type chatMessageRequest struct {
	Message        string `json:"message" validate:"required,max=4000"`
	ConversationID string `json:"conversation_id" validate:"omitempty,max=64"`
}

// handleChatMessage handles POST /api/chat/message.
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.ConversationID = strings.TrimSpace(req.ConversationID)

	if strings.TrimSpace(req.Message) == "" {
		WriteError(w, http.StatusBadRequest, "Message content is required.")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid value for: "+strings.Join(validationFields(err), ", "))
		return
	}

	user := common.UserFromContext(r.Context())
	reply, err := s.app.ChatService.SendMessage(r.Context(), user.UserID, req.ConversationID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			WriteError(w, http.StatusNotFound, "Conversation not found or access denied.")
		case errors.Is(err, models.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, "Message content is required.")
		case errors.Is(err, models.ErrGeneration):
			s.logger.Warn().Err(err).Msg("Chat reply generation failed")
			WriteError(w, http.StatusBadGateway, "Failed to get a response from the assistant. Please try again later.")
		default:
			s.logger.Error().Err(err).Msg("Chat message failed")
			WriteError(w, http.StatusInternalServerError, "Server error while processing chat message.")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"conversation_id": reply.ConversationID,
		"ai_message":      reply.AIMessage,
	})
}

// handleChatHistory handles GET /api/chat/history.
func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	summaries, err := s.app.ChatService.History(r.Context(), user.UserID)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list conversations")
		WriteError(w, http.StatusInternalServerError, "Server error while fetching chat history.")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    summaries,
	})
}

// handleChatMessages handles GET /api/chat/{id}/messages.
func (s *Server) handleChatMessages(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	messages, err := s.app.ChatService.Messages(r.Context(), user.UserID, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Conversation not found.")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to load conversation messages")
		WriteError(w, http.StatusInternalServerError, "Server error while fetching messages.")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    messages,
	})
}
