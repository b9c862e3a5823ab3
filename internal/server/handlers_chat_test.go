package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessage_NewConversation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada", "ada@example.com")
	ts.gemini.reply = "Aim for eight cups a day."

	rec := ts.do(t, http.MethodPost, "/api/chat/message", token, map[string]string{
		"message": "How much water should I drink?",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	convID := body["conversation_id"].(string)
	assert.NotEmpty(t, convID)
	ai := body["ai_message"].(map[string]interface{})
	assert.Equal(t, "ai", ai["sender"])
	assert.Equal(t, "Aim for eight cups a day.", ai["content"])

	rec = ts.do(t, http.MethodGet, "/api/chat/"+convID+"/messages", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	messages := decode(t, rec)["data"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].(map[string]interface{})["sender"])
	assert.Equal(t, "How much water should I drink?", messages[0].(map[string]interface{})["content"])
}

func TestChatMessage_ContinueConversation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada", "ada@example.com")
	ts.gemini.reply = "Sure."

	rec := ts.do(t, http.MethodPost, "/api/chat/message", token, map[string]string{"message": "First question"})
	require.Equal(t, http.StatusOK, rec.Code)
	convID := decode(t, rec)["conversation_id"].(string)

	rec = ts.do(t, http.MethodPost, "/api/chat/message", token, map[string]string{
		"message": "Second question", "conversation_id": convID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, convID, decode(t, rec)["conversation_id"])

	rec = ts.do(t, http.MethodGet, "/api/chat/"+convID+"/messages", token, nil)
	assert.Len(t, decode(t, rec)["data"].([]interface{}), 4)
}

func TestChatMessage_UsesLatestReport(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada", "ada@example.com")
	reportID := ts.generate(t, token, validMetrics)
	ts.gemini.reply = "Keep going."

	rec := ts.do(t, http.MethodPost, "/api/chat/message", token, map[string]string{"message": "Am I healthy?"})
	require.Equal(t, http.StatusOK, rec.Code)

	ai := decode(t, rec)["ai_message"].(map[string]interface{})
	assert.Equal(t, reportID, ai["related_report_id"])
	require.Len(t, ts.gemini.prompts, 2)
	assert.Contains(t, ts.gemini.prompts[1], "BMI of 22.86")
}

func TestChatMessage_Errors(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.register(t, "Ada", "ada@example.com")
	other := ts.register(t, "Bob", "bob@example.com")
	ts.gemini.reply = "Hello."

	rec := ts.do(t, http.MethodPost, "/api/chat/message", owner, map[string]string{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/chat/message", owner, map[string]string{"message": "<b></b>"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/chat/message", owner, map[string]string{"message": "Hi"})
	require.Equal(t, http.StatusOK, rec.Code)
	convID := decode(t, rec)["conversation_id"].(string)

	rec = ts.do(t, http.MethodPost, "/api/chat/message", other, map[string]string{"message": "Hi", "conversation_id": convID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Conversation not found or access denied.", decode(t, rec)["message"])

	rec = ts.do(t, http.MethodGet, "/api/chat/"+convID+"/messages", other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Conversation not found.", decode(t, rec)["message"])

	ts.gemini.err = errors.New("unavailable")
	rec = ts.do(t, http.MethodPost, "/api/chat/message", owner, map[string]string{"message": "Still there?", "conversation_id": convID})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestChatMessage_EmptyReplyFallback(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada", "ada@example.com")
	ts.gemini.reply = "   "

	rec := ts.do(t, http.MethodPost, "/api/chat/message", token, map[string]string{"message": "Hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	ai := decode(t, rec)["ai_message"].(map[string]interface{})
	assert.Equal(t, "I'm sorry, I couldn't generate a response. Please try again.", ai["content"])
}

func TestChatHistory(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register(t, "Ada", "ada@example.com")
	other := ts.register(t, "Bob", "bob@example.com")
	ts.gemini.reply = "Ok."

	rec := ts.do(t, http.MethodGet, "/api/chat/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, decode(t, rec)["data"])

	ts.do(t, http.MethodPost, "/api/chat/message", token, map[string]string{"message": "Sleep tips"})
	ts.do(t, http.MethodPost, "/api/chat/message", other, map[string]string{"message": "Not mine"})

	rec = ts.do(t, http.MethodGet, "/api/chat/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Sleep tips...", data[0].(map[string]interface{})["title"])
}
