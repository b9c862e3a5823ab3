package api

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const consultation = `Comprehensive Health Consultation Report

**Health Status Overview**
Your weight is within the normal range for your height.

**Body Composition Analysis**
A BMI of 22.86 sits comfortably in the healthy band.

**Nutritional Recommendations**
* Favour whole grains
* Include lean protein at every meal
Sample Meal Plan:
Breakfast: Porridge with berries (350 calories)
Lunch: Chicken salad (500 calories)

**Hydration Guidelines**
Aim for 8 cups (64 ounces) of water daily.

**Exercise Suggestions**
`

func TestHealthAndVersion(t *testing.T) {
	env := NewEnv(t)

	resp := env.Do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", env.JSON(resp)["status"])

	resp = env.Do(http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, env.JSON(resp), "version")
}

func TestAuthFlow(t *testing.T) {
	env := NewEnv(t)
	env.Register("Ada", "ada@example.com")

	resp := env.Do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ada", "email": "ADA@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.Do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := env.JSON(resp)["token"].(string)

	resp = env.Do(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := env.JSON(resp)["user"].(map[string]interface{})
	assert.Equal(t, "ada@example.com", user["email"])
}

func TestReportWorkflow(t *testing.T) {
	env := NewEnv(t, consultation)
	token := env.Register("Ada", "ada@example.com")

	resp := env.Do(http.MethodPost, "/api/reports/generate", token, map[string]interface{}{
		"height": 175, "weight": 70, "age": 30, "gender": "male",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	report := env.JSON(resp)["data"].(map[string]interface{})
	id := report["report_id"].(string)
	assert.Equal(t, "Normal weight", report["bmi_category"])

	resp = env.Do(http.MethodGet, "/api/reports/"+id+"/view", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := env.JSON(resp)["data"].(map[string]interface{})
	sections := view["sections"].([]interface{})
	require.Len(t, sections, 3)
	assert.Equal(t, "exercise_placeholder", sections[2].(map[string]interface{})["kind"])

	resp = env.Do(http.MethodGet, "/api/reports/download/"+id+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
	require.NoError(t, env.SaveResult("report.pdf", pdf))

	resp = env.Do(http.MethodGet, "/api/reports/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stored := env.JSON(resp)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), stored["download_count"])
}

func TestChatWorkflow(t *testing.T) {
	env := NewEnv(t, consultation, "Drink water steadily through the day.", "Yes, walking counts.")
	token := env.Register("Ada", "ada@example.com")

	resp := env.Do(http.MethodPost, "/api/reports/generate", token, map[string]interface{}{
		"height": 175, "weight": 70, "age": 30, "gender": "male",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.Do(http.MethodPost, "/api/chat/message", token, map[string]string{"message": "How should I hydrate?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	convID := env.JSON(resp)["conversation_id"].(string)

	resp = env.Do(http.MethodPost, "/api/chat/message", token, map[string]string{
		"message": "Does walking count as exercise?", "conversation_id": convID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ai := env.JSON(resp)["ai_message"].(map[string]interface{})
	assert.Equal(t, "Yes, walking counts.", ai["content"])

	resp = env.Do(http.MethodGet, "/api/chat/"+convID+"/messages", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.JSON(resp)["data"].([]interface{}), 4)

	resp = env.Do(http.MethodGet, "/api/chat/history", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, env.JSON(resp)["data"].([]interface{}), 1)

	require.Len(t, env.Gemini.prompts, 3)
	assert.Contains(t, env.Gemini.prompts[2], "How should I hydrate?")
}
