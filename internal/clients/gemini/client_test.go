package gemini

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "**Health Status Overview**\n"},
				nil,
				{Text: "You are doing well."},
			}}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "ignored"}}}},
		},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "**Health Status Overview**\nYou are doing well.", text)
}

func TestExtractTextFromResponse_NoContent(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractTextFromResponse(tt.resp)
			assert.Error(t, err)
		})
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	assert.Error(t, err)
}

func TestNewClient_Options(t *testing.T) {
	c, err := NewClient(context.Background(), "test-key",
		WithModel("gemini-test"),
		WithModel(""),
		WithTimeout(5*time.Second),
		WithTimeout(0),
		WithRateLimit(120),
		WithTemperature(0.4),
	)
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", c.model)
	assert.Equal(t, 5*time.Second, c.timeout)
	assert.Equal(t, 120, c.limiter.Burst())
	require.NotNil(t, c.temperature)
	assert.InDelta(t, 0.4, *c.temperature, 0.0001)
}

func TestGenerateContent_CancelledContext(t *testing.T) {
	c, err := NewClient(context.Background(), "test-key", WithRateLimit(1))
	require.NoError(t, err)

	// Drain the single token so the next call has to wait.
	require.True(t, c.limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.GenerateContent(ctx, "hello")
	assert.Error(t, err)
}
