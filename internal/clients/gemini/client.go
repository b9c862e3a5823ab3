// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/interfaces"
)

const (
	DefaultModel     = "gemini-2.0-flash"
	DefaultRateLimit = 30 // requests per minute
	DefaultTimeout   = 60 * time.Second
)

// Client implements the GeminiClient interface
type Client struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	temperature *float32
	limiter     *rate.Limiter
	logger      *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRateLimit caps generation requests per minute
func WithRateLimit(requestsPerMinute int) ClientOption {
	return func(c *Client) {
		if requestsPerMinute > 0 {
			c.limiter = newLimiter(requestsPerMinute)
		}
	}
}

// WithTimeout bounds each generation request
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(t float32) ClientOption {
	return func(c *Client) {
		c.temperature = genai.Ptr(t)
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:  genaiClient,
		model:   DefaultModel,
		timeout: DefaultTimeout,
		limiter: newLimiter(DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateContent generates text from a prompt
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	c.logger.Debug().Str("model", c.model).Int("prompt_chars", len(prompt)).Msg("Generating content")

	var config *genai.GenerateContentConfig
	if c.temperature != nil {
		config = &genai.GenerateContentConfig{Temperature: c.temperature}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return "", err
	}

	c.logger.Debug().
		Str("model", c.model).
		Int("response_chars", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Content generated")

	return text, nil
}

// extractTextFromResponse concatenates the text parts of the first candidate
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	return sb.String(), nil
}

// Compile-time check
var _ interfaces.GeminiClient = (*Client)(nil)
