package interfaces

import "context"

// GeminiClient generates text from a prompt
type GeminiClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
