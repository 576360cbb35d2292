package driven

import "context"

// LLMService provides text generation for document analysis and
// question answering. This is an optional service - when nil, both
// capabilities are disabled and the rest of the pipeline still runs.
//
// Implementations may include:
//   - Google Gemini (gemini-2.0-flash, gemini-1.5-flash)
//   - OpenAI (gpt-4o-mini)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the model resolved at startup. Any provider
	// fallback order is walked once during construction, never per call.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
