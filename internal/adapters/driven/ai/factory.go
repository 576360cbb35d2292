// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	cohereembed "github.com/doclens/doclens/internal/adapters/driven/embedding/cohere"
	openaiembed "github.com/doclens/doclens/internal/adapters/driven/embedding/openai"
	geminillm "github.com/doclens/doclens/internal/adapters/driven/llm/gemini"
	openaillm "github.com/doclens/doclens/internal/adapters/driven/llm/openai"
	memoryindex "github.com/doclens/doclens/internal/adapters/driven/vectorindex/memory"
	pineconeindex "github.com/doclens/doclens/internal/adapters/driven/vectorindex/pinecone"
	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
// Missing or unreachable services come back as nil fields with a
// warning each, not as errors: the application degrades rather than
// refusing to start.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	VectorIndex      driven.VectorIndex
	Warnings         []string // Non-fatal issues that caused degradation.
	Degraded         bool     // True if any AI capability is missing.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.VectorIndex != nil {
		r.VectorIndex.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Settings aggregates the provider configuration for initialisation.
type Settings struct {
	Embedding   domain.EmbeddingSettings
	LLM         domain.LLMSettings
	VectorIndex domain.VectorIndexSettings
}

// Initialise creates and validates all configured AI services. Each
// service that cannot be built or reached is dropped with a warning.
func Initialise(ctx context.Context, settings Settings) *InitResult {
	result := &InitResult{}

	embedding, err := CreateAndValidateEmbeddingService(ctx, &settings.Embedding)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.EmbeddingService = embedding

	llm, err := CreateAndValidateLLMService(ctx, &settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.LLMService = llm

	index, err := CreateAndValidateVectorIndex(ctx, &settings.VectorIndex)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.VectorIndex = index

	result.Degraded = result.EmbeddingService == nil || result.LLMService == nil || result.VectorIndex == nil
	return result
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(ctx context.Context, settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'doclens settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'doclens settings' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateLLMService(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'doclens settings' to fix",
			domain.ErrLLMUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'doclens settings' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateVectorIndex creates a vector index client and validates connectivity.
// Returns the index if successful, or an error with guidance.
func CreateAndValidateVectorIndex(ctx context.Context, settings *domain.VectorIndexSettings) (driven.VectorIndex, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	index, err := CreateVectorIndex(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'doclens settings' to fix",
			domain.ErrVectorIndexUnavailable, err)
	}

	if index == nil {
		return nil, nil
	}

	// Validate connectivity.
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := index.Ping(pingCtx); err != nil {
		index.Close()
		return nil, fmt.Errorf("%w: index unreachable (%w). Run 'doclens settings' to fix",
			domain.ErrVectorIndexUnavailable, err)
	}

	return index, nil
}

// ValidateEmbeddingConfig checks an embedding configuration by creating
// the service and pinging the provider. Nil or unconfigured settings
// validate trivially.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateAndValidateEmbeddingService(context.Background(), settings)
	if err != nil {
		return err
	}
	if svc != nil {
		svc.Close()
	}
	return nil
}

// ValidateLLMConfig checks an LLM configuration by creating the service
// and pinging the provider. Nil or unconfigured settings validate
// trivially.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateAndValidateLLMService(context.Background(), settings)
	if err != nil {
		return err
	}
	if svc != nil {
		svc.Close()
	}
	return nil
}

// ValidateVectorIndexConfig checks a vector index configuration by
// creating the client and pinging the index. Nil or unconfigured
// settings validate trivially.
func ValidateVectorIndexConfig(settings *domain.VectorIndexSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	index, err := CreateAndValidateVectorIndex(context.Background(), settings)
	if err != nil {
		return err
	}
	if index != nil {
		index.Close()
	}
	return nil
}

// CreateEmbeddingService creates the appropriate embedding service based on settings.
// Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderCohere:
		return cohereembed.NewEmbeddingService(cohereembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderGemini:
		// Gemini is wired for generation only.
		return nil, fmt.Errorf("gemini does not support embeddings here, use cohere or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
// Returns nil if the provider is not configured.
func CreateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(ctx, geminillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderCohere:
		// Cohere is wired for embeddings only.
		return nil, fmt.Errorf("cohere is not supported for generation, use gemini or openai")

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// CreateVectorIndex creates the appropriate vector index based on settings.
// Returns nil if the provider is not configured.
func CreateVectorIndex(settings *domain.VectorIndexSettings) (driven.VectorIndex, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.VectorProviderPinecone:
		return pineconeindex.NewIndex(pineconeindex.Config{
			APIKey: settings.APIKey,
			Host:   settings.Host,
		})

	case domain.VectorProviderMemory:
		return memoryindex.NewIndex(), nil

	default:
		return nil, fmt.Errorf("unsupported vector index provider: %s", settings.Provider)
	}
}
