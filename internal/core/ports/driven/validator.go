package driven

import "github.com/doclens/doclens/internal/core/domain"

// AIConfigValidator validates provider credentials by contacting the
// provider. Implementations should treat nil or unconfigured settings
// as valid, since there is nothing to check.
type AIConfigValidator interface {
	// ValidateEmbedding validates an embedding provider configuration.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM validates an LLM provider configuration.
	ValidateLLM(config *domain.LLMSettings) error

	// ValidateVectorIndex validates a vector index configuration.
	ValidateVectorIndex(config *domain.VectorIndexSettings) error
}
