package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or generation.
type AIProvider string

// Available AI providers.
const (
	// AIProviderCohere is the Cohere cloud API (embeddings).
	AIProviderCohere AIProvider = "cohere"

	// AIProviderGemini is the Google Gemini cloud API (generation).
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOpenAI is the OpenAI cloud API (embeddings and generation).
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderCohere, AIProviderGemini, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderCohere:
		return "Cohere (cloud)"
	case AIProviderGemini:
		return "Google Gemini (cloud)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// VectorProvider identifies a vector index backend.
type VectorProvider string

// Available vector index providers.
const (
	// VectorProviderPinecone is the Pinecone serverless cloud index.
	VectorProviderPinecone VectorProvider = "pinecone"

	// VectorProviderMemory is the in-process index, for local use and tests.
	VectorProviderMemory VectorProvider = "memory"
)

// IsValid returns true if the vector provider is recognised.
func (p VectorProvider) IsValid() bool {
	switch p {
	case VectorProviderPinecone, VectorProviderMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p VectorProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the backend.
func (p VectorProvider) Description() string {
	switch p {
	case VectorProviderPinecone:
		return "Pinecone (cloud)"
	case VectorProviderMemory:
		return "In-memory (local, not persisted)"
	default:
		return unknownDescription
	}
}

// AllVectorProviders returns the supported vector index backends.
func AllVectorProviders() []VectorProvider {
	return []VectorProvider{VectorProviderMemory, VectorProviderPinecone}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider endpoint (for compatible APIs).
	BaseURL string
}

// IsConfigured returns true if enough is set to build a service.
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider.IsValid() && s.APIKey != ""
}

// LLMSettings holds generation provider configuration.
type LLMSettings struct {
	// Provider is the generation provider.
	Provider AIProvider

	// Model is the generation model name. Empty means the provider's
	// fallback order is resolved once at startup.
	Model string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// IsConfigured returns true if enough is set to build a service.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider.IsValid() && s.APIKey != ""
}

// VectorIndexSettings holds vector index configuration.
type VectorIndexSettings struct {
	// Provider is the index backend.
	Provider VectorProvider

	// APIKey authenticates against the backend (cloud providers).
	APIKey string

	// Host is the index data-plane endpoint (cloud providers).
	Host string
}

// IsConfigured returns true if enough is set to build an index client.
func (s *VectorIndexSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider == VectorProviderMemory {
		return true
	}
	return s.APIKey != "" && s.Host != ""
}

// StorageSettings holds local storage configuration.
type StorageSettings struct {
	// DataDir is the root directory for the metadata database and
	// blob store. Empty means the default under the home directory.
	DataDir string
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Embedding   EmbeddingSettings
	LLM         LLMSettings
	VectorIndex VectorIndexSettings
	Storage     StorageSettings
}

// DefaultAppSettings returns the out-of-the-box configuration: the
// in-memory vector index and no cloud providers. Question answering
// and analysis stay disabled until providers are configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Model: "embed-multilingual-v3.0",
		},
		LLM: LLMSettings{},
		VectorIndex: VectorIndexSettings{
			Provider: VectorProviderMemory,
		},
	}
}

// AllEmbeddingProviders returns the providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{AIProviderCohere, AIProviderOpenAI}
}

// AllLLMProviders returns the providers that support generation.
func AllLLMProviders() []AIProvider {
	return []AIProvider{AIProviderGemini, AIProviderOpenAI}
}

// DefaultEmbeddingModels maps providers to their default embedding model.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderCohere: "embed-multilingual-v3.0",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels maps providers to their default generation model.
// Gemini is left empty so the provider's fallback order is resolved at
// startup.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderGemini: "",
		AIProviderOpenAI: "gpt-4o-mini",
	}
}

// EmbeddingDimensions maps known embedding models to vector sizes.
// The index dimension must match the model's.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"embed-multilingual-v3.0": 1024,
		"embed-english-v3.0":      1024,
		"text-embedding-3-small":  1536,
		"text-embedding-3-large":  3072,
	}
}
