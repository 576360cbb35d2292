package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// This is an optional service - when nil, semantic retrieval is disabled
// and documents are indexed without RAG support.
//
// Document-mode and query-mode embeddings are distinct operations.
// Retrieval-tuned models encode stored passages and search queries
// differently; using the wrong mode silently degrades retrieval quality,
// so the split is a correctness requirement, not cosmetic.
//
// Implementations may include:
//   - Cohere (embed-multilingual-v3.0, embed-english-v3.0)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// EmbedDocuments generates passage embeddings for a batch of chunk
	// texts. Implementations split the batch to respect provider call
	// limits. On failure the error is returned - never zero vectors -
	// so callers can skip indexing rather than corrupt it.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates a search-query embedding for a question.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1024, 1536).
	// This is determined by the model and must match the vector index.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before enabling semantic indexing.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
