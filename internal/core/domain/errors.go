package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown extractor or provider type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrProcessingInProgress indicates the document is already being
	// processed. A second concurrent trigger for the same id is
	// rejected rather than racing the in-flight run.
	ErrProcessingInProgress = errors.New("processing in progress")

	// ErrExtractionFailed indicates no text could be extracted from
	// the original file. Recoverable: callers treat it as "nothing to
	// index", never as a pipeline failure.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrEmbeddingFailed indicates the embedding provider rejected a
	// batch. Recoverable: the document degrades to "indexed without
	// RAG support" instead of failing ingestion.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrIndexQueryFailed indicates the vector index query failed.
	// Recoverable: treated identically to zero matches.
	ErrIndexQueryFailed = errors.New("vector index query failed")

	// ErrGenerationFailed indicates the generation model returned no
	// usable output.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrLLMUnavailable indicates the generation service is not configured.
	// Document analysis and question answering are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Semantic retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	// Similarity retrieval is disabled.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrRateLimited indicates a provider API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
