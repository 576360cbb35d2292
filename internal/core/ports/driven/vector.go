package driven

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// VectorIndex is a namespaced nearest-neighbour store over embeddings.
// Records are keyed by vector id; queries are always scoped to a single
// document - the filter is part of the method signature so it can never
// be omitted by mistake.
//
// Re-processing a document overwrites records with the same dense ids.
// Stale records beyond the new chunk count are not purged; partial
// cleanup after re-chunking is the caller's responsibility and is
// currently unhandled.
type VectorIndex interface {
	// Upsert inserts or replaces vector records. Implementations batch
	// the records to respect provider call limits (at most 100 per call).
	Upsert(ctx context.Context, records []domain.VectorRecord) error

	// Query returns the topK most similar records among those whose
	// metadata document id equals documentID, ordered by descending
	// cosine similarity.
	Query(ctx context.Context, vector []float32, documentID string, topK int) ([]domain.VectorMatch, error)

	// Ping validates the index is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
