// Package memory provides an in-memory vector index. It keeps vectors
// in a map and scores queries with exact cosine similarity, which is
// plenty for single-document retrieval and needs no external service.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory vector index safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	records map[string]domain.VectorRecord
}

// NewIndex creates an empty in-memory vector index.
func NewIndex() *Index {
	return &Index{
		records: make(map[string]domain.VectorRecord),
	}
}

// Upsert inserts or replaces records by ID.
func (idx *Index) Upsert(_ context.Context, records []domain.VectorRecord) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for _, r := range records {
		if r.ID == "" {
			return domain.ErrInvalidInput
		}
		// Copy the vector so callers cannot mutate stored state.
		values := make([]float32, len(r.Values))
		copy(values, r.Values)
		r.Values = values
		idx.records[r.ID] = r
	}
	return nil
}

// Query returns the topK records for the document most similar to the
// query vector, best first.
func (idx *Index) Query(_ context.Context, vector []float32, documentID string, topK int) ([]domain.VectorMatch, error) {
	if len(vector) == 0 {
		return nil, domain.ErrInvalidInput
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := make([]domain.VectorMatch, 0, topK)
	for _, r := range idx.records {
		if r.Metadata.DocumentID != documentID {
			continue
		}
		if len(r.Values) != len(vector) {
			continue
		}
		matches = append(matches, domain.VectorMatch{
			ID:       r.ID,
			Score:    cosineSimilarity(vector, r.Values),
			Metadata: r.Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Count returns the number of stored records.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.records)
}

// Ping reports the index as always available.
func (idx *Index) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.records = make(map[string]domain.VectorRecord)
	return nil
}

// cosineSimilarity returns the cosine of the angle between a and b.
// Zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
