package driven

import "context"

// BlobStore holds the original uploaded bytes, keyed by document id.
// The ingestion path writes blobs at upload time; the query path reads
// them only on the degraded fallback, when the vector index has no
// records for a document.
type BlobStore interface {
	// Put stores the original bytes for a document, replacing any
	// previous content.
	Put(ctx context.Context, documentID string, content []byte) error

	// Get returns the original bytes for a document.
	// Returns domain.ErrNotFound if no blob exists.
	Get(ctx context.Context, documentID string) ([]byte, error)

	// Delete removes a document's blob. Deleting a missing blob is not
	// an error.
	Delete(ctx context.Context, documentID string) error
}
