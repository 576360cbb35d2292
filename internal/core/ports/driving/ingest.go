package driving

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// IngestService drives a document through extraction, analysis,
// chunking, embedding and indexing, and records a terminal status.
type IngestService interface {
	// ProcessDocument runs the full ingestion pipeline synchronously.
	// The result is observed only through later status reads; operational
	// failures are recorded as a terminal failed status, not returned.
	// Returns domain.ErrProcessingInProgress when the document id is
	// already being processed.
	ProcessDocument(ctx context.Context, content []byte, filename, documentID string) error

	// ProcessDocumentAsync claims the document id and runs the pipeline
	// in the background. Returns immediately after the claim; the same
	// in-progress rejection applies.
	ProcessDocumentAsync(ctx context.Context, content []byte, filename, documentID string) error

	// InFlight reports whether an ingestion run is active for the id.
	InFlight(documentID string) bool
}

// QueryService answers natural-language questions from a single
// document's indexed content.
type QueryService interface {
	// Answer embeds the question, retrieves evidence scoped to the
	// document, and synthesises an answer. It never returns an error
	// for operational failures - those surface as a QueryResult with
	// confidence 0 and an explanatory answer. The only errors are
	// invalid input and unknown document ids.
	Answer(ctx context.Context, question, documentID string) (*domain.QueryResult, error)
}

// DocumentService exposes stored documents to the driving adapters.
type DocumentService interface {
	// Get returns a document by id.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document, its blob and its transcript.
	Delete(ctx context.Context, id string) error

	// Transcript returns a document's question/answer history.
	Transcript(ctx context.Context, documentID string) ([]domain.Message, error)
}
