package driven

import (
	"context"

	"github.com/doclens/doclens/internal/core/domain"
)

// DocumentStore persists document metadata and processing state.
// Backed by SQLite. Assumed durable and immediately consistent for a
// single writer.
type DocumentStore interface {
	// SaveDocument stores or updates a document. Saving an existing id
	// replaces the row (idempotent replace, not merge).
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// UpdateStatus records a status transition. The reason is stored
	// for StatusFailed and cleared otherwise.
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, reason string) error

	// UpdateAnalysis records the terminal analysis payload: the
	// summary shown to users, the full analysis, and whether chunk
	// embeddings were stored.
	UpdateAnalysis(ctx context.Context, id string, summary string, analysis *domain.Analysis, ragIndexed bool) error

	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document and its transcript.
	DeleteDocument(ctx context.Context, id string) error
}

// TranscriptStore persists the question/answer history per document.
type TranscriptStore interface {
	// SaveMessage appends a message to a document's transcript.
	SaveMessage(ctx context.Context, msg *domain.Message) error

	// ListMessages returns a document's transcript, oldest first.
	ListMessages(ctx context.Context, documentID string) ([]domain.Message, error)
}
