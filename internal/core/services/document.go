package services

import (
	"context"
	"fmt"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes stored documents and their transcripts to
// the driving adapters.
type DocumentService struct {
	docStore    driven.DocumentStore
	transcripts driven.TranscriptStore
	blobStore   driven.BlobStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	docStore driven.DocumentStore,
	transcripts driven.TranscriptStore,
	blobStore driven.BlobStore,
) *DocumentService {
	return &DocumentService{
		docStore:    docStore,
		transcripts: transcripts,
		blobStore:   blobStore,
	}
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}
	return s.docStore.GetDocument(ctx, id)
}

// List returns all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.ListDocuments(ctx)
}

// Delete removes a document, its stored original and its transcript.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	// Verify the document exists before touching the blob store.
	if _, err := s.docStore.GetDocument(ctx, id); err != nil {
		return err
	}

	if s.blobStore != nil {
		if err := s.blobStore.Delete(ctx, id); err != nil {
			logger.Warn("Failed to delete stored original for %s: %v", id, err)
		}
	}

	// The transcript is removed with the document row (cascade).
	return s.docStore.DeleteDocument(ctx, id)
}

// Transcript returns a document's question/answer history, oldest first.
func (s *DocumentService) Transcript(ctx context.Context, documentID string) ([]domain.Message, error) {
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return nil, err
	}

	return s.transcripts.ListMessages(ctx, documentID)
}
