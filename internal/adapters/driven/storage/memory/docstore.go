package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interfaces.
var (
	_ driven.DocumentStore   = (*DocumentStore)(nil)
	_ driven.TranscriptStore = (*DocumentStore)(nil)
)

// DocumentStore is an in-memory implementation of driven.DocumentStore
// and driven.TranscriptStore, used in tests and for ephemeral runs.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	messages  map[string][]domain.Message
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		messages:  make(map[string][]domain.Message),
	}
}

// SaveDocument stores or updates a document.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now
	s.documents[doc.ID] = *doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// UpdateStatus records a status transition.
func (s *DocumentStore) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, reason string) error {
	if !status.IsValid() {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}

	doc.Status = status
	if status == domain.StatusFailed {
		doc.StatusReason = reason
	} else {
		doc.StatusReason = ""
	}
	doc.UpdatedAt = time.Now().UTC()
	s.documents[id] = doc
	return nil
}

// UpdateAnalysis records the terminal analysis payload.
func (s *DocumentStore) UpdateAnalysis(_ context.Context, id string, summary string, analysis *domain.Analysis, ragIndexed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return domain.ErrNotFound
	}

	doc.Summary = summary
	doc.Analysis = analysis
	doc.RAGIndexed = ragIndexed
	doc.UpdatedAt = time.Now().UTC()
	s.documents[id] = doc
	return nil
}

// ListDocuments returns all documents, newest first.
func (s *DocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	documents := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		documents = append(documents, doc)
	}
	sort.Slice(documents, func(i, j int) bool {
		return documents[i].CreatedAt.After(documents[j].CreatedAt)
	})
	return documents, nil
}

// DeleteDocument removes a document and its transcript.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	delete(s.messages, id)
	return nil
}

// SaveMessage appends a message to a document's transcript.
func (s *DocumentStore) SaveMessage(_ context.Context, msg *domain.Message) error {
	if msg == nil || msg.ID == "" || msg.DocumentID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	s.messages[msg.DocumentID] = append(s.messages[msg.DocumentID], *msg)
	return nil
}

// ListMessages returns a document's transcript, oldest first.
func (s *DocumentStore) ListMessages(_ context.Context, documentID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := make([]domain.Message, len(s.messages[documentID]))
	copy(messages, s.messages[documentID])
	return messages, nil
}
