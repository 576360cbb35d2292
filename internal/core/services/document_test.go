package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/adapters/driven/storage/memory"
	"github.com/doclens/doclens/internal/core/domain"
)

func newDocumentFixture(t *testing.T) (*DocumentService, *memory.DocumentStore, *mockBlobStore) {
	t.Helper()

	docStore := memory.NewDocumentStore()
	blobs := newMockBlobStore()
	service := NewDocumentService(docStore, docStore, blobs)

	err := docStore.SaveDocument(context.Background(), &domain.Document{
		ID:        "doc-1",
		Title:     "report.pdf",
		MediaType: "application/pdf",
		Status:    domain.StatusCompleted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	require.NoError(t, err)

	return service, docStore, blobs
}

func TestDocumentService_Get(t *testing.T) {
	service, _, _ := newDocumentFixture(t)

	doc, err := service.Get(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", doc.Title)
}

func TestDocumentService_Get_NotFound(t *testing.T) {
	service, _, _ := newDocumentFixture(t)

	_, err := service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Get_EmptyID(t *testing.T) {
	service, _, _ := newDocumentFixture(t)

	_, err := service.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentService_List(t *testing.T) {
	service, docStore, _ := newDocumentFixture(t)

	err := docStore.SaveDocument(context.Background(), &domain.Document{
		ID:        "doc-2",
		Title:     "notes.txt",
		Status:    domain.StatusPending,
		CreatedAt: time.Now().Add(time.Second),
		UpdatedAt: time.Now().Add(time.Second),
	})
	require.NoError(t, err)

	docs, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Newest first.
	assert.Equal(t, "doc-2", docs[0].ID)
	assert.Equal(t, "doc-1", docs[1].ID)
}

func TestDocumentService_Delete(t *testing.T) {
	service, docStore, blobs := newDocumentFixture(t)
	require.NoError(t, blobs.Put(context.Background(), "doc-1", []byte("bytes")))

	err := service.Delete(context.Background(), "doc-1")
	require.NoError(t, err)

	_, err = docStore.GetDocument(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = blobs.Get(context.Background(), "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Delete_RemovesTranscript(t *testing.T) {
	service, docStore, _ := newDocumentFixture(t)

	err := docStore.SaveMessage(context.Background(), &domain.Message{
		ID:         "msg-1",
		DocumentID: "doc-1",
		Role:       "user",
		Content:    "hello",
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "doc-1"))

	messages, err := docStore.ListMessages(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestDocumentService_Delete_NotFound(t *testing.T) {
	service, _, _ := newDocumentFixture(t)

	err := service.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Transcript(t *testing.T) {
	service, docStore, _ := newDocumentFixture(t)

	base := time.Now()
	for i, msg := range []domain.Message{
		{ID: "m-1", DocumentID: "doc-1", Role: "user", Content: "question"},
		{ID: "m-2", DocumentID: "doc-1", Role: "assistant", Content: "answer", Confidence: 0.8},
	} {
		msg.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, docStore.SaveMessage(context.Background(), &msg))
	}

	messages, err := service.Transcript(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)

	// Oldest first.
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)
}

func TestDocumentService_Transcript_UnknownDocument(t *testing.T) {
	service, _, _ := newDocumentFixture(t)

	_, err := service.Transcript(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
