package cohere

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer returns a server that echoes back one embedding per text
// and records the input types it saw.
func newTestServer(t *testing.T, inputTypes *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embed", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*inputTypes = append(*inputTypes, req.InputType)

		embeddings := make([][]float64, len(req.Texts))
		for i := range embeddings {
			embeddings[i] = []float64{float64(i), 0.5}
		}
		json.NewEncoder(w).Encode(embedResponse{Embeddings: embeddings})
	}))
}

func TestNewEmbeddingService_RequiresAPIKey(t *testing.T) {
	_, err := NewEmbeddingService(Config{})
	assert.Error(t, err)
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key"})
	require.NoError(t, err)

	assert.Equal(t, DefaultModel, svc.ModelName())
	assert.Equal(t, 1024, svc.Dimensions())
}

func TestNewEmbeddingService_LightModelDimensions(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key", Model: "embed-english-light-v3.0"})
	require.NoError(t, err)
	assert.Equal(t, 384, svc.Dimensions())
}

func TestEmbedDocuments_UsesDocumentInputType(t *testing.T) {
	var inputTypes []string
	server := newTestServer(t, &inputTypes)
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	embeddings, err := svc.EmbedDocuments(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, embeddings, 2)
	assert.Equal(t, []string{"search_document"}, inputTypes)
}

func TestEmbedQuery_UsesQueryInputType(t *testing.T) {
	var inputTypes []string
	server := newTestServer(t, &inputTypes)
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	embedding, err := svc.EmbedQuery(context.Background(), "what is this about")
	require.NoError(t, err)
	require.NotEmpty(t, embedding)
	assert.Equal(t, []string{"search_query"}, inputTypes)
}

func TestEmbedDocuments_SplitsLargeBatches(t *testing.T) {
	var inputTypes []string
	server := newTestServer(t, &inputTypes)
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	texts := make([]string, maxBatchSize+10)
	for i := range texts {
		texts[i] = "chunk"
	}

	embeddings, err := svc.EmbedDocuments(context.Background(), texts)
	require.NoError(t, err)
	assert.Len(t, embeddings, len(texts))
	// Two API calls: one full batch plus the remainder.
	assert.Len(t, inputTypes, 2)
}

func TestEmbedDocuments_Empty(t *testing.T) {
	svc, err := NewEmbeddingService(Config{APIKey: "test-key"})
	require.NoError(t, err)

	embeddings, err := svc.EmbedDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, embeddings)
}

func TestEmbed_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(embedResponse{Message: "invalid api token"})
	}))
	defer server.Close()

	svc, err := NewEmbeddingService(Config{APIKey: "bad-key", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = svc.EmbedQuery(context.Background(), "question")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api token")
}
