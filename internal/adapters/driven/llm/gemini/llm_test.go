package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(context.Background(), LLMConfig{})
	assert.Error(t, err)
}

func TestNewLLMService_PinnedModelSkipsProbe(t *testing.T) {
	svc, err := NewLLMService(context.Background(), LLMConfig{
		APIKey: "test-key",
		Model:  "gemini-1.5-flash",
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", svc.ModelName())
}

func TestNewLLMService_ResolvesFallbackModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// First preference is unavailable for this key, second works.
		if strings.Contains(r.URL.Path, "gemini-2.0-flash-exp") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"totalTokens": 1}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(context.Background(), LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", svc.ModelName())
}

func TestNewLLMService_NoModelAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewLLMService(context.Background(), LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no usable model")
}

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "generateContent")
		require.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "the answer"}}}},
			},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(context.Background(), LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gemini-1.5-flash",
	})
	require.NoError(t, err)

	out, err := svc.Generate(context.Background(), "question", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "the answer", out)
}

func TestGenerate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"},
		})
	}))
	defer server.Close()

	svc, err := NewLLMService(context.Background(), LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gemini-1.5-flash",
	})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "question", driven.GenerateOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(context.Background(), LLMConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gemini-1.5-flash",
	})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "question", driven.GenerateOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
