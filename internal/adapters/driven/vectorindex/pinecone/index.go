// Package pinecone provides a vector index adapter for the Pinecone
// REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/doclens/doclens/internal/adapters/driven/ratelimit"
	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second

	// maxUpsertBatch is the Pinecone limit on vectors per upsert call.
	maxUpsertBatch = 100
)

// Config holds configuration for the Pinecone vector index.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// Host is the index host, e.g. my-index-abc123.svc.us-east-1-aws.pinecone.io
	// (required).
	Host string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Index talks to a single Pinecone index.
type Index struct {
	client  *http.Client
	limiter *ratelimit.Limiter
	baseURL string
	apiKey  string
}

// upsertRequest is the Pinecone /vectors/upsert request format.
type upsertRequest struct {
	Vectors []vector `json:"vectors"`
}

type vector struct {
	ID       string                `json:"id"`
	Values   []float32             `json:"values"`
	Metadata domain.VectorMetadata `json:"metadata"`
}

// queryRequest is the Pinecone /query request format.
type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
}

// queryResponse is the Pinecone /query response format.
type queryResponse struct {
	Matches []struct {
		ID       string                `json:"id"`
		Score    float64               `json:"score"`
		Metadata domain.VectorMetadata `json:"metadata"`
	} `json:"matches"`
}

// apiError is the Pinecone error response format.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// NewIndex creates a new Pinecone index client.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: index host is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	baseURL := cfg.Host
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &Index{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: ratelimit.NewLimiter(ratelimit.DefaultRate, ratelimit.DefaultBurst),
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
	}, nil
}

// Upsert writes records in API-sized batches.
func (idx *Index) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	for start := 0; start < len(records); start += maxUpsertBatch {
		end := start + maxUpsertBatch
		if end > len(records) {
			end = len(records)
		}

		vectors := make([]vector, 0, end-start)
		for _, r := range records[start:end] {
			vectors = append(vectors, vector{
				ID:       r.ID,
				Values:   r.Values,
				Metadata: r.Metadata,
			})
		}

		var resp struct{}
		if err := idx.post(ctx, "/vectors/upsert", upsertRequest{Vectors: vectors}, &resp); err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
	}
	return nil
}

// Query returns the topK most similar records restricted to one document
// via a metadata filter.
func (idx *Index) Query(ctx context.Context, queryVector []float32, documentID string, topK int) ([]domain.VectorMatch, error) {
	req := queryRequest{
		Vector: queryVector,
		TopK:   topK,
		Filter: map[string]any{
			"document_id": map[string]any{"$eq": documentID},
		},
		IncludeMetadata: true,
	}

	var resp queryResponse
	if err := idx.post(ctx, "/query", req, &resp); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	matches := make([]domain.VectorMatch, len(resp.Matches))
	for i, m := range resp.Matches {
		matches[i] = domain.VectorMatch{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: m.Metadata,
		}
	}
	return matches, nil
}

// Ping validates connectivity and the API key by asking for index stats.
func (idx *Index) Ping(ctx context.Context) error {
	var resp struct {
		Dimension int `json:"dimension"`
	}
	if err := idx.post(ctx, "/describe_index_stats", struct{}{}, &resp); err != nil {
		return fmt.Errorf("pinecone: ping failed: %w", err)
	}
	return nil
}

// Close releases resources.
func (idx *Index) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// post sends a JSON request to the index and decodes the response.
func (idx *Index) post(ctx context.Context, path string, payload, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		idx.baseURL+path,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", idx.apiKey)

	if err := idx.limiter.Wait(ctx); err != nil {
		return err
	}

	resp, err := idx.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if err := idx.limiter.CheckResponse(resp); err != nil {
		return fmt.Errorf("pinecone: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("pinecone error (status %d): %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
