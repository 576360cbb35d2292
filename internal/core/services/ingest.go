package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

const (
	// analysisTextBudget bounds the extracted text sent for
	// document-level analysis.
	analysisTextBudget = 30000

	// truncationMarker is appended when the analysis text is cut.
	truncationMarker = "...[truncated]"

	// maxReasonLen bounds the failure reason stored with a terminal
	// failed status.
	maxReasonLen = 200

	// analysisMaxTokens and analysisTemperature configure the
	// document analysis generation call.
	analysisMaxTokens   = 1500
	analysisTemperature = 0.3

	// asyncTimeout bounds a background ingestion run.
	asyncTimeout = 10 * time.Minute
)

// IngestService drives a document through extraction, analysis,
// chunking, embedding and indexing. The embedding, LLM and vector
// index services are optional - when any is nil the pipeline degrades
// rather than failing.
type IngestService struct {
	docStore    driven.DocumentStore
	blobStore   driven.BlobStore
	extractors  driven.ExtractorRegistry
	splitter    driven.TextSplitter
	prompts     driven.PromptStore
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	vectorIndex driven.VectorIndex

	// In-flight tracking
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewIngestService creates a new ingestion service.
// embedder, llm and vectorIndex may be nil - the affected pipeline
// steps are skipped and the document degrades accordingly.
func NewIngestService(
	docStore driven.DocumentStore,
	blobStore driven.BlobStore,
	extractors driven.ExtractorRegistry,
	splitter driven.TextSplitter,
	prompts driven.PromptStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	vectorIndex driven.VectorIndex,
) *IngestService {
	return &IngestService{
		docStore:    docStore,
		blobStore:   blobStore,
		extractors:  extractors,
		splitter:    splitter,
		prompts:     prompts,
		embedder:    embedder,
		llm:         llm,
		vectorIndex: vectorIndex,
		inFlight:    make(map[string]struct{}),
	}
}

// ProcessDocument runs the full ingestion pipeline synchronously.
// Pipeline failures are recorded as a terminal failed status and are
// not returned; the only errors are invalid input and a concurrent run
// for the same document id.
func (s *IngestService) ProcessDocument(ctx context.Context, content []byte, filename, documentID string) error {
	if documentID == "" || filename == "" {
		return fmt.Errorf("%w: filename and document id are required", domain.ErrInvalidInput)
	}

	if !s.claim(documentID) {
		return fmt.Errorf("%w: document %s", domain.ErrProcessingInProgress, documentID)
	}
	defer s.release(documentID)

	s.run(ctx, content, filename, documentID)
	return nil
}

// ProcessDocumentAsync claims the document id and runs the pipeline in
// the background. The run is not cancellable once started; a fresh
// upload of the same id is the only retry path.
func (s *IngestService) ProcessDocumentAsync(_ context.Context, content []byte, filename, documentID string) error {
	if documentID == "" || filename == "" {
		return fmt.Errorf("%w: filename and document id are required", domain.ErrInvalidInput)
	}

	if !s.claim(documentID) {
		return fmt.Errorf("%w: document %s", domain.ErrProcessingInProgress, documentID)
	}

	go func() {
		defer s.release(documentID)

		// Detached from the caller's context so the upload request
		// returning does not cancel the pipeline.
		runCtx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		s.run(runCtx, content, filename, documentID)
	}()

	return nil
}

// InFlight reports whether an ingestion run is active for the id.
func (s *IngestService) InFlight(documentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[documentID]
	return ok
}

// claim marks a document id as being processed. Returns false if a run
// is already active for the id.
func (s *IngestService) claim(documentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[documentID]; ok {
		return false
	}
	s.inFlight[documentID] = struct{}{}
	return true
}

// release clears the in-flight mark for a document id.
func (s *IngestService) release(documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, documentID)
}

// run executes the pipeline and records a terminal status. Any panic or
// step error becomes a terminal failed status with a truncated reason.
func (s *IngestService) run(ctx context.Context, content []byte, filename, documentID string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Ingestion panicked for %s: %v", documentID, r)
			s.fail(documentID, fmt.Sprintf("internal error: %v", r))
		}
	}()

	doc, err := s.ensureDocument(ctx, content, filename, documentID)
	if err != nil {
		logger.Error("Failed to record document %s: %v", documentID, err)
		return
	}

	if err := s.docStore.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		logger.Error("Failed to mark %s processing: %v", documentID, err)
		return
	}

	// Keep the original bytes for the degraded query fallback.
	if err := s.blobStore.Put(ctx, documentID, content); err != nil {
		s.fail(documentID, fmt.Sprintf("store original: %v", err))
		return
	}

	logger.Info("Processing document %s (%s, %d bytes)", documentID, filename, len(content))

	text := s.extractors.Extract(ctx, content, filename, doc.MediaType)
	if strings.TrimSpace(text) == "" {
		s.fail(documentID, "no text could be extracted from the document")
		return
	}

	analysis := s.analyse(ctx, doc.Title, text)

	ragIndexed := s.indexChunks(ctx, documentID, text)
	if !ragIndexed {
		logger.Warn("Document %s indexed without RAG support", documentID)
	}

	if err := s.docStore.UpdateAnalysis(ctx, documentID, analysis.Summary, analysis, ragIndexed); err != nil {
		s.fail(documentID, fmt.Sprintf("save analysis: %v", err))
		return
	}

	if err := s.docStore.UpdateStatus(ctx, documentID, domain.StatusCompleted, ""); err != nil {
		logger.Error("Failed to mark %s completed: %v", documentID, err)
		return
	}

	logger.Info("Document %s processed (rag_indexed=%t)", documentID, ragIndexed)
}

// ensureDocument creates the document row if this is a fresh upload,
// or returns the existing row when a known id is re-processed.
func (s *IngestService) ensureDocument(ctx context.Context, content []byte, filename, documentID string) (*domain.Document, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err == nil {
		return doc, nil
	}

	doc = &domain.Document{
		ID:        documentID,
		Title:     filename,
		MediaType: mediaTypeFor(filename),
		FileSize:  int64(len(content)),
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return doc, nil
}

// analyse runs document-level analysis over a bounded window of the
// extracted text. Model unavailability or unparseable output degrades
// to a neutral fallback analysis, never a pipeline failure.
func (s *IngestService) analyse(ctx context.Context, title, text string) *domain.Analysis {
	if s.llm == nil {
		return domain.FallbackAnalysis("Document processed. Analysis unavailable: no generation model configured.")
	}

	template, err := s.prompts.Load(driven.PromptAnalyse)
	if err != nil {
		logger.Warn("Failed to load analysis prompt: %v", err)
		return domain.FallbackAnalysis("Document processed. Analysis unavailable.")
	}

	prompt := fmt.Sprintf(template, title, truncateText(text, analysisTextBudget))

	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   analysisMaxTokens,
		Temperature: analysisTemperature,
	})
	if err != nil {
		logger.Warn("Document analysis failed: %v", err)
		return domain.FallbackAnalysis("Document processed. Analysis unavailable.")
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		logger.Warn("Failed to parse analysis response: %v", err)
		return domain.FallbackAnalysis("Document processed. Analysis could not be parsed.")
	}
	return analysis
}

// indexChunks splits the text, embeds the chunks and upserts them into
// the vector index. Returns true only when every chunk was stored.
// Failures are logged and degrade the document to no-RAG; they never
// fail the pipeline.
func (s *IngestService) indexChunks(ctx context.Context, documentID, text string) bool {
	if s.embedder == nil || s.vectorIndex == nil {
		return false
	}

	chunks := s.splitter.Split(text)
	if len(chunks) == 0 {
		return false
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		logger.Warn("Failed to embed chunks for %s: %v", documentID, err)
		return false
	}
	if len(vectors) != len(chunks) {
		logger.Warn("Embedding count mismatch for %s: %d chunks, %d vectors", documentID, len(chunks), len(vectors))
		return false
	}

	records := make([]domain.VectorRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = domain.VectorRecord{
			ID:     domain.VectorID(documentID, i),
			Values: vectors[i],
			Metadata: domain.VectorMetadata{
				DocumentID: documentID,
				ChunkIndex: i,
				Text:       excerpt(chunk),
			},
		}
	}

	if err := s.vectorIndex.Upsert(ctx, records); err != nil {
		logger.Warn("Failed to upsert vectors for %s: %v", documentID, err)
		return false
	}

	logger.Debug("Indexed %d chunks for %s", len(records), documentID)
	return true
}

// fail records a terminal failed status with a truncated reason.
func (s *IngestService) fail(documentID, reason string) {
	if len(reason) > maxReasonLen {
		reason = reason[:maxReasonLen]
	}

	// The run context may already be cancelled; the terminal status
	// write gets its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.docStore.UpdateStatus(ctx, documentID, domain.StatusFailed, reason); err != nil {
		logger.Error("Failed to record failure for %s: %v", documentID, err)
	}
}

// parseAnalysis decodes the model's JSON analysis, tolerating markdown
// code fences around the payload.
func parseAnalysis(raw string) (*domain.Analysis, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	if analysis.Summary == "" {
		analysis.Summary = "Document processed."
	}
	if analysis.Sentiment == "" {
		analysis.Sentiment = "neutral"
	}
	if analysis.DocumentType == "" {
		analysis.DocumentType = "document"
	}
	if analysis.KeyTopics == nil {
		analysis.KeyTopics = []string{}
	}
	if analysis.Entities == nil {
		analysis.Entities = []string{}
	}
	if analysis.Insights == nil {
		analysis.Insights = []string{}
	}
	if analysis.Confidence < 0 {
		analysis.Confidence = 0
	}
	if analysis.Confidence > 1 {
		analysis.Confidence = 1
	}
	return &analysis, nil
}

// truncateText bounds text to limit characters, appending a marker
// when content was cut.
func truncateText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + truncationMarker
}

// excerpt bounds chunk text to the metadata excerpt limit.
func excerpt(text string) string {
	if len(text) <= domain.MaxExcerptLen {
		return text
	}
	return text[:domain.MaxExcerptLen]
}

// mediaTypeFor derives a media type from the filename extension.
func mediaTypeFor(filename string) string {
	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	if mediaType == "" {
		return "application/octet-stream"
	}
	return mediaType
}
