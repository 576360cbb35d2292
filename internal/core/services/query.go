package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/core/ports/driving"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

const (
	// defaultTopK is the number of evidence chunks retrieved per question.
	defaultTopK = 5

	// answerTimeout bounds the whole Answer call so a slow generation
	// cannot hang a client indefinitely.
	answerTimeout = 60 * time.Second

	// minDirectTextLen is the minimum extracted text length considered
	// useful for the direct-extraction fallback.
	minDirectTextLen = 50

	// directAnswerConfidence is the fixed confidence assigned to
	// answers that bypassed retrieval.
	directAnswerConfidence = 0.5

	// answerMaxTokens and answerTemperature configure the answer
	// generation call.
	answerMaxTokens   = 800
	answerTemperature = 0.1

	// noInfoAnswer is returned when neither retrieval nor direct
	// extraction produced usable evidence.
	noInfoAnswer = "I could not find relevant information in the document to answer your question."
)

// QueryService answers natural-language questions from a single
// document's indexed content, falling back to direct extraction when
// the vector index has nothing for the document.
type QueryService struct {
	docStore    driven.DocumentStore
	transcripts driven.TranscriptStore
	blobStore   driven.BlobStore
	extractors  driven.ExtractorRegistry
	splitter    driven.TextSplitter
	prompts     driven.PromptStore
	embedder    driven.EmbeddingService
	llm         driven.LLMService
	vectorIndex driven.VectorIndex
}

// NewQueryService creates a new query service.
// embedder, llm and vectorIndex may be nil - missing capabilities
// surface as degraded answers, never as errors.
func NewQueryService(
	docStore driven.DocumentStore,
	transcripts driven.TranscriptStore,
	blobStore driven.BlobStore,
	extractors driven.ExtractorRegistry,
	splitter driven.TextSplitter,
	prompts driven.PromptStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	vectorIndex driven.VectorIndex,
) *QueryService {
	return &QueryService{
		docStore:    docStore,
		transcripts: transcripts,
		blobStore:   blobStore,
		extractors:  extractors,
		splitter:    splitter,
		prompts:     prompts,
		embedder:    embedder,
		llm:         llm,
		vectorIndex: vectorIndex,
	}
}

// Answer embeds the question, retrieves evidence scoped to the
// document, and synthesises an answer. Operational failures surface as
// a QueryResult with confidence 0; the only errors are invalid input
// and unknown document ids.
func (s *QueryService) Answer(ctx context.Context, question, documentID string) (*domain.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}
	if documentID == "" {
		return nil, fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	s.record(ctx, &domain.Message{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Role:       "user",
		Content:    question,
		CreatedAt:  time.Now(),
	})

	result := s.answer(ctx, doc, question)

	s.record(ctx, &domain.Message{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Role:       "assistant",
		Content:    result.Answer,
		Sources:    result.Sources,
		Confidence: result.Confidence,
		CreatedAt:  time.Now(),
	})

	return result, nil
}

// answer runs retrieval and generation, degrading through the fallback
// path on empty or failed retrieval.
func (s *QueryService) answer(ctx context.Context, doc *domain.Document, question string) *domain.QueryResult {
	if s.llm == nil {
		return noInfoResult()
	}

	matches := s.retrieve(ctx, doc.ID, question)
	if len(matches) == 0 {
		return s.answerDirect(ctx, doc, question)
	}

	template, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil {
		// Evidence was found, so report a generation failure rather
		// than claiming the document holds no relevant information.
		logger.Warn("Failed to load answer prompt: %v", err)
		return generationFailedResult()
	}

	// Context follows result order (similarity-descending), not
	// document order.
	excerpts := make([]string, len(matches))
	sources := make([]int, len(matches))
	for i, match := range matches {
		excerpts[i] = match.Metadata.Text
		sources[i] = match.Metadata.ChunkIndex
	}

	prompt := fmt.Sprintf(template, strings.Join(excerpts, "\n\n"), question)
	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.Warn("Answer generation failed for %s: %v", doc.ID, err)
		return generationFailedResult()
	}

	return &domain.QueryResult{
		Answer:     strings.TrimSpace(answer),
		Sources:    sources,
		Confidence: meanScore(matches),
	}
}

// retrieve embeds the question in query mode and runs the filtered
// similarity search. Any failure yields zero matches, which routes the
// caller onto the fallback path.
func (s *QueryService) retrieve(ctx context.Context, documentID, question string) []domain.VectorMatch {
	if s.embedder == nil || s.vectorIndex == nil {
		return nil
	}

	vector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		logger.Warn("Failed to embed question for %s: %v", documentID, err)
		return nil
	}

	matches, err := s.vectorIndex.Query(ctx, vector, documentID, defaultTopK)
	if err != nil {
		logger.Warn("Vector query failed for %s: %v", documentID, err)
		return nil
	}
	return matches
}

// answerDirect is the degraded fallback: re-extract the original
// document and answer against a bounded window of its text. The
// fixed 0.5 confidence signals the answer bypassed retrieval.
func (s *QueryService) answerDirect(ctx context.Context, doc *domain.Document, question string) *domain.QueryResult {
	content, err := s.blobStore.Get(ctx, doc.ID)
	if err != nil {
		logger.Warn("No stored original for %s: %v", doc.ID, err)
		return noInfoResult()
	}

	text := s.extractors.Extract(ctx, content, doc.Title, doc.MediaType)
	if len(strings.TrimSpace(text)) < minDirectTextLen {
		return noInfoResult()
	}

	// Best-effort re-index for future queries; never blocks the answer.
	go s.reindex(doc.ID, text)

	template, err := s.prompts.Load(driven.PromptDirectAnswer)
	if err != nil {
		logger.Warn("Failed to load direct answer prompt: %v", err)
		return noInfoResult()
	}

	prompt := fmt.Sprintf(template, truncateText(text, analysisTextBudget), question)
	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.Warn("Direct answer generation failed for %s: %v", doc.ID, err)
		return noInfoResult()
	}

	return &domain.QueryResult{
		Answer:     strings.TrimSpace(answer),
		Sources:    []int{},
		Confidence: directAnswerConfidence,
	}
}

// reindex embeds and stores the document's chunks so the next query
// can use retrieval. Failures are logged and forgotten.
func (s *QueryService) reindex(documentID, text string) {
	if s.embedder == nil || s.vectorIndex == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), answerTimeout)
	defer cancel()

	chunks := s.splitter.Split(text)
	if len(chunks) == 0 {
		return
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, chunks)
	if err != nil || len(vectors) != len(chunks) {
		logger.Debug("Background re-embed failed for %s: %v", documentID, err)
		return
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
		logger.Debug("Background upsert failed for %s: %v", documentID, err)
		return
	}

	logger.Debug("Re-indexed %d chunks for %s", len(records), documentID)
}

// record appends a transcript message, best effort.
func (s *QueryService) record(ctx context.Context, msg *domain.Message) {
	if s.transcripts == nil {
		return
	}
	if err := s.transcripts.SaveMessage(ctx, msg); err != nil {
		logger.Debug("Failed to record transcript message: %v", err)
	}
}

// meanScore is the confidence policy: the mean of the match scores,
// clamped to 1.0.
func meanScore(matches []domain.VectorMatch) float64 {
	if len(matches) == 0 {
		return 0
	}
	var sum float64
	for _, m := range matches {
		sum += m.Score
	}
	mean := sum / float64(len(matches))
	if mean > 1.0 {
		return 1.0
	}
	if mean < 0 {
		return 0
	}
	return mean
}

// generationFailedResult is the degraded answer for a failure on the
// generation side when evidence was retrieved.
func generationFailedResult() *domain.QueryResult {
	return &domain.QueryResult{
		Answer:     "I could not generate an answer for this question. Please try again.",
		Sources:    []int{},
		Confidence: 0,
	}
}

// noInfoResult is the terminal degraded answer: no evidence found by
// either retrieval or direct extraction.
func noInfoResult() *domain.QueryResult {
	return &domain.QueryResult{
		Answer:     noInfoAnswer,
		Sources:    []int{},
		Confidence: 0,
	}
}
