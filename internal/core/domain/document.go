package domain

import (
	"strconv"
	"time"
)

// DocumentStatus is the processing state of an uploaded document.
// It is a first-class tagged value, decoupled from the human-readable
// summary text, so callers never have to infer state by substring
// matching on free-form status strings.
type DocumentStatus string

// Document lifecycle states. Completed and Failed are terminal; a
// document only re-enters Processing through a fresh upload of the
// same id, which replaces prior state entirely.
const (
	// StatusPending means the document row exists but no processing
	// has been attempted yet.
	StatusPending DocumentStatus = "pending"

	// StatusProcessing means extraction, chunking or embedding is
	// underway.
	StatusProcessing DocumentStatus = "processing"

	// StatusCompleted means the pipeline finished. The document may
	// still be degraded (indexed without RAG support) - see RAGIndexed.
	StatusCompleted DocumentStatus = "completed"

	// StatusFailed means the pipeline hit an unrecoverable error.
	// The reason is carried alongside the status.
	StatusFailed DocumentStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once processing can no longer change the status.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// String returns the string representation.
func (s DocumentStatus) String() string {
	return string(s)
}

// Document represents an uploaded document and its processing state.
// The id, title and media type are immutable after upload; status and
// summary are written exactly once by the ingestion pipeline when it
// reaches a terminal state.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the original filename or a human-readable title.
	Title string

	// MediaType is the declared content type (e.g. "application/pdf").
	MediaType string

	// FileSize is the size of the original upload in bytes.
	FileSize int64

	// Status is the processing state.
	Status DocumentStatus

	// StatusReason carries the failure message when Status is
	// StatusFailed. Empty otherwise.
	StatusReason string

	// Summary is the model-generated summary recorded when processing
	// completes. It is presentation text, never a state signal.
	Summary string

	// RAGIndexed is true when chunk embeddings were stored for this
	// document. False means question answering falls back to direct
	// extraction.
	RAGIndexed bool

	// Analysis holds the full document analysis, when available.
	Analysis *Analysis

	// CreatedAt is when the document was first uploaded.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// Chunk is a bounded contiguous slice of a document's extracted text.
// Chunks are derived and ephemeral: only their vector and a truncated
// text excerpt survive, as vector metadata.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the ordinal position within the document, starting at 0.
	Index int

	// Text is the chunk content.
	Text string
}

// VectorID returns the vector record id for this chunk. Ids for a
// document are dense integers in chunk order, so re-processing a
// document overwrites records with the same ids.
func (c Chunk) VectorID() string {
	return VectorID(c.DocumentID, c.Index)
}

// VectorRecord is an embedding stored in the vector index together
// with the metadata needed to scope and present retrieval results.
type VectorRecord struct {
	// ID is "{document_id}_{chunk_index}".
	ID string

	// Values is the embedding vector. Its length is fixed by the
	// embedding model.
	Values []float32

	// Metadata scopes the record to a document and keeps a display
	// excerpt of the chunk text.
	Metadata VectorMetadata
}

// VectorMetadata is the per-vector payload stored alongside embeddings.
type VectorMetadata struct {
	// DocumentID scopes the vector to one document. Every query
	// filters on this field.
	DocumentID string `json:"document_id"`

	// ChunkIndex is the ordinal of the source chunk.
	ChunkIndex int `json:"chunk_index"`

	// Text is the chunk text, truncated to MaxExcerptLen.
	Text string `json:"text"`
}

// VectorMatch is a similarity search hit.
type VectorMatch struct {
	// ID is the matched vector record id.
	ID string

	// Score is the cosine similarity, higher is better.
	Score float64

	// Metadata is the stored payload of the matched record.
	Metadata VectorMetadata
}

// QueryResult is the answer to a question about one document.
type QueryResult struct {
	// Answer is the generated answer text. Operational failures are
	// reported through this field with Confidence 0, never as errors.
	Answer string `json:"answer"`

	// Sources lists the chunk indices of the retrieved evidence in
	// the order the index returned them (similarity-descending), not
	// document order. Empty when the answer bypassed retrieval.
	Sources []int `json:"sources"`

	// Confidence is in [0,1]. It is the mean of the retrieved match
	// scores, 0.5 for direct-extraction fallback answers, and 0 when
	// no evidence was found.
	Confidence float64 `json:"confidence"`
}

// Message is one entry in a document's question/answer transcript.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// DocumentID links to the document the question was about.
	DocumentID string

	// Role is "user" or "assistant".
	Role string

	// Content is the question or answer text.
	Content string

	// Sources are the evidence chunk indices for assistant messages.
	Sources []int

	// Confidence is the answer confidence for assistant messages.
	Confidence float64

	// CreatedAt is when the message was recorded.
	CreatedAt time.Time
}

// MaxExcerptLen bounds the chunk text stored as vector metadata.
// Vector index providers cap per-record metadata size.
const MaxExcerptLen = 800

// VectorID builds the dense vector record id for a document chunk.
func VectorID(documentID string, chunkIndex int) string {
	return documentID + "_" + strconv.Itoa(chunkIndex)
}
