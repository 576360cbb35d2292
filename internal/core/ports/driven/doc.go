// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Converts raw file bytes into plain text
//   - ExtractorRegistry: Selects the appropriate extractor
//   - TextSplitter: Splits extracted text into bounded chunks
//   - DocumentStore: Document metadata and status persistence
//   - TranscriptStore: Question/answer transcript persistence
//   - BlobStore: Original file bytes, keyed by document id
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it, documents
//     are analysed but indexed without RAG support.
//   - VectorIndex: Stores and searches embeddings. Only enabled when
//     EmbeddingService is configured.
//   - LLMService: Generation model. Without it, analysis and question
//     answering are disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
