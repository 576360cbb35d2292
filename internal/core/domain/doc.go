// Package domain defines the core business entities for Doclens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document and its processing state
//   - Chunk: A bounded slice of extracted text, the unit of embedding
//   - VectorRecord: A stored embedding with retrieval metadata
//   - Analysis: Model-derived document insights (summary, topics, entities)
//   - QueryResult: The answer to a question about one document
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
