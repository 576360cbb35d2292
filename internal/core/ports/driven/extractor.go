package driven

import "context"

// Extractor converts raw file bytes into plain text.
// Each extractor handles specific file extensions and MIME types.
type Extractor interface {
	// SupportedExtensions returns lowercase extensions including the
	// dot (e.g. ".pdf").
	SupportedExtensions() []string

	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific extractors should return 50-89.
	// Fallback extractors should return 1-9.
	Priority() int

	// Extract returns the plain text content of the file.
	Extract(ctx context.Context, content []byte, filename string) (string, error)
}

// ExtractorRegistry dispatches extraction by filename extension or
// declared media type. Extraction never fails from the caller's point
// of view: total failure yields an empty string, which callers must
// treat as "nothing to index" rather than an error.
type ExtractorRegistry interface {
	// Extract runs the best matching extractor, degrading through
	// lower-priority candidates and finishing with a best-effort UTF-8
	// decode.
	Extract(ctx context.Context, content []byte, filename, mediaType string) string
}

// TextSplitter splits extracted text into bounded, overlapping chunks.
// Splitting is deterministic: the same input and parameters always
// yield the same sequence.
type TextSplitter interface {
	// Split returns the ordered, non-empty chunk texts.
	// Empty input yields an empty slice.
	Split(text string) []string
}
