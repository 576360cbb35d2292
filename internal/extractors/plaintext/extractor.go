// Package plaintext extracts text from plain text documents. It also
// serves as the last-resort extractor for unknown formats via Decode.
package plaintext

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain text documents.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{
		".txt",
		".md",
		".markdown",
		".csv",
		".log",
		".json",
		".xml",
		".yaml",
		".yml",
		".toml",
	}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/csv",
		"text/yaml",
		"text/toml",
		"application/json",
		"application/xml",
	}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 5 // Fallback extractor
}

// Extract decodes the content as UTF-8 text.
func (e *Extractor) Extract(_ context.Context, content []byte, _ string) (string, error) {
	return Decode(content), nil
}

// Decode converts raw bytes to a string, dropping invalid UTF-8
// sequences. Used by the registry as the final fallback for unknown
// formats, so it must not fail.
func Decode(content []byte) string {
	if utf8.Valid(content) {
		return strings.TrimSpace(string(content))
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(content), ""))
}
