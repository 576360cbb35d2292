package extractors

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/extractors/docx"
	"github.com/doclens/doclens/internal/extractors/pdf"
	"github.com/doclens/doclens/internal/extractors/plaintext"
	"github.com/doclens/doclens/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects and runs extractors by extension or media type.
type Registry struct {
	extractors []driven.Extractor
}

// NewRegistry creates a registry with the given extractors, kept in
// priority order (highest first).
func NewRegistry(extractors ...driven.Extractor) *Registry {
	sorted := make([]driven.Extractor, len(extractors))
	copy(sorted, extractors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return &Registry{extractors: sorted}
}

// NewDefaultRegistry creates a registry with the built-in extractors.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		pdf.New(),
		docx.New(),
		plaintext.New(),
	)
}

// Extract runs the best matching extractor and degrades through
// lower-priority candidates. The result is never an error - at worst
// it is an empty string, which callers treat as "nothing to index".
// A lossy UTF-8 decode is attempted only for formats no extractor
// claims; a claimed file whose extractors all fail yields "", since
// decoding the raw bytes of a broken PDF or archive produces garbage
// rather than text.
func (r *Registry) Extract(ctx context.Context, content []byte, filename, mediaType string) string {
	if len(content) == 0 {
		return ""
	}

	ext := strings.ToLower(filepath.Ext(filename))

	claimed := false
	for _, e := range r.extractors {
		if !matches(e, ext, mediaType) {
			continue
		}
		claimed = true

		text, err := e.Extract(ctx, content, filename)
		if err != nil {
			logger.Warn("Extractor failed for %s: %v", filename, err)
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text
		}
	}

	if claimed {
		logger.Debug("No extractor produced text for %s", filename)
		return ""
	}

	// Unknown format: best-effort decode as text.
	logger.Debug("No extractor claims %s, decoding as UTF-8", filename)
	return plaintext.Decode(content)
}

// matches reports whether the extractor claims the extension or media type.
func matches(e driven.Extractor, ext, mediaType string) bool {
	for _, candidate := range e.SupportedExtensions() {
		if candidate == ext {
			return true
		}
	}
	if mediaType == "" {
		return false
	}
	for _, candidate := range e.SupportedMIMETypes() {
		if candidate == mediaType {
			return true
		}
	}
	return false
}
