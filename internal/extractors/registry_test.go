package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// fakeExtractor is a configurable test double.
type fakeExtractor struct {
	exts     []string
	mimes    []string
	priority int
	text     string
	err      error
	called   bool
}

func (f *fakeExtractor) SupportedExtensions() []string { return f.exts }
func (f *fakeExtractor) SupportedMIMETypes() []string  { return f.mimes }
func (f *fakeExtractor) Priority() int                 { return f.priority }

func (f *fakeExtractor) Extract(_ context.Context, _ []byte, _ string) (string, error) {
	f.called = true
	return f.text, f.err
}

func TestNewRegistry_SortsByPriority(t *testing.T) {
	low := &fakeExtractor{priority: 5}
	high := &fakeExtractor{priority: 50}

	registry := NewRegistry(low, high)
	require.Len(t, registry.extractors, 2)
	assert.Equal(t, 50, registry.extractors[0].Priority())
	assert.Equal(t, 5, registry.extractors[1].Priority())
}

func TestNewDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry()
	require.NotNil(t, registry)
	assert.Len(t, registry.extractors, 3)
}

func TestExtract_MatchByExtension(t *testing.T) {
	matching := &fakeExtractor{exts: []string{".txt"}, priority: 10, text: "extracted text"}
	other := &fakeExtractor{exts: []string{".pdf"}, priority: 50, text: "wrong"}

	registry := NewRegistry(matching, other)
	text := registry.Extract(context.Background(), []byte("content"), "notes.txt", "")

	assert.Equal(t, "extracted text", text)
	assert.True(t, matching.called)
	assert.False(t, other.called)
}

func TestExtract_MatchByMIMEType(t *testing.T) {
	matching := &fakeExtractor{mimes: []string{"application/pdf"}, priority: 50, text: "pdf text"}

	registry := NewRegistry(matching)
	text := registry.Extract(context.Background(), []byte("content"), "download", "application/pdf")

	assert.Equal(t, "pdf text", text)
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	matching := &fakeExtractor{exts: []string{".pdf"}, priority: 50, text: "pdf text"}

	registry := NewRegistry(matching)
	text := registry.Extract(context.Background(), []byte("content"), "REPORT.PDF", "")

	assert.Equal(t, "pdf text", text)
}

func TestExtract_HigherPriorityWins(t *testing.T) {
	specific := &fakeExtractor{exts: []string{".md"}, priority: 50, text: "specific"}
	generic := &fakeExtractor{exts: []string{".md"}, priority: 5, text: "generic"}

	registry := NewRegistry(generic, specific)
	text := registry.Extract(context.Background(), []byte("content"), "readme.md", "")

	assert.Equal(t, "specific", text)
	assert.False(t, generic.called)
}

func TestExtract_FallsThroughOnError(t *testing.T) {
	failing := &fakeExtractor{exts: []string{".md"}, priority: 50, err: errors.New("parse failed")}
	fallback := &fakeExtractor{exts: []string{".md"}, priority: 5, text: "fallback text"}

	registry := NewRegistry(failing, fallback)
	text := registry.Extract(context.Background(), []byte("content"), "readme.md", "")

	assert.Equal(t, "fallback text", text)
	assert.True(t, failing.called)
}

func TestExtract_FallsThroughOnEmptyResult(t *testing.T) {
	empty := &fakeExtractor{exts: []string{".md"}, priority: 50, text: "   \n"}
	fallback := &fakeExtractor{exts: []string{".md"}, priority: 5, text: "fallback text"}

	registry := NewRegistry(empty, fallback)
	text := registry.Extract(context.Background(), []byte("content"), "readme.md", "")

	assert.Equal(t, "fallback text", text)
}

func TestExtract_UnknownFormatDecodesAsUTF8(t *testing.T) {
	registry := NewRegistry()
	text := registry.Extract(context.Background(), []byte("raw bytes as text"), "mystery.xyz", "")

	assert.Equal(t, "raw bytes as text", text)
}

func TestExtract_ClaimedFormatFailureYieldsEmpty(t *testing.T) {
	failing := &fakeExtractor{exts: []string{".pdf"}, priority: 50, err: errors.New("parse failed")}

	registry := NewRegistry(failing)
	text := registry.Extract(context.Background(), []byte("%PDF-1.4 not really a pdf"), "report.pdf", "")

	// The raw bytes of a broken PDF must not be decoded as text.
	assert.Empty(t, text)
	assert.True(t, failing.called)
}

func TestExtract_CorruptPDFYieldsEmpty(t *testing.T) {
	corrupt := []byte("%PDF-1.4\n1 0 obj\nstream\n\x00ABC\nendstream\nxref garbage trailer startxref 999999")

	registry := NewDefaultRegistry()
	text := registry.Extract(context.Background(), corrupt, "bad.pdf", "application/pdf")

	assert.Empty(t, text)
}

func TestExtract_NeverFails(t *testing.T) {
	failing := &fakeExtractor{exts: []string{".bin"}, priority: 50, err: errors.New("boom")}

	registry := NewRegistry(failing)
	text := registry.Extract(context.Background(), []byte{0xff, 0xfe}, "data.bin", "")

	// Worst case is an empty string, never a panic or error.
	assert.Empty(t, text)
}

func TestExtract_EmptyContent(t *testing.T) {
	registry := NewDefaultRegistry()
	text := registry.Extract(context.Background(), nil, "empty.txt", "")

	assert.Empty(t, text)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.ExtractorRegistry = (*Registry)(nil)
}
