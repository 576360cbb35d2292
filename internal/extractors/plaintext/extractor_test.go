package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupportedExtensions(t *testing.T) {
	extractor := New()
	exts := extractor.SupportedExtensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".txt")
	assert.Contains(t, exts, ".md")
	assert.Contains(t, exts, ".csv")
}

func TestSupportedMIMETypes(t *testing.T) {
	extractor := New()
	mimeTypes := extractor.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/plain")
	assert.Contains(t, mimeTypes, "application/json")
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 5, extractor.Priority())
}

func TestExtract_Success(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("This is plain text content."), "document.txt")
	require.NoError(t, err)
	assert.Equal(t, "This is plain text content.", text)
}

func TestExtract_EmptyContent(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte(""), "empty.txt")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_TrimsWhitespace(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("\n\n  padded content  \n"), "padded.txt")
	require.NoError(t, err)
	assert.Equal(t, "padded content", text)
}

func TestExtract_UnicodeContent(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	unicodeContent := `多言語文本測試
こんにちは世界
Привет мир`

	text, err := extractor.Extract(ctx, []byte(unicodeContent), "unicode.txt")
	require.NoError(t, err)
	assert.Equal(t, unicodeContent, text)
}

func TestDecode_InvalidUTF8Dropped(t *testing.T) {
	content := []byte{'v', 'a', 'l', 'i', 'd', 0xff, 0xfe, ' ', 't', 'e', 'x', 't'}

	text := Decode(content)
	assert.Equal(t, "valid text", text)
}

func TestDecode_BinaryContent(t *testing.T) {
	// Pure binary with no valid runes collapses to nothing useful.
	content := []byte{0xff, 0xfe, 0xfd}

	text := Decode(content)
	assert.Empty(t, text)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
