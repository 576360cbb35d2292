package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
	called bool
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	m.called = true
	return m.output, m.err
}

func TestNew(t *testing.T) {
	extractor := New()
	require.NotNil(t, extractor)
	assert.IsType(t, &Extractor{}, extractor)
}

func TestSupportedExtensions(t *testing.T) {
	extractor := New()
	exts := extractor.SupportedExtensions()

	require.NotEmpty(t, exts)
	assert.Contains(t, exts, ".pdf")
	assert.Len(t, exts, 1)
}

func TestSupportedMIMETypes(t *testing.T) {
	extractor := New()
	mimeTypes := extractor.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "application/pdf")
	assert.Len(t, mimeTypes, 1)
}

func TestPriority(t *testing.T) {
	extractor := New()
	assert.Equal(t, 50, extractor.Priority())
}

func TestExtract_EmptyContent(t *testing.T) {
	extractor := New()
	ctx := context.Background()

	text, err := extractor.Extract(ctx, nil, "empty.pdf")
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, text)
}

// TestNewWithRunner verifies the mock runner injection works.
func TestNewWithRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("test output"), err: nil}
	extractor := NewWithRunner(runner)
	require.NotNil(t, extractor)
	assert.Equal(t, runner, extractor.runner)
}

// TestExtract_FallbackToRunner tests extraction with a mocked pdftotext
// when the in-process parser cannot read the content.
func TestExtract_FallbackToRunner(t *testing.T) {
	// LookPath check happens before the runner is invoked.
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not in PATH, skipping mock runner test")
	}

	runner := &mockRunner{
		output: []byte("PDF Title\n\nThis is the content of the PDF.\n"),
		err:    nil,
	}
	extractor := NewWithRunner(runner)
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("%PDF-1.4 fake pdf content"), "document.pdf")
	require.NoError(t, err)
	assert.True(t, runner.called)
	assert.Contains(t, text, "This is the content of the PDF.")
}

// TestExtract_DoubleFailure tests error handling when both the parser
// and pdftotext fail.
func TestExtract_DoubleFailure(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Skip("pdftotext not in PATH, skipping runner error test")
	}

	runner := &mockRunner{
		output: nil,
		err:    errors.New("pdftotext crashed"),
	}
	extractor := NewWithRunner(runner)
	ctx := context.Background()

	text, err := extractor.Extract(ctx, []byte("%PDF-1.4 fake pdf content"), "document.pdf")
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Empty(t, text)
}

func TestParseInProcess_InvalidContent(t *testing.T) {
	text, err := parseInProcess([]byte("not a pdf at all"))
	assert.Error(t, err)
	assert.Empty(t, text)
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}
