// Package pdf extracts text from PDF documents. It parses the file
// in-process first and falls back to the pdftotext tool (poppler-utils)
// when the parser produces too little text, which happens with scanned
// or unusually encoded PDFs.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"

	"github.com/doclens/doclens/internal/core/domain"
	"github.com/doclens/doclens/internal/core/ports/driven"
	"github.com/doclens/doclens/internal/logger"
)

// ErrPDFToolNotFound is returned when pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// minParsedLen is the minimum amount of text the in-process parser must
// produce before we trust it. Below this we assume the parser missed the
// content and try pdftotext instead.
const minParsedLen = 50

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// CommandRunner executes an external command and returns its stdout.
// Injectable for testing.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Extractor handles PDF documents.
type Extractor struct {
	runner CommandRunner
}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".pdf"}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (e *Extractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50 // Format-specific extractor
}

// Extract parses the PDF in-process, falling back to pdftotext when the
// parsed text is implausibly short.
func (e *Extractor) Extract(ctx context.Context, content []byte, filename string) (string, error) {
	if len(content) == 0 {
		return "", domain.ErrInvalidInput
	}

	text, parseErr := parseInProcess(content)
	if parseErr == nil && len(strings.TrimSpace(text)) >= minParsedLen {
		return strings.TrimSpace(text), nil
	}
	if parseErr != nil {
		logger.Debug("In-process PDF parse failed for %s: %v", filename, parseErr)
	} else {
		logger.Debug("In-process PDF parse produced %d chars for %s, trying pdftotext", len(text), filename)
	}

	fallback, toolErr := e.runPDFToText(ctx, content)
	if toolErr == nil && strings.TrimSpace(fallback) != "" {
		return strings.TrimSpace(fallback), nil
	}

	// Prefer whatever the parser recovered over nothing at all.
	if strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), nil
	}
	if toolErr != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, toolErr)
	}
	if parseErr != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, parseErr)
	}
	return "", domain.ErrExtractionFailed
}

// parseInProcess extracts text with the pure Go parser. The parser
// panics on some malformed files, so recover and report an error.
func parseInProcess(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := ledongthuc.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// runPDFToText writes the content to a temporary file and runs pdftotext
// on it, reading the result from stdout.
func (e *Extractor) runPDFToText(ctx context.Context, content []byte) (string, error) {
	if err := CheckAvailable(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "doclens-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	output, err := e.runner.Run(ctx, "pdftotext", "-layout", tmpPath, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w", err)
	}
	return string(output), nil
}

// CheckAvailable reports whether pdftotext is installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific install guidance for the
// pdftotext fallback tool.
func InstallInstructions() string {
	var sb strings.Builder
	sb.WriteString("pdftotext is used as a fallback for PDFs the built-in parser cannot read.\n")
	sb.WriteString("Install poppler:\n")
	sb.WriteString("  macOS:         brew install poppler\n")
	sb.WriteString("  Debian/Ubuntu: apt install poppler-utils\n")
	sb.WriteString("  Fedora:        dnf install poppler-utils\n")
	return sb.String()
}
