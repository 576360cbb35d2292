// Package chunker splits extracted text into bounded, overlapping
// chunks for embedding. Splitting is deterministic: the same input and
// parameters always produce the same sequence, which keeps embeddings
// and tests reproducible.
package chunker

import (
	"strings"

	"github.com/doclens/doclens/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.TextSplitter = (*Splitter)(nil)

// DefaultMaxChunkSize is the default chunk bound in characters.
const DefaultMaxChunkSize = 1000

// DefaultOverlap is the default overlap budget in characters. Overlap
// is applied at sentence granularity: a new chunk is seeded with the
// trailing whole sentences of the previous chunk that fit the budget,
// never with a mid-word character slice.
const DefaultOverlap = 100

// Splitter packs sentences greedily into chunks of at most
// maxChunkSize characters.
type Splitter struct {
	maxChunkSize int
	overlap      int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithMaxChunkSize sets the chunk bound in characters.
func WithMaxChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.maxChunkSize = size
		}
	}
}

// WithOverlap sets the overlap budget in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		maxChunkSize: DefaultMaxChunkSize,
		overlap:      DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.maxChunkSize {
		s.overlap = s.maxChunkSize / 4
	}

	return s
}

// Split returns the ordered, non-empty chunk texts for the input.
// Every chunk is at most maxChunkSize characters except when a single
// sentence exceeds the bound; that sentence becomes one oversized
// chunk rather than being truncated mid-word. Empty input yields nil.
func (s *Splitter) Split(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, sentence := range sentences {
		addLen := len(sentence)
		if currentLen > 0 {
			addLen++ // joining space
		}

		if currentLen+addLen > s.maxChunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			// Seed the next chunk with trailing sentences of the one
			// just closed, unless the seed would not leave room for
			// the incoming sentence.
			current = tailWithinBudget(current, s.overlap)
			currentLen = joinedLen(current)
			if currentLen > 0 && currentLen+1+len(sentence) > s.maxChunkSize {
				current = nil
				currentLen = 0
			}
			if currentLen > 0 {
				currentLen++ // joining space before the sentence
			}
		}

		current = append(current, sentence)
		currentLen += len(sentence)
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// MaxChunkSize returns the configured chunk bound.
func (s *Splitter) MaxChunkSize() int {
	return s.maxChunkSize
}

// Overlap returns the configured overlap budget.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// splitSentences splits text into paragraphs, then sentences on the
// ". " delimiter, re-appending the terminal period.
func splitSentences(text string) []string {
	var sentences []string

	for _, paragraph := range splitParagraphs(text) {
		parts := strings.Split(paragraph, ". ")
		for i, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if i < len(parts)-1 && !hasTerminalPunctuation(part) {
				part += "."
			}
			sentences = append(sentences, part)
		}
	}

	return sentences
}

// splitParagraphs splits on line breaks, dropping blank lines.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}

// hasTerminalPunctuation reports whether the sentence already ends
// with a terminator.
func hasTerminalPunctuation(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") ||
		strings.HasSuffix(s, "?") || strings.HasSuffix(s, ":")
}

// tailWithinBudget returns the longest suffix of sentences whose
// joined length fits the character budget.
func tailWithinBudget(sentences []string, budget int) []string {
	if budget <= 0 {
		return nil
	}

	total := 0
	start := len(sentences)
	for i := len(sentences) - 1; i >= 0; i-- {
		add := len(sentences[i])
		if total > 0 {
			add++ // joining space
		}
		if total+add > budget {
			break
		}
		total += add
		start = i
	}

	if start == len(sentences) {
		return nil
	}
	// Copy so the closed chunk's backing array is not shared.
	tail := make([]string, len(sentences)-start)
	copy(tail, sentences[start:])
	return tail
}

// joinedLen is the length of the sentences joined with single spaces.
func joinedLen(sentences []string) int {
	if len(sentences) == 0 {
		return 0
	}
	total := len(sentences) - 1
	for _, s := range sentences {
		total += len(s)
	}
	return total
}
