package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, DefaultMaxChunkSize, s.MaxChunkSize())
	assert.Equal(t, DefaultOverlap, s.Overlap())
}

func TestNew_OverlapClamped(t *testing.T) {
	s := New(WithMaxChunkSize(100), WithOverlap(200))
	assert.Equal(t, 25, s.Overlap(), "overlap >= chunk size is clamped to a quarter")
}

func TestSplit_Empty(t *testing.T) {
	s := New()
	assert.Empty(t, s.Split(""))
	assert.Empty(t, s.Split("   \n\n  "))
}

func TestSplit_Deterministic(t *testing.T) {
	s := New(WithMaxChunkSize(120), WithOverlap(30))
	text := "One sentence here. Another sentence follows. A third one closes the paragraph.\n\n" +
		"A second paragraph starts. It also has sentences. They are short."

	first := s.Split(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Split(text))
	}
}

func TestSplit_SizeBound(t *testing.T) {
	s := New(WithMaxChunkSize(80), WithOverlap(20))

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("This sentence has a modest length. ")
	}

	chunks := s.Split(b.String())
	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 80, "chunk %d exceeds bound", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk))
	}
}

func TestSplit_OversizedSentenceKeptWhole(t *testing.T) {
	s := New(WithMaxChunkSize(50), WithOverlap(10))

	long := "this single sentence is far longer than the configured chunk bound and must not be cut"
	chunks := s.Split("Short one. " + long + ". Another short one.")

	require.Len(t, chunks, 3)
	assert.Equal(t, "Short one.", chunks[0])
	assert.Equal(t, long+".", chunks[1], "oversized sentence becomes one whole chunk")
	assert.Equal(t, "Another short one.", chunks[2])
}

func TestSplit_OverlapSeedsNextChunk(t *testing.T) {
	s := New(WithMaxChunkSize(60), WithOverlap(25))

	chunks := s.Split("Alpha sentence goes first. Beta sentence is second. Gamma sentence is third.")
	require.GreaterOrEqual(t, len(chunks), 2)

	// Each later chunk starts with trailing sentences of the previous one.
	for i := 1; i < len(chunks); i++ {
		firstSentence := strings.SplitN(chunks[i], ". ", 2)[0]
		if !strings.HasSuffix(firstSentence, ".") {
			firstSentence += "."
		}
		if len(firstSentence) <= s.Overlap() {
			assert.Contains(t, chunks[i-1], firstSentence,
				"chunk %d should open with overlap from chunk %d", i, i-1)
		}
	}
}

func TestSplit_NonOverlapPortionsReconstructSentences(t *testing.T) {
	s := New(WithMaxChunkSize(70), WithOverlap(20))

	text := "First sentence here. Second sentence follows it. Third sentence now. " +
		"Fourth sentence arrives. Fifth sentence ends it."
	want := splitSentences(text)

	chunks := s.Split(text)
	require.NotEmpty(t, chunks)

	var got []string
	for i, chunk := range chunks {
		sentences := splitSentences(chunk)
		if i > 0 {
			// Drop the seeded overlap prefix: sentences already
			// emitted at the tail of the previous chunk.
			prev := splitSentences(chunks[i-1])
			sentences = sentences[overlapPrefix(prev, sentences):]
		}
		got = append(got, sentences...)
	}

	assert.Equal(t, want, got)
}

// overlapPrefix counts how many leading sentences of cur repeat the
// trailing sentences of prev.
func overlapPrefix(prev, cur []string) int {
	for n := min(len(prev), len(cur)); n > 0; n-- {
		match := true
		for i := 0; i < n; i++ {
			if prev[len(prev)-n+i] != cur[i] {
				match = false
				break
			}
		}
		if match {
			return n
		}
	}
	return 0
}

func TestSplit_ThreeParagraphScenario(t *testing.T) {
	// ~2500 characters across 3 paragraphs with the default-ish
	// parameters should land on a small handful of chunks.
	s := New(WithMaxChunkSize(1000), WithOverlap(100))

	paragraph := strings.TrimSpace(strings.Repeat("The quarterly report covers revenue growth across regions. ", 14))
	text := paragraph + "\n\n" + paragraph + "\n\n" + paragraph
	require.Greater(t, len(text), 2400)

	chunks := s.Split(text)
	assert.GreaterOrEqual(t, len(chunks), 3)
	assert.LessOrEqual(t, len(chunks), 4)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 1000)
	}
}

func TestSplitSentences_ReappendsPeriod(t *testing.T) {
	sentences := splitSentences("First part. Second part. Tail without delimiter")
	require.Len(t, sentences, 3)
	assert.Equal(t, "First part.", sentences[0])
	assert.Equal(t, "Second part.", sentences[1])
	assert.Equal(t, "Tail without delimiter", sentences[2])
}
