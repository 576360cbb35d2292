package chatlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/domain"
)

func TestNewLog(t *testing.T) {
	log := NewLog(nil)

	require.NotNil(t, log)
	assert.True(t, log.IsEmpty())
	assert.Equal(t, 0, log.Count())
}

func TestLog_AppendAndResolve(t *testing.T) {
	log := NewLog(nil)

	log.Append("what is the total?")
	require.Equal(t, 1, log.Count())
	assert.True(t, log.Entries()[0].Pending)

	log.Resolve(&domain.QueryResult{Answer: "42", Sources: []int{3, 0}, Confidence: 0.8})

	entry := log.Entries()[0]
	assert.False(t, entry.Pending)
	assert.Equal(t, "42", entry.Answer)
	assert.Equal(t, []int{3, 0}, entry.Sources)
	assert.InEpsilon(t, 0.8, entry.Confidence, 1e-9)
}

func TestLog_ResolveFillsNewestPending(t *testing.T) {
	log := NewLog(nil)
	log.Append("first")
	log.Resolve(&domain.QueryResult{Answer: "one"})
	log.Append("second")

	log.Resolve(&domain.QueryResult{Answer: "two"})

	assert.Equal(t, "one", log.Entries()[0].Answer)
	assert.Equal(t, "two", log.Entries()[1].Answer)
}

func TestLog_SetHistory(t *testing.T) {
	log := NewLog(nil)

	log.SetHistory([]domain.Message{
		{Role: "user", Content: "q1"},
		{Role: "assistant", Content: "a1", Sources: []int{0}, Confidence: 0.7},
		{Role: "user", Content: "q2"},
		{Role: "assistant", Content: "a2", Confidence: 0.5},
	})

	require.Equal(t, 2, log.Count())
	assert.Equal(t, "q1", log.Entries()[0].Question)
	assert.Equal(t, "a1", log.Entries()[0].Answer)
	assert.Equal(t, "a2", log.Entries()[1].Answer)
	assert.False(t, log.Entries()[1].Pending)
}

func TestLog_SetHistory_DanglingQuestion(t *testing.T) {
	log := NewLog(nil)

	log.SetHistory([]domain.Message{
		{Role: "user", Content: "unanswered"},
	})

	require.Equal(t, 1, log.Count())
	assert.True(t, log.Entries()[0].Pending)
}

func TestLog_View_Empty(t *testing.T) {
	log := NewLog(nil)

	assert.Contains(t, log.View(), "No questions yet")
}

func TestLog_View_RendersExchange(t *testing.T) {
	log := NewLog(nil)
	log.SetDimensions(120, 20)
	log.Append("what is the total?")
	log.Resolve(&domain.QueryResult{Answer: "The total is 42.", Sources: []int{3, 0, 7}, Confidence: 0.8})

	view := log.View()

	assert.Contains(t, view, "what is the total?")
	assert.Contains(t, view, "The total is 42.")
	assert.Contains(t, view, "chunks 3, 0, 7")
	assert.Contains(t, view, "confidence 0.80")
}

func TestLog_View_NoSources(t *testing.T) {
	log := NewLog(nil)
	log.SetDimensions(120, 20)
	log.Append("q")
	log.Resolve(&domain.QueryResult{Answer: "a", Confidence: 0.5})

	view := log.View()

	assert.Contains(t, view, "confidence 0.50")
	assert.NotContains(t, view, "chunks")
}

func TestLog_Scroll(t *testing.T) {
	log := NewLog(nil)
	log.SetDimensions(80, 2)
	for i := 0; i < 5; i++ {
		log.Append("question")
		log.Resolve(&domain.QueryResult{Answer: "answer", Confidence: 0.5})
	}

	log.ScrollUp()
	log.ScrollUp()
	assert.Equal(t, 2, log.offset)

	log.ScrollDown()
	assert.Equal(t, 1, log.offset)

	// Appending snaps back to the bottom
	log.Append("new")
	assert.Equal(t, 0, log.offset)
}

func TestLog_ScrollDown_AtBottom(t *testing.T) {
	log := NewLog(nil)
	log.Append("q")

	log.ScrollDown()

	assert.Equal(t, 0, log.offset)
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 10)

	require.Len(t, lines, 3)
	assert.Equal(t, "one two", lines[0])
	assert.Equal(t, "three four", lines[1])
	assert.Equal(t, "five", lines[2])
}

func TestWrap_Empty(t *testing.T) {
	assert.Equal(t, []string{""}, wrap("", 40))
}
