// Package chatlog provides the conversation display component for the
// chat TUI.
package chatlog

import (
	"fmt"
	"strings"

	"github.com/doclens/doclens/internal/adapters/driving/tui/styles"
	"github.com/doclens/doclens/internal/core/domain"
)

// Entry is one rendered exchange in the conversation.
type Entry struct {
	// Question is the user's question.
	Question string

	// Answer is the assistant's answer. Empty while pending.
	Answer string

	// Sources are the chunk indices backing the answer.
	Sources []int

	// Confidence is the answer confidence in [0,1].
	Confidence float64

	// Pending is true while the answer is being generated.
	Pending bool
}

// Log displays the question/answer history with scrollback.
type Log struct {
	entries []Entry
	styles  *styles.Styles
	width   int
	height  int
	offset  int // first visible line, counted from the bottom
}

// NewLog creates a new conversation log component.
func NewLog(s *styles.Styles) *Log {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Log{
		styles: s,
		width:  80,
		height: 16,
	}
}

// Append adds a pending exchange for a just-submitted question.
func (l *Log) Append(question string) {
	l.entries = append(l.entries, Entry{Question: question, Pending: true})
	l.offset = 0
}

// Resolve fills in the answer for the newest pending entry.
func (l *Log) Resolve(result *domain.QueryResult) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Pending {
			l.entries[i].Answer = result.Answer
			l.entries[i].Sources = result.Sources
			l.entries[i].Confidence = result.Confidence
			l.entries[i].Pending = false
			l.offset = 0
			return
		}
	}
}

// SetHistory seeds the log from a stored transcript. Messages arrive
// oldest first, alternating user and assistant roles.
func (l *Log) SetHistory(messages []domain.Message) {
	l.entries = l.entries[:0]
	for _, msg := range messages {
		switch msg.Role {
		case "user":
			l.entries = append(l.entries, Entry{Question: msg.Content, Pending: true})
		case "assistant":
			if n := len(l.entries); n > 0 && l.entries[n-1].Pending {
				l.entries[n-1].Answer = msg.Content
				l.entries[n-1].Sources = msg.Sources
				l.entries[n-1].Confidence = msg.Confidence
				l.entries[n-1].Pending = false
			}
		}
	}
	l.offset = 0
}

// View renders the visible window of the conversation.
func (l *Log) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("No questions yet. Type one below and press enter.")
	}

	lines := l.renderLines()

	visible := l.height
	if visible < 1 {
		visible = 1
	}
	if len(lines) <= visible {
		return strings.Join(lines, "\n")
	}

	end := len(lines) - l.offset
	if end > len(lines) {
		end = len(lines)
	}
	start := end - visible
	if start < 0 {
		start = 0
		end = visible
	}
	return strings.Join(lines[start:end], "\n")
}

// renderLines formats every exchange into display lines.
func (l *Log) renderLines() []string {
	lines := make([]string, 0, len(l.entries)*4)
	for i := range l.entries {
		e := &l.entries[i]
		lines = append(lines, l.styles.Question.Render("You: ")+l.styles.Normal.Render(e.Question))

		if e.Pending {
			lines = append(lines, l.styles.Muted.Render("     ..."))
		} else {
			for _, line := range wrap(e.Answer, l.width-5) {
				lines = append(lines, l.styles.Answer.Render("     "+line))
			}
			lines = append(lines, l.styles.Confidence.Render("     "+l.annotation(e)))
		}
		lines = append(lines, "")
	}
	return lines
}

// annotation formats the sources and confidence footer for an entry.
func (l *Log) annotation(e *Entry) string {
	if len(e.Sources) == 0 {
		return fmt.Sprintf("confidence %.2f", e.Confidence)
	}

	parts := make([]string, len(e.Sources))
	for i, src := range e.Sources {
		parts[i] = fmt.Sprintf("%d", src)
	}
	return fmt.Sprintf("chunks %s, confidence %.2f", strings.Join(parts, ", "), e.Confidence)
}

// ScrollUp moves the window towards older entries.
func (l *Log) ScrollUp() {
	maxOffset := len(l.renderLines()) - l.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.offset < maxOffset {
		l.offset++
	}
}

// ScrollDown moves the window towards the newest entry.
func (l *Log) ScrollDown() {
	if l.offset > 0 {
		l.offset--
	}
}

// Entries returns the current conversation entries.
func (l *Log) Entries() []Entry {
	return l.entries
}

// Count returns the number of exchanges.
func (l *Log) Count() int {
	return len(l.entries)
}

// IsEmpty returns whether the log has no exchanges.
func (l *Log) IsEmpty() bool {
	return len(l.entries) == 0
}

// SetDimensions sets the component dimensions.
func (l *Log) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *Log) Width() int {
	return l.width
}

// Height returns the current height.
func (l *Log) Height() int {
	return l.height
}

// wrap splits text into lines no longer than width, breaking on spaces.
func wrap(text string, width int) []string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(lines, current)
}
