// Package messages defines Bubbletea message types for the chat TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/doclens/doclens/internal/core/domain"
)

// DocumentLoaded carries the document the chat session is about.
type DocumentLoaded struct {
	Document *domain.Document
	Err      error
}

// TranscriptLoaded carries the prior question/answer history for the
// document so the session resumes where it left off.
type TranscriptLoaded struct {
	Messages []domain.Message
	Err      error
}

// QuestionSubmitted is sent when the user submits a question.
type QuestionSubmitted struct {
	Question string
}

// AnswerReceived carries the answer back to the model. Operational
// failures arrive as a result with confidence 0, not as Err; Err is
// reserved for invalid input and unknown document ids.
type AnswerReceived struct {
	Question string
	Result   *domain.QueryResult
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
