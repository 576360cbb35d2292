package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doclens/doclens/internal/adapters/driving/tui/components/chatlog"
	"github.com/doclens/doclens/internal/adapters/driving/tui/components/input"
	"github.com/doclens/doclens/internal/adapters/driving/tui/components/status"
	"github.com/doclens/doclens/internal/adapters/driving/tui/keymap"
	"github.com/doclens/doclens/internal/adapters/driving/tui/messages"
	"github.com/doclens/doclens/internal/adapters/driving/tui/styles"
	"github.com/doclens/doclens/internal/core/domain"
)

// App is the chat TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// documentID identifies the document this session is about.
	documentID string

	// document is the loaded document, nil until DocumentLoaded arrives.
	document *domain.Document

	styles *styles.Styles
	keymap *keymap.KeyMap

	log       *chatlog.Log
	input     *input.QuestionInput
	statusbar *status.Bar

	// thinking is true while an answer is being generated.
	thinking bool

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a chat session for the given document id.
func NewApp(ports *Ports, documentID string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if documentID == "" {
		return nil, fmt.Errorf("creating app: %w", domain.ErrInvalidInput)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:      ports,
		ctx:        context.Background(),
		documentID: documentID,
		styles:     s,
		keymap:     km,
		log:        chatlog.NewLog(s),
		input:      input.NewQuestionInput(s),
		statusbar:  status.NewBar(s, km),
		width:      80,
		height:     24,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init loads the document and its transcript.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.input.Init(), a.loadDocument(), a.loadTranscript())
}

// Update handles messages following the Elm architecture.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.DocumentLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusbar.SetState(status.StateError)
			a.statusbar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.document = msg.Document
		return a, nil

	case messages.TranscriptLoaded:
		// A missing transcript is a fresh session, not an error worth
		// surfacing.
		if msg.Err == nil && len(msg.Messages) > 0 {
			a.log.SetHistory(msg.Messages)
		}
		return a, nil

	case messages.AnswerReceived:
		return a.handleAnswer(msg)

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusbar.SetState(status.StateError)
		a.statusbar.SetMessage(msg.Err.Error())
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleKeyMsg processes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(keyStr, a.keymap.ScrollUp):
		a.log.ScrollUp()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.ScrollDown):
		a.log.ScrollDown()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Clear):
		a.input.Reset()
		return a, nil

	case keymap.Matches(keyStr, a.keymap.Submit):
		return a.submitQuestion()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// submitQuestion sends the typed question to the query service.
func (a *App) submitQuestion() (tea.Model, tea.Cmd) {
	if a.thinking {
		return a, nil
	}

	question := a.input.Value()
	if question == "" {
		return a, nil
	}

	a.thinking = true
	a.err = nil
	a.log.Append(question)
	a.input.Reset()
	a.statusbar.SetState(status.StateThinking)

	return a, a.ask(question)
}

// handleAnswer records a completed answer.
func (a *App) handleAnswer(msg messages.AnswerReceived) (tea.Model, tea.Cmd) {
	a.thinking = false

	if msg.Err != nil {
		a.err = msg.Err
		a.statusbar.SetState(status.StateError)
		a.statusbar.SetMessage(msg.Err.Error())
		a.log.Resolve(&domain.QueryResult{Answer: msg.Err.Error()})
		return a, nil
	}

	a.log.Resolve(msg.Result)
	a.statusbar.SetState(status.StateReady)
	a.statusbar.SetConfidence(msg.Result.Confidence)
	return a, nil
}

// ask runs the query off the UI goroutine.
func (a *App) ask(question string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.ports.Query.Answer(a.ctx, question, a.documentID)
		return messages.AnswerReceived{Question: question, Result: result, Err: err}
	}
}

// loadDocument fetches the document metadata.
func (a *App) loadDocument() tea.Cmd {
	return func() tea.Msg {
		doc, err := a.ports.Document.Get(a.ctx, a.documentID)
		return messages.DocumentLoaded{Document: doc, Err: err}
	}
}

// loadTranscript fetches the prior question history.
func (a *App) loadTranscript() tea.Cmd {
	return func() tea.Msg {
		msgs, err := a.ports.Document.Transcript(a.ctx, a.documentID)
		return messages.TranscriptLoaded{Messages: msgs, Err: err}
	}
}

// View renders the chat session.
func (a *App) View() string {
	header := a.styles.Title.Render("Doclens")
	if a.document != nil {
		header += a.styles.Muted.Render("  " + a.document.Title)
	}

	sections := []string{header, ""}

	if a.err != nil {
		sections = append(sections, a.styles.Error.Render("Error: "+a.err.Error()), "")
	}

	sections = append(sections,
		a.log.View(),
		"",
		a.input.View(),
		"",
		a.statusbar.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// setDimensions propagates terminal dimensions to the components.
func (a *App) setDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	a.input.SetWidth(width)
	a.log.SetDimensions(width, height-9) // header, input, status and spacing
	a.statusbar.SetWidth(width)
}

// Document returns the loaded document, or nil before it loads.
func (a *App) Document() *domain.Document {
	return a.document
}

// Thinking reports whether an answer is being generated.
func (a *App) Thinking() bool {
	return a.thinking
}

// Err returns the last error, if any.
func (a *App) Err() error {
	return a.err
}

// Run starts the chat TUI and blocks until the user quits.
func Run(ports *Ports, documentID string) error {
	app, err := NewApp(ports, documentID)
	if err != nil {
		return err
	}

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running chat: %w", err)
	}
	return nil
}
