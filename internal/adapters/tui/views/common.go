package views

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Session is what every view shares: the engine, the store and settings.
// The engine is only touched from Update, never from a tea.Cmd.
type Session struct {
	Engine    *application.Engine
	Store     ports.TicketStore
	Snapshots ports.SnapshotStore // may be nil
	Editor    ports.EditorOpener  // may be nil
	Charts    ports.ChartRenderer // may be nil
	StoreURL  string
	Timeout   time.Duration
	Logger    *log.Logger
}

// Context bounds one store call by the configured timeout
func (s *Session) Context() (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.Timeout)
}

// RemoteDoneMsg carries a finished store call back to the update loop.
// Apply runs there and returns the status line to show.
type RemoteDoneMsg struct {
	Op    string
	Err   error
	Apply func() (string, error)
}

// Remote runs call on a goroutine and hands apply back through
// RemoteDoneMsg. call must not touch the engine.
func (s *Session) Remote(op string, call func(ctx context.Context) error, apply func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := s.Context()
		defer cancel()
		return RemoteDoneMsg{Op: op, Err: call(ctx), Apply: apply}
	}
}

// Navigation messages
type (
	SwitchToDashboardMsg struct{}
	SwitchToCreateMsg    struct{}
	SwitchToLabelMsg     struct{}
	SwitchToImportMsg    struct{}
	SwitchToHelpMsg      struct{}
)

// StatusMsg asks the dashboard to show a status line
type StatusMsg struct {
	Text  string
	IsErr bool
}

func switchTo(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
