package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/adapters/editor"
	"labelboard/internal/application/commands"
)

const (
	createFieldTitle = iota
	createFieldContent
	createFieldLabel
)

// CreateKeyMap defines key bindings for the create view
type CreateKeyMap struct {
	Submit key.Binding
	Editor key.Binding
}

var CreateKeys = CreateKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "create"),
	),
	Editor: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "edit content"),
	),
}

// editorFinishedMsg is sent when the content draft editor exits
type editorFinishedMsg struct {
	path string
	err  error
}

// CreateTicketModel is the manual ticket creation form
type CreateTicketModel struct {
	ViewState
	session    *Session
	form       *InputForm
	nextID     int
	submitting bool
}

// NewCreateTicketModel creates the ticket form
func NewCreateTicketModel(session *Session) *CreateTicketModel {
	return &CreateTicketModel{
		session: session,
		form: NewInputForm(
			NewInputField("Title", "Short summary", 200),
			NewInputField("Content", "What happened (ctrl+e for editor)", 0),
			NewInputField("Label", "optional, new or existing", 60),
		),
	}
}

// Init initializes the create view
func (m *CreateTicketModel) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the form for a new ticket
func (m *CreateTicketModel) Reset() {
	m.form.Reset()
	m.submitting = false
	m.ClearMessage()
}

// SetNextID records the id the store will assign next
func (m *CreateTicketModel) SetNextID(id int) {
	m.nextID = id
}

// NextID returns the last known next id
func (m *CreateTicketModel) NextID() int {
	return m.nextID
}

// Failed shows a store error and re-enables the form
func (m *CreateTicketModel) Failed(err error) {
	m.submitting = false
	m.SetMessage(err.Error(), true)
}

// Update handles messages for the create view
func (m *CreateTicketModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.SetMessage(fmt.Sprintf("Editor failed: %v", msg.err), true)
			return m, nil
		}
		content, err := editor.ReadDraft(msg.path)
		if err != nil {
			m.SetMessage(fmt.Sprintf("Could not read draft: %v", err), true)
			return m, nil
		}
		m.form.SetValue(createFieldContent, content)
		m.form.SetFocus(createFieldLabel)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, switchTo(SwitchToDashboardMsg{})
		case key.Matches(msg, CreateKeys.Editor):
			return m, m.openEditor()
		case key.Matches(msg, CreateKeys.Submit):
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *CreateTicketModel) openEditor() tea.Cmd {
	if m.session.Editor == nil {
		m.SetMessage("No editor found; set $EDITOR", true)
		return nil
	}
	path, err := editor.WriteDraft(m.form.Value(createFieldContent))
	if err != nil {
		m.SetMessage(fmt.Sprintf("Could not write draft: %v", err), true)
		return nil
	}
	cmd, err := m.session.Editor.Command(path)
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

func (m *CreateTicketModel) submit() tea.Cmd {
	s := m.session
	cc := commands.NewCreateTicketCommand(s.Store, s.Engine,
		m.form.Value(createFieldTitle),
		m.form.Value(createFieldContent),
		m.form.Value(createFieldLabel),
	)
	if err := cc.Validate(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}

	m.submitting = true
	m.SetMessage("Creating ticket…", false)
	return s.Remote(OpCreateTicket, cc.Call, func() (string, error) {
		return cc.Apply().Message, nil
	})
}

// View renders the create view
func (m *CreateTicketModel) View() string {
	next := "unknown"
	if m.nextID > 0 {
		next = fmt.Sprintf("#%d", m.nextID)
	}

	return NewViewBuilder().
		Title("New Ticket").
		Subtitle("Next ticket id: "+next).
		Raw(m.form.Render()).
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp("create") + "  " + RenderKeyHelp(CreateKeys.Editor)).
		String()
}
