package views

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/application/commands"
)

// ImportModel asks for a CSV path and confirms before uploading it
type ImportModel struct {
	ViewState
	session    *Session
	form       *InputForm
	confirm    Confirmation
	submitting bool
}

// NewImportModel creates the import view
func NewImportModel(session *Session) *ImportModel {
	return &ImportModel{
		session: session,
		form:    NewInputForm(NewInputField("CSV file", "~/tickets.csv", 0)),
	}
}

// Init initializes the import view
func (m *ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the input
func (m *ImportModel) Reset() {
	m.form.Reset()
	m.confirm.Active = false
	m.submitting = false
	m.ClearMessage()
}

// Failed shows a store error and re-enables the input
func (m *ImportModel) Failed(err error) {
	m.submitting = false
	m.SetMessage(err.Error(), true)
}

// Update handles messages for the import view
func (m *ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		if handled, confirmed := m.confirm.HandleKeyMsg(msg); handled {
			if confirmed {
				return m, m.submit()
			}
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, switchTo(SwitchToDashboardMsg{})
		case "enter":
			m.ask()
			return m, nil
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *ImportModel) path() string {
	path := m.form.Value(0)
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return path
}

func (m *ImportModel) ask() {
	ic := commands.NewImportCommand(m.session.Store, nil, m.path())
	if err := ic.Validate(); err != nil {
		m.SetMessage(err.Error(), true)
		return
	}
	m.ClearMessage()
	m.confirm.Ask(fmt.Sprintf("Upload %s to the store?", ic.FilePath))
}

func (m *ImportModel) submit() tea.Cmd {
	s := m.session
	rc := commands.NewRefreshCommand(s.Store, s.Engine, s.Snapshots, s.StoreURL)
	ic := commands.NewImportCommand(s.Store, rc, m.path())

	m.submitting = true
	m.SetMessage("Importing…", false)
	return s.Remote(OpImport, ic.Call, func() (string, error) {
		return ic.Apply().Message, nil
	})
}

// View renders the import view
func (m *ImportModel) View() string {
	v := NewViewBuilder().
		Title("Import Tickets").
		Muted("Upload a CSV file; the store creates one ticket per row.").
		BlankLine().
		Raw(m.form.Render())

	if m.confirm.Active {
		return v.Line(m.confirm.Render()).String()
	}
	return v.
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp("import")).
		String()
}
