package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/application/commands"
)

// LabelModel is the add-label input
type LabelModel struct {
	ViewState
	session    *Session
	form       *InputForm
	submitting bool

	// onLabel runs on the update loop once the label is known
	onLabel func(name string)
}

// NewLabelModel creates the add-label view
func NewLabelModel(session *Session, onLabel func(name string)) *LabelModel {
	return &LabelModel{
		session: session,
		form:    NewInputForm(NewInputField("Label name", "e.g. billing", 60)),
		onLabel: onLabel,
	}
}

// Init initializes the label view
func (m *LabelModel) Init() tea.Cmd {
	return m.form.Init()
}

// Reset clears the input
func (m *LabelModel) Reset() {
	m.form.Reset()
	m.submitting = false
	m.ClearMessage()
}

// Failed shows a store error and re-enables the input
func (m *LabelModel) Failed(err error) {
	m.submitting = false
	m.SetMessage(err.Error(), true)
}

// Update handles messages for the label view
func (m *LabelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, switchTo(SwitchToDashboardMsg{})
		case "enter":
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *LabelModel) submit() tea.Cmd {
	lc := commands.NewCreateLabelCommand(m.session.Store, m.session.Engine, m.form.Value(0))
	if err := lc.Prepare(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}

	apply := func() (string, error) {
		res := lc.Apply()
		if m.onLabel != nil {
			m.onLabel(res.Name)
		}
		return res.Message, nil
	}
	if lc.Existing() {
		return func() tea.Msg {
			return RemoteDoneMsg{Op: OpCreateLabel, Apply: apply}
		}
	}

	m.submitting = true
	return m.session.Remote(OpCreateLabel, lc.Call, apply)
}

// View renders the label view
func (m *LabelModel) View() string {
	return NewViewBuilder().
		Title("Add Label").
		Muted("Adding a label that already exists just selects it.").
		BlankLine().
		Raw(m.form.Render()).
		Message(m.Message, m.MessageErr).
		Line(m.form.RenderHelp("add")).
		String()
}
