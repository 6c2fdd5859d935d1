package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
	storeURL string
}

// NewHelpModel creates a new help view model
func NewHelpModel(storeURL string) *HelpModel {
	return &HelpModel{storeURL: storeURL}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, switchTo(SwitchToDashboardMsg{})
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Label Board Help"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Store: " + m.storeURL))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Tickets"))
	b.WriteString("\n")
	b.WriteString(helpLine("j / k / ↑ / ↓", "Move up/down"))
	b.WriteString(helpLine("[ / ]", "Previous/next page"))
	b.WriteString(helpLine("h / l / ← / →", "Pick a label for the selected ticket"))
	b.WriteString(helpLine("Enter", "Apply the picked label"))
	b.WriteString(helpLine("x", "Clear the ticket's label"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Actions"))
	b.WriteString("\n")
	b.WriteString(helpLine("c / n", "Create a ticket"))
	b.WriteString(helpLine("a", "Add a label"))
	b.WriteString(helpLine("i", "Import tickets from CSV"))
	b.WriteString(helpLine("r", "Reload from the store"))
	b.WriteString(helpLine("s", "Save the pie chart to a file"))
	b.WriteString(helpLine("y", "Copy label stats to the clipboard"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine("?", "Toggle help"))
	b.WriteString(helpLine("q / Ctrl+C", "Quit"))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("CSV import"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  The store reads the file; title and content are required per row"))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
