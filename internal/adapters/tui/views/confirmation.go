package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// Confirmation is a yes/no prompt embedded in a view
type Confirmation struct {
	Question string
	Active   bool
	Keys     ConfirmKeyMap
}

// Ask activates the prompt
func (c *Confirmation) Ask(question string) {
	c.Question = question
	c.Active = true
	if len(c.Keys.Confirm.Keys()) == 0 {
		c.Keys = DefaultConfirmKeys
	}
}

// HandleKeyMsg processes key messages while the prompt is active.
// Returns (handled, confirmed).
func (c *Confirmation) HandleKeyMsg(msg tea.KeyMsg) (bool, bool) {
	if !c.Active {
		return false, false
	}
	switch {
	case key.Matches(msg, c.Keys.Confirm):
		c.Active = false
		return true, true
	case key.Matches(msg, c.Keys.Cancel):
		c.Active = false
		return true, false
	}
	return true, false
}

// Render renders the prompt
func (c *Confirmation) Render() string {
	var b strings.Builder
	b.WriteString(c.Question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
