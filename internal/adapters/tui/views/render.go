package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"labelboard/internal/adapters/tui/styles"
	"labelboard/internal/application"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderLabelValue renders a label: value pair
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s",
		styles.InputLabel.Render(label+":"),
		value,
	)
}

// RenderBadge renders a ticket label chip; empty labels show as unlabeled
func RenderBadge(label, color string) string {
	if label == "" {
		return styles.MutedText.Render(application.UnlabeledBucket)
	}
	return styles.Badge(label, color)
}

// RenderStatCards renders the total / labeled / unlabeled cards
func RenderStatCards(d application.Distribution) string {
	card := func(value int, label string) string {
		return styles.Card.Render(
			styles.CardValue.Render(fmt.Sprint(value)) + "\n" + styles.CardLabel.Render(label),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(d.Total, "tickets"),
		card(d.Labeled(), "labeled"),
		card(d.Unlabeled(), "unlabeled"),
	)
}

// RenderLegend renders one row per bucket with its swatch, count and share
func RenderLegend(entries []application.LegendEntry) string {
	width := 0
	for _, e := range entries {
		width = max(width, lipgloss.Width(e.Name))
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %-*s %4d  %5.1f%%\n", styles.Swatch(e.Color), width, e.Name, e.Count, e.Percent)
	}
	return strings.TrimRight(b.String(), "\n")
}

// LegendSummary is the plain text copied to the clipboard
func LegendSummary(entries []application.LegendEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\t%d\t%.1f%%\n", e.Name, e.Count, e.Percent)
	}
	return b.String()
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
