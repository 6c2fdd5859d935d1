package views

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"labelboard/internal/adapters/tui/styles"
	"labelboard/internal/application"
	"labelboard/internal/application/commands"
)

// Store operation names shown in status lines
const (
	OpRefresh      = "refresh"
	OpAssign       = "assign label"
	OpCreateLabel  = "create label"
	OpCreateTicket = "create ticket"
	OpImport       = "import"
	OpExport       = "export chart"
)

// DashboardKeyMap defines key bindings for the dashboard
type DashboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	PrevLabel key.Binding
	NextLabel key.Binding
	Apply     key.Binding
	Clear     key.Binding
	AddLabel  key.Binding
	Create    key.Binding
	Import    key.Binding
	Refresh   key.Binding
	Export    key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var DashboardKeys = DashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("]", "pgdown"),
		key.WithHelp("]", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("[", "pgup"),
		key.WithHelp("[", "prev page"),
	),
	PrevLabel: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev label"),
	),
	NextLabel: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next label"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply label"),
	),
	Clear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear label"),
	),
	AddLabel: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add label"),
	),
	Create: key.NewBinding(
		key.WithKeys("c", "n"),
		key.WithHelp("c", "new ticket"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Export: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save chart"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy stats"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// DashboardModel shows the distribution, the ticket list and the selected
// ticket's label selector
type DashboardModel struct {
	ViewState
	session *Session
	list    *TicketList

	// selector indexes labelOptions(); 0 means no label
	selector int

	spinner     spinner.Model
	loading     bool
	refreshedAt time.Time
	now         func() time.Time
}

// NewDashboardModel creates the dashboard
func NewDashboardModel(session *Session) *DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &DashboardModel{
		session: session,
		list:    NewTicketList(10),
		spinner: s,
		now:     time.Now,
	}
}

// Init starts the spinner
func (m *DashboardModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Reload re-reads tickets from the engine; call after every engine change
func (m *DashboardModel) Reload() {
	m.list.SetTickets(m.session.Engine.Tickets())
	m.syncSelector()
}

// Refreshed records a completed full reload
func (m *DashboardModel) Refreshed() {
	m.refreshedAt = m.now()
	m.Reload()
}

// SetLoading toggles the spinner
func (m *DashboardModel) SetLoading(loading bool) {
	m.loading = loading
}

// Loading reports whether a refresh is in flight
func (m *DashboardModel) Loading() bool {
	return m.loading
}

// SelectLabel points the selector at name, if known
func (m *DashboardModel) SelectLabel(name string) {
	if i := slices.Index(m.labelOptions(), name); i >= 0 {
		m.selector = i
	}
}

// SelectedLabel returns the label the selector points at ("" for none)
func (m *DashboardModel) SelectedLabel() string {
	opts := m.labelOptions()
	if m.selector < 0 || m.selector >= len(opts) {
		return ""
	}
	return opts[m.selector]
}

// Selected returns the ticket under the cursor
func (m *DashboardModel) Selected() (application.Ticket, bool) {
	return m.list.Selected()
}

func (m *DashboardModel) labelOptions() []string {
	return append([]string{""}, m.session.Engine.Labels()...)
}

// syncSelector points the selector at the selected ticket's label
func (m *DashboardModel) syncSelector() {
	m.selector = 0
	if t, ok := m.list.Selected(); ok {
		m.SelectLabel(t.Label)
	}
}

// Refresh reloads everything from the store
func (m *DashboardModel) Refresh() tea.Cmd {
	s := m.session
	rc := commands.NewRefreshCommand(s.Store, s.Engine, s.Snapshots, s.StoreURL)
	m.loading = true
	return tea.Batch(m.spinner.Tick, s.Remote(OpRefresh, rc.Call, func() (string, error) {
		res := rc.Apply()
		m.Refreshed()
		if res.SnapshotErr != nil {
			s.Logger.Warn("snapshot not saved", "err", res.SnapshotErr)
		}
		return res.Message, nil
	}))
}

// Update handles messages for the dashboard
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.list.SetPageSize(max(msg.Height-24, 5))
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *DashboardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, DashboardKeys.Quit):
		return tea.Quit

	case key.Matches(msg, DashboardKeys.Up):
		if m.list.CursorUp() {
			m.syncSelector()
		}
	case key.Matches(msg, DashboardKeys.Down):
		if m.list.CursorDown() {
			m.syncSelector()
		}
	case key.Matches(msg, DashboardKeys.NextPage):
		if m.list.NextPage() {
			m.syncSelector()
		}
	case key.Matches(msg, DashboardKeys.PrevPage):
		if m.list.PrevPage() {
			m.syncSelector()
		}

	case key.Matches(msg, DashboardKeys.PrevLabel):
		n := len(m.labelOptions())
		m.selector = (m.selector + n - 1) % n
	case key.Matches(msg, DashboardKeys.NextLabel):
		m.selector = (m.selector + 1) % len(m.labelOptions())

	case key.Matches(msg, DashboardKeys.Apply):
		return m.assign(m.SelectedLabel())
	case key.Matches(msg, DashboardKeys.Clear):
		return m.assign("")

	case key.Matches(msg, DashboardKeys.AddLabel):
		return switchTo(SwitchToLabelMsg{})
	case key.Matches(msg, DashboardKeys.Create):
		return switchTo(SwitchToCreateMsg{})
	case key.Matches(msg, DashboardKeys.Import):
		return switchTo(SwitchToImportMsg{})
	case key.Matches(msg, DashboardKeys.Help):
		return switchTo(SwitchToHelpMsg{})

	case key.Matches(msg, DashboardKeys.Refresh):
		if m.loading {
			return nil
		}
		return m.Refresh()
	case key.Matches(msg, DashboardKeys.Export):
		return m.export()
	case key.Matches(msg, DashboardKeys.Copy):
		if err := clipboard.WriteAll(LegendSummary(m.session.Engine.Legend())); err != nil {
			m.SetMessage(fmt.Sprintf("Clipboard unavailable: %v", err), true)
		} else {
			m.SetMessage("Copied label stats", false)
		}
	}
	return nil
}

func (m *DashboardModel) assign(label string) tea.Cmd {
	ticket, ok := m.list.Selected()
	if !ok {
		return nil
	}
	if ticket.Label == label {
		m.SetMessage(fmt.Sprintf("#%d already has that label", ticket.ID), false)
		return nil
	}

	ac := commands.NewAssignLabelCommand(m.session.Store, m.session.Engine, ticket.ID, label)
	if err := ac.Prepare(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return m.session.Remote(OpAssign, ac.Call, func() (string, error) {
		res, err := ac.Apply()
		if err != nil {
			return "", err
		}
		m.Reload()
		return res.Message, nil
	})
}

func (m *DashboardModel) export() tea.Cmd {
	if m.session.Charts == nil {
		m.SetMessage("Chart export is not configured", true)
		return nil
	}
	ec := commands.NewExportChartCommand(m.session.Engine, m.session.Charts, "")
	ec.Prepare()

	var res *commands.ExportChartResult
	return m.session.Remote(OpExport, func(ctx context.Context) error {
		var err error
		res, err = ec.Write()
		return err
	}, func() (string, error) {
		return res.Message, nil
	})
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	engine := m.session.Engine
	dist := engine.Aggregate()

	header := styles.Title.Render("Label Board")
	status := m.statusLine()
	if status != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", status)
	}

	chart := lipgloss.JoinHorizontal(lipgloss.Center,
		RenderPie(engine.Layout(), 5),
		"    ",
		RenderLegend(engine.Legend()),
	)

	v := NewViewBuilder().
		Line(header).
		Line(RenderStatCards(dist)).
		BlankLine().
		Line(chart).
		BlankLine().
		Line(styles.InputLabel.Render("Tickets")).
		Line(m.list.Render(max(m.Width-8, 40), engine.LabelColor)).
		BlankLine()

	if t, ok := m.list.Selected(); ok {
		v.Line(m.renderDetail(t)).BlankLine()
	}

	return v.
		Message(m.Message, m.MessageErr).
		Help(DashboardKeys.Apply, DashboardKeys.NextLabel, DashboardKeys.AddLabel,
			DashboardKeys.Create, DashboardKeys.Import, DashboardKeys.Refresh, DashboardKeys.Help, DashboardKeys.Quit).
		String()
}

func (m *DashboardModel) statusLine() string {
	if m.loading {
		return m.spinner.View() + styles.StatusText.Render(" loading…")
	}
	if m.refreshedAt.IsZero() {
		return ""
	}
	return styles.StatusText.Render("refreshed " + humanize.RelTime(m.refreshedAt, m.now(), "ago", "from now"))
}

func (m *DashboardModel) renderDetail(t application.Ticket) string {
	engine := m.session.Engine
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	b.WriteString("\n")
	b.WriteString(truncate(strings.ReplaceAll(t.Content, "\n", " "), max(m.Width-10, 40)))
	b.WriteString("\n\n")
	b.WriteString(RenderLabelValue("Label", RenderBadge(t.Label, engine.LabelColor(t.Label))))
	b.WriteString("   ")

	choice := m.SelectedLabel()
	chip := styles.MutedText.Render("none")
	if choice != "" {
		chip = styles.Badge(choice, engine.LabelColor(choice))
	}
	b.WriteString(RenderLabelValue("Set to", "◀ "+chip+" ▶"))
	return styles.Pane.Render(b.String())
}
