package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/adapters/tui/views"
	"labelboard/internal/application/commands"
)

// ViewState represents the current view
type ViewState int

const (
	ViewDashboard ViewState = iota
	ViewCreate
	ViewLabel
	ViewImport
	ViewHelp
)

// DefaultPollInterval is used when Options leaves PollInterval unset
const DefaultPollInterval = 5 * time.Second

type (
	probeDoneMsg struct {
		res *commands.ProbeResult
		err error
	}
	pollTickMsg struct{}
	nextIDMsg   struct {
		id  int
		err error
	}
)

// Options tunes the application
type Options struct {
	PollInterval time.Duration
}

// App is the main TUI application model
type App struct {
	session *views.Session
	opts    Options

	state     ViewState
	dashboard *views.DashboardModel
	create    *views.CreateTicketModel
	label     *views.LabelModel
	imports   *views.ImportModel
	help      *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(session *views.Session, opts Options) *App {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	dashboard := views.NewDashboardModel(session)
	return &App{
		session:   session,
		opts:      opts,
		state:     ViewDashboard,
		dashboard: dashboard,
		create:    views.NewCreateTicketModel(session),
		label:     views.NewLabelModel(session, dashboard.SelectLabel),
		imports:   views.NewImportModel(session),
		help:      views.NewHelpModel(session.StoreURL),
	}
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Init probes the store, then loads everything and starts polling the next id
func (a *App) Init() tea.Cmd {
	a.dashboard.SetLoading(true)
	return tea.Batch(a.dashboard.Init(), a.probe())
}

func (a *App) probe() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		ctx, cancel := s.Context()
		defer cancel()
		res, err := commands.NewProbeCommand(s.Store).Execute(ctx)
		return probeDoneMsg{res: res, err: err}
	}
}

func (a *App) pollNextID() tea.Cmd {
	return tea.Tick(a.opts.PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (a *App) fetchNextID() tea.Cmd {
	s := a.session
	return func() tea.Msg {
		ctx, cancel := s.Context()
		defer cancel()
		id, err := commands.NewNextIDCommand(s.Store).Execute(ctx)
		return nextIDMsg{id: id, err: err}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.dashboard.Update(msg)
		a.create.SetSize(msg.Width, msg.Height)
		a.label.SetSize(msg.Width, msg.Height)
		a.imports.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case probeDoneMsg:
		return a, a.handleProbe(msg)

	case pollTickMsg:
		return a, a.fetchNextID()

	case nextIDMsg:
		if msg.err != nil {
			a.session.Logger.Debug("next id poll failed", "err", msg.err)
		} else {
			a.create.SetNextID(msg.id)
		}
		return a, a.pollNextID()

	case views.RemoteDoneMsg:
		return a, a.handleRemote(msg)

	case views.StatusMsg:
		a.dashboard.SetMessage(msg.Text, msg.IsErr)
		return a, nil

	// View switching messages
	case views.SwitchToDashboardMsg:
		a.state = ViewDashboard
		return a, nil

	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.Reset()
		return a, tea.Batch(a.create.Init(), a.fetchNextID())

	case views.SwitchToLabelMsg:
		a.state = ViewLabel
		a.label.Reset()
		return a, a.label.Init()

	case views.SwitchToImportMsg:
		a.state = ViewImport
		a.imports.Reset()
		return a, a.imports.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewDashboard:
		_, cmd = a.dashboard.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewLabel:
		_, cmd = a.label.Update(msg)
	case ViewImport:
		_, cmd = a.imports.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) handleProbe(msg probeDoneMsg) tea.Cmd {
	switch {
	case msg.err != nil:
		a.dashboard.SetLoading(false)
		a.dashboard.SetMessage(msg.err.Error(), true)
		return a.pollNextID()
	case msg.res.Degraded:
		a.dashboard.SetLoading(false)
		a.session.Logger.Warn("store unreachable", "url", a.session.StoreURL, "err", msg.res.Err)
		a.dashboard.SetMessage(fmt.Sprintf("Cannot reach store at %s", a.session.StoreURL), true)
		return a.pollNextID()
	}
	a.create.SetNextID(msg.res.NextID)
	return tea.Batch(a.dashboard.Refresh(), a.pollNextID())
}

// handleRemote applies a finished store call on the update loop
func (a *App) handleRemote(msg views.RemoteDoneMsg) tea.Cmd {
	if msg.Op == views.OpRefresh || msg.Op == views.OpImport {
		a.dashboard.SetLoading(false)
	}

	if msg.Err != nil {
		a.session.Logger.Warn("store call failed", "op", msg.Op, "err", msg.Err)
		if a.failForm(msg.Op, msg.Err) {
			return nil
		}
		a.dashboard.SetMessage(fmt.Sprintf("%s failed: %v", msg.Op, msg.Err), true)
		return nil
	}

	text, err := msg.Apply()
	if err != nil {
		a.session.Logger.Warn("apply failed", "op", msg.Op, "err", err)
		if a.failForm(msg.Op, err) {
			return nil
		}
		a.dashboard.SetMessage(err.Error(), true)
		return nil
	}
	a.session.Logger.Info(text, "op", msg.Op)

	var cmd tea.Cmd
	switch msg.Op {
	case views.OpImport:
		a.dashboard.Refreshed()
		cmd = a.fetchNextID()
	case views.OpCreateTicket:
		a.dashboard.Reload()
		cmd = a.fetchNextID()
	case views.OpCreateLabel:
		// Tickets are unchanged; keep the selector on the new label
	default:
		a.dashboard.Reload()
	}
	if msg.Op == views.OpCreateLabel || msg.Op == views.OpCreateTicket || msg.Op == views.OpImport {
		a.state = ViewDashboard
	}
	a.dashboard.SetMessage(text, false)
	return cmd
}

// failForm shows err on the form that issued op, if it is still open
func (a *App) failForm(op string, err error) bool {
	switch {
	case op == views.OpCreateTicket && a.state == ViewCreate:
		a.create.Failed(err)
	case op == views.OpCreateLabel && a.state == ViewLabel:
		a.label.Failed(err)
	case op == views.OpImport && a.state == ViewImport:
		a.imports.Failed(err)
	default:
		return false
	}
	return true
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewLabel:
		return a.label.View()
	case ViewImport:
		return a.imports.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.dashboard.View()
	}
}
