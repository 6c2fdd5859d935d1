package application

import (
	"io"

	"github.com/charmbracelet/log"

	"labelboard/internal/domain"
)

// Engine owns the local ticket cache, label registry and color table for one
// session and recomputes the label distribution after every change.
//
// Engine is not safe for concurrent use. Callers apply remote results one at a
// time; when two updates to the same ticket overlap, whichever result is
// applied last wins.
type Engine struct {
	tickets  *domain.TicketCache
	registry *domain.LabelRegistry
	logger   *log.Logger
	current  domain.Distribution
}

// NewEngine creates an engine with an empty cache and registry.
// A nil logger discards output.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	e := &Engine{
		tickets:  domain.NewTicketCache(),
		registry: domain.NewLabelRegistry(),
		logger:   logger,
	}
	e.recompute()
	return e
}

// OnTicketsLoaded replaces the ticket cache after a full fetch
func (e *Engine) OnTicketsLoaded(tickets []Ticket) Distribution {
	e.tickets.ReplaceAll(tickets)
	for _, t := range tickets {
		e.learn(t.Label)
	}
	return e.recompute()
}

// OnLabelsLoaded replaces the label order after a full fetch and merges
// the store's seed colors
func (e *Engine) OnLabelsLoaded(names []string, seed ColorTable) Distribution {
	e.registry.Reset()
	e.registry.Seed(seed)
	for _, name := range names {
		e.registry.Learn(name)
	}
	// Labels still carried by cached tickets stay known
	for _, t := range e.tickets.All() {
		e.learn(t.Label)
	}
	return e.recompute()
}

// OnTicketLabelChanged applies a confirmed label change. An empty label
// clears it. Unknown ids return ErrNotFound and change nothing.
func (e *Engine) OnTicketLabelChanged(id int, label string) (Distribution, error) {
	if err := e.tickets.SetLabel(id, label); err != nil {
		return e.current, err
	}
	e.learn(label)
	return e.recompute(), nil
}

// OnLabelCreated records a confirmed new label
func (e *Engine) OnLabelCreated(name string) Distribution {
	e.learn(name)
	return e.recompute()
}

// OnTicketCreated adds a confirmed new ticket
func (e *Engine) OnTicketCreated(t Ticket) Distribution {
	e.tickets.Add(t)
	e.learn(t.Label)
	return e.recompute()
}

// Aggregate returns the current distribution
func (e *Engine) Aggregate() Distribution {
	return e.current
}

// Layout returns the pie geometry for the current distribution
func (e *Engine) Layout() PieLayout {
	return domain.Layout(e.current)
}

// Legend returns the legend rows for the current distribution
func (e *Engine) Legend() []LegendEntry {
	return domain.Legend(e.current)
}

// LabelColor returns the stable display color for a label
func (e *Engine) LabelColor(name string) string {
	if name == "" || name == UnlabeledBucket {
		return domain.UnlabeledColor
	}
	return e.registry.ColorOf(name)
}

// Labels returns known labels in first-learned order
func (e *Engine) Labels() []string {
	return e.registry.Known()
}

// HasLabel reports whether the label is known
func (e *Engine) HasLabel(name string) bool {
	return e.registry.Contains(name)
}

// Colors returns a copy of the session color table
func (e *Engine) Colors() ColorTable {
	return e.registry.Colors()
}

// Tickets returns the cached tickets in store order
func (e *Engine) Tickets() []Ticket {
	return e.tickets.All()
}

// Ticket returns one cached ticket
func (e *Engine) Ticket(id int) (Ticket, error) {
	return e.tickets.Get(id)
}

func (e *Engine) learn(label string) {
	if e.registry.Learn(label) {
		e.logger.Debug("learned label", "label", label, "color", e.registry.ColorOf(label))
	}
}

func (e *Engine) recompute() Distribution {
	e.current = domain.Aggregate(e.tickets, e.registry)
	if stale := e.current.Stale(); len(stale) > 0 {
		e.logger.Debug("synthesized buckets for unknown labels", "labels", stale)
	}
	return e.current
}
