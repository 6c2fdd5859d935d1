package commands

import (
	"context"
	"fmt"
	"time"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// RefreshResult contains the result of a full reload
type RefreshResult struct {
	Distribution application.Distribution
	Tickets      int
	Labels       int
	SnapshotErr  error // Set when the reload succeeded but the local snapshot could not be saved
	Message      string
}

// RefreshCommand reloads labels and tickets from the store and rebuilds the
// engine state.
//
// Call only talks to the store and Apply only touches the engine, so the TUI
// can run Call on a goroutine and Apply on its update loop. Execute does both.
type RefreshCommand struct {
	store     ports.TicketStore
	engine    *application.Engine
	snapshots ports.SnapshotStore
	StoreURL  string

	labels      []string
	colors      application.ColorTable
	tickets     []application.Ticket
	snapshotErr error
}

// NewRefreshCommand creates a new RefreshCommand. snapshots may be nil.
func NewRefreshCommand(store ports.TicketStore, engine *application.Engine, snapshots ports.SnapshotStore, storeURL string) *RefreshCommand {
	return &RefreshCommand{
		store:     store,
		engine:    engine,
		snapshots: snapshots,
		StoreURL:  storeURL,
	}
}

// Call fetches labels then tickets. Nothing is kept unless both succeed.
func (c *RefreshCommand) Call(ctx context.Context) error {
	labels, colors, err := c.store.FetchLabels(ctx)
	if err != nil {
		return err
	}
	tickets, err := c.store.FetchTickets(ctx)
	if err != nil {
		return err
	}
	c.labels, c.colors, c.tickets = labels, colors, tickets

	c.snapshotErr = nil
	if c.snapshots != nil {
		snap := &ports.Snapshot{
			StoreURL: c.StoreURL,
			Tickets:  tickets,
			Labels:   labels,
			Colors:   colors,
			TakenAt:  time.Now(),
		}
		if err := c.snapshots.Save(ctx, snap); err != nil {
			c.snapshotErr = fmt.Errorf("failed to save snapshot: %w", err)
		}
	}
	return nil
}

// Apply replaces the engine state with the fetched data
func (c *RefreshCommand) Apply() *RefreshResult {
	// Labels first so seed colors land before any are generated
	c.engine.OnLabelsLoaded(c.labels, c.colors)
	dist := c.engine.OnTicketsLoaded(c.tickets)
	labels := len(c.engine.Labels())

	return &RefreshResult{
		Distribution: dist,
		Tickets:      len(c.tickets),
		Labels:       labels,
		SnapshotErr:  c.snapshotErr,
		Message:      fmt.Sprintf("Loaded %d tickets, %d labels", len(c.tickets), labels),
	}
}

// Execute runs the refresh command
func (c *RefreshCommand) Execute(ctx context.Context) (*RefreshResult, error) {
	if err := c.Call(ctx); err != nil {
		return nil, err
	}
	return c.Apply(), nil
}

// LoadSnapshotResult contains the snapshot applied to the engine
type LoadSnapshotResult struct {
	Snapshot     *ports.Snapshot
	Distribution application.Distribution
}

// LoadSnapshotCommand fills the engine from the last saved snapshot
type LoadSnapshotCommand struct {
	snapshots ports.SnapshotStore
	engine    *application.Engine
}

// NewLoadSnapshotCommand creates a new LoadSnapshotCommand
func NewLoadSnapshotCommand(snapshots ports.SnapshotStore, engine *application.Engine) *LoadSnapshotCommand {
	return &LoadSnapshotCommand{snapshots: snapshots, engine: engine}
}

// Execute runs the load snapshot command
func (c *LoadSnapshotCommand) Execute(ctx context.Context) (*LoadSnapshotResult, error) {
	snap, err := c.snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("no snapshot saved yet: %w", application.ErrNotFound)
	}

	c.engine.OnLabelsLoaded(snap.Labels, snap.Colors)
	dist := c.engine.OnTicketsLoaded(snap.Tickets)

	return &LoadSnapshotResult{Snapshot: snap, Distribution: dist}, nil
}
