package commands

import (
	"context"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// ProbeResult contains the outcome of the startup connectivity check
type ProbeResult struct {
	NextID   int
	Degraded bool  // Store unreachable; run on empty local state
	Err      error // Cause when Degraded
}

// ProbeCommand checks that the store answers before the first load
type ProbeCommand struct {
	store ports.TicketStore
}

// NewProbeCommand creates a new ProbeCommand
func NewProbeCommand(store ports.TicketStore) *ProbeCommand {
	return &ProbeCommand{store: store}
}

// Execute runs the probe. Unavailable stores and unreadable responses are
// reported as Degraded rather than as an error.
func (c *ProbeCommand) Execute(ctx context.Context) (*ProbeResult, error) {
	id, err := c.store.NextID(ctx)
	if err != nil {
		if application.IsDegradable(err) {
			return &ProbeResult{Degraded: true, Err: err}, nil
		}
		return nil, err
	}
	return &ProbeResult{NextID: id}, nil
}

// NextIDCommand asks the store for the id the next ticket will get
type NextIDCommand struct {
	store ports.TicketStore
}

// NewNextIDCommand creates a new NextIDCommand
func NewNextIDCommand(store ports.TicketStore) *NextIDCommand {
	return &NextIDCommand{store: store}
}

// Execute runs the next id command
func (c *NextIDCommand) Execute(ctx context.Context) (int, error) {
	return c.store.NextID(ctx)
}
