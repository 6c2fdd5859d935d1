// Package mcp exposes the label engine to agents as MCP tools
package mcp

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"labelboard/internal/application"
	"labelboard/internal/application/commands"
	"labelboard/internal/ports"
)

// Board is the state shared by every tool handler. The engine is not safe
// for concurrent use, so each handler holds mu for its whole run.
type Board struct {
	mu        sync.Mutex
	engine    *application.Engine
	store     ports.TicketStore
	snapshots ports.SnapshotStore
	charts    map[string]ports.ChartRenderer
	storeURL  string
	logger    *log.Logger
	loaded    bool
}

// BoardOptions configures a Board
type BoardOptions struct {
	Store     ports.TicketStore
	Snapshots ports.SnapshotStore            // may be nil
	Charts    map[string]ports.ChartRenderer // keyed by format name
	StoreURL  string
	Logger    *log.Logger
}

// NewBoard creates a board with an empty engine. The first tool call loads it.
func NewBoard(opts BoardOptions) *Board {
	return &Board{
		engine:    application.NewEngine(opts.Logger),
		store:     opts.Store,
		snapshots: opts.Snapshots,
		charts:    opts.Charts,
		storeURL:  opts.StoreURL,
		logger:    opts.Logger,
	}
}

// ensureLoaded refreshes once. Callers hold mu.
func (b *Board) ensureLoaded(ctx context.Context) error {
	if b.loaded {
		return nil
	}
	if _, err := b.refresh(ctx); err != nil {
		return err
	}
	return nil
}

// refresh reloads from the store. Callers hold mu.
func (b *Board) refresh(ctx context.Context) (*commands.RefreshResult, error) {
	res, err := commands.NewRefreshCommand(b.store, b.engine, b.snapshots, b.storeURL).Execute(ctx)
	if err != nil {
		return nil, err
	}
	if res.SnapshotErr != nil && b.logger != nil {
		b.logger.Warn("snapshot not saved", "err", res.SnapshotErr)
	}
	b.loaded = true
	return res, nil
}
