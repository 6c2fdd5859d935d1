package ports

import (
	"context"
	"time"

	"labelboard/internal/domain"
)

// Snapshot is the result of the last successful full refresh
type Snapshot struct {
	StoreURL string
	Tickets  []domain.Ticket
	Labels   []string
	Colors   domain.ColorTable
	TakenAt  time.Time
}

// SnapshotStore persists the last refresh locally so the distribution can be
// inspected without reaching the remote store
type SnapshotStore interface {
	Save(ctx context.Context, snap *Snapshot) error
	// Load returns nil, nil when no snapshot has been saved yet
	Load(ctx context.Context) (*Snapshot, error)
	Close() error
}
