package ports

import (
	"context"
	"io"

	"labelboard/internal/domain"
)

// TicketStore is the remote store that owns tickets and labels.
// Every method may fail with an application.RemoteError.
type TicketStore interface {
	// Reads
	FetchTickets(ctx context.Context) ([]domain.Ticket, error)
	FetchLabels(ctx context.Context) ([]string, domain.ColorTable, error)
	NextID(ctx context.Context) (int, error)

	// Writes; an empty label clears or omits it
	UpdateTicketLabel(ctx context.Context, id int, label string) (domain.Ticket, error)
	CreateLabel(ctx context.Context, name string) error
	CreateTicket(ctx context.Context, title, content, label string) (domain.Ticket, error)

	// Import uploads a CSV file and returns the store's summary message
	Import(ctx context.Context, filename string, r io.Reader) (string, error)
}
