package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a ticket id is not in the cache
var ErrNotFound = errors.New("not found")

// Ticket is a support ticket as known locally
type Ticket struct {
	ID      int // Assigned by the remote store, immutable
	Title   string
	Content string
	Label   string // Empty when the ticket is unlabeled
}

// IsLabeled reports whether the ticket carries a label. A label named after
// the unlabeled bucket counts as none.
func (t Ticket) IsLabeled() bool {
	return t.Label != "" && t.Label != UnlabeledBucket
}

// TicketCache is the local snapshot of tickets, kept in store order
type TicketCache struct {
	tickets []Ticket
	byID    map[int]int // id -> position in tickets
}

// NewTicketCache creates an empty cache
func NewTicketCache() *TicketCache {
	return &TicketCache{byID: make(map[int]int)}
}

// ReplaceAll overwrites the cache. A later duplicate id replaces the earlier
// entry so ids stay unique.
func (c *TicketCache) ReplaceAll(tickets []Ticket) {
	c.tickets = make([]Ticket, 0, len(tickets))
	c.byID = make(map[int]int, len(tickets))
	for _, t := range tickets {
		c.Add(t)
	}
}

// Add inserts a ticket, replacing any entry with the same id in place
func (c *TicketCache) Add(t Ticket) {
	if pos, ok := c.byID[t.ID]; ok {
		c.tickets[pos] = t
		return
	}
	c.byID[t.ID] = len(c.tickets)
	c.tickets = append(c.tickets, t)
}

// Get returns the ticket with the given id
func (c *TicketCache) Get(id int) (Ticket, error) {
	pos, ok := c.byID[id]
	if !ok {
		return Ticket{}, fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}
	return c.tickets[pos], nil
}

// SetLabel changes the label of an existing ticket. An empty label clears it.
// Unknown ids leave the cache untouched.
func (c *TicketCache) SetLabel(id int, label string) error {
	pos, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("ticket %d: %w", id, ErrNotFound)
	}
	c.tickets[pos].Label = label
	return nil
}

// All returns a copy of the cached tickets in order
func (c *TicketCache) All() []Ticket {
	out := make([]Ticket, len(c.tickets))
	copy(out, c.tickets)
	return out
}

// Len returns the number of cached tickets
func (c *TicketCache) Len() int {
	return len(c.tickets)
}
