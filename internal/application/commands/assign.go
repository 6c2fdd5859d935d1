package commands

import (
	"context"
	"fmt"
	"strings"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// AssignLabelResult contains the result of labeling a ticket
type AssignLabelResult struct {
	Ticket       application.Ticket
	Distribution application.Distribution
	NewLabel     bool // The label was not known before this change
	Message      string
}

// AssignLabelCommand sets or clears the label of one ticket
type AssignLabelCommand struct {
	store    ports.TicketStore
	engine   *application.Engine
	TicketID int
	Label    string // Empty clears the label

	confirmed application.Ticket
}

// NewAssignLabelCommand creates a new AssignLabelCommand
func NewAssignLabelCommand(store ports.TicketStore, engine *application.Engine, ticketID int, label string) *AssignLabelCommand {
	return &AssignLabelCommand{
		store:    store,
		engine:   engine,
		TicketID: ticketID,
		Label:    strings.TrimSpace(label),
	}
}

// Validate checks if the assignment is valid
func (c *AssignLabelCommand) Validate() error {
	if err := application.ValidateTicketID("ticketID", c.TicketID); err != nil {
		return err
	}
	if c.Label != "" {
		if err := application.ValidateLabelName("label", c.Label); err != nil {
			return err
		}
	}
	return nil
}

// Prepare validates and checks the ticket is in the local cache
func (c *AssignLabelCommand) Prepare() error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := c.engine.Ticket(c.TicketID)
	return err
}

// Call sends the change to the store
func (c *AssignLabelCommand) Call(ctx context.Context) error {
	confirmed, err := c.store.UpdateTicketLabel(ctx, c.TicketID, c.Label)
	if err != nil {
		return err
	}
	c.confirmed = confirmed
	return nil
}

// Apply records the confirmed label in the engine. The store's copy of the
// label wins when it echoes the ticket back.
func (c *AssignLabelCommand) Apply() (*AssignLabelResult, error) {
	label := c.Label
	if c.confirmed.ID == c.TicketID {
		label = c.confirmed.Label
	}
	newLabel := label != "" && !c.engine.HasLabel(label)

	dist, err := c.engine.OnTicketLabelChanged(c.TicketID, label)
	if err != nil {
		return nil, err
	}
	ticket, _ := c.engine.Ticket(c.TicketID)

	msg := fmt.Sprintf("Labeled #%d as %s", c.TicketID, label)
	if label == "" {
		msg = fmt.Sprintf("Cleared label on #%d", c.TicketID)
	}

	return &AssignLabelResult{
		Ticket:       ticket,
		Distribution: dist,
		NewLabel:     newLabel,
		Message:      msg,
	}, nil
}

// Execute runs the assign command. The engine changes only after the store
// confirms.
func (c *AssignLabelCommand) Execute(ctx context.Context) (*AssignLabelResult, error) {
	if err := c.Prepare(); err != nil {
		return nil, err
	}
	if err := c.Call(ctx); err != nil {
		return nil, err
	}
	return c.Apply()
}
