package commands

import (
	"context"
	"fmt"
	"strings"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// CreateTicketResult contains the result of creating a ticket
type CreateTicketResult struct {
	Ticket       application.Ticket
	Distribution application.Distribution
	Message      string
}

// CreateTicketCommand creates a ticket, optionally labeled
type CreateTicketCommand struct {
	store   ports.TicketStore
	engine  *application.Engine
	Title   string
	Content string
	Label   string

	created application.Ticket
}

// NewCreateTicketCommand creates a new CreateTicketCommand
func NewCreateTicketCommand(store ports.TicketStore, engine *application.Engine, title, content, label string) *CreateTicketCommand {
	return &CreateTicketCommand{
		store:   store,
		engine:  engine,
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
		Label:   strings.TrimSpace(label),
	}
}

// Validate checks if the create operation is valid
func (c *CreateTicketCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Title); err != nil {
		return err
	}
	if err := application.ValidateRequired("content", c.Content); err != nil {
		return err
	}
	if c.Label != "" {
		if err := application.ValidateLabelName("label", c.Label); err != nil {
			return err
		}
	}
	return nil
}

// Call creates the ticket in the store
func (c *CreateTicketCommand) Call(ctx context.Context) error {
	ticket, err := c.store.CreateTicket(ctx, c.Title, c.Content, c.Label)
	if err != nil {
		return err
	}
	if ticket.ID <= 0 {
		return &application.RemoteError{
			Op:      "create ticket",
			Kind:    application.ErrInvalidResponse,
			Message: "store returned a ticket without an id",
		}
	}
	c.created = ticket
	return nil
}

// Apply adds the created ticket to the engine
func (c *CreateTicketCommand) Apply() *CreateTicketResult {
	dist := c.engine.OnTicketCreated(c.created)

	return &CreateTicketResult{
		Ticket:       c.created,
		Distribution: dist,
		Message:      fmt.Sprintf("Created ticket #%d %s", c.created.ID, c.created.Title),
	}
}

// Execute runs the create ticket command
func (c *CreateTicketCommand) Execute(ctx context.Context) (*CreateTicketResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.Call(ctx); err != nil {
		return nil, err
	}
	return c.Apply(), nil
}
