package commands

import (
	"context"
	"fmt"
	"strings"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// CreateLabelResult contains the result of creating a label
type CreateLabelResult struct {
	Name     string
	Color    string
	Existing bool // Label was already known; the store was not called
	Message  string
}

// CreateLabelCommand adds a label to the taxonomy
type CreateLabelCommand struct {
	store    ports.TicketStore
	engine   *application.Engine
	Name     string
	existing bool
}

// NewCreateLabelCommand creates a new CreateLabelCommand
func NewCreateLabelCommand(store ports.TicketStore, engine *application.Engine, name string) *CreateLabelCommand {
	return &CreateLabelCommand{
		store:  store,
		engine: engine,
		Name:   strings.TrimSpace(name),
	}
}

// Validate checks if the label name is valid
func (c *CreateLabelCommand) Validate() error {
	return application.ValidateLabelName("labelName", c.Name)
}

// Prepare validates and notes whether the label is already known
func (c *CreateLabelCommand) Prepare() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.existing = c.engine.HasLabel(c.Name)
	return nil
}

// Existing reports whether Prepare found the label already known
func (c *CreateLabelCommand) Existing() bool {
	return c.existing
}

// Call creates the label in the store unless it is already known
func (c *CreateLabelCommand) Call(ctx context.Context) error {
	if c.existing {
		return nil
	}
	return c.store.CreateLabel(ctx, c.Name)
}

// Apply adds the label to the engine
func (c *CreateLabelCommand) Apply() *CreateLabelResult {
	if c.existing {
		return &CreateLabelResult{
			Name:     c.Name,
			Color:    c.engine.LabelColor(c.Name),
			Existing: true,
			Message:  fmt.Sprintf("Label %s already exists", c.Name),
		}
	}

	c.engine.OnLabelCreated(c.Name)
	return &CreateLabelResult{
		Name:    c.Name,
		Color:   c.engine.LabelColor(c.Name),
		Message: fmt.Sprintf("Created label %s", c.Name),
	}
}

// Execute runs the create label command
func (c *CreateLabelCommand) Execute(ctx context.Context) (*CreateLabelResult, error) {
	if err := c.Prepare(); err != nil {
		return nil, err
	}
	if err := c.Call(ctx); err != nil {
		return nil, err
	}
	return c.Apply(), nil
}
