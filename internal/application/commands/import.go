package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// ImportResult contains the result of a bulk import
type ImportResult struct {
	Summary string // Store-provided summary, e.g. "imported 12 tickets"
	Refresh *RefreshResult
	Message string
}

// ImportCommand uploads a CSV file to the store and reloads everything
type ImportCommand struct {
	store    ports.TicketStore
	refresh  *RefreshCommand
	FilePath string

	summary string
}

// NewImportCommand creates a new ImportCommand
func NewImportCommand(store ports.TicketStore, refresh *RefreshCommand, filePath string) *ImportCommand {
	return &ImportCommand{
		store:    store,
		refresh:  refresh,
		FilePath: strings.TrimSpace(filePath),
	}
}

// Validate checks if the import is valid
func (c *ImportCommand) Validate() error {
	if err := application.ValidateRequired("filePath", c.FilePath); err != nil {
		return err
	}
	info, err := os.Stat(c.FilePath)
	if err != nil {
		return &application.ValidationError{Field: "filePath", Message: fmt.Sprintf("cannot read %s", c.FilePath)}
	}
	if info.IsDir() {
		return &application.ValidationError{Field: "filePath", Message: fmt.Sprintf("%s is a directory", c.FilePath)}
	}
	return nil
}

// Call uploads the file and refetches everything from the store
func (c *ImportCommand) Call(ctx context.Context) error {
	f, err := os.Open(c.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", c.FilePath, err)
	}
	defer f.Close()

	summary, err := c.store.Import(ctx, filepath.Base(c.FilePath), f)
	if err != nil {
		return err
	}
	c.summary = summary

	if err := c.refresh.Call(ctx); err != nil {
		return fmt.Errorf("%s, but reload failed: %w", summary, err)
	}
	return nil
}

// Apply loads the refetched state into the engine
func (c *ImportCommand) Apply() *ImportResult {
	msg := c.summary
	if msg == "" {
		msg = "Import finished"
	}
	return &ImportResult{
		Summary: c.summary,
		Refresh: c.refresh.Apply(),
		Message: msg,
	}
}

// Execute runs the import command
func (c *ImportCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.Call(ctx); err != nil {
		return nil, err
	}
	return c.Apply(), nil
}
