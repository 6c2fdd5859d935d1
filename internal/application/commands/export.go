package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"labelboard/internal/application"
	"labelboard/internal/ports"
)

// ExportChartResult contains the result of writing a chart file
type ExportChartResult struct {
	Path    string
	Slices  int
	Message string
}

// ExportChartCommand writes the current distribution chart to a file
type ExportChartCommand struct {
	engine   *application.Engine
	renderer ports.ChartRenderer
	Path     string

	layout application.PieLayout
	legend []application.LegendEntry
}

// NewExportChartCommand creates a new ExportChartCommand. An empty path
// defaults to labels.<ext>.
func NewExportChartCommand(engine *application.Engine, renderer ports.ChartRenderer, path string) *ExportChartCommand {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "labels." + renderer.Extension()
	}
	return &ExportChartCommand{
		engine:   engine,
		renderer: renderer,
		Path:     path,
	}
}

// Prepare captures the current layout and legend
func (c *ExportChartCommand) Prepare() {
	c.layout = c.engine.Layout()
	c.legend = c.engine.Legend()
}

// Write renders the captured chart to Path
func (c *ExportChartCommand) Write() (*ExportChartResult, error) {
	f, err := os.Create(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", c.Path, err)
	}

	if err := c.renderer.Render(f, c.layout, c.legend); err != nil {
		f.Close()
		os.Remove(c.Path)
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", c.Path, err)
	}

	return &ExportChartResult{
		Path:    c.Path,
		Slices:  len(c.layout.Slices),
		Message: fmt.Sprintf("Wrote %s", c.Path),
	}, nil
}

// Execute runs the export command
func (c *ExportChartCommand) Execute(ctx context.Context) (*ExportChartResult, error) {
	c.Prepare()
	return c.Write()
}
