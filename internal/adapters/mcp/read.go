package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"labelboard/internal/application"
	"labelboard/internal/application/commands"
)

// RegisterReadTools adds all read-only board tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, b *Board) {
	s.AddTool(statsTool(), b.statsHandler)
	s.AddTool(layoutTool(), b.layoutHandler)
	s.AddTool(labelsTool(), b.labelsHandler)
	s.AddTool(labelColorTool(), b.labelColorHandler)
	s.AddTool(ticketsTool(), b.ticketsHandler)
	s.AddTool(nextIDTool(), b.nextIDHandler)
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Label distribution: total, labeled and unlabeled counts, then one line per bucket with count, share and color."),
	)
}

func (b *Board) statsHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	d := b.engine.Aggregate()
	var sb strings.Builder
	fmt.Fprintf(&sb, "total %d  labeled %d  unlabeled %d\n", d.Total, d.Labeled(), d.Unlabeled())
	for _, e := range b.engine.Legend() {
		fmt.Fprintf(&sb, "%s  %d  %.1f%%  %s\n", e.Name, e.Count, e.Percent, e.Color)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- layout ---

func layoutTool() mcp.Tool {
	return mcp.NewTool("layout",
		mcp.WithDescription("Pie chart geometry: one slice per non-empty bucket with start and end angles in degrees, clockwise from the top."),
	)
}

func (b *Board) layoutHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	layout := b.engine.Layout()
	if layout.Placeholder {
		return mcp.NewToolResultText("No tickets; placeholder disc."), nil
	}
	var sb strings.Builder
	for _, s := range layout.Slices {
		fmt.Fprintf(&sb, "%s  %d  %.2f..%.2f  %s\n", s.Bucket, s.Count, s.StartAngle, s.EndAngle, s.Color)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- labels ---

func labelsTool() mcp.Tool {
	return mcp.NewTool("labels",
		mcp.WithDescription("List known labels in the order they were first seen, with their colors."),
	)
}

func (b *Board) labelsHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	labels := b.engine.Labels()
	if len(labels) == 0 {
		return mcp.NewToolResultText("No labels."), nil
	}
	var sb strings.Builder
	for _, name := range labels {
		fmt.Fprintf(&sb, "%s  %s\n", name, b.engine.LabelColor(name))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- label_color ---

func labelColorTool() mcp.Tool {
	return mcp.NewTool("label_color",
		mcp.WithDescription("Get the display color of a label. Unknown labels get a stable generated color."),
		mcp.WithString("name",
			mcp.Description("Label name; empty or \"unlabeled\" returns the unlabeled color"),
		),
	)
}

func (b *Board) labelColorHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(b.engine.LabelColor(strings.TrimSpace(req.GetString("name", "")))), nil
}

// --- tickets ---

func ticketsTool() mcp.Tool {
	return mcp.NewTool("tickets",
		mcp.WithDescription("List cached tickets. Optionally filter by label; use \"unlabeled\" for tickets without one."),
		mcp.WithString("label",
			mcp.Description("Only tickets with this label"),
		),
	)
}

func (b *Board) ticketsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	filter := strings.TrimSpace(req.GetString("label", ""))
	var sb strings.Builder
	for _, t := range b.engine.Tickets() {
		label := application.DisplayLabel(t.Label)
		if filter != "" && label != filter {
			continue
		}
		fmt.Fprintf(&sb, "#%d  %s  [%s]\n", t.ID, t.Title, label)
	}
	if sb.Len() == 0 {
		return mcp.NewToolResultText("No tickets."), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- next_id ---

func nextIDTool() mcp.Tool {
	return mcp.NewTool("next_id",
		mcp.WithDescription("Ask the store which id the next created ticket will get."),
	)
}

func (b *Board) nextIDHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := commands.NewNextIDCommand(b.store).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d", id)), nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
