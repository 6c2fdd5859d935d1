package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"labelboard/internal/application/commands"
)

// RegisterWriteTools adds all tools that change the store to the MCP server.
func RegisterWriteTools(s *server.MCPServer, b *Board) {
	s.AddTool(refreshTool(), b.refreshHandler)
	s.AddTool(assignLabelTool(), b.assignLabelHandler)
	s.AddTool(createLabelTool(), b.createLabelHandler)
	s.AddTool(createTicketTool(), b.createTicketHandler)
	s.AddTool(importTool(), b.importHandler)
	s.AddTool(exportChartTool(), b.exportChartHandler)
}

// --- refresh ---

func refreshTool() mcp.Tool {
	return mcp.NewTool("refresh",
		mcp.WithDescription("Reload all labels and tickets from the store."),
	)
}

func (b *Board) refreshHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	res, err := b.refresh(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(res.Message), nil
}

// --- assign_label ---

func assignLabelTool() mcp.Tool {
	return mcp.NewTool("assign_label",
		mcp.WithDescription("Set or clear a ticket's label. New labels are created on the fly."),
		mcp.WithNumber("ticket_id",
			mcp.Description("Ticket id"),
			mcp.Required(),
		),
		mcp.WithString("label",
			mcp.Description("Label to set; omit or leave empty to clear"),
		),
	)
}

func (b *Board) assignLabelHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	cmd := commands.NewAssignLabelCommand(b.store, b.engine, req.GetInt("ticket_id", 0), req.GetString("label", ""))
	result, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- create_label ---

func createLabelTool() mcp.Tool {
	return mcp.NewTool("create_label",
		mcp.WithDescription("Add a label to the taxonomy. Existing labels are left as they are."),
		mcp.WithString("name",
			mcp.Description("Label name"),
			mcp.Required(),
		),
	)
}

func (b *Board) createLabelHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	result, err := commands.NewCreateLabelCommand(b.store, b.engine, req.GetString("name", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (%s)", result.Message, result.Color)), nil
}

// --- create_ticket ---

func createTicketTool() mcp.Tool {
	return mcp.NewTool("create_ticket",
		mcp.WithDescription("Create a ticket. The store assigns the id."),
		mcp.WithString("title",
			mcp.Description("Ticket title"),
			mcp.Required(),
		),
		mcp.WithString("content",
			mcp.Description("Ticket body"),
			mcp.Required(),
		),
		mcp.WithString("label",
			mcp.Description("Optional label, new or existing"),
		),
	)
}

func (b *Board) createTicketHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	cmd := commands.NewCreateTicketCommand(b.store, b.engine,
		req.GetString("title", ""),
		req.GetString("content", ""),
		req.GetString("label", ""),
	)
	result, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}

// --- import_csv ---

func importTool() mcp.Tool {
	return mcp.NewTool("import_csv",
		mcp.WithDescription("Upload a CSV file of tickets to the store, then reload everything."),
		mcp.WithString("path",
			mcp.Description("Path to the CSV file on this machine"),
			mcp.Required(),
		),
	)
}

func (b *Board) importHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	refresh := commands.NewRefreshCommand(b.store, b.engine, b.snapshots, b.storeURL)
	result, err := commands.NewImportCommand(b.store, refresh, req.GetString("path", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	b.loaded = true
	return mcp.NewToolResultText(result.Message), nil
}

// --- export_chart ---

func exportChartTool() mcp.Tool {
	return mcp.NewTool("export_chart",
		mcp.WithDescription("Render the label distribution pie chart to a file."),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum("svg", "html"),
		),
		mcp.WithString("path",
			mcp.Description("Output file; defaults to labels.<format> in the working directory"),
		),
	)
}

func (b *Board) exportChartHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureLoaded(ctx); err != nil {
		return toolError(err)
	}

	format := strings.ToLower(req.GetString("format", "svg"))
	renderer, ok := b.charts[format]
	if !ok {
		return toolError(fmt.Errorf("unsupported chart format %q", format))
	}
	result, err := commands.NewExportChartCommand(b.engine, renderer, req.GetString("path", "")).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(result.Message), nil
}
