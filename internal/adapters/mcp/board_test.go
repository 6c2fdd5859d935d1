package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"labelboard/internal/application"
	"labelboard/internal/testutil"
)

func newBoard(t *testing.T) (*Board, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore([]string{"billing", "bug"},
		application.Ticket{ID: 1, Title: "Refund", Content: "double charge", Label: "billing"},
		application.Ticket{ID: 2, Title: "Crash", Content: "on save"},
		application.Ticket{ID: 3, Title: "Typo", Content: "footer", Label: "bug"},
	)
	return NewBoard(BoardOptions{Store: store, StoreURL: "http://store"}), store
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var sb strings.Builder
	for _, c := range res.Content {
		if text, ok := c.(mcp.TextContent); ok {
			sb.WriteString(text.Text)
		}
	}
	return sb.String(), res.IsError
}

func TestBoard_StatsLoadsOnce(t *testing.T) {
	b, store := newBoard(t)

	out, isErr := call(t, b.statsHandler, nil)
	if isErr {
		t.Fatalf("stats failed: %s", out)
	}
	for _, want := range []string{"total 3", "labeled 2", "unlabeled 1", "billing  1  33.3%"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}

	store.Calls = nil
	call(t, b.statsHandler, nil)
	if store.Called("FetchTickets") {
		t.Error("second read refetched tickets")
	}
}

func TestBoard_AssignLabel(t *testing.T) {
	b, store := newBoard(t)

	out, isErr := call(t, b.assignLabelHandler, map[string]any{"ticket_id": float64(2), "label": "bug"})
	if isErr {
		t.Fatalf("assign failed: %s", out)
	}
	if !store.Called("UpdateTicketLabel") {
		t.Error("store not updated")
	}

	out, _ = call(t, b.ticketsHandler, map[string]any{"label": "bug"})
	if !strings.Contains(out, "#2") || !strings.Contains(out, "#3") {
		t.Errorf("bug tickets:\n%s", out)
	}
	out, _ = call(t, b.ticketsHandler, map[string]any{"label": "unlabeled"})
	if out != "No tickets." {
		t.Errorf("unlabeled tickets:\n%s", out)
	}
}

func TestBoard_ToolErrors(t *testing.T) {
	tests := []struct {
		name string
		h    func(*Board) server.ToolHandlerFunc
		args map[string]any
		want string
	}{
		{
			name: "unknown ticket",
			h:    func(b *Board) server.ToolHandlerFunc { return b.assignLabelHandler },
			args: map[string]any{"ticket_id": float64(99), "label": "bug"},
			want: "not found",
		},
		{
			name: "reserved label",
			h:    func(b *Board) server.ToolHandlerFunc { return b.createLabelHandler },
			args: map[string]any{"name": "unlabeled"},
			want: "reserved",
		},
		{
			name: "missing content",
			h:    func(b *Board) server.ToolHandlerFunc { return b.createTicketHandler },
			args: map[string]any{"title": "x"},
			want: "content is required",
		},
		{
			name: "unknown chart format",
			h:    func(b *Board) server.ToolHandlerFunc { return b.exportChartHandler },
			args: map[string]any{"format": "png"},
			want: "unsupported chart format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newBoard(t)
			out, isErr := call(t, tt.h(b), tt.args)
			if !isErr {
				t.Fatalf("expected a tool error, got %q", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("error = %q, want it to contain %q", out, tt.want)
			}
		})
	}
}

func TestBoard_StoreDown(t *testing.T) {
	b, store := newBoard(t)
	store.Fail = &application.RemoteError{Op: "fetch labels", Kind: application.ErrRemoteUnavailable}

	out, isErr := call(t, b.layoutHandler, nil)
	if !isErr || !strings.Contains(out, "unavailable") {
		t.Errorf("layout = %q, isErr %v", out, isErr)
	}
}

func TestBoard_CreateTicketAndLabelColor(t *testing.T) {
	b, _ := newBoard(t)

	out, isErr := call(t, b.createTicketHandler, map[string]any{"title": "Jam", "content": "tray 2", "label": "hardware"})
	if isErr {
		t.Fatalf("create failed: %s", out)
	}
	if !strings.Contains(out, "#4") {
		t.Errorf("create = %q", out)
	}

	first, _ := call(t, b.labelColorHandler, map[string]any{"name": "hardware"})
	second, _ := call(t, b.labelColorHandler, map[string]any{"name": "hardware"})
	if first != second || !strings.HasPrefix(first, "#") {
		t.Errorf("colors %q then %q", first, second)
	}
	if got, _ := call(t, b.labelColorHandler, nil); got != "#d9d9d9" {
		t.Errorf("unlabeled color = %q", got)
	}
}
