package views

import (
	"strings"
	"testing"

	"labelboard/internal/application"
)

func tickets(n int) []application.Ticket {
	out := make([]application.Ticket, n)
	for i := range out {
		out[i] = application.Ticket{ID: i + 1, Title: "ticket", Content: "body"}
	}
	return out
}

func TestTicketList_KeepsSelectionAcrossReload(t *testing.T) {
	l := NewTicketList(3)
	l.SetTickets(tickets(5))
	l.CursorDown()
	l.CursorDown()

	if sel, _ := l.Selected(); sel.ID != 3 {
		t.Fatalf("selected #%d, want #3", sel.ID)
	}

	// Reload with an extra ticket in front
	reloaded := append([]application.Ticket{{ID: 9, Title: "new", Content: "x"}}, tickets(5)...)
	l.SetTickets(reloaded)

	sel, ok := l.Selected()
	if !ok || sel.ID != 3 {
		t.Errorf("after reload selected #%d, want #3", sel.ID)
	}
	if l.CurrentPage() != 2 {
		t.Errorf("page = %d, want 2", l.CurrentPage())
	}
}

func TestTicketList_SelectionClampsWhenTicketGone(t *testing.T) {
	l := NewTicketList(10)
	l.SetTickets(tickets(5))
	l.Select(5)

	l.SetTickets(tickets(2))

	sel, ok := l.Selected()
	if !ok || sel.ID != 2 {
		t.Errorf("selected #%d, want #2", sel.ID)
	}
}

func TestTicketList_Paging(t *testing.T) {
	l := NewTicketList(2)
	l.SetTickets(tickets(5))

	if l.TotalPages() != 3 {
		t.Fatalf("pages = %d, want 3", l.TotalPages())
	}
	if !l.NextPage() || !l.NextPage() {
		t.Fatal("expected two page moves")
	}
	if l.NextPage() {
		t.Error("moved past the last page")
	}
	if sel, _ := l.Selected(); sel.ID != 5 {
		t.Errorf("selected #%d on last page, want #5", sel.ID)
	}
	if !l.PrevPage() {
		t.Error("expected to move back")
	}
}

func TestTicketList_EmptyHint(t *testing.T) {
	l := NewTicketList(5)
	if _, ok := l.Selected(); ok {
		t.Error("empty list has a selection")
	}
	out := l.Render(80, func(string) string { return "#000000" })
	if !strings.Contains(out, "No tickets yet") {
		t.Errorf("render = %q", out)
	}
}
