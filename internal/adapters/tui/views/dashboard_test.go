package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"labelboard/internal/application"
	"labelboard/internal/logging"
	"labelboard/internal/testutil"
)

func newSession(t *testing.T) (*Session, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore([]string{"billing", "bug"},
		application.Ticket{ID: 1, Title: "Refund", Content: "double charge", Label: "billing"},
		application.Ticket{ID: 2, Title: "Crash", Content: "on save"},
		application.Ticket{ID: 3, Title: "Typo", Content: "footer", Label: "bug"},
	)
	return &Session{
		Engine:   application.NewEngine(nil),
		Store:    store,
		StoreURL: "http://store",
		Timeout:  time.Second,
		Logger:   logging.Discard(),
	}, store
}

// remoteDone runs cmd and any batched commands, returning the store result
func remoteDone(t *testing.T, cmd tea.Cmd) RemoteDoneMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case RemoteDoneMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if done, ok := c().(RemoteDoneMsg); ok {
				return done
			}
		}
	}
	t.Fatal("command produced no RemoteDoneMsg")
	return RemoteDoneMsg{}
}

func apply(t *testing.T, msg RemoteDoneMsg) string {
	t.Helper()
	if msg.Err != nil {
		t.Fatalf("%s: %v", msg.Op, msg.Err)
	}
	text, err := msg.Apply()
	if err != nil {
		t.Fatalf("%s apply: %v", msg.Op, err)
	}
	return text
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedDashboard(t *testing.T) (*DashboardModel, *testutil.Store) {
	t.Helper()
	s, store := newSession(t)
	d := NewDashboardModel(s)
	if got := apply(t, remoteDone(t, d.Refresh())); got != "Loaded 3 tickets, 2 labels" {
		t.Fatalf("refresh message = %q", got)
	}
	store.Calls = nil
	return d, store
}

func TestDashboard_RefreshFillsList(t *testing.T) {
	d, _ := loadedDashboard(t)

	if d.list.Len() != 3 {
		t.Errorf("list has %d rows, want 3", d.list.Len())
	}
	if got := d.SelectedLabel(); got != "billing" {
		t.Errorf("selector = %q, want billing", got)
	}
	view := d.View()
	for _, want := range []string{"Refund", "billing", "refreshed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestDashboard_ApplyPickedLabel(t *testing.T) {
	d, store := loadedDashboard(t)

	d.Update(keyPress("l"))
	if got := d.SelectedLabel(); got != "bug" {
		t.Fatalf("selector = %q, want bug", got)
	}

	_, cmd := d.Update(keyPress("enter"))
	done := remoteDone(t, cmd)

	// The engine only changes once the result is applied
	if tk, _ := d.session.Engine.Ticket(1); tk.Label != "billing" {
		t.Fatalf("label changed before apply: %q", tk.Label)
	}
	apply(t, done)

	if tk, _ := d.session.Engine.Ticket(1); tk.Label != "bug" {
		t.Errorf("label = %q, want bug", tk.Label)
	}
	if !store.Called("UpdateTicketLabel") {
		t.Error("store was not updated")
	}
	if got := d.session.Engine.Aggregate().Unlabeled(); got != 1 {
		t.Errorf("unlabeled = %d, want 1", got)
	}
}

func TestDashboard_ClearLabel(t *testing.T) {
	d, _ := loadedDashboard(t)

	_, cmd := d.Update(keyPress("x"))
	apply(t, remoteDone(t, cmd))

	if tk, _ := d.session.Engine.Ticket(1); tk.Label != "" {
		t.Errorf("label = %q, want cleared", tk.Label)
	}
	if got := d.SelectedLabel(); got != "" {
		t.Errorf("selector = %q, want none", got)
	}
}

func TestDashboard_SameLabelSkipsStore(t *testing.T) {
	d, store := loadedDashboard(t)

	_, cmd := d.Update(keyPress("enter"))
	if cmd != nil {
		t.Error("expected no store call")
	}
	if len(store.Calls) != 0 {
		t.Errorf("calls = %v", store.Calls)
	}
	if !strings.Contains(d.Message, "already has") {
		t.Errorf("message = %q", d.Message)
	}
}

func TestDashboard_CursorSyncsSelector(t *testing.T) {
	d, _ := loadedDashboard(t)

	d.Update(keyPress("j"))
	if got := d.SelectedLabel(); got != "" {
		t.Errorf("selector on unlabeled ticket = %q", got)
	}
	d.Update(keyPress("j"))
	if got := d.SelectedLabel(); got != "bug" {
		t.Errorf("selector = %q, want bug", got)
	}
}

func TestDashboard_StoreFailureLeavesEngine(t *testing.T) {
	d, store := loadedDashboard(t)
	store.Fail = &application.RemoteError{Op: "update label", Kind: application.ErrRemoteUnavailable}

	_, cmd := d.Update(keyPress("x"))
	done := remoteDone(t, cmd)

	if !errors.Is(done.Err, application.ErrRemoteUnavailable) {
		t.Fatalf("err = %v", done.Err)
	}
	if tk, _ := d.session.Engine.Ticket(1); tk.Label != "billing" {
		t.Errorf("label = %q, want billing", tk.Label)
	}
}

func TestDashboard_Navigation(t *testing.T) {
	tests := []struct {
		key  string
		want any
	}{
		{"a", SwitchToLabelMsg{}},
		{"c", SwitchToCreateMsg{}},
		{"i", SwitchToImportMsg{}},
		{"?", SwitchToHelpMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			d, _ := loadedDashboard(t)
			_, cmd := d.Update(keyPress(tt.key))
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("msg = %#v, want %#v", got, tt.want)
			}
		})
	}
}
