package domain

import (
	"errors"
	"slices"
	"testing"
)

func sampleCache() *TicketCache {
	c := NewTicketCache()
	c.ReplaceAll([]Ticket{
		{ID: 1, Title: "Refund", Label: "billing"},
		{ID: 2, Title: "Login loop"},
		{ID: 3, Title: "Crash on save", Label: "bug"},
	})
	return c
}

func TestTicketCache_Get(t *testing.T) {
	c := sampleCache()

	got, err := c.Get(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Crash on save" {
		t.Errorf("expected ticket 3, got %+v", got)
	}

	if _, err := c.Get(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTicketCache_SetLabel(t *testing.T) {
	c := sampleCache()

	if err := c.SetLabel(2, "bug"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := c.Get(2)
	if got.Label != "bug" {
		t.Errorf("expected label bug, got %q", got.Label)
	}

	if err := c.SetLabel(1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = c.Get(1)
	if got.IsLabeled() {
		t.Errorf("expected label to be cleared, got %q", got.Label)
	}
}

func TestTicketCache_SetLabelUnknownID(t *testing.T) {
	c := sampleCache()
	before := c.All()

	err := c.SetLabel(999, "x")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !slices.Equal(c.All(), before) {
		t.Errorf("expected cache unchanged, got %+v", c.All())
	}
}

func TestTicketCache_ReplaceAllDeduplicates(t *testing.T) {
	c := NewTicketCache()
	c.ReplaceAll([]Ticket{
		{ID: 1, Title: "first"},
		{ID: 2, Title: "second"},
		{ID: 1, Title: "first again"},
	})

	if c.Len() != 2 {
		t.Fatalf("expected 2 tickets, got %d", c.Len())
	}
	got, _ := c.Get(1)
	if got.Title != "first again" {
		t.Errorf("expected later duplicate to win, got %q", got.Title)
	}
}

func TestTicketCache_AddAppends(t *testing.T) {
	c := sampleCache()
	c.Add(Ticket{ID: 4, Title: "New"})

	all := c.All()
	if len(all) != 4 || all[3].ID != 4 {
		t.Errorf("expected ticket 4 appended, got %+v", all)
	}
}
