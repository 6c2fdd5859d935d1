package domain

import (
	"slices"
	"testing"
)

func TestLabelRegistry_LearnKeepsOrder(t *testing.T) {
	r := NewLabelRegistry()
	for _, name := range []string{"billing", "bug", "billing", "", "feature", "bug"} {
		r.Learn(name)
	}

	want := []string{"billing", "bug", "feature"}
	if got := r.Known(); !slices.Equal(got, want) {
		t.Errorf("Known() = %v, want %v", got, want)
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestLabelRegistry_IgnoresReservedName(t *testing.T) {
	r := NewLabelRegistry()
	if r.Learn(UnlabeledBucket) {
		t.Errorf("expected %q to be ignored", UnlabeledBucket)
	}
	if r.Contains(UnlabeledBucket) || r.Len() != 0 {
		t.Errorf("expected empty registry, got %v", r.Known())
	}
}

func TestLabelRegistry_LearnReportsInsert(t *testing.T) {
	r := NewLabelRegistry()
	if !r.Learn("bug") {
		t.Error("expected first learn to insert")
	}
	if r.Learn("bug") {
		t.Error("expected second learn to be a no-op")
	}
}

func TestLabelRegistry_KnownIsCopy(t *testing.T) {
	r := NewLabelRegistry()
	r.Learn("bug")
	known := r.Known()
	known[0] = "mutated"

	if r.Known()[0] != "bug" {
		t.Error("expected Known() to return a copy")
	}
}

func TestLabelRegistry_SeedBeforeGeneration(t *testing.T) {
	r := NewLabelRegistry()
	r.Seed(ColorTable{"billing": "#1677ff"})
	r.Learn("billing")

	if got := r.ColorOf("billing"); got != "#1677ff" {
		t.Errorf("expected seeded color, got %q", got)
	}
}

func TestLabelRegistry_SeedAfterGeneration(t *testing.T) {
	r := NewLabelRegistry()
	r.Learn("bug")
	generated := r.ColorOf("bug")

	r.Seed(ColorTable{"bug": "#f5222d"})

	if got := r.ColorOf("bug"); got != generated {
		t.Errorf("expected color to stay %q after late seed, got %q", generated, got)
	}
}

func TestLabelRegistry_ResetKeepsColors(t *testing.T) {
	r := NewLabelRegistry()
	r.Learn("bug")
	color := r.ColorOf("bug")

	r.Reset()
	if r.Len() != 0 || r.Contains("bug") {
		t.Fatal("expected reset to clear the label order")
	}

	r.Seed(ColorTable{"bug": "#000000"})
	if got := r.ColorOf("bug"); got != color {
		t.Errorf("expected color %q to survive reset, got %q", color, got)
	}
}
