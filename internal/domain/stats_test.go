package domain

import "testing"

func scenario(labels []string, tickets []Ticket) (*TicketCache, *LabelRegistry) {
	r := NewLabelRegistry()
	for _, l := range labels {
		r.Learn(l)
	}
	c := NewTicketCache()
	c.ReplaceAll(tickets)
	return c, r
}

func TestAggregate_Scenario(t *testing.T) {
	c, r := scenario([]string{"billing", "bug"}, []Ticket{
		{ID: 1, Label: "billing"},
		{ID: 2},
		{ID: 3, Label: "bug"},
		{ID: 4, Label: "billing"},
	})

	d := Aggregate(c, r)

	want := []struct {
		name  string
		count int
	}{
		{"billing", 2},
		{"bug", 1},
		{UnlabeledBucket, 1},
	}
	if len(d.Buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %+v", len(want), d.Buckets)
	}
	for i, w := range want {
		if d.Buckets[i].Name != w.name || d.Buckets[i].Count != w.count {
			t.Errorf("bucket %d = %s:%d, want %s:%d", i, d.Buckets[i].Name, d.Buckets[i].Count, w.name, w.count)
		}
	}
	if d.Total != 4 {
		t.Errorf("Total = %d, want 4", d.Total)
	}
	if d.Labeled() != 3 || d.Unlabeled() != 1 {
		t.Errorf("labeled/unlabeled = %d/%d, want 3/1", d.Labeled(), d.Unlabeled())
	}
}

func TestAggregate_ReservedLabelFoldsIntoUnlabeled(t *testing.T) {
	c, r := scenario([]string{UnlabeledBucket, "bug"}, []Ticket{
		{ID: 1, Label: UnlabeledBucket},
		{ID: 2},
		{ID: 3, Label: "bug"},
	})

	d := Aggregate(c, r)

	if len(d.Buckets) != 2 {
		t.Fatalf("expected bug and unlabeled buckets, got %+v", d.Buckets)
	}
	b, ok := d.Bucket(UnlabeledBucket)
	if !ok || b.Count != 2 || b.Color != UnlabeledColor || b.Stale {
		t.Errorf("unlabeled bucket = %+v, want count 2 with %s", b, UnlabeledColor)
	}
	if d.Labeled() != 1 || d.Unlabeled() != 2 {
		t.Errorf("labeled/unlabeled = %d/%d, want 1/2", d.Labeled(), d.Unlabeled())
	}
	if n := len(Legend(d)); n != 2 {
		t.Errorf("expected 2 legend rows, got %d", n)
	}
}

func TestAggregate_Empty(t *testing.T) {
	c, r := scenario([]string{"billing"}, nil)

	d := Aggregate(c, r)

	if d.Total != 0 {
		t.Errorf("Total = %d, want 0", d.Total)
	}
	if len(d.Buckets) != 2 {
		t.Fatalf("expected billing and unlabeled buckets, got %+v", d.Buckets)
	}
	for _, b := range d.Buckets {
		if b.Count != 0 {
			t.Errorf("expected zero count for %s, got %d", b.Name, b.Count)
		}
	}
}

func TestAggregate_StaleLabel(t *testing.T) {
	c, r := scenario([]string{"billing"}, []Ticket{
		{ID: 1, Label: "billing"},
		{ID: 2, Label: "outage"},
		{ID: 3, Label: "outage"},
	})

	d := Aggregate(c, r)

	b, ok := d.Bucket("outage")
	if !ok {
		t.Fatal("expected synthesized bucket for stale label")
	}
	if b.Count != 2 || !b.Stale {
		t.Errorf("expected stale bucket with count 2, got %+v", b)
	}
	if b.Color != r.ColorOf("outage") {
		t.Errorf("expected synthesized color to be memoized in registry table")
	}
	if last := d.Buckets[len(d.Buckets)-1]; last.Name != UnlabeledBucket {
		t.Errorf("expected unlabeled last, got %s", last.Name)
	}
	if r.Contains("outage") {
		t.Error("aggregation must not add labels to the registry order")
	}
}

func TestAggregate_CountsSumToTotal(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		tickets []Ticket
	}{
		{"no labels", nil, []Ticket{{ID: 1}, {ID: 2}}},
		{"all labeled", []string{"a", "b"}, []Ticket{{ID: 1, Label: "a"}, {ID: 2, Label: "b"}}},
		{"mixed with stale", []string{"a"}, []Ticket{{ID: 1, Label: "a"}, {ID: 2, Label: "z"}, {ID: 3}}},
		{"empty cache", []string{"a", "b", "c"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := scenario(tt.labels, tt.tickets)
			d := Aggregate(c, r)

			sum := 0
			for _, b := range d.Buckets {
				sum += b.Count
			}
			if sum != d.Total {
				t.Errorf("sum of counts %d != total %d", sum, d.Total)
			}
			if d.Total != c.Len() {
				t.Errorf("total %d != cache size %d", d.Total, c.Len())
			}
		})
	}
}

func TestAggregate_UnlabeledColor(t *testing.T) {
	c, r := scenario(nil, []Ticket{{ID: 1}})
	d := Aggregate(c, r)

	b, _ := d.Bucket(UnlabeledBucket)
	if b.Color != UnlabeledColor {
		t.Errorf("expected %s, got %s", UnlabeledColor, b.Color)
	}
}
