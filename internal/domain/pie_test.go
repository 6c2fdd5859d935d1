package domain

import (
	"math"
	"testing"
)

const angleTolerance = 1e-9

func TestLayout_EmptyIsPlaceholder(t *testing.T) {
	c, r := scenario([]string{"billing"}, nil)

	layout := Layout(Aggregate(c, r))

	if !layout.Placeholder {
		t.Error("expected placeholder disc for empty distribution")
	}
	if len(layout.Slices) != 0 {
		t.Errorf("expected no slices, got %+v", layout.Slices)
	}
}

func TestLayout_ContiguousFullCircle(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		tickets []Ticket
		slices  int
	}{
		{
			name:   "scenario",
			labels: []string{"billing", "bug"},
			tickets: []Ticket{
				{ID: 1, Label: "billing"}, {ID: 2}, {ID: 3, Label: "bug"}, {ID: 4, Label: "billing"},
			},
			slices: 3,
		},
		{
			name:    "thirds",
			labels:  []string{"a", "b", "c"},
			tickets: []Ticket{{ID: 1, Label: "a"}, {ID: 2, Label: "b"}, {ID: 3, Label: "c"}},
			slices:  3,
		},
		{
			name:    "single bucket",
			labels:  []string{"a", "b"},
			tickets: []Ticket{{ID: 1, Label: "a"}, {ID: 2, Label: "a"}},
			slices:  1,
		},
		{
			name:    "sevenths",
			labels:  []string{"a", "b"},
			tickets: []Ticket{{ID: 1, Label: "a"}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}, {ID: 7, Label: "b"}},
			slices:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, r := scenario(tt.labels, tt.tickets)
			layout := Layout(Aggregate(c, r))

			if layout.Placeholder {
				t.Fatal("unexpected placeholder")
			}
			if len(layout.Slices) != tt.slices {
				t.Fatalf("expected %d slices, got %d", tt.slices, len(layout.Slices))
			}
			if layout.Slices[0].StartAngle != StartAngle {
				t.Errorf("expected first slice at %v, got %v", StartAngle, layout.Slices[0].StartAngle)
			}

			total := 0.0
			for i, s := range layout.Slices {
				if i > 0 && s.StartAngle != layout.Slices[i-1].EndAngle {
					t.Errorf("gap between slice %d and %d", i-1, i)
				}
				if s.Count == 0 {
					t.Errorf("zero-count slice %s should be omitted", s.Bucket)
				}
				total += s.Span()
			}
			if math.Abs(total-FullCircle) > angleTolerance {
				t.Errorf("spans sum to %v, want 360", total)
			}
			if last := layout.Slices[len(layout.Slices)-1]; last.EndAngle != StartAngle+FullCircle {
				t.Errorf("expected last slice to end at 270, got %v", last.EndAngle)
			}
		})
	}
}

func TestLayout_ScenarioAngles(t *testing.T) {
	c, r := scenario([]string{"billing", "bug"}, []Ticket{
		{ID: 1, Label: "billing"}, {ID: 2}, {ID: 3, Label: "bug"}, {ID: 4, Label: "billing"},
	})

	layout := Layout(Aggregate(c, r))

	want := []struct {
		bucket     string
		start, end float64
	}{
		{"billing", -90, 90},
		{"bug", 90, 180},
		{UnlabeledBucket, 180, 270},
	}
	for i, w := range want {
		s := layout.Slices[i]
		if s.Bucket != w.bucket || s.StartAngle != w.start || s.EndAngle != w.end {
			t.Errorf("slice %d = %s [%v,%v), want %s [%v,%v)", i, s.Bucket, s.StartAngle, s.EndAngle, w.bucket, w.start, w.end)
		}
	}
}

func TestLegend_Percentages(t *testing.T) {
	c, r := scenario([]string{"billing", "bug"}, []Ticket{
		{ID: 1, Label: "billing"}, {ID: 2}, {ID: 3, Label: "bug"}, {ID: 4, Label: "billing"},
	})

	legend := Legend(Aggregate(c, r))

	want := []float64{50.0, 25.0, 25.0}
	for i, w := range want {
		if legend[i].Percent != w {
			t.Errorf("%s percent = %v, want %v", legend[i].Name, legend[i].Percent, w)
		}
	}
}

func TestLegend_IncludesZeroBuckets(t *testing.T) {
	c, r := scenario([]string{"billing", "bug"}, []Ticket{{ID: 1, Label: "bug"}})

	legend := Legend(Aggregate(c, r))

	if len(legend) != 3 {
		t.Fatalf("expected 3 legend rows, got %d", len(legend))
	}
	if legend[0].Name != "billing" || legend[0].Count != 0 || legend[0].Percent != 0 {
		t.Errorf("expected zero billing row, got %+v", legend[0])
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		count, total int
		want         float64
	}{
		{0, 0, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{1, 8, 12.5},
		{1, 6, 16.7},
		{5, 5, 100},
	}

	for _, tt := range tests {
		if got := Percent(tt.count, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
		}
	}
}

func TestPercent_NotNormalized(t *testing.T) {
	sum := Percent(1, 3) * 3
	if math.Abs(sum-99.9) > 1e-9 {
		t.Errorf("expected independent rounding to sum to 99.9, got %v", sum)
	}
}

func TestSlice_Contains(t *testing.T) {
	s := Slice{StartAngle: 180, EndAngle: 270}

	tests := []struct {
		angle float64
		want  bool
	}{
		{180, true},
		{269.9, true},
		{270, false},
		{-180, true}, // same direction as 180
		{-90, false},
		{540, true},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.angle); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.angle, got, tt.want)
		}
	}
}
