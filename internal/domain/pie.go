package domain

import "math"

// Chart geometry constants, in degrees
const (
	StartAngle  = -90.0
	FullCircle  = 360.0
	BorderWidth = 2
)

// Slice is the angular span of one bucket, clockwise from StartAngle
type Slice struct {
	Bucket     string
	Count      int
	StartAngle float64
	EndAngle   float64
	Color      string
}

// Span returns the slice's angular width
func (s Slice) Span() float64 {
	return s.EndAngle - s.StartAngle
}

// Contains reports whether angle (degrees, any turn) falls in [start, end)
func (s Slice) Contains(angle float64) bool {
	a := math.Mod(angle-StartAngle, FullCircle)
	if a < 0 {
		a += FullCircle
	}
	a += StartAngle
	return a >= s.StartAngle && a < s.EndAngle
}

// PieLayout is the drawable geometry for a distribution.
// Placeholder is set when there is nothing to draw and a neutral disc
// should be shown instead.
type PieLayout struct {
	Slices      []Slice
	Placeholder bool
	Total       int
}

// LegendEntry is one legend row
type LegendEntry struct {
	Name    string
	Count   int
	Color   string
	Percent float64
}

// Layout converts a distribution into contiguous clockwise slices.
// Zero-count buckets are omitted.
func Layout(d Distribution) PieLayout {
	if d.Total == 0 {
		return PieLayout{Placeholder: true}
	}

	layout := PieLayout{Total: d.Total}
	cumulative := 0
	for _, b := range d.Buckets {
		if b.Count <= 0 {
			continue
		}
		start := StartAngle + FullCircle*float64(cumulative)/float64(d.Total)
		cumulative += b.Count
		end := StartAngle + FullCircle*float64(cumulative)/float64(d.Total)
		layout.Slices = append(layout.Slices, Slice{
			Bucket:     b.Name,
			Count:      b.Count,
			StartAngle: start,
			EndAngle:   end,
			Color:      b.Color,
		})
	}
	return layout
}

// Legend lists every bucket, zero counts included, with its percentage
func Legend(d Distribution) []LegendEntry {
	entries := make([]LegendEntry, 0, len(d.Buckets))
	for _, b := range d.Buckets {
		entries = append(entries, LegendEntry{
			Name:    b.Name,
			Count:   b.Count,
			Color:   b.Color,
			Percent: Percent(b.Count, d.Total),
		})
	}
	return entries
}

// Percent rounds count/total to one decimal place. Each bucket is rounded on
// its own, so a legend need not add up to exactly 100.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return roundHalfUp(float64(count)*1000/float64(total)) / 10
}

// roundHalfUp rounds ties toward +Inf
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}
