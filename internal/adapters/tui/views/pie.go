package views

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"labelboard/internal/application"
	"labelboard/internal/domain"
)

const pieGlyph = "█"

// pieGrid rasterizes the layout into a (2r+1) x (4r+1) grid of hex colors.
// Cells outside the disc are empty. Terminal cells are about twice as tall
// as wide, so columns are halved before measuring.
func pieGrid(layout application.PieLayout, radius int) [][]string {
	rows := make([][]string, 0, 2*radius+1)
	r := float64(radius) + 0.5
	for y := -radius; y <= radius; y++ {
		row := make([]string, 0, 4*radius+1)
		for x := -2 * radius; x <= 2*radius; x++ {
			dx, dy := float64(x)/2, float64(y)
			if dx*dx+dy*dy > r*r {
				row = append(row, "")
				continue
			}
			row = append(row, cellColor(layout, math.Atan2(dy, dx)*180/math.Pi))
		}
		rows = append(rows, row)
	}
	return rows
}

func cellColor(layout application.PieLayout, angle float64) string {
	if layout.Placeholder {
		return domain.PlaceholderColor
	}
	for _, s := range layout.Slices {
		if s.Contains(angle) {
			return s.Color
		}
	}
	// Float edge at the seam; the last slice closes the circle
	return layout.Slices[len(layout.Slices)-1].Color
}

// RenderPie draws the distribution as a colored disc
func RenderPie(layout application.PieLayout, radius int) string {
	var b strings.Builder
	for i, row := range pieGrid(layout, radius) {
		if i > 0 {
			b.WriteString("\n")
		}
		// Style runs of one color together
		for start := 0; start < len(row); {
			end := start
			for end < len(row) && row[end] == row[start] {
				end++
			}
			if row[start] == "" {
				b.WriteString(strings.Repeat(" ", end-start))
			} else {
				run := strings.Repeat(pieGlyph, end-start)
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(row[start])).Render(run))
			}
			start = end
		}
	}
	return b.String()
}
