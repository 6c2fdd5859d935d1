package ports

import (
	"io"

	"labelboard/internal/domain"
)

// ChartRenderer writes the distribution chart in a file format
type ChartRenderer interface {
	Render(w io.Writer, layout domain.PieLayout, legend []domain.LegendEntry) error
	// Extension is the file extension without dot, e.g. "svg"
	Extension() string
}

// ChartViewer shows an exported chart file to the user
type ChartViewer interface {
	Open(path string) error
}
