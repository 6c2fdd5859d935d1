package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"labelboard/internal/domain"
	"labelboard/internal/ports"
)

// HTML renders an interactive pie page with go-echarts
type HTML struct {
	Width  int
	Height int
	Title  string
}

var _ ports.ChartRenderer = (*HTML)(nil)

// NewHTML creates an HTML renderer; non-positive sizes fall back to 512
func NewHTML(width, height int) *HTML {
	return &HTML{Width: orDefault(width), Height: orDefault(height), Title: "Label distribution"}
}

// Extension implements ports.ChartRenderer
func (r *HTML) Extension() string { return "html" }

// Render implements ports.ChartRenderer
func (r *HTML) Render(w io.Writer, layout domain.PieLayout, legend []domain.LegendEntry) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: r.Title,
			Width:     fmt.Sprintf("%dpx", r.Width),
			Height:    fmt.Sprintf("%dpx", r.Height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    r.Title,
			Subtitle: fmt.Sprintf("%d tickets", layout.Total),
		}),
	)

	data := make([]opts.PieData, 0, len(legend))
	if layout.Placeholder {
		data = append(data, opts.PieData{
			Name:      "no tickets",
			Value:     1,
			ItemStyle: &opts.ItemStyle{Color: domain.PlaceholderColor, BorderColor: domain.BorderColor, BorderWidth: domain.BorderWidth},
		})
	}
	for _, s := range layout.Slices {
		data = append(data, opts.PieData{
			Name:      s.Bucket,
			Value:     s.Count,
			ItemStyle: &opts.ItemStyle{Color: s.Color, BorderColor: domain.BorderColor, BorderWidth: domain.BorderWidth},
		})
	}

	pie.AddSeries("labels", data)
	if err := pie.Render(w); err != nil {
		return fmt.Errorf("html render: %w", err)
	}
	return nil
}
