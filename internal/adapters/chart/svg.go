// Package chart renders the label distribution pie to files
package chart

import (
	"fmt"
	"html"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"labelboard/internal/domain"
	"labelboard/internal/ports"
)

const svgMargin = 5

// SVG renders the pie as a standalone SVG document
type SVG struct {
	Width  int
	Height int
}

var _ ports.ChartRenderer = (*SVG)(nil)

// NewSVG creates an SVG renderer; non-positive sizes fall back to 512
func NewSVG(width, height int) *SVG {
	return &SVG{Width: orDefault(width), Height: orDefault(height)}
}

// Extension implements ports.ChartRenderer
func (r *SVG) Extension() string { return "svg" }

// Render implements ports.ChartRenderer. Slices are drawn from the layout
// angles, so the first one starts at 12 o'clock. An empty layout draws the
// neutral placeholder disc.
func (r *SVG) Render(w io.Writer, layout domain.PieLayout, legend []domain.LegendEntry) error {
	rd, err := chart.SVG(r.Width, r.Height)
	if err != nil {
		return fmt.Errorf("svg render: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("svg font: %w", err)
	}
	rd.SetDPI(chart.DefaultDPI)

	p := pie{
		r:      rd,
		cx:     r.Width / 2,
		cy:     r.Height / 2,
		radius: float64(min(r.Width, r.Height)/2 - svgMargin),
	}

	if layout.Placeholder {
		p.disc(domain.PlaceholderColor)
		rd.SetFont(font)
		p.label("no tickets", p.cx, p.cy)
		return save(rd, w)
	}

	percents := make(map[string]float64, len(legend))
	for _, e := range legend {
		percents[e.Name] = e.Percent
	}

	if len(layout.Slices) == 1 {
		// A full-circle arc has equal end points and draws nothing
		p.disc(layout.Slices[0].Color)
	} else {
		for _, s := range layout.Slices {
			p.slice(s)
		}
	}
	rd.SetFont(font)
	for _, s := range layout.Slices {
		x, y := p.at((s.StartAngle+s.EndAngle)/2, p.radius*2/3)
		p.label(fmt.Sprintf("%s %.1f%%", s.Bucket, percents[s.Bucket]), x, y)
	}
	return save(rd, w)
}

type pie struct {
	r      chart.Renderer
	cx, cy int
	radius float64
}

func (p pie) style(fill string) {
	p.r.SetFillColor(hexColor(fill))
	p.r.SetStrokeColor(hexColor(domain.BorderColor))
	p.r.SetStrokeWidth(domain.BorderWidth)
}

func (p pie) disc(color string) {
	p.style(color)
	p.r.Circle(p.radius, p.cx, p.cy)
}

// slice draws one wedge. ArcTo takes angles clockwise from 3 o'clock, the
// same frame as the layout.
func (p pie) slice(s domain.Slice) {
	p.style(s.Color)
	p.r.MoveTo(p.cx, p.cy)
	p.r.ArcTo(p.cx, p.cy, p.radius, p.radius,
		chart.DegreesToRadians(s.StartAngle),
		chart.DegreesToRadians(s.EndAngle-s.StartAngle))
	p.r.LineTo(p.cx, p.cy)
	p.r.Close()
	p.r.FillStroke()
}

// at returns the point at distance from the center along a layout angle
func (p pie) at(angle, distance float64) (int, int) {
	return chart.CirclePoint(p.cx, p.cy, distance, chart.DegreesToRadians(angle+90))
}

// label centers text on x, y
func (p pie) label(text string, x, y int) {
	p.r.SetFontSize(chart.DefaultFontSize)
	p.r.SetFontColor(drawing.ColorBlack)
	p.r.SetStrokeWidth(0)
	box := p.r.MeasureText(text)
	p.r.Text(html.EscapeString(text), x-box.Width()/2, y+box.Height()/2)
}

func save(r chart.Renderer, w io.Writer) error {
	if err := r.Save(w); err != nil {
		return fmt.Errorf("svg write: %w", err)
	}
	return nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func orDefault(n int) int {
	if n <= 0 {
		return 512
	}
	return n
}
