// Package chart renders winners as a year-by-winner scatter plot.
package chart

import (
	"fmt"
	"image/color"
	"sort"

	"triplecrown-scraper/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options control the rendered image
type Options struct {
	Title    string
	WidthIn  float64
	HeightIn float64
}

// Point is one winner placed on the chart
type Point struct {
	Year   int
	Lane   int
	Winner string
}

// Lanes sorts records by year and gives each distinct winner a lane in the
// order it first appears. It fails on the first non-numeric year.
func Lanes(records []models.Record) ([]Point, []string, error) {
	points := make([]Point, 0, len(records))
	for _, r := range records {
		year, err := r.Year.Int()
		if err != nil {
			return nil, nil, err
		}
		points = append(points, Point{Year: year, Winner: r.Winner})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Year < points[j].Year
	})

	lanes := make(map[string]int)
	var names []string
	for i := range points {
		lane, ok := lanes[points[i].Winner]
		if !ok {
			lane = len(names)
			lanes[points[i].Winner] = lane
			names = append(names, points[i].Winner)
		}
		points[i].Lane = lane
	}

	return points, names, nil
}

// Build assembles the plot without writing it anywhere
func Build(records []models.Record, opts Options) (*plot.Plot, error) {
	points, names, err := Lanes(records)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "Year"

	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	grid.Vertical.Color = color.NRGBA{R: 176, G: 176, B: 176, A: 178}
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	if len(points) == 0 {
		return emptyPlot(p)
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = float64(pt.Year)
		xys[i].Y = float64(pt.Lane)
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.Black
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(3)
	p.Add(scatter)

	// Tick labels at 0..n-1 carry the winner names
	p.NominalY(names...)

	return p, nil
}

// emptyPlot annotates a plot that has nothing to show
func emptyPlot(p *plot.Plot) (*plot.Plot, error) {
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.HideY()

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{"no data"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build labels: %w", err)
	}
	labels.TextStyle[0].XAlign = draw.XCenter
	p.Add(labels)

	return p, nil
}

// Render builds the chart and saves it to path. The image format follows
// the file extension (png, svg, pdf...).
func Render(records []models.Record, path string, opts Options) error {
	p, err := Build(records, opts)
	if err != nil {
		return err
	}

	width := vg.Length(opts.WidthIn) * vg.Inch
	height := vg.Length(opts.HeightIn) * vg.Inch
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", path, err)
	}

	return nil
}
