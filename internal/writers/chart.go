// internal/writers/chart.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"seqfetch/internal/common"
	"seqfetch/internal/record"
)

// ErrNoRecords is returned by renderers that cannot draw an empty list.
var ErrNoRecords = errors.New("no records to render")

// Chart geometry and labels.
const (
	ChartTitle  = "Sequence Lengths (sorted)"
	ChartXLabel = "Accession"
	ChartYLabel = "Sequence Length"
)

var (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// NewChart builds the length chart: records sorted by length (longest first),
// accessions on a nominal x axis, lengths as a line with circle markers.
func NewChart(list []record.Record) (*plot.Plot, error) {
	if len(list) == 0 {
		return nil, ErrNoRecords
	}
	sorted := common.SortedByLengthDesc(list)

	names := make([]string, len(sorted))
	pts := make(plotter.XYs, len(sorted))
	for i, r := range sorted {
		names[i] = r.Accession
		pts[i].X = float64(i)
		pts[i].Y = float64(r.Length)
	}

	p := plot.New()
	p.Title.Text = ChartTitle
	p.X.Label.Text = ChartXLabel
	p.Y.Label.Text = ChartYLabel

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	points.Shape = draw.CircleGlyph{}
	points.Radius = vg.Points(2)
	p.Add(line, points, plotter.NewGrid())

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.Font.Size = vg.Points(6)
	return p, nil
}

// RenderChart writes the chart of list to w as a 10x6 inch PNG.
func RenderChart(w io.Writer, list []record.Record) error {
	p, err := NewChart(list)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
