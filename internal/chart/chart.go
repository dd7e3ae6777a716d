// Package chart draws weekly report tables as bar charts.
package chart

import (
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/Afrawles/ticketcharts/internal/report"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/m-mizutani/goerr/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	Width  = 9 * vg.Inch
	Height = 4 * vg.Inch
	DPI    = 200

	defaultYLabel = "Tickets"
)

// Options controls how a table is drawn and where the image is written.
type Options struct {
	Title string
	Path  string
	// Colors are hex strings matched to table columns in order. Missing
	// entries fall back to the plotutil palette.
	Colors  []string
	Stacked bool
	YLabel  string
}

// Renderer writes JPEG bar charts.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws table and writes it to opts.Path, replacing any existing file.
func (r *Renderer) Render(table report.Table, opts Options) error {
	p, err := Plot(table, opts)
	if err != nil {
		return err
	}

	canvas := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))
	p.Draw(draw.New(canvas))

	if dir := filepath.Dir(opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return goerr.Wrap(err, "failed to create chart directory", goerr.V("dir", dir))
		}
	}

	f, err := os.Create(opts.Path)
	if err != nil {
		return goerr.Wrap(err, "failed to create chart file", goerr.V("path", opts.Path))
	}
	defer f.Close()

	jpg := vgimg.JpegCanvas{Canvas: canvas}
	if _, err := jpg.WriteTo(f); err != nil {
		return goerr.Wrap(err, "failed to encode chart", goerr.V("path", opts.Path))
	}
	return f.Close()
}

// Plot builds the bar chart without drawing it.
func Plot(table report.Table, opts Options) (*plot.Plot, error) {
	if len(table.Columns) == 0 {
		return nil, goerr.New("table has no columns", goerr.V("title", opts.Title))
	}
	if table.Len() == 0 {
		return nil, goerr.New("table has no weeks", goerr.V("title", opts.Title))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = ""
	p.Y.Label.Text = opts.YLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = defaultYLabel
	}
	p.Y.Min = 0

	groups := len(table.Columns)
	slot := vg.Points(300 / float64(table.Len()))
	barWidth := slot
	if !opts.Stacked && groups > 1 {
		barWidth = slot / vg.Length(groups)
	}

	var below *plotter.BarChart
	for j, column := range table.Columns {
		values := plotter.Values{}
		for _, n := range table.Column(column) {
			values = append(values, float64(n))
		}

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to build bars",
				goerr.V("title", opts.Title),
				goerr.V("column", column),
			)
		}
		bars.LineStyle.Width = 0

		c, err := columnColor(opts.Colors, j)
		if err != nil {
			return nil, err
		}
		bars.Color = c

		if opts.Stacked {
			if below != nil {
				bars.StackOn(below)
			}
			below = bars
		} else if groups > 1 {
			bars.Offset = barWidth * vg.Length(2*j-groups+1) / 2
		}

		p.Add(bars)
		if groups > 1 {
			p.Legend.Add(column, bars)
		}
	}

	p.Legend.Top = true
	p.Legend.Left = true

	p.NominalX(table.Labels()...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return p, nil
}

func columnColor(colors []string, j int) (color.Color, error) {
	if j < len(colors) && colors[j] != "" {
		c, err := colorful.Hex(colors[j])
		if err != nil {
			return nil, goerr.Wrap(err, "invalid bar color", goerr.V("color", colors[j]))
		}
		return c, nil
	}
	return plotutil.Color(j), nil
}
