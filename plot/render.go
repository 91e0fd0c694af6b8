// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package plot renders trigger scatter and tile plots with gonum/plot and
// go-hep's hplot.
package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"sort"

	"github.com/gwdetchar/gwtrig/model/trigger"
	"github.com/gwdetchar/gwtrig/segments"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

var activeShade = color.RGBA{R: 0xdc, G: 0xf0, B: 0xdc, A: 0xff}

// Config describes one trigger plot.
type Config struct {
	Title       string
	XColumn     string // default "time"
	YColumn     string // default "frequency"
	ColorColumn string // default "snr", rank colored through the palette
	Epoch       float64
	Start, Stop float64
	LogY        bool
	Active      segments.SegmentList // shaded under the data when non-nil
}

func (cfg *Config) fillDefaults() {
	if cfg.XColumn == "" {
		cfg.XColumn = "time"
	}
	if cfg.YColumn == "" {
		cfg.YColumn = "frequency"
	}
	if cfg.ColorColumn == "" {
		cfg.ColorColumn = "snr"
	}
	if cfg.Epoch == 0 {
		cfg.Epoch = cfg.Start
	}
}

func (cfg *Config) columnValue(t *trigger.Trigger, column string) (float64, error) {
	v, err := trigger.Column(t, column)
	if err != nil {
		return 0, err
	}
	if column == "time" {
		v -= cfg.Epoch
	}
	return v, nil
}

func (cfg *Config) axisLabel(column string) string {
	if column == "time" {
		return fmt.Sprintf("Time [s] from GPS %d", int64(cfg.Epoch))
	}
	return ColumnLabel(column)
}

// Scatter builds a scatter plot of triggers, one glyph per trigger, colored
// by the rank column.
func Scatter(cfg Config, trigs []*trigger.Trigger) (*plot.Plot, error) {
	cfg.fillDefaults()

	xs := make([]float64, 0, len(trigs))
	ys := make([]float64, 0, len(trigs))
	ranks := make([]float64, 0, len(trigs))
	for _, t := range trigs {
		x, err := cfg.columnValue(t, cfg.XColumn)
		if err != nil {
			return nil, err
		}
		y, err := cfg.columnValue(t, cfg.YColumn)
		if err != nil {
			return nil, err
		}
		rank, err := cfg.columnValue(t, cfg.ColorColumn)
		if err != nil {
			return nil, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
		ranks = append(ranks, rank)
	}

	p, err := newTriggerPlot(&cfg, ys)
	if err != nil {
		return nil, err
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}

	colors := moreland.Kindlmann().Palette(256).Colors()
	rankMin, rankMax := rankRange(ranks)
	scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		frac := 0.0
		if rankMax > rankMin {
			frac = (ranks[i] - rankMin) / (rankMax - rankMin)
		}
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		return draw.GlyphStyle{
			Color:  colors[int(frac*float64(len(colors)-1))],
			Radius: 1.5,
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(scatter)

	return p, nil
}

// rankRange clamps the color range at the 98th percentile so a single loud
// trigger does not wash out the palette.
func rankRange(ranks []float64) (min, max float64) {
	if len(ranks) == 0 {
		return 0, 1
	}
	sorted := append([]float64{}, ranks...)
	sort.Float64s(sorted)
	return sorted[0], stat.Quantile(0.98, stat.Empirical, sorted, nil)
}

// Tile builds a time-frequency density plot: a 2D histogram filled with the
// rank column as weight.
func Tile(cfg Config, trigs []*trigger.Trigger, nx, ny int) (*plot.Plot, error) {
	cfg.fillDefaults()
	if nx == 0 {
		nx = 100
	}
	if ny == 0 {
		ny = 50
	}

	ymin, ymax := math.Inf(1), math.Inf(-1)
	type filled struct{ x, y, w float64 }
	cells := make([]filled, 0, len(trigs))
	for _, t := range trigs {
		x, err := cfg.columnValue(t, cfg.XColumn)
		if err != nil {
			return nil, err
		}
		y, err := cfg.columnValue(t, cfg.YColumn)
		if err != nil {
			return nil, err
		}
		w, err := cfg.columnValue(t, cfg.ColorColumn)
		if err != nil {
			return nil, err
		}
		if cfg.LogY {
			y = Log10Min1(y)
		}
		if y < ymin {
			ymin = y
		}
		if y > ymax {
			ymax = y
		}
		cells = append(cells, filled{x, y, w})
	}
	if ymin >= ymax {
		ymin, ymax = 0, 1
	}

	xmin, xmax := cfg.Start-cfg.Epoch, cfg.Stop-cfg.Epoch
	if xmax <= xmin {
		xmax = xmin + 1
	}
	hb := hbook.NewH2D(nx, xmin, xmax, ny, ymin, ymax)
	for _, c := range cells {
		hb.Fill(c.x, c.y, c.w)
	}

	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.axisLabel(cfg.XColumn)
	if cfg.LogY {
		p.Y.Label.Text = "log10 " + cfg.axisLabel(cfg.YColumn)
	} else {
		p.Y.Label.Text = cfg.axisLabel(cfg.YColumn)
	}
	if cfg.XColumn == "time" {
		p.X.Tick.Marker = SpanTicks{}
	}

	hp := &hplot.Plot{
		Plot:  p,
		Style: hplot.DefaultStyle,
	}
	colorMap := moreland.Kindlmann()
	hp.Add(hplot.NewH2D(hb, colorMap.Palette(1000)))
	hp.Add(hplot.NewGrid())

	return p, nil
}

// newTriggerPlot builds the axes frame shared by scatter plots, including
// segment shading.
func newTriggerPlot(cfg *Config, ys []float64) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = cfg.Title
	p.X.Label.Text = cfg.axisLabel(cfg.XColumn)
	p.Y.Label.Text = cfg.axisLabel(cfg.YColumn)

	if cfg.XColumn == "time" {
		p.X.Min = cfg.Start - cfg.Epoch
		p.X.Max = cfg.Stop - cfg.Epoch
		p.X.Tick.Marker = SpanTicks{}
	}

	ymin, ymax := yRange(ys, cfg.LogY)
	p.Y.Min = ymin
	p.Y.Max = ymax
	if cfg.LogY {
		p.Y.Scale = &FuncScale{Func: Log10Min1}
		p.Y.Tick.Marker = LogTicks{}
	}

	if cfg.XColumn == "time" {
		span := segments.SegmentList{{Start: cfg.Start, Stop: cfg.Stop}}
		for _, seg := range cfg.Active.Normalize().Intersect(span) {
			shade, err := plotter.NewPolygon(plotter.XYs{
				{X: seg.Start - cfg.Epoch, Y: ymin},
				{X: seg.Stop - cfg.Epoch, Y: ymin},
				{X: seg.Stop - cfg.Epoch, Y: ymax},
				{X: seg.Start - cfg.Epoch, Y: ymax},
			})
			if err != nil {
				return nil, err
			}
			shade.Color = activeShade
			shade.LineStyle.Color = color.Transparent
			p.Add(shade)
		}
	}

	return p, nil
}

func yRange(ys []float64, logY bool) (float64, float64) {
	if len(ys) == 0 {
		if logY {
			return 1, 1000
		}
		return 0, 1
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, y := range ys {
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	if logY {
		if min <= 0 {
			min = 1
		}
		return min / 2, max * 2
	}
	pad := (max - min) * 0.05
	if pad == 0 {
		pad = 1
	}
	return min - pad, max + pad
}

// Render draws a plot onto a PNG or SVG canvas and returns the bytes.
func Render(p *plot.Plot, width, height vg.Length, format string) ([]byte, error) {
	buf := &bytes.Buffer{}
	switch format {
	case "png":
		img := vgimg.New(width, height)
		c := draw.New(img)
		p.Draw(c)
		encoder := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := encoder.Encode(buf, img.Image()); err != nil {
			return nil, err
		}
	case "svg":
		svg := vgsvg.New(width, height)
		c := draw.New(svg)
		p.Draw(c)
		if _, err := svg.WriteTo(buf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown plot format %q", format)
	}
	return buf.Bytes(), nil
}
