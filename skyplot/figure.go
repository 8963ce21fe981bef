// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package skyplot implements figures
// of the distribution of a sky map
// in a rotated reference frame,
// as a 2D histogram of the colatitude and longitude
// with the marginal projections of each coordinate.
package skyplot

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/js-arias/skyframe/mutinfo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Histogram returns a histogram of n x n bins
// over the whole sphere,
// with the colatitude in the X axis,
// and the longitude in the Y axis.
func Histogram(theta, phi, weights []float64, n int) (*mutinfo.Hist2D, error) {
	h, err := mutinfo.NewHist2D(mutinfo.SkyBounds(), n, n)
	if err != nil {
		return nil, err
	}
	if err := h.Fill(theta, phi, weights); err != nil {
		return nil, err
	}
	return h, nil
}

// DefaultColor is the color used for contours
// and projections of a single map.
var DefaultColor color.Color = color.RGBA{B: 255, A: 255}

// A layer is a histogram drawn on a figure.
type layer struct {
	label string
	h     *mutinfo.Hist2D
	color color.Color
}

// Figure is a figure with a 2D histogram of a sky map,
// and the marginal projections of the colatitude
// (at the right)
// and the longitude
// (at the top).
type Figure struct {
	// If Log is true,
	// the densities are shown in a logarithmic scale.
	Log bool

	// If Contour is true,
	// the 2D histogram is drawn using contours
	// instead of a heat map.
	Contour bool

	// Levels are the credible probabilities
	// used for the contours.
	Levels []float64

	// Palette used for heat maps.
	Palette palette.Palette

	// Alpha is the opacity of the layers
	// in a stacked figure.
	Alpha float64

	// If Stack is true,
	// the figure is drawn as a stacked figure
	// even if it has a single histogram.
	Stack bool

	layers []layer
}

// New returns a new empty figure.
func New() *Figure {
	return &Figure{
		Levels: DefaultLevels,
		Alpha:  1,
	}
}

// Add adds a histogram to the figure.
// If more than one histogram is added,
// the figure is a stacked figure,
// in which each histogram is drawn as contours
// using its own color.
func (f *Figure) Add(label string, h *mutinfo.Hist2D, c color.Color) {
	if c == nil {
		c = DefaultColor
	}
	f.layers = append(f.layers, layer{
		label: label,
		h:     h,
		color: c,
	})
}

// Len returns the number of histograms in the figure.
func (f *Figure) Len() int { return len(f.layers) }

func (f *Figure) stacked() bool { return f.Stack || len(f.layers) > 1 }

// Layout of the figure,
// as fractions of the canvas:
// left, bottom, width, height.
var (
	mainPanel  = [4]float64{0.10, 0.10, 0.65, 0.55}
	rightPanel = [4]float64{0.76, 0.10, 0.19, 0.55}
	topPanel   = [4]float64{0.10, 0.66, 0.65, 0.29}
	keyPanel   = [4]float64{0.76, 0.66, 0.19, 0.29}
)

func panel(c draw.Canvas, r [4]float64) draw.Canvas {
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	min := vg.Point{
		X: c.Min.X + vg.Length(r[0])*w,
		Y: c.Min.Y + vg.Length(r[1])*h,
	}
	return draw.Canvas{
		Canvas: c.Canvas,
		Rectangle: vg.Rectangle{
			Min: min,
			Max: vg.Point{
				X: min.X + vg.Length(r[2])*w,
				Y: min.Y + vg.Length(r[3])*h,
			},
		},
	}
}

// Draw draws the figure in a canvas.
func (f *Figure) Draw(c draw.Canvas) error {
	if len(f.layers) == 0 {
		return errors.New("empty figure")
	}

	main, err := f.mainPlot()
	if err != nil {
		return err
	}
	right, err := f.thetaPlot()
	if err != nil {
		return err
	}
	top, err := f.phiPlot()
	if err != nil {
		return err
	}

	mc := panel(c, mainPanel)
	data := main.DataCanvas(mc)
	main.Draw(mc)
	right.Draw(alignY(right, panel(c, rightPanel), data))
	top.Draw(alignX(top, panel(c, topPanel), data))

	if f.stacked() {
		l := plot.NewLegend()
		l.Top = true
		for _, ly := range f.layers {
			l.Add(ly.label, lineThumb{draw.LineStyle{
				Color: withAlpha(ly.color, f.Alpha),
				Width: vg.Points(1.5),
			}})
		}
		l.Draw(panel(c, keyPanel))
	}
	return nil
}

// alignX returns a canvas
// in which the data area of a plot
// is aligned horizontally with a data canvas.
func alignX(p *plot.Plot, c, data draw.Canvas) draw.Canvas {
	dc := p.DataCanvas(c)
	c.Min.X += data.Min.X - dc.Min.X
	c.Max.X += data.Max.X - dc.Max.X
	return c
}

// alignY returns a canvas
// in which the data area of a plot
// is aligned vertically with a data canvas.
func alignY(p *plot.Plot, c, data draw.Canvas) draw.Canvas {
	dc := p.DataCanvas(c)
	c.Min.Y += data.Min.Y - dc.Min.Y
	c.Max.Y += data.Max.Y - dc.Max.Y
	return c
}

func (f *Figure) mainPlot() (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "φ (deg)"
	p.X.Min = -180
	p.X.Max = 180
	p.X.Tick.Marker = degreeTicks{step: 60, minor: 10}
	p.Y.Label.Text = "θ (deg)"
	p.Y.Min = 0
	p.Y.Max = 180
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Y.Tick.Marker = degreeTicks{step: 30, minor: 5}

	if !f.stacked() && !f.Contour {
		ly := f.layers[0]
		if ly.h.Total() <= 0 {
			return p, nil
		}
		pal := f.Palette
		if pal == nil {
			var err error
			pal, err = Scale(DefaultScale, 255)
			if err != nil {
				return nil, err
			}
		}
		hm := plotter.NewHeatMap(newGrid(ly.h, f.Log), pal)
		if hm.Min == hm.Max {
			// a single value is drawn with the top color
			hm.Min--
		}
		p.Add(hm)
		return p, nil
	}

	alpha := 1.0
	if f.stacked() {
		alpha = f.Alpha
	}
	for _, ly := range f.layers {
		g := newGrid(ly.h, false)
		levels := CredibleLevels(g.values(), f.Levels)
		if len(levels) == 0 {
			continue
		}
		ct := plotter.NewContour(g, levels, nil)
		ct.LineStyles = []draw.LineStyle{{
			Color: withAlpha(ly.color, alpha),
			Width: vg.Points(1),
		}}
		p.Add(ct)
	}
	return p, nil
}

// thetaPlot returns the plot of the colatitude projection.
func (f *Figure) thetaPlot() (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "p(θ)"
	p.Y.Min = 0
	p.Y.Max = 180
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Y.Tick.Marker = hiddenTicks{degreeTicks{step: 30, minor: 5}}

	var lines int
	var lr logRange
	b := mutinfo.SkyBounds()
	for _, ly := range f.layers {
		mx, _ := ly.h.Marginals()
		pts := stepXY(mx, ly.h.Total(), func(i int) (lo, hi float64) {
			return binEdges(ly.h.BinCenterX(i), (b.MaxX-b.MinX)/float64(len(mx)))
		}, f.Log)
		for i := range pts {
			pts[i].X, pts[i].Y = pts[i].Y, pts[i].X
			lr.add(pts[i].X)
		}
		ok, err := addLine(p, pts, ly.color, f.layerAlpha())
		if err != nil {
			return nil, fmt.Errorf("colatitude projection: %v", err)
		}
		if ok {
			lines++
		}
	}
	if f.Log && lines > 0 {
		p.X.Min, p.X.Max = lr.bounds()
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	return p, nil
}

// phiPlot returns the plot of the longitude projection.
func (f *Figure) phiPlot() (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = "p(φ)"
	p.X.Min = -180
	p.X.Max = 180
	p.X.Tick.Marker = hiddenTicks{degreeTicks{step: 60, minor: 10}}

	var lines int
	var lr logRange
	b := mutinfo.SkyBounds()
	for _, ly := range f.layers {
		_, my := ly.h.Marginals()
		pts := stepXY(my, ly.h.Total(), func(j int) (lo, hi float64) {
			return binEdges(ly.h.BinCenterY(j), (b.MaxY-b.MinY)/float64(len(my)))
		}, f.Log)
		for _, pt := range pts {
			lr.add(pt.Y)
		}
		ok, err := addLine(p, pts, ly.color, f.layerAlpha())
		if err != nil {
			return nil, fmt.Errorf("longitude projection: %v", err)
		}
		if ok {
			lines++
		}
	}
	if f.Log && lines > 0 {
		p.Y.Min, p.Y.Max = lr.bounds()
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	return p, nil
}

// logRange is the range of the positive values
// of a log axis.
type logRange struct {
	min, max float64
}

func (lr *logRange) add(v float64) {
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return
	}
	if lr.min == 0 || v < lr.min {
		lr.min = v
	}
	if v > lr.max {
		lr.max = v
	}
}

// bounds returns the axis bounds.
// If all values are equal,
// the range is widened by a factor of 10
// on each side.
func (lr *logRange) bounds() (min, max float64) {
	if lr.max <= 0 {
		return 0.1, 1
	}
	if lr.min == lr.max {
		return lr.min / 10, lr.max * 10
	}
	return lr.min, lr.max
}

func (f *Figure) layerAlpha() float64 {
	if f.stacked() {
		return f.Alpha
	}
	return 1
}

func binEdges(center, width float64) (lo, hi float64) {
	return deg(center - width/2), deg(center + width/2)
}

// stepXY returns the points of a step line
// of a marginal distribution,
// normalized by total.
// In log scale, empty bins are skipped.
func stepXY(m []float64, total float64, edges func(i int) (lo, hi float64), log bool) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(m))
	if total <= 0 {
		return pts
	}
	for i, v := range m {
		v /= total
		if log && v <= 0 {
			continue
		}
		lo, hi := edges(i)
		pts = append(pts, plotter.XY{X: lo, Y: v}, plotter.XY{X: hi, Y: v})
	}
	return pts
}

// addLine adds a line to a plot.
// It returns false if there are no points.
func addLine(p *plot.Plot, pts plotter.XYs, c color.Color, alpha float64) (bool, error) {
	if len(pts) == 0 {
		return false, nil
	}
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return false, err
	}
	ln.LineStyle.Color = withAlpha(c, alpha)
	ln.LineStyle.Width = vg.Points(1)
	p.Add(ln)
	return true, nil
}

func withAlpha(c color.Color, alpha float64) color.Color {
	if alpha >= 1 || alpha < 0 {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * alpha)
	return n
}

func deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// grid is a plotter.GridXYZ
// of a sky histogram,
// with the longitude in the columns,
// and the colatitude in the rows,
// in degrees.
type grid struct {
	h   *mutinfo.Hist2D
	tot float64
	log bool
}

func newGrid(h *mutinfo.Hist2D, log bool) grid {
	return grid{
		h:   h,
		tot: h.Total(),
		log: log,
	}
}

func (g grid) Dims() (c, r int) {
	nx, ny := g.h.Dims()
	return ny, nx
}

func (g grid) X(c int) float64 { return deg(g.h.BinCenterY(c)) }
func (g grid) Y(r int) float64 { return deg(g.h.BinCenterX(r)) }

func (g grid) Z(c, r int) float64 {
	if g.tot <= 0 {
		return 0
	}
	v := g.h.At(r, c) / g.tot
	if !g.log {
		return v
	}
	if v <= 0 {
		return math.NaN()
	}
	return math.Log10(v)
}

// values returns the value of all cells.
func (g grid) values() []float64 {
	c, r := g.Dims()
	v := make([]float64, 0, c*r)
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			v = append(v, g.Z(i, j))
		}
	}
	return v
}

// lineThumb is a legend thumbnail
// for a line.
type lineThumb struct {
	style draw.LineStyle
}

func (l lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(l.style, c.Min.X, y, c.Max.X, y)
}
