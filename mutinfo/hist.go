// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mutinfo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// NumBins returns the number of bins per axis
// used to integrate a map with npix pixels.
func NumBins(npix int) int {
	n := int(math.Sqrt(float64(npix)) / 5)
	if n < 100 {
		return 100
	}
	return n
}

// Bounds is the region covered by a 2D histogram.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// SkyBounds returns the bounds of the sphere
// with colatitude in the X axis
// and longitude in the Y axis.
func SkyBounds() Bounds {
	return Bounds{
		MinX: 0,
		MaxX: math.Pi,
		MinY: -math.Pi,
		MaxY: math.Pi,
	}
}

// DataBounds returns the bounds
// of the observed values.
// If all the values of an axis are equal
// the range is expanded by 0.5 on each side.
func DataBounds(x, y []float64) Bounds {
	minX, maxX := span(x)
	minY, maxY := span(y)
	return Bounds{
		MinX: minX,
		MaxX: maxX,
		MinY: minY,
		MaxY: maxY,
	}
}

func span(v []float64) (min, max float64) {
	if len(v) == 0 {
		return 0, 1
	}
	min, max = floats.Min(v), floats.Max(v)
	if min == max {
		min -= 0.5
		max += 0.5
	}
	return min, max
}

// Hist2D is a weighted 2D histogram
// with equally sized bins.
type Hist2D struct {
	b      Bounds
	nx, ny int

	// bin weights,
	// row-major by X
	w []float64
}

// NewHist2D returns an empty histogram
// with nx bins in the X axis
// and ny bins in the Y axis.
func NewHist2D(b Bounds, nx, ny int) (*Hist2D, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("invalid number of bins %dx%d", nx, ny)
	}
	if !(b.MaxX > b.MinX) || !(b.MaxY > b.MinY) {
		return nil, fmt.Errorf("invalid histogram bounds %+v", b)
	}
	return &Hist2D{
		b:  b,
		nx: nx,
		ny: ny,
		w:  make([]float64, nx*ny),
	}, nil
}

// Dims returns the number of bins in each axis.
func (h *Hist2D) Dims() (nx, ny int) { return h.nx, h.ny }

// Bounds returns the region covered by the histogram.
func (h *Hist2D) Bounds() Bounds { return h.b }

// bin returns the bin of a value.
// The last bin is closed.
func bin(v, min, max float64, n int) (int, bool) {
	if v < min || v > max || math.IsNaN(v) {
		return 0, false
	}
	i := int((v - min) / (max - min) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i, true
}

// Add adds a weighted value to the histogram.
// Values outside the histogram bounds are ignored,
// and it returns false.
func (h *Hist2D) Add(x, y, w float64) bool {
	i, ok := bin(x, h.b.MinX, h.b.MaxX, h.nx)
	if !ok {
		return false
	}
	j, ok := bin(y, h.b.MinY, h.b.MaxY, h.ny)
	if !ok {
		return false
	}
	h.w[i*h.ny+j] += w
	return true
}

// Fill adds a set of values to the histogram.
// If weights is nil,
// each value has a weight of 1.
func (h *Hist2D) Fill(x, y, weights []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("got %d X values and %d Y values", len(x), len(y))
	}
	if weights != nil && len(weights) != len(x) {
		return fmt.Errorf("got %d weights for %d values", len(weights), len(x))
	}
	for i := range x {
		w := 1.0
		if weights != nil {
			w = weights[i]
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return fmt.Errorf("value %d: invalid weight %v", i, w)
			}
		}
		h.Add(x[i], y[i], w)
	}
	return nil
}

// At returns the weight of a bin.
func (h *Hist2D) At(i, j int) float64 {
	return h.w[i*h.ny+j]
}

// Total returns the sum of all the weights in the histogram.
func (h *Hist2D) Total() float64 {
	return floats.Sum(h.w)
}

// BinCenterX returns the center of the bin i in the X axis.
func (h *Hist2D) BinCenterX(i int) float64 {
	step := (h.b.MaxX - h.b.MinX) / float64(h.nx)
	return h.b.MinX + (float64(i)+0.5)*step
}

// BinCenterY returns the center of the bin j in the Y axis.
func (h *Hist2D) BinCenterY(j int) float64 {
	step := (h.b.MaxY - h.b.MinY) / float64(h.ny)
	return h.b.MinY + (float64(j)+0.5)*step
}

// PMF returns the histogram normalized as a probability mass function,
// in row-major order by X.
// If the histogram is empty,
// or a bin weight is not finite,
// it returns false.
func (h *Hist2D) PMF() ([]float64, bool) {
	max := floats.Max(h.w)
	if max <= 0 || math.IsInf(max, 0) {
		return nil, false
	}

	// scaled by the largest bin
	// so the sum does not overflow
	p := make([]float64, len(h.w))
	floats.ScaleTo(p, 1/max, h.w)
	floats.Scale(1/floats.Sum(p), p)
	return p, true
}

// Marginals returns the sum of the weights
// for each bin of the X and Y axes.
func (h *Hist2D) Marginals() (mx, my []float64) {
	mx = make([]float64, h.nx)
	my = make([]float64, h.ny)
	for i := 0; i < h.nx; i++ {
		row := h.w[i*h.ny : (i+1)*h.ny]
		mx[i] = floats.Sum(row)
		floats.Add(my, row)
	}
	return mx, my
}
