// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package skymap implements probability sky maps
// defined on a HEALPix pixelation.
package skymap

import (
	"fmt"
	"math"

	"github.com/js-arias/skyframe/healpix"
	"gonum.org/v1/gonum/floats"
)

// A Map is a sky map
// that stores a probability density for each pixel
// of a HEALPix pixelation.
type Map struct {
	pix  *healpix.Pixelation
	prob []float64
}

// New returns an empty map
// for the given resolution and ordering.
func New(nside int, order healpix.Ordering) (*Map, error) {
	pix, err := healpix.New(nside, order)
	if err != nil {
		return nil, err
	}
	return &Map{
		pix:  pix,
		prob: make([]float64, pix.Len()),
	}, nil
}

// FromValues returns a map that uses the given values.
// The resolution is derived from the number of values.
func FromValues(values []float64, order healpix.Ordering) (*Map, error) {
	nside, err := healpix.NpixToNside(len(values))
	if err != nil {
		return nil, err
	}
	pix, err := healpix.New(nside, order)
	if err != nil {
		return nil, err
	}
	return &Map{
		pix:  pix,
		prob: values,
	}, nil
}

// Nside returns the resolution parameter of the map.
func (m *Map) Nside() int { return m.pix.Nside() }

// Len returns the number of pixels of the map.
func (m *Map) Len() int { return m.pix.Len() }

// Ordering returns the numbering scheme of the map pixels.
func (m *Map) Ordering() healpix.Ordering { return m.pix.Ordering() }

// Prob returns the density of a pixel.
func (m *Map) Prob(px int) float64 { return m.prob[px] }

// Set sets the density of a pixel.
func (m *Map) Set(px int, p float64) error {
	if px < 0 || px >= len(m.prob) {
		return fmt.Errorf("pixel %d out of range [0, %d)", px, len(m.prob))
	}
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("pixel %d: invalid density %v", px, p)
	}
	m.prob[px] = p
	return nil
}

// Values returns the densities of the map,
// indexed by pixel.
// The returned slice should not be modified.
func (m *Map) Values() []float64 { return m.prob }

// Sum returns the sum of the densities of all pixels.
func (m *Map) Sum() float64 { return floats.Sum(m.prob) }

// Directions returns the colatitude and longitude
// (in radians)
// of each pixel of the map.
// Longitudes are in [-π, π).
func (m *Map) Directions() (theta, phi []float64) {
	n := m.pix.Len()
	theta = make([]float64, n)
	phi = make([]float64, n)
	for px := 0; px < n; px++ {
		t, p := m.pix.Angles(px)
		if p >= math.Pi {
			p -= 2 * math.Pi
		}
		theta[px] = t
		phi[px] = p
	}
	return theta, phi
}
