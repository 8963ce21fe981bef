// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mutinfo implements an estimator of the mutual information
// between two angular coordinates
// using a weighted 2D histogram.
//
// All the quantities are in nats.
package mutinfo

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrZeroEntropy is returned by Distance
// when the joint entropy is zero.
var ErrZeroEntropy = errors.New("undefined mutual information distance: zero joint entropy")

// MI returns the mutual information
// and the joint entropy
// of a set of weighted samples,
// estimated from a histogram of n x n bins
// over the observed range of each coordinate.
//
// If weights is nil,
// each sample has a weight of 1.
//
// If the samples have no weight,
// or all the weight is in a single bin,
// it returns 0 for both values.
func MI(x, y []float64, n int, weights []float64) (mi, h float64, err error) {
	hist, err := NewHist2D(DataBounds(x, y), n, n)
	if err != nil {
		return 0, 0, err
	}
	if err := hist.Fill(x, y, weights); err != nil {
		return 0, 0, err
	}
	if math.IsInf(floats.Max(hist.w), 0) {
		return 0, 0, errors.New("bin weight overflow")
	}
	mi, h = hist.MI()
	return mi, h, nil
}

// MI returns the mutual information
// and the joint entropy
// of the histogram.
func (h *Hist2D) MI() (mi, entropy float64) {
	p, ok := h.PMF()
	if !ok {
		return 0, 0
	}

	px := make([]float64, h.nx)
	py := make([]float64, h.ny)
	for i := 0; i < h.nx; i++ {
		for j := 0; j < h.ny; j++ {
			v := p[i*h.ny+j]
			px[i] += v
			py[j] += v
		}
	}

	for i := 0; i < h.nx; i++ {
		if px[i] <= 0 {
			continue
		}
		for j := 0; j < h.ny; j++ {
			v := p[i*h.ny+j]
			if v <= 0 || py[j] <= 0 {
				continue
			}
			mi += v * math.Log(v/(px[i]*py[j]))
		}
	}
	entropy = stat.Entropy(p)

	// round-off might produce values
	// slightly outside the valid range
	if mi < 0 {
		mi = 0
	}
	if mi > entropy {
		mi = entropy
	}
	return mi, entropy
}

// Distance returns the mutual information
// normalized by the joint entropy.
// If the entropy is zero,
// it returns ErrZeroEntropy.
func Distance(mi, h float64) (float64, error) {
	if h <= 0 {
		return 0, ErrZeroEntropy
	}
	return mi / h, nil
}
