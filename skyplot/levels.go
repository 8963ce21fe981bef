// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package skyplot

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// DefaultLevels are the credible levels
// used by default in contours.
var DefaultLevels = []float64{0.1, 0.5, 0.9}

// CredibleLevels returns the density thresholds
// of the highest density regions
// that enclose the given fractions
// of the total weight of the values.
//
// For each probability p,
// the region of the values greater or equal
// than the returned threshold
// is the smallest region
// that contains at least p of the weight.
func CredibleLevels(values, probs []float64) []float64 {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	slices.Sort(sorted)
	slices.Reverse(sorted)

	cum := make([]float64, len(sorted))
	floats.CumSum(cum, sorted)
	total := cum[len(cum)-1]

	levels := make([]float64, 0, len(probs))
	for _, p := range probs {
		i, _ := slices.BinarySearch(cum, p*total)
		if i >= len(sorted) {
			i = len(sorted) - 1
		}
		levels = append(levels, sorted[i])
	}
	return levels
}

// ParseLevels parses a comma separated list
// of credible probabilities.
func ParseLevels(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return slices.Clone(DefaultLevels), nil
	}
	var levels []float64
	for _, f := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid level %q: %v", f, err)
		}
		if v <= 0 || v >= 1 {
			return nil, fmt.Errorf("invalid level %q: must be between 0 and 1", f)
		}
		levels = append(levels, v)
	}
	slices.Sort(levels)
	return slices.Compact(levels), nil
}
