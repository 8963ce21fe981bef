// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package skyplot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// degreeTicks are ticks for angles in degrees
// with labeled major ticks every step degrees,
// and minor ticks every minor degrees.
type degreeTicks struct {
	step  float64
	minor float64
}

func (d degreeTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/d.minor) * d.minor
	for v := start; v <= max+1e-9; v += d.minor {
		t := plot.Tick{Value: v}
		if r := math.Mod(math.Abs(v), d.step); r < 1e-9 || d.step-r < 1e-9 {
			t.Label = strconv.FormatFloat(v, 'f', -1, 64)
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// hiddenTicks are ticks
// without labels.
type hiddenTicks struct {
	plot.Ticker
}

func (h hiddenTicks) Ticks(min, max float64) []plot.Tick {
	ticks := h.Ticker.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
}
