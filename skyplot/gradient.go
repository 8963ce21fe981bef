// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package skyplot

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/js-arias/blind"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// GrayScale returns a gray scale
// between 230 (light gray)
// and 0 (black).
type GrayScale struct{}

func (g GrayScale) Gradient(v float64) color.Color {
	c := 230 - uint8(clamp(v)*230)
	return color.RGBA{c, c, c, 255}
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

// gradientPalette is a palette
// sampled from a gradient.
type gradientPalette []color.Color

func (g gradientPalette) Colors() []color.Color { return g }

// NewPalette returns a palette of n colors
// sampled at regular intervals of a gradient.
func NewPalette(g Gradienter, n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	p := make(gradientPalette, n)
	for i := range p {
		p[i] = g.Gradient(float64(i) / float64(n-1))
	}
	return p
}

// DefaultScale is the color scale used by default
// in heat maps.
const DefaultScale = "iridescent"

// Scales returns the names of the valid color scales.
func Scales() []string {
	return []string{
		"blackbody",
		"bluered",
		"extended",
		"gray",
		"heat",
		"incandescent",
		"iridescent",
		"kindlmann",
		"rainbow",
	}
}

// Scale returns a palette of n colors
// for the color scale with the given name.
func Scale(name string, n int) (palette.Palette, error) {
	if n < 2 {
		n = 2
	}
	switch strings.ToLower(name) {
	case "", "iridescent":
		return NewPalette(Iridescent{}, n), nil
	case "incandescent":
		return NewPalette(Incandescent{}, n), nil
	case "rainbow":
		return NewPalette(RainbowPurpleToRed{}, n), nil
	case "gray":
		return NewPalette(GrayScale{}, n), nil
	case "blackbody":
		return moreland.BlackBody().Palette(n), nil
	case "extended":
		return moreland.ExtendedBlackBody().Palette(n), nil
	case "kindlmann":
		return moreland.Kindlmann().Palette(n), nil
	case "bluered":
		return moreland.SmoothBlueRed().Palette(n), nil
	case "heat":
		return palette.Heat(n, 1), nil
	}
	return nil, fmt.Errorf("unknown color scale %q: valid scales are %s", name, strings.Join(Scales(), ", "))
}

// ValidScale returns true if name is a valid color scale.
func ValidScale(name string) bool {
	if name == "" {
		return true
	}
	return slices.Contains(Scales(), strings.ToLower(name))
}
