// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package colorkey implements a simple color key
// for the labels of sky maps
// drawn in the same figure.
package colorkey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

// named colors,
// using single letter codes.
var named = map[string]color.RGBA{
	"b": {0, 0, 255, 255},
	"r": {255, 0, 0, 255},
	"g": {0, 128, 0, 255},
	"c": {0, 191, 191, 255},
	"m": {191, 0, 191, 255},
	"y": {191, 191, 0, 255},
	"k": {0, 0, 0, 255},
}

// cycle is the default color cycle.
var cycle = []string{"b", "r", "g", "c", "m", "y", "k"}

// Default returns the i-th color
// of the default color cycle.
func Default(i int) color.Color {
	if i < 0 {
		i = -i
	}
	return named[cycle[i%len(cycle)]]
}

// Key stores the color values
// for sky map labels.
type Key struct {
	color map[string]color.Color
}

// New returns an empty color key.
func New() *Key {
	return &Key{
		color: make(map[string]color.Color),
	}
}

// Color returns the color associated with a given label.
func (k *Key) Color(label string) (color.Color, bool) {
	if k == nil {
		return nil, false
	}
	c, ok := k.color[label]
	return c, ok
}

// Pick returns the color associated with a label,
// or the i-th color of the default cycle
// if the label is not defined.
func (k *Key) Pick(label string, i int) color.Color {
	if c, ok := k.Color(label); ok {
		return c
	}
	return Default(i)
}

// Set sets the color of a label.
func (k *Key) Set(label string, c color.Color) {
	k.color[label] = c
}

// ParseColor parses a color
// either defined as an RGB value separated by commas
// (for example "125,132,148")
// or a single letter code
// (b: blue, r: red, g: green, c: cyan, m: magenta, y: yellow, k: black).
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}

	val := strings.Split(s, ",")
	if len(val) != 3 {
		return nil, fmt.Errorf("found %d values, want 3", len(val))
	}
	var rgb [3]uint8
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.Atoi(strings.TrimSpace(val[i]))
		if err != nil {
			return nil, fmt.Errorf("[%s value]: %v", name, err)
		}
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("[%s value]: invalid value %d", name, v)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// Read reads a key file used to define the colors
// of the sky maps in a stacked figure.
//
// A key file is a tab-delimited file
// with the following required columns:
//
//	-label	the label of the sky map
//	-color	an RGB value separated by commas,
//		for example "125,132,148",
//		or a single letter color code.
//
// Any other columns, will be ignored.
// Here is an example of a key file:
//
//	label	color	comment
//	bayestar	0, 26, 51	low latency
//	lalinference	r	full parameter estimation
func Read(name string) (*Key, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	k, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return k, nil
}

func read(r io.Reader) (*Key, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"label", "color"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	k := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "label"
		label := strings.TrimSpace(row[fields[f]])
		if label == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty label", ln, f)
		}

		f = "color"
		c, err := ParseColor(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		k.color[label] = c
	}
	return k, nil
}
