// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sanity implements the sanity check
// of a set of sky maps
// in a reference frame defined by a pole.
//
// For each map,
// the pixels are rotated to the frame,
// the mutual information between the colatitude
// and the longitude of the frame is optionally reported,
// and a figure of the map in the frame is saved.
package sanity

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/js-arias/skyframe/colorkey"
	"github.com/js-arias/skyframe/frame"
	"github.com/js-arias/skyframe/mutinfo"
	"github.com/js-arias/skyframe/skymap"
	"github.com/js-arias/skyframe/skyplot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
)

// A Frame is a reference frame
// defined by its north pole.
type Frame struct {
	// Name of the frame,
	// used as the prefix of the output files.
	Name string

	Pole frame.Direction
}

// Config contains the options of a sanity check.
type Config struct {
	// Output directory
	Dir string

	// Tag added to the output file names
	Tag string

	// Image formats
	Formats []string

	// Resolution of raster images
	DPI int

	// Figure size
	Width, Height vg.Length

	// Figure options
	Log     bool
	Contour bool
	Levels  []float64
	Palette palette.Palette

	// If Stack is true,
	// all maps are drawn in a single figure,
	// using the colors defined in Keys,
	// and the given opacity.
	Stack bool
	Alpha float64
	Keys  *colorkey.Key

	// If MI is true,
	// the mutual information distance of each map
	// is written in Out.
	MI  bool
	Out io.Writer

	// Warnings are written in Warn,
	// and progress messages in Verbose.
	// Both can be nil.
	Warn    io.Writer
	Verbose io.Writer
}

// FigureName returns the name of the figure file
// of a map in a frame.
func FigureName(dir, frame, tag, label, format string) string {
	name := frame + "_" + label
	if tag != "" {
		name = frame + "_" + tag + "_" + label
	}
	return filepath.Join(dir, name+"."+format)
}

// StackedName returns the name of the figure file
// with all maps stacked in a frame.
func StackedName(dir, frame, tag, format string) string {
	name := frame + "_stacked"
	if tag != "" {
		name += "_" + tag
	}
	return filepath.Join(dir, name+"."+format)
}

// Rotate returns the colatitude and longitude
// of each pixel of a map
// in the frame defined by a pole.
func Rotate(m *skymap.Map, pole frame.Direction) (theta, phi []float64, err error) {
	t, p := m.Directions()
	return frame.Rotate2Pole(t, p, pole)
}

// MI returns the mutual information
// and the joint entropy
// of the colatitude and longitude
// of a map in a given frame.
func MI(m *skymap.Map, pole frame.Direction) (mi, h float64, err error) {
	theta, phi, err := Rotate(m, pole)
	if err != nil {
		return 0, 0, err
	}
	return mutinfo.MI(theta, phi, mutinfo.NumBins(m.Len()), m.Values())
}

// MapMI returns the mutual information
// and the joint entropy
// of a map in its own frame.
func MapMI(m *skymap.Map) (mi, h float64, err error) {
	theta, phi := m.Directions()
	return mutinfo.MI(theta, phi, mutinfo.NumBins(m.Len()), m.Values())
}

// WriteDistance writes the mutual information distance
// of a map.
// If the distance is undefined,
// it writes "undefined"
// and a warning is written in warn.
func WriteDistance(w, warn io.Writer, label string, mi, h float64) {
	d, err := mutinfo.Distance(mi, h)
	if errors.Is(err, mutinfo.ErrZeroEntropy) {
		fmt.Fprintf(w, "mutualinformationDistance(%s) : undefined\n", label)
		if warn != nil {
			fmt.Fprintf(warn, "WARNING: map %q: %v\n", label, err)
		}
		return
	}
	fmt.Fprintf(w, "mutualinformationDistance(%s) : %.6f\n", label, d)
}

func (cfg Config) figure() *skyplot.Figure {
	f := skyplot.New()
	f.Log = cfg.Log
	f.Contour = cfg.Contour
	if len(cfg.Levels) > 0 {
		f.Levels = cfg.Levels
	}
	f.Palette = cfg.Palette
	if cfg.Alpha > 0 {
		f.Alpha = cfg.Alpha
	}
	return f
}

func (cfg Config) verbose(format string, a ...any) {
	if cfg.Verbose == nil {
		return
	}
	fmt.Fprintf(cfg.Verbose, format, a...)
}

// Run runs the sanity check
// of a set of labeled maps in a frame.
// It returns the names of the saved files.
func Run(cfg Config, fr Frame, maps map[string]*skymap.Map) ([]string, error) {
	if len(cfg.Formats) == 0 {
		return nil, errors.New("undefined image format")
	}
	if cfg.MI && cfg.Out == nil {
		return nil, errors.New("undefined output for mutual information")
	}

	labels := make([]string, 0, len(maps))
	for l := range maps {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	cfg.verbose("%s\n", fr.Name)

	var files []string
	stack := cfg.figure()
	for i, label := range labels {
		m := maps[label]
		cfg.verbose("    %s\n", label)

		theta, phi, err := Rotate(m, fr.Pole)
		if err != nil {
			return files, fmt.Errorf("map %q: %v", label, err)
		}
		n := mutinfo.NumBins(m.Len())

		if cfg.MI {
			mi, h, err := mutinfo.MI(theta, phi, n, m.Values())
			if err != nil {
				return files, fmt.Errorf("map %q: %v", label, err)
			}
			WriteDistance(cfg.Out, cfg.Warn, label, mi, h)
		}

		hist, err := skyplot.Histogram(theta, phi, m.Values(), n)
		if err != nil {
			return files, fmt.Errorf("map %q: %v", label, err)
		}
		if hist.Total() <= 0 && cfg.Warn != nil {
			fmt.Fprintf(cfg.Warn, "WARNING: map %q: map without weight\n", label)
		}

		f := cfg.figure()
		f.Add(label, hist, skyplot.DefaultColor)
		for _, format := range cfg.Formats {
			name := FigureName(cfg.Dir, fr.Name, cfg.Tag, label, format)
			cfg.verbose("        %s\n", name)
			if err := f.Save(name, cfg.Width, cfg.Height, cfg.DPI); err != nil {
				return files, err
			}
			files = append(files, name)
		}

		if cfg.Stack {
			stack.Add(label, hist, cfg.Keys.Pick(label, i))
		}
	}

	if !cfg.Stack || stack.Len() == 0 {
		return files, nil
	}
	// a single map is drawn as contours
	// and labeled
	stack.Contour = true
	stack.Stack = true
	for _, format := range cfg.Formats {
		name := StackedName(cfg.Dir, fr.Name, cfg.Tag, format)
		cfg.verbose("    %s\n", name)
		if err := stack.Save(name, cfg.Width, cfg.Height, cfg.DPI); err != nil {
			return files, err
		}
		files = append(files, name)
	}
	return files, nil
}
