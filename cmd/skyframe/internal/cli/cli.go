// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cli implements the flags and arguments
// shared by the skyframe commands
// that check sky maps in a reference frame.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/skyframe/colorkey"
	"github.com/js-arias/skyframe/detector"
	"github.com/js-arias/skyframe/project"
	"github.com/js-arias/skyframe/sanity"
	"github.com/js-arias/skyframe/skymap"
	"github.com/js-arias/skyframe/skyplot"
	"gonum.org/v1/plot/vg"
)

// List is a flag that can be set several times.
// Each value can also be a comma separated list.
type List []string

func (l *List) String() string {
	return strings.Join(*l, ",")
}

func (l *List) Set(s string) error {
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		*l = append(*l, v)
	}
	return nil
}

// Options are the options of a sanity check
// as set in the command line.
type Options struct {
	Coord   string
	GPS     float64
	MI      bool
	Log     bool
	Contour bool
	Levels  string
	Output  string
	Tag     string
	Formats List
	DPI     int
	Scale   string
	Stack   bool
	Alpha   float64
	Keys    string
	Width   float64
	Height  float64
	Verbose bool
}

// SetFlags sets the flags of the options
// in a command.
func (o *Options) SetFlags(c *command.Command) {
	c.Flags().StringVar(&o.Coord, "coord", "C", "")
	c.Flags().Float64Var(&o.GPS, "gps", -1, "")
	c.Flags().BoolVar(&o.MI, "mi", false, "")
	c.Flags().BoolVar(&o.Log, "log", false, "")
	c.Flags().BoolVar(&o.Contour, "contour", false, "")
	c.Flags().StringVar(&o.Levels, "levels", "", "")
	c.Flags().StringVar(&o.Output, "output", ".", "")
	c.Flags().StringVar(&o.Output, "o", ".", "")
	c.Flags().StringVar(&o.Tag, "tag", "", "")
	c.Flags().Var(&o.Formats, "format", "")
	c.Flags().IntVar(&o.DPI, "dpi", skyplot.DefaultDPI, "")
	c.Flags().StringVar(&o.Scale, "scale", skyplot.DefaultScale, "")
	c.Flags().BoolVar(&o.Stack, "stack", false, "")
	c.Flags().Float64Var(&o.Alpha, "stack-alpha", 0.6, "")
	c.Flags().StringVar(&o.Keys, "keys", "", "")
	c.Flags().Float64Var(&o.Width, "width", float64(skyplot.DefaultWidth/vg.Inch), "")
	c.Flags().Float64Var(&o.Height, "height", float64(skyplot.DefaultHeight/vg.Inch), "")
	c.Flags().BoolVar(&o.Verbose, "verbose", false, "")
	c.Flags().BoolVar(&o.Verbose, "v", false, "")
}

// FlagUsage is the usage line of the options flags.
const FlagUsage = `[--coord C|E] [--gps <time>] [--mi]
	[--log] [--contour] [--levels <values>]
	[--format <format>...] [--dpi <number>] [--scale <name>]
	[--width <inches>] [--height <inches>]
	[--stack] [--stack-alpha <value>] [--keys <key-file>]
	[-o|--output <dir>] [--tag <tag>] [-v|--verbose]`

// FlagHelp is the help text of the options flags.
const FlagHelp = `
By default the pole is given in celestial coordinates, so the time of the
event is required. Use the flag --gps to set the time as GPS seconds. If the
flag is not defined, the GPS time will be read from the standard input. Use
the flag --coord with the value "E" to use Earth-fixed coordinates, in which
case no time is required.

If the flag --mi is defined, the mutual information distance between the
colatitude and longitude of each map in the frame will be printed in the
standard output.

For each map, and each frame, a figure with the density of the map in the
frame is saved. The file name is the frame name, the tag (if defined with the
flag --tag), and the map label, for example "los-H-L_bayestar.png". Use the
flag --output, or -o, to set the output directory. By default the figure is
saved as a PNG image. Use the flag --format to set a different image format.
The flag can be given several times. Valid formats are eps, jpg, pdf, png,
svg, and tiff. By default the figures are 9 inches wide and 5 inches tall.
Use the flags --width and --height to change the size. Raster images use
500 dpi by default. Use --dpi to set a different resolution.

By default, the density is drawn as a heat map using the "iridescent" color
scale. Use the flag --scale to use a different color scale. Valid scales are:
bluered, blackbody, extended, gray, heat, incandescent, iridescent, kindlmann,
and rainbow. If the flag --contour is defined, the density will be drawn as
contours of credible regions. By default the 0.1, 0.5, and 0.9 regions are
drawn. Use the flag --levels to set different regions, as a list of values
separated by commas. If --log is defined, the density is drawn using a
logarithmic scale.

If the flag --stack is defined, all maps will be drawn as contours in a
single figure, with the name of the frame, the word "stacked", and the tag,
for example "los-H-L_stacked.png". Use --stack-alpha to set the opacity of
the contours. By default the colors are taken from a default cycle. Use the
flag --keys to define the colors with a color key file (see
'skyframe help color-keys').

If the flag --verbose, or -v, is defined, the name of each frame and saved
file will be printed in the standard error.
`

// System returns the coordinate system
// and the time of the event.
// If the system is celestial and the GPS time is undefined,
// the time is read from r.
func (o *Options) System(r io.Reader, prompt io.Writer) (detector.System, time.Time, error) {
	sys, err := detector.ParseSystem(o.Coord)
	if err != nil {
		return 0, time.Time{}, err
	}
	if sys == detector.Earth {
		return sys, time.Time{}, nil
	}

	gps := o.GPS
	if gps < 0 {
		gps, err = ReadGPS(r, prompt)
		if err != nil {
			return 0, time.Time{}, err
		}
	}
	return sys, detector.GPSTime(gps), nil
}

// ReadGPS reads a GPS time from r.
func ReadGPS(r io.Reader, prompt io.Writer) (float64, error) {
	if prompt != nil {
		fmt.Fprintf(prompt, "gps = ")
	}
	var gps float64
	if _, err := fmt.Fscan(bufio.NewReader(r), &gps); err != nil {
		return 0, fmt.Errorf("while reading GPS time: %v", err)
	}
	if gps < 0 {
		return 0, fmt.Errorf("invalid GPS time %.6f", gps)
	}
	return gps, nil
}

// Config returns the configuration of a sanity check.
func (o *Options) Config(stdout, stderr io.Writer) (sanity.Config, error) {
	formats := []string(o.Formats)
	if len(formats) == 0 {
		formats = []string{"png"}
	}
	for i, f := range formats {
		if !skyplot.ValidFormat(f) {
			return sanity.Config{}, fmt.Errorf("invalid image format %q", f)
		}
		formats[i] = strings.ToLower(strings.TrimPrefix(f, "."))
	}

	levels, err := skyplot.ParseLevels(o.Levels)
	if err != nil {
		return sanity.Config{}, err
	}
	pal, err := skyplot.Scale(o.Scale, 255)
	if err != nil {
		return sanity.Config{}, err
	}
	if o.Alpha <= 0 || o.Alpha > 1 {
		return sanity.Config{}, fmt.Errorf("invalid stack alpha %.6f: want a value in (0, 1]", o.Alpha)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return sanity.Config{}, fmt.Errorf("invalid figure size %.2fx%.2f", o.Width, o.Height)
	}

	var keys *colorkey.Key
	if o.Keys != "" {
		keys, err = colorkey.Read(o.Keys)
		if err != nil {
			return sanity.Config{}, err
		}
	}

	if o.Output != "" {
		if err := os.MkdirAll(o.Output, 0o755); err != nil {
			return sanity.Config{}, err
		}
	}

	cfg := sanity.Config{
		Dir:     o.Output,
		Tag:     o.Tag,
		Formats: formats,
		DPI:     o.DPI,
		Width:   vg.Length(o.Width) * vg.Inch,
		Height:  vg.Length(o.Height) * vg.Inch,
		Log:     o.Log,
		Contour: o.Contour,
		Levels:  levels,
		Palette: pal,
		Stack:   o.Stack,
		Alpha:   o.Alpha,
		Keys:    keys,
		MI:      o.MI,
		Out:     stdout,
		Warn:    stderr,
	}
	if o.Verbose {
		cfg.Verbose = stderr
	}
	return cfg, nil
}

// ReadMaps reads the sky maps given as arguments.
//
// An argument can be a label and a map file
// separated by a comma,
// for example "bayestar,bayestar.fits.gz",
// or a project file.
// If the argument is a single file
// that is not a project,
// it is read as a map
// using the file name as the label.
func ReadMaps(args []string) (map[string]*skymap.Map, error) {
	maps := make(map[string]*skymap.Map)
	add := func(label string, m *skymap.Map) error {
		if _, dup := maps[label]; dup {
			return fmt.Errorf("sky map %q already defined", label)
		}
		maps[label] = m
		return nil
	}

	for _, a := range args {
		if label, path, ok := strings.Cut(a, ","); ok {
			label = strings.TrimSpace(label)
			if label == "" {
				return nil, fmt.Errorf("argument %q: empty label", a)
			}
			m, err := skymap.Read(strings.TrimSpace(path))
			if err != nil {
				return nil, err
			}
			if err := add(label, m); err != nil {
				return nil, err
			}
			continue
		}

		if p, err := project.Read(a); err == nil {
			pm, err := p.Maps()
			if err != nil {
				return nil, err
			}
			for _, l := range p.Labels() {
				if err := add(l, pm[l]); err != nil {
					return nil, fmt.Errorf("project %q: %v", a, err)
				}
			}
			continue
		} else if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		m, err := skymap.Read(a)
		if err != nil {
			return nil, err
		}
		if err := add(Label(a), m); err != nil {
			return nil, err
		}
	}
	if len(maps) == 0 {
		return nil, errors.New("no sky maps")
	}
	return maps, nil
}

// Label returns the label of a map file
// from its file name.
func Label(name string) string {
	name = filepath.Base(name)
	for _, ext := range []string{".gz", ".zst"} {
		name = strings.TrimSuffix(name, ext)
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
