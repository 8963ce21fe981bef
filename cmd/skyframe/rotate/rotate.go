// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rotate implements a command to write
// the pixels of a sky map
// rotated to a given frame.
package rotate

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/skyframe/cmd/skyframe/internal/cli"
	"github.com/js-arias/skyframe/detector"
	"github.com/js-arias/skyframe/frame"
	"github.com/js-arias/skyframe/sanity"
	"github.com/js-arias/skyframe/skymap"
)

var Command = &command.Command{
	Usage: `rotate [--pole <theta,phi>] [--los <pair>] [--zenith <detector>]
	[--coord C|E] [--gps <time>] [--deg]
	[-o|--output <file>] <map>`,
	Short: "write the pixels of a sky map in a rotated frame",
	Long: `
Command rotate reads a sky map and writes the colatitude and longitude of each
pixel in the frame defined by a pole.

The argument of the command is the sky map file.

The pole can be set with one of the following flags. The flag --pole defines
the pole explicitly, as the colatitude and longitude in radians, separated by
a comma. The flag --los defines the pole as the line of sight between two
detectors, for example "HL". The flag --zenith defines the pole as the zenith
of a detector, for example "H". If the pole is defined by a detector, by
default it is given in celestial coordinates, and the time is given with the
flag --gps, as GPS seconds, or read from the standard input. Use the flag
--coord with the value "E" to use Earth-fixed coordinates.

The output is a tab-delimited table with the following columns:

	- pixel    the pixel ID in the map
	- theta    the colatitude of the pixel in the new frame
	- phi      the longitude of the pixel in the new frame, in [-pi, pi)
	- density  the value of the pixel in the map

Angles are in radians. Use the flag --deg to write the angles in degrees.

By default the table is written in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var degFlag bool
var poleFlag string
var losFlag string
var zenithFlag string
var coordFlag string
var gpsFlag float64
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&degFlag, "deg", false, "")
	c.Flags().StringVar(&poleFlag, "pole", "", "")
	c.Flags().StringVar(&losFlag, "los", "", "")
	c.Flags().StringVar(&zenithFlag, "zenith", "", "")
	c.Flags().StringVar(&coordFlag, "coord", "C", "")
	c.Flags().Float64Var(&gpsFlag, "gps", -1, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) != 1 {
		return c.UsageError("expecting a sky map file")
	}

	n := 0
	for _, f := range []string{poleFlag, losFlag, zenithFlag} {
		if f != "" {
			n++
		}
	}
	if n != 1 {
		return c.UsageError("expecting one of --pole, --los, or --zenith flags")
	}

	var pole frame.Direction
	switch {
	case poleFlag != "":
		pole, err = ParsePole(poleFlag)
		if err != nil {
			return c.UsageError(err.Error())
		}
	default:
		opts := cli.Options{Coord: coordFlag, GPS: gpsFlag}
		sys, t, err := opts.System(c.Stdin(), c.Stderr())
		if err != nil {
			return err
		}
		pole, err = detectorPole(sys, t)
		if err != nil {
			return err
		}
	}

	m, err := skymap.Read(args[0])
	if err != nil {
		return err
	}

	var w io.Writer = c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	if err := Write(w, m, pole, degFlag); err != nil {
		if output != "" {
			return fmt.Errorf("on file %q: %v", output, err)
		}
		return err
	}
	return nil
}

func detectorPole(sys detector.System, t time.Time) (frame.Direction, error) {
	if losFlag != "" {
		if len(losFlag) != 2 {
			return frame.Direction{}, fmt.Errorf("invalid detector pair %q", losFlag)
		}
		p, err := detector.LineOfSight(losFlag[:1], losFlag[1:], sys, t)
		if err != nil {
			return frame.Direction{}, err
		}
		return p.Direction, nil
	}
	p, err := detector.Zenith(zenithFlag, sys, t)
	if err != nil {
		return frame.Direction{}, err
	}
	return p.Direction, nil
}

// ParsePole parses a pole
// defined by a colatitude and a longitude
// in radians,
// separated by a comma.
func ParsePole(s string) (frame.Direction, error) {
	t, p, ok := strings.Cut(s, ",")
	if !ok {
		return frame.Direction{}, fmt.Errorf("invalid pole %q: expecting <theta,phi>", s)
	}
	theta, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil {
		return frame.Direction{}, fmt.Errorf("invalid pole %q: theta: %v", s, err)
	}
	if theta < 0 || theta > math.Pi {
		return frame.Direction{}, fmt.Errorf("invalid pole %q: theta out of range [0, pi]", s)
	}
	phi, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
	if err != nil {
		return frame.Direction{}, fmt.Errorf("invalid pole %q: phi: %v", s, err)
	}
	return frame.Direction{Theta: theta, Phi: phi}, nil
}

// Write writes the pixels of a map
// rotated to the frame of the pole
// as a tab-delimited table.
func Write(w io.Writer, m *skymap.Map, pole frame.Direction, deg bool) error {
	theta, phi, err := sanity.Rotate(m, pole)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"pixel", "theta", "phi", "density"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for px := range theta {
		t, p := theta[px], phi[px]
		if deg {
			t = t * 180 / math.Pi
			p = p * 180 / math.Pi
		}
		row := []string{
			strconv.Itoa(px),
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(p, 'f', 6, 64),
			strconv.FormatFloat(m.Prob(px), 'g', -1, 64),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
