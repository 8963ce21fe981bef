// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package los implements a command to check sky maps
// in the frame defined by the line of sight
// between two detectors.
package los

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/skyframe/cmd/skyframe/internal/cli"
	"github.com/js-arias/skyframe/detector"
	"github.com/js-arias/skyframe/sanity"
)

var Command = &command.Command{
	Usage: `los -p|--pair <pair>... ` + cli.FlagUsage + `
	<map>...`,
	Short: "check sky maps in a line of sight frame",
	Long: `
Command los reads one or more sky maps, rotates them to the frame in which
the north pole is the line of sight between two detectors, and draws each map
in the new frame. A well behaved map of a source detected by both detectors
is expected to show a ring-like structure around the line of sight, so the
density will be independent of the longitude of the frame.

The arguments of the command are the sky maps to be checked. Each argument
can be a label and a map file separated by a comma, for example
"bayestar,bayestar.fits.gz", a single map file, in which case the label will
be the file name, or a project file (see 'skyframe help projects').

The flag --pair, or -p, is required and defines the pair of detectors. Each
pair is defined by two detector codes, for example "HL" for LIGO Hanford and
LIGO Livingston. The flag can be given several times, or as a list separated
by commas. Valid detector codes are G (GEO600), H (LIGO Hanford), I (LIGO
India), K (KAGRA), L (LIGO Livingston), and V (Virgo). See 'skyframe help
frames' for details on the frames.
` + cli.FlagHelp,
	SetFlags: setFlags,
	Run:      run,
}

var pairs cli.List
var opts cli.Options

func setFlags(c *command.Command) {
	c.Flags().Var(&pairs, "pair", "")
	c.Flags().Var(&pairs, "p", "")
	opts.SetFlags(c)
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting one or more sky maps")
	}
	if len(pairs) == 0 {
		return c.UsageError("expecting --pair flag")
	}

	type pair struct{ a, b string }
	var ps []pair
	for _, p := range pairs {
		if len(p) != 2 {
			return c.UsageError(fmt.Sprintf("invalid detector pair %q", p))
		}
		for _, d := range []string{p[:1], p[1:]} {
			if _, err := detector.Lookup(d); err != nil {
				return c.UsageError(fmt.Sprintf("pair %q: %v", p, err))
			}
		}
		ps = append(ps, pair{a: p[:1], b: p[1:]})
	}

	sys, t, err := opts.System(c.Stdin(), c.Stderr())
	if err != nil {
		return err
	}
	cfg, err := opts.Config(c.Stdout(), c.Stderr())
	if err != nil {
		return err
	}

	maps, err := cli.ReadMaps(args)
	if err != nil {
		return err
	}

	for _, p := range ps {
		pole, err := detector.LineOfSight(p.a, p.b, sys, t)
		if err != nil {
			return err
		}
		fr := sanity.Frame{
			Name: pole.Name,
			Pole: pole.Direction,
		}
		if _, err := sanity.Run(cfg, fr, maps); err != nil {
			return fmt.Errorf("frame %s: %v", fr.Name, err)
		}
	}
	return nil
}
