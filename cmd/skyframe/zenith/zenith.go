// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package zenith implements a command to check sky maps
// in the frame defined by the zenith of a detector.
package zenith

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/skyframe/cmd/skyframe/internal/cli"
	"github.com/js-arias/skyframe/detector"
	"github.com/js-arias/skyframe/sanity"
)

var Command = &command.Command{
	Usage: `zenith -s|--site <detector>... ` + cli.FlagUsage + `
	<map>...`,
	Short: "check sky maps in a detector zenith frame",
	Long: `
Command zenith reads one or more sky maps, rotates them to the frame in which
the north pole is the zenith of a detector, and draws each map in the new
frame.

The arguments of the command are the sky maps to be checked. Each argument
can be a label and a map file separated by a comma, for example
"bayestar,bayestar.fits.gz", a single map file, in which case the label will
be the file name, or a project file (see 'skyframe help projects').

The flag --site, or -s, is required and defines the detector code. The flag
can be given several times, or as a list separated by commas. Valid detector
codes are G (GEO600), H (LIGO Hanford), I (LIGO India), K (KAGRA), L (LIGO
Livingston), and V (Virgo). See 'skyframe help frames' for details on the
frames.
` + cli.FlagHelp,
	SetFlags: setFlags,
	Run:      run,
}

var sites cli.List
var opts cli.Options

func setFlags(c *command.Command) {
	c.Flags().Var(&sites, "site", "")
	c.Flags().Var(&sites, "s", "")
	opts.SetFlags(c)
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting one or more sky maps")
	}
	if len(sites) == 0 {
		return c.UsageError("expecting --site flag")
	}
	for _, s := range sites {
		if _, err := detector.Lookup(s); err != nil {
			return c.UsageError(err.Error())
		}
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

	for _, s := range sites {
		pole, err := detector.Zenith(s, sys, t)
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
