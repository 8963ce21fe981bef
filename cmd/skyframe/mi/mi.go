// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mi implements a command to print
// the mutual information distance
// of sky maps in their own frame.
package mi

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/skyframe/cmd/skyframe/internal/cli"
	"github.com/js-arias/skyframe/sanity"
)

var Command = &command.Command{
	Usage: "mi [--entropy] <map>...",
	Short: "print the mutual information distance of sky maps",
	Long: `
Command mi reads one or more sky maps and prints the mutual information
distance between the colatitude and the longitude of each map, in the frame
of the map. The distance is the mutual information divided by the joint
entropy, so it is a value between 0 (independent coordinates) and 1. If the
joint entropy is zero, for example if all the density is in a single bin,
the distance is undefined.

The arguments of the command are the sky maps. Each argument can be a label
and a map file separated by a comma, for example "bayestar,bayestar.fits.gz",
a single map file, in which case the label will be the file name, or a
project file (see 'skyframe help projects').

If the flag --entropy is defined, the mutual information and the joint
entropy (in nats) will be printed as a tab-delimited table instead.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var entropyFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&entropyFlag, "entropy", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting one or more sky maps")
	}

	maps, err := cli.ReadMaps(args)
	if err != nil {
		return err
	}
	labels := make([]string, 0, len(maps))
	for l := range maps {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	if entropyFlag {
		fmt.Fprintf(c.Stdout(), "label\tmi\tentropy\n")
	}
	for _, l := range labels {
		mi, h, err := sanity.MapMI(maps[l])
		if err != nil {
			return fmt.Errorf("map %q: %v", l, err)
		}
		if entropyFlag {
			fmt.Fprintf(c.Stdout(), "%s\t%.6f\t%.6f\n", l, mi, h)
			continue
		}
		sanity.WriteDistance(c.Stdout(), c.Stderr(), l, mi, h)
	}
	return nil
}
