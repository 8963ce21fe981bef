// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add sky maps
// to a skyframe project.
package add

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/skyframe/cmd/skyframe/internal/cli"
	"github.com/js-arias/skyframe/project"
	"github.com/js-arias/skyframe/skymap"
)

var Command = &command.Command{
	Usage: "add [-v|--verbose] <project-file> <map>...",
	Short: "add sky maps to a project",
	Long: `
Command add adds the path of one or more sky maps to a skyframe project.

The first argument of the command is the name of the project file. If no
project exists, a new project will be created.

The other arguments are the sky maps to be added. Each argument can be a label
and a map file separated by a comma, for example "bayestar,bayestar.fits.gz",
or a single map file, in which case the label will be the file name. Each map
file is read before it is added to the project. If there is a map already
defined in the project with the same label, its path will be replaced by the
path of the added file. If the map file is empty, for example "bayestar,",
the label will be removed from the project.

If the flag --verbose, or -v, is defined, the replaced labels will be printed
in the standard error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var verbose bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting sky map files")
	}

	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	for _, a := range args[1:] {
		label, path, ok := strings.Cut(a, ",")
		if !ok {
			label, path = cli.Label(a), a
		}
		label = strings.TrimSpace(label)
		path = strings.TrimSpace(path)
		if label == "" {
			return c.UsageError(fmt.Sprintf("argument %q: empty label", a))
		}

		if path != "" {
			if _, err := skymap.Read(path); err != nil {
				return err
			}
		}
		prev := p.Add(label, path)
		if verbose && prev != "" {
			fmt.Fprintf(c.Stderr(), "%s: %q -> %q\n", label, prev, path)
		}
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p = project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}
