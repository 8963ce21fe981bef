// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Skyframe is a tool to check gravitational wave sky maps
// in reference frames defined by detectors.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/skyframe/cmd/skyframe/add"
	"github.com/js-arias/skyframe/cmd/skyframe/los"
	"github.com/js-arias/skyframe/cmd/skyframe/mi"
	"github.com/js-arias/skyframe/cmd/skyframe/rotate"
	"github.com/js-arias/skyframe/cmd/skyframe/zenith"
)

var app = &command.Command{
	Usage: "skyframe <command> [<argument>...]",
	Short: "a tool to check sky maps in detector frames",
}

func init() {
	app.Add(add.Command)
	app.Add(los.Command)
	app.Add(mi.Command)
	app.Add(rotate.Command)
	app.Add(zenith.Command)
}

func main() {
	app.Main()
}
