// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"

	"github.com/js-arias/skyframe/skymap"
)

// Map reads the sky map with the given label
// as defined in a project.
func (p *Project) Map(label string) (*skymap.Map, error) {
	name := p.Path(label)
	if name == "" {
		return nil, fmt.Errorf("sky map %q not defined in project %q", label, p.name)
	}

	m, err := skymap.Read(name)
	if err != nil {
		return nil, fmt.Errorf("sky map %q: %v", label, err)
	}
	return m, nil
}

// Maps reads all the sky maps
// defined in a project.
func (p *Project) Maps() (map[string]*skymap.Map, error) {
	maps := make(map[string]*skymap.Map, len(p.paths))
	for _, l := range p.Labels() {
		m, err := p.Map(l)
		if err != nil {
			return nil, err
		}
		maps[l] = m
	}
	return maps, nil
}
