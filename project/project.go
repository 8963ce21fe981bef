// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of skyframe project files.
//
// A skyframe project is a tab-delimited file (TSV)
// used to store the labels and paths
// of the sky maps analyzed together.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// A Project represents a collection of paths
// for labeled sky maps.
type Project struct {
	name  string
	paths map[string]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		name:  "",
		paths: make(map[string]string),
	}
}

var header = []string{
	"label",
	"path",
}

// Read reads a project file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - label, the label used to identify the sky map
//   - path, for the path of the sky map file
//
// Here is an example file:
//
//	# skyframe project files
//	label	path
//	bayestar	bayestar.fits.gz
//	lalinference	lalinference.fits.gz
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New()
	p.name = name
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "label"
		label := strings.TrimSpace(row[fields[f]])
		if label == "" {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: empty label", name, ln, f)
		}
		if _, dup := p.paths[label]; dup {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: label %q already defined", name, ln, f, label)
		}

		f = "path"
		path := strings.TrimSpace(row[fields[f]])
		if path == "" {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: empty path", name, ln, f)
		}
		p.paths[label] = path
	}

	return p, nil
}

// Add adds a filepath of a sky map to a given project.
// It returns the previous value
// for the label.
// If path is empty,
// the label is removed from the project.
func (p *Project) Add(label, path string) string {
	prev := p.paths[label]
	if path == "" {
		delete(p.paths, label)
		return prev
	}

	p.paths[label] = path
	return prev
}

// Path returns the path of the sky map
// with the given label.
func (p *Project) Path(label string) string {
	return p.paths[label]
}

// Labels returns the labels of the sky maps
// defined on a project.
func (p *Project) Labels() []string {
	labels := make([]string, 0, len(p.paths))
	for l := range p.paths {
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// Name returns the project file name.
func (p *Project) Name() string {
	return p.name
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into a file.
func (p *Project) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# skyframe project files\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	for _, l := range p.Labels() {
		row := []string{
			l,
			p.paths[l],
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", p.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}
