// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cli_test

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/js-arias/skyframe/cmd/skyframe/internal/cli"
	"github.com/js-arias/skyframe/detector"
	"github.com/js-arias/skyframe/healpix"
	"github.com/js-arias/skyframe/project"
	"github.com/js-arias/skyframe/skymap"
)

func TestList(t *testing.T) {
	var l cli.List
	for _, s := range []string{"png", "svg, pdf", ""} {
		if err := l.Set(s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if want := (cli.List{"png", "svg", "pdf"}); !reflect.DeepEqual(l, want) {
		t.Errorf("list: got %v, want %v", l, want)
	}
	if got, want := l.String(), "png,svg,pdf"; got != want {
		t.Errorf("string: got %q, want %q", got, want)
	}
}

func TestReadGPS(t *testing.T) {
	var prompt bytes.Buffer
	gps, err := cli.ReadGPS(strings.NewReader("1126259462.4\n"), &prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gps != 1126259462.4 {
		t.Errorf("gps: got %.6f, want %.6f", gps, 1126259462.4)
	}
	if prompt.String() != "gps = " {
		t.Errorf("prompt: got %q, want %q", prompt.String(), "gps = ")
	}

	for _, s := range []string{"", "x", "-10"} {
		if _, err := cli.ReadGPS(strings.NewReader(s), nil); err == nil {
			t.Errorf("input %q: expecting error", s)
		}
	}
}

func TestSystem(t *testing.T) {
	o := cli.Options{Coord: "E", GPS: -1}
	sys, tm, err := o.System(strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sys != detector.Earth || !tm.IsZero() {
		t.Errorf("earth: got %v %v, want %v and zero time", sys, tm, detector.Earth)
	}

	o = cli.Options{Coord: "C", GPS: -1}
	_, tm, err = o.System(strings.NewReader("1000000000"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2011, time.September, 14, 1, 46, 25, 0, time.UTC)
	if !tm.Equal(want) {
		t.Errorf("time: got %v, want %v", tm, want)
	}

	o = cli.Options{Coord: "X"}
	if _, _, err := o.System(strings.NewReader(""), nil); err == nil {
		t.Errorf("expecting error on invalid coordinate system")
	}
}

func TestConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figs")
	o := cli.Options{
		Output:  dir,
		Formats: cli.List{".PNG", "svg"},
		Scale:   "gray",
		Alpha:   0.5,
		Width:   4,
		Height:  3,
		DPI:     40,
		Verbose: true,
	}
	var out, warn bytes.Buffer
	cfg, err := o.Config(&out, &warn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"png", "svg"}; !reflect.DeepEqual(cfg.Formats, want) {
		t.Errorf("formats: got %v, want %v", cfg.Formats, want)
	}
	if len(cfg.Levels) != 3 {
		t.Errorf("levels: got %v, want default levels", cfg.Levels)
	}
	if cfg.Verbose == nil {
		t.Errorf("expecting verbose output")
	}

	bad := []cli.Options{
		{Formats: cli.List{"gif"}, Scale: "gray", Alpha: 1, Width: 1, Height: 1},
		{Scale: "jet", Alpha: 1, Width: 1, Height: 1},
		{Scale: "gray", Alpha: 0, Width: 1, Height: 1},
		{Scale: "gray", Alpha: 1, Width: 0, Height: 1},
		{Scale: "gray", Alpha: 1, Width: 1, Height: 1, Levels: "2"},
	}
	for i, o := range bad {
		o.Output = dir
		if _, err := o.Config(&out, &warn); err == nil {
			t.Errorf("options %d: expecting error", i)
		}
	}
}

func writeMap(t testing.TB, name string, px int) {
	t.Helper()

	m, err := skymap.New(2, healpix.Ring)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Set(px, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := skymap.Write(name, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadMaps(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fits.gz")
	b := filepath.Join(dir, "b.tab")
	c := filepath.Join(dir, "single.fits")
	writeMap(t, a, 1)
	writeMap(t, b, 2)
	writeMap(t, c, 3)

	p := project.New()
	p.Add("first", a)
	p.Add("second", b)
	p.SetName(filepath.Join(dir, "project.tab"))
	if err := p.Write(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	maps, err := cli.ReadMaps([]string{p.Name(), "other," + b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]int{
		"first":  1,
		"second": 2,
		"other":  2,
		"single": 3,
	}
	if len(maps) != len(want) {
		t.Errorf("maps: got %d, want %d", len(maps), len(want))
	}
	for label, px := range want {
		m, ok := maps[label]
		if !ok {
			t.Errorf("map %q: not found", label)
			continue
		}
		if m.Prob(px) != 1 {
			t.Errorf("map %q: pixel %d: got %g, want 1", label, px, m.Prob(px))
		}
	}

	errs := [][]string{
		nil,
		{",", b},
		{"x," + b, "x," + a},
		{filepath.Join(dir, "missing.tab")},
	}
	for _, args := range errs {
		if _, err := cli.ReadMaps(args); err == nil {
			t.Errorf("args %v: expecting error", args)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"bayestar.fits.gz":     "bayestar",
		"dir/skymap.fits":      "skymap",
		"lalinference.tab.zst": "lalinference",
		"dir/plain":            "plain",
	}
	for name, want := range tests {
		if got := cli.Label(name); got != want {
			t.Errorf("label %q: got %q, want %q", name, got, want)
		}
	}
}
