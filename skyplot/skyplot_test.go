// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package skyplot_test

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/skyframe/mutinfo"
	"github.com/js-arias/skyframe/skyplot"
	"golang.org/x/exp/rand"
	"gonum.org/v1/plot/vg"
)

func TestCredibleLevels(t *testing.T) {
	values := []float64{0, 4, 1, 3, 2}

	// sorted: 4, 3, 2, 1
	// cumulative: 4, 7, 9, 10
	got := skyplot.CredibleLevels(values, []float64{0.1, 0.4, 0.5, 0.9, 1})
	want := []float64{4, 4, 3, 2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("levels: got %v, want %v", got, want)
	}

	if got := skyplot.CredibleLevels([]float64{0, 0}, []float64{0.5}); got != nil {
		t.Errorf("empty values: got %v, want nil", got)
	}
}

func TestParseLevels(t *testing.T) {
	got, err := skyplot.ParseLevels("0.9, 0.5,0.1,0.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []float64{0.1, 0.5, 0.9}; !reflect.DeepEqual(got, want) {
		t.Errorf("levels: got %v, want %v", got, want)
	}

	got, err = skyplot.ParseLevels("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, skyplot.DefaultLevels) {
		t.Errorf("default levels: got %v, want %v", got, skyplot.DefaultLevels)
	}

	for _, s := range []string{"0", "1", "0.5,x", "-0.2"} {
		if _, err := skyplot.ParseLevels(s); err == nil {
			t.Errorf("levels %q: expecting error", s)
		}
	}
}

func TestScale(t *testing.T) {
	for _, name := range skyplot.Scales() {
		if !skyplot.ValidScale(name) {
			t.Errorf("scale %q: expecting valid scale", name)
		}
		p, err := skyplot.Scale(name, 10)
		if err != nil {
			t.Errorf("scale %q: unexpected error: %v", name, err)
			continue
		}
		if n := len(p.Colors()); n != 10 {
			t.Errorf("scale %q: got %d colors, want %d", name, n, 10)
		}
	}
	if _, err := skyplot.Scale("jet", 10); err == nil {
		t.Errorf("expecting error on unknown scale")
	}
	if skyplot.ValidScale("jet") {
		t.Errorf("scale %q: expecting invalid scale", "jet")
	}

	g := skyplot.GrayScale{}
	if c := g.Gradient(2); c != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("gray scale: got %v, want black", c)
	}
}

func TestFormats(t *testing.T) {
	for _, f := range []string{"png", "PNG", ".svg", "jpeg", "tif", "pdf", "eps"} {
		if !skyplot.ValidFormat(f) {
			t.Errorf("format %q: expecting valid format", f)
		}
	}
	if skyplot.ValidFormat("gif") {
		t.Errorf("format %q: expecting invalid format", "gif")
	}
}

// blob returns a histogram of a set of points
// around a direction.
func blob(t testing.TB, theta, phi float64, seed uint64) *mutinfo.Hist2D {
	t.Helper()

	rnd := rand.New(rand.NewSource(seed))
	const n = 2000
	th := make([]float64, n)
	ph := make([]float64, n)
	for i := range th {
		th[i] = math.Min(math.Pi, math.Abs(theta+0.2*rnd.NormFloat64()))
		ph[i] = math.Max(-math.Pi, math.Min(math.Pi, phi+0.4*rnd.NormFloat64()))
	}
	h, err := skyplot.Histogram(th, ph, nil, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return h
}

func checkFile(t testing.TB, name string) {
	t.Helper()

	st, err := os.Stat(name)
	if err != nil {
		t.Fatalf("file %q: %v", name, err)
	}
	if st.Size() == 0 {
		t.Errorf("file %q: empty file", name)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	h := blob(t, 1, 0.5, 1)

	tests := map[string]*skyplot.Figure{
		"heat.png":    skyplot.New(),
		"log.svg":     {Log: true, Levels: skyplot.DefaultLevels, Alpha: 1},
		"contour.pdf": {Contour: true, Levels: skyplot.DefaultLevels, Alpha: 1},
		"contour.eps": {Contour: true, Log: true, Levels: []float64{0.5}, Alpha: 1},
	}
	for name, f := range tests {
		f.Add("blob", h, nil)
		path := filepath.Join(dir, name)
		if err := f.Save(path, 4*vg.Inch, 3*vg.Inch, 50); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		checkFile(t, path)
	}
}

func TestStacked(t *testing.T) {
	dir := t.TempDir()

	f := skyplot.New()
	f.Alpha = 0.5
	f.Add("one", blob(t, 1, 0.5, 1), color.RGBA{B: 255, A: 255})
	f.Add("two", blob(t, 2, -1, 2), color.RGBA{R: 255, A: 255})
	if f.Len() != 2 {
		t.Errorf("layers: got %d, want %d", f.Len(), 2)
	}

	path := filepath.Join(dir, "stacked.png")
	if err := f.Save(path, 0, 0, 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkFile(t, path)

	if err := f.Save(filepath.Join(dir, "stacked.gif"), 0, 0, 0); err == nil {
		t.Errorf("expecting error on unknown format")
	}
	if err := skyplot.New().Save(filepath.Join(dir, "empty.png"), 0, 0, 0); err == nil {
		t.Errorf("expecting error on empty figure")
	}
}

func TestSingleBin(t *testing.T) {
	dir := t.TempDir()

	// all the weight in a single bin
	h, err := skyplot.Histogram([]float64{1}, []float64{0.5}, []float64{2}, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]*skyplot.Figure{
		"log-heat.png":    {Log: true, Levels: skyplot.DefaultLevels, Alpha: 1},
		"log-contour.png": {Log: true, Contour: true, Levels: skyplot.DefaultLevels, Alpha: 1},
		"heat.png":        skyplot.New(),
	}
	for name, f := range tests {
		f.Add("point", h, nil)
		path := filepath.Join(dir, name)
		if err := f.Save(path, 4*vg.Inch, 3*vg.Inch, 30); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		checkFile(t, path)
	}
}

func TestStackedSingle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacked.svg")

	f := skyplot.New()
	f.Stack = true
	f.Contour = true
	f.Add("lonelymap", blob(t, 1, 0.5, 3), nil)
	if err := f.Save(path, 4*vg.Inch, 3*vg.Inch, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unable to read figure: %v", err)
	}
	if !strings.Contains(string(data), "lonelymap") {
		t.Errorf("stacked figure without map label")
	}
}
