// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rotate_test

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"
	"testing"

	"github.com/js-arias/skyframe/cmd/skyframe/rotate"
	"github.com/js-arias/skyframe/frame"
	"github.com/js-arias/skyframe/healpix"
	"github.com/js-arias/skyframe/skymap"
)

func TestParsePole(t *testing.T) {
	p, err := rotate.ParsePole(" 1.5, -0.25 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (frame.Direction{Theta: 1.5, Phi: -0.25}); p != want {
		t.Errorf("pole: got %v, want %v", p, want)
	}

	for _, s := range []string{"", "1", "x,0", "0,x", "-1,0", "4,0"} {
		if _, err := rotate.ParsePole(s); err == nil {
			t.Errorf("pole %q: expecting error", s)
		}
	}
}

func TestWrite(t *testing.T) {
	m, err := skymap.New(2, healpix.Nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Set(5, 0.5)

	// the pole is the north pole,
	// so only the longitude is shifted.
	var buf bytes.Buffer
	if err := rotate.Write(&buf, m, frame.Direction{}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := csv.NewReader(&buf)
	r.Comma = '\t'
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != m.Len()+1 {
		t.Fatalf("rows: got %d, want %d", len(rows), m.Len()+1)
	}
	if h := rows[0]; h[0] != "pixel" || h[3] != "density" {
		t.Errorf("header: got %v", h)
	}

	theta, _ := m.Directions()
	for px, row := range rows[1:] {
		id, _ := strconv.Atoi(row[0])
		if id != px {
			t.Errorf("row %d: got pixel %d", px, id)
		}
		th, _ := strconv.ParseFloat(row[1], 64)
		if want := theta[px] * 180 / math.Pi; math.Abs(th-want) > 1e-5 {
			t.Errorf("pixel %d: theta: got %.6f, want %.6f", px, th, want)
		}
		d, _ := strconv.ParseFloat(row[3], 64)
		if d != m.Prob(px) {
			t.Errorf("pixel %d: density: got %g, want %g", px, d, m.Prob(px))
		}
	}
}
