// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package colorkey_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/js-arias/skyframe/colorkey"
)

func TestRead(t *testing.T) {
	data := `# color keys
label	color	comment
bayestar	0, 26, 51	low latency
lalinference	r	full parameter estimation
`
	name := filepath.Join(t.TempDir(), "keys.tab")
	if err := os.WriteFile(name, []byte(data), 0o644); err != nil {
		t.Fatalf("unable to write test file: %v", err)
	}

	k, err := colorkey.Read(name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]color.Color{
		"bayestar":     color.RGBA{0, 26, 51, 255},
		"lalinference": color.RGBA{255, 0, 0, 255},
	}
	for label, want := range tests {
		got, ok := k.Color(label)
		if !ok {
			t.Errorf("label %q: color not found", label)
			continue
		}
		if got != want {
			t.Errorf("label %q: got %v, want %v", label, got, want)
		}
	}

	if _, ok := k.Color("unknown"); ok {
		t.Errorf("label %q: unexpected color", "unknown")
	}
	if got, want := k.Pick("unknown", 1), colorkey.Default(1); got != want {
		t.Errorf("pick: got %v, want %v", got, want)
	}
	if got, want := k.Pick("bayestar", 1), tests["bayestar"]; got != want {
		t.Errorf("pick: got %v, want %v", got, want)
	}
}

func TestDefault(t *testing.T) {
	if c := colorkey.Default(0); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("first color: got %v, want blue", c)
	}
	if colorkey.Default(7) != colorkey.Default(0) {
		t.Errorf("expecting the color cycle to restart")
	}

	var k *colorkey.Key
	if got := k.Pick("any", 2); got != colorkey.Default(2) {
		t.Errorf("nil key: got %v, want %v", got, colorkey.Default(2))
	}
}

func TestParseColor(t *testing.T) {
	for _, s := range []string{"1,2", "a,b,c", "0,0,256", "-1,0,0", "x"} {
		if _, err := colorkey.ParseColor(s); err == nil {
			t.Errorf("color %q: expecting error", s)
		}
	}
	c, err := colorkey.ParseColor(" 10 , 20 , 30 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (color.RGBA{10, 20, 30, 255}); c != want {
		t.Errorf("got %v, want %v", c, want)
	}
}
