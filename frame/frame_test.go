// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package frame_test

import (
	"math"
	"testing"

	"github.com/js-arias/skyframe/frame"
	"golang.org/x/exp/rand"
)

const tolerance = 1e-9

func randomDirections(n int, seed uint64) (theta, phi []float64) {
	rnd := rand.New(rand.NewSource(seed))
	theta = make([]float64, n)
	phi = make([]float64, n)
	for i := range theta {
		// uniform on the sphere
		theta[i] = math.Acos(2*rnd.Float64() - 1)
		phi[i] = 2*math.Pi*rnd.Float64() - math.Pi
	}
	return theta, phi
}

// angle returns the angular separation of two directions.
func angle(a, b frame.Direction) float64 {
	ax, ay, az := a.Vector()
	bx, by, bz := b.Vector()
	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	return math.Atan2(math.Sqrt(cx*cx+cy*cy+cz*cz), ax*bx+ay*by+az*bz)
}

func TestPoleToNorth(t *testing.T) {
	poles := []frame.Direction{
		{Theta: 0.3, Phi: 1.2},
		{Theta: math.Pi / 2, Phi: -2.5},
		{Theta: 2.9, Phi: 3.1},
		{Theta: math.Pi, Phi: 0},
		{Theta: 1.0, Phi: -math.Pi},
	}
	for _, p := range poles {
		rt, rp, err := frame.Rotate2Pole([]float64{p.Theta}, []float64{p.Phi}, p)
		if err != nil {
			t.Fatalf("pole %v: unexpected error: %v", p, err)
		}
		if math.Abs(rt[0]) > tolerance {
			t.Errorf("pole %v: got colatitude %g, want 0", p, rt[0])
		}
		if math.IsNaN(rp[0]) || math.IsInf(rp[0], 0) {
			t.Errorf("pole %v: got longitude %g, want a finite value", p, rp[0])
		}
	}
}

func TestIdentityPole(t *testing.T) {
	theta, phi := randomDirections(500, 1)
	rt, rp, err := frame.Rotate2Pole(theta, phi, frame.Direction{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range theta {
		in := frame.Direction{Theta: theta[i], Phi: phi[i]}
		out := frame.Direction{Theta: rt[i], Phi: rp[i]}
		if d := angle(in, out); d > tolerance {
			t.Errorf("direction %d: got %v, want %v [diff %g]", i, out, in, d)
		}
		if math.Abs(rt[i]-theta[i]) > tolerance {
			t.Errorf("direction %d: colatitude: got %.9f, want %.9f", i, rt[i], theta[i])
		}
	}
}

func TestNorthPoleShift(t *testing.T) {
	// with the pole at the north pole,
	// only the longitude changes.
	pole := frame.Direction{Theta: 0, Phi: 0.7}
	theta, phi := randomDirections(100, 2)
	rt, rp, err := frame.Rotate2Pole(theta, phi, pole)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range theta {
		if math.Abs(rt[i]-theta[i]) > tolerance {
			t.Errorf("direction %d: colatitude: got %.9f, want %.9f", i, rt[i], theta[i])
		}
		want := frame.Direction{Theta: theta[i], Phi: phi[i] - pole.Phi}
		got := frame.Direction{Theta: rt[i], Phi: rp[i]}
		if d := angle(got, want); d > tolerance {
			t.Errorf("direction %d: got %v, want %v", i, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	theta, phi := randomDirections(1000, 3)
	pole := frame.Direction{Theta: 1.1, Phi: -0.4}

	rot := frame.ToPole(pole)
	rt, rp, err := rot.Rotate(theta, phi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bt, bp, err := rot.Inverse().Rotate(rt, rp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range theta {
		in := frame.Direction{Theta: theta[i], Phi: phi[i]}
		out := frame.Direction{Theta: bt[i], Phi: bp[i]}
		if d := angle(in, out); d > tolerance {
			t.Errorf("direction %d: got %v, want %v [diff %g]", i, out, in, d)
		}
	}

	id := rot.Then(rot.Inverse())
	for i := 0; i < 10; i++ {
		in := frame.Direction{Theta: theta[i], Phi: phi[i]}
		if d := angle(in, id.Apply(in)); d > tolerance {
			t.Errorf("direction %d: composed identity moved the direction by %g", i, d)
		}
	}
}

func TestPreservesDistances(t *testing.T) {
	theta, phi := randomDirections(200, 4)
	pole := frame.Direction{Theta: 2.2, Phi: 2.8}
	rt, rp, err := frame.Rotate2Pole(theta, phi, pole)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range theta {
		in := frame.Direction{Theta: theta[i], Phi: phi[i]}
		out := frame.Direction{Theta: rt[i], Phi: rp[i]}

		// the new colatitude is the distance to the pole
		if d := angle(in, pole); math.Abs(d-out.Theta) > tolerance {
			t.Errorf("direction %d: got colatitude %.9f, want %.9f", i, out.Theta, d)
		}

		if i == 0 {
			continue
		}
		prevIn := frame.Direction{Theta: theta[i-1], Phi: phi[i-1]}
		prevOut := frame.Direction{Theta: rt[i-1], Phi: rp[i-1]}
		if d1, d2 := angle(in, prevIn), angle(out, prevOut); math.Abs(d1-d2) > tolerance {
			t.Errorf("directions %d-%d: got distance %.9f, want %.9f", i-1, i, d2, d1)
		}
	}
}

func TestRanges(t *testing.T) {
	// pixels at the poles and on the seam
	theta := []float64{0, math.Pi, math.Pi / 2, math.Pi / 2, 1e-12}
	phi := []float64{0, 2, math.Pi, -math.Pi, 0}
	poles := []frame.Direction{
		{},
		{Theta: math.Pi},
		{Theta: math.Pi / 2, Phi: math.Pi / 2},
		{Theta: 0.5, Phi: math.Pi},
	}

	for _, p := range poles {
		rt, rp, err := frame.Rotate2Pole(theta, phi, p)
		if err != nil {
			t.Fatalf("pole %v: unexpected error: %v", p, err)
		}
		if len(rt) != len(theta) || len(rp) != len(phi) {
			t.Fatalf("pole %v: got %d directions, want %d", p, len(rt), len(theta))
		}
		for i := range rt {
			if math.IsNaN(rt[i]) || math.IsNaN(rp[i]) {
				t.Errorf("pole %v: direction %d: got NaN", p, i)
			}
			if rt[i] < 0 || rt[i] > math.Pi {
				t.Errorf("pole %v: direction %d: colatitude %g out of range", p, i, rt[i])
			}
			if rp[i] < -math.Pi || rp[i] >= math.Pi {
				t.Errorf("pole %v: direction %d: longitude %g out of range", p, i, rp[i])
			}
		}
	}
}

func TestLengthMismatch(t *testing.T) {
	if _, _, err := frame.Rotate2Pole([]float64{1, 2}, []float64{1}, frame.Direction{}); err == nil {
		t.Errorf("expecting error on slices of different length")
	}

	rt, rp, err := frame.Rotate2Pole(nil, nil, frame.Direction{Theta: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rt) != 0 || len(rp) != 0 {
		t.Errorf("got %d directions, want 0", len(rt))
	}
}

func TestZeroRotation(t *testing.T) {
	theta, phi := randomDirections(20, 7)

	var r frame.Rotation
	rt, rp, err := r.Rotate(theta, phi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	it, ip, _ := frame.Identity().Rotate(theta, phi)
	for i := range rt {
		if rt[i] != it[i] || rp[i] != ip[i] {
			t.Errorf("direction %d: got (%g, %g), want (%g, %g)", i, rt[i], rp[i], it[i], ip[i])
		}
	}

	d := frame.Direction{Theta: 1, Phi: 2}
	if got := r.Inverse().Then(r).Apply(d); math.Abs(got.Theta-d.Theta) > tolerance || math.Abs(got.Phi-d.Phi) > tolerance {
		t.Errorf("apply: got %v, want %v", got, d)
	}
}

func TestDeterminism(t *testing.T) {
	theta, phi := randomDirections(50, 5)
	pole := frame.Direction{Theta: 0.8, Phi: 1.9}
	t1, p1, _ := frame.Rotate2Pole(theta, phi, pole)
	t2, p2, _ := frame.Rotate2Pole(theta, phi, pole)
	for i := range t1 {
		if t1[i] != t2[i] || p1[i] != p2[i] {
			t.Errorf("direction %d: got (%g, %g) and (%g, %g)", i, t1[i], p1[i], t2[i], p2[i])
		}
	}
}
