// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package frame implements rotations of directions on the sphere
// into a reference frame in which an arbitrary direction
// becomes the north pole.
package frame

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// A Direction is a point on the unit sphere.
type Direction struct {
	// Colatitude in radians,
	// 0 is the north pole.
	Theta float64

	// Longitude in radians.
	Phi float64
}

// Vector returns the unit cartesian vector of the direction.
func (d Direction) Vector() (x, y, z float64) {
	st, ct := math.Sincos(d.Theta)
	sp, cp := math.Sincos(d.Phi)
	return st * cp, st * sp, ct
}

// FromVector returns the direction of a cartesian vector.
// The vector is not required to be normalized.
//
// The colatitude is always in [0, π]
// and the longitude in [-π, π).
// At the poles the longitude is undefined
// and it is set to 0.
func FromVector(x, y, z float64) Direction {
	return Direction{
		Theta: math.Atan2(math.Hypot(x, y), z),
		Phi:   wrap(math.Atan2(y, x)),
	}
}

// wrap sets a longitude returned by atan2,
// in (-π, π],
// into [-π, π).
func wrap(phi float64) float64 {
	if phi >= math.Pi {
		return phi - 2*math.Pi
	}
	return phi
}

// A Rotation is a rigid rotation of the sphere.
// The zero value is the identity.
type Rotation struct {
	m *mat.Dense
}

// matrix returns the rotation matrix.
func (r Rotation) matrix() *mat.Dense {
	if r.m == nil {
		return Identity().m
	}
	return r.m
}

// Identity returns the identity rotation.
func Identity() Rotation {
	return Rotation{m: mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})}
}

// ToPole returns the rotation that moves the pole direction
// to the north pole of a new frame.
//
// The rotation is the composition of
// a rotation around the polar axis
// that moves the pole to the zero meridian,
// and a rotation around the y axis
// (perpendicular to the rotated pole)
// that moves the pole to the north pole.
func ToPole(pole Direction) Rotation {
	sp, cp := math.Sincos(pole.Phi)
	rz := mat.NewDense(3, 3, []float64{
		cp, sp, 0,
		-sp, cp, 0,
		0, 0, 1,
	})

	st, ct := math.Sincos(pole.Theta)
	ry := mat.NewDense(3, 3, []float64{
		ct, 0, -st,
		0, 1, 0,
		st, 0, ct,
	})

	var m mat.Dense
	m.Mul(ry, rz)
	return Rotation{m: &m}
}

// Inverse returns the inverse of the rotation.
func (r Rotation) Inverse() Rotation {
	var m mat.Dense
	m.CloneFrom(r.matrix().T())
	return Rotation{m: &m}
}

// Then returns the rotation
// that applies r and then s.
func (r Rotation) Then(s Rotation) Rotation {
	var m mat.Dense
	m.Mul(s.matrix(), r.matrix())
	return Rotation{m: &m}
}

// Apply rotates a single direction.
func (r Rotation) Apply(d Direction) Direction {
	x, y, z := d.Vector()
	v := mat.NewVecDense(3, []float64{x, y, z})
	var rv mat.VecDense
	rv.MulVec(r.matrix(), v)
	return FromVector(rv.AtVec(0), rv.AtVec(1), rv.AtVec(2))
}

// Rotate rotates a set of directions,
// given as parallel slices of colatitudes and longitudes
// (in radians).
// It returns new slices with the rotated directions,
// in the same order as the input.
func (r Rotation) Rotate(theta, phi []float64) (rTheta, rPhi []float64, err error) {
	if len(theta) != len(phi) {
		return nil, nil, fmt.Errorf("got %d colatitudes and %d longitudes", len(theta), len(phi))
	}
	if len(theta) == 0 {
		return []float64{}, []float64{}, nil
	}

	n := len(theta)
	pts := mat.NewDense(3, n, nil)
	for i := range theta {
		x, y, z := Direction{Theta: theta[i], Phi: phi[i]}.Vector()
		pts.Set(0, i, x)
		pts.Set(1, i, y)
		pts.Set(2, i, z)
	}

	var rot mat.Dense
	rot.Mul(r.matrix(), pts)

	rTheta = make([]float64, n)
	rPhi = make([]float64, n)
	for i := 0; i < n; i++ {
		d := FromVector(rot.At(0, i), rot.At(1, i), rot.At(2, i))
		rTheta[i] = d.Theta
		rPhi[i] = d.Phi
	}
	return rTheta, rPhi, nil
}

// Rotate2Pole rotates a set of directions
// into the frame in which pole is the north pole.
func Rotate2Pole(theta, phi []float64, pole Direction) (rTheta, rPhi []float64, err error) {
	return ToPole(pole).Rotate(theta, phi)
}
