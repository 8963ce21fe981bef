// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package healpix implements the pixel geometry
// of the HEALPix equal-area pixelation of the sphere.
//
// Only the mapping from a pixel index
// to the direction of the pixel center is implemented,
// for both the RING and NESTED numbering schemes.
package healpix

import (
	"fmt"
	"math"
	"strings"
)

// Ordering is the numbering scheme of the pixels
// in a HEALPix map.
type Ordering int

// Valid numbering schemes.
const (
	Ring Ordering = iota
	Nested
)

// String returns the name of the ordering
// as used in FITS headers.
func (o Ordering) String() string {
	if o == Nested {
		return "NESTED"
	}
	return "RING"
}

// ParseOrdering returns the ordering from a string.
// An empty string is interpreted as RING.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "RING":
		return Ring, nil
	case "NESTED", "NEST":
		return Nested, nil
	}
	return Ring, fmt.Errorf("unknown HEALPix ordering %q", s)
}

// NsideToNpix returns the number of pixels
// of a pixelation with the given resolution parameter.
func NsideToNpix(nside int) int {
	return 12 * nside * nside
}

// NpixToNside returns the resolution parameter
// of a pixelation with the given number of pixels.
func NpixToNside(npix int) (int, error) {
	if npix < 12 || npix%12 != 0 {
		return 0, fmt.Errorf("invalid number of pixels %d", npix)
	}
	nside := isqrt(npix / 12)
	if NsideToNpix(nside) != npix {
		return 0, fmt.Errorf("invalid number of pixels %d", npix)
	}
	return nside, nil
}

// A Pixelation is a HEALPix pixelation
// with a given resolution and ordering.
type Pixelation struct {
	nside int
	order Ordering

	npix  int
	ncap  int
	fact1 float64
	fact2 float64
	nface int // pixels per face
}

// New returns a new pixelation.
// For NESTED ordering,
// nside must be a power of two.
func New(nside int, order Ordering) (*Pixelation, error) {
	if nside < 1 {
		return nil, fmt.Errorf("invalid nside %d", nside)
	}
	if order == Nested && nside&(nside-1) != 0 {
		return nil, fmt.Errorf("nside %d: NESTED ordering requires a power of two", nside)
	}

	npix := NsideToNpix(nside)
	fact2 := 4 / float64(npix)
	return &Pixelation{
		nside: nside,
		order: order,
		npix:  npix,
		ncap:  2 * nside * (nside - 1),
		fact1: float64(2*nside) * fact2,
		fact2: fact2,
		nface: nside * nside,
	}, nil
}

// Nside returns the resolution parameter of the pixelation.
func (p *Pixelation) Nside() int { return p.nside }

// Len returns the number of pixels.
func (p *Pixelation) Len() int { return p.npix }

// Ordering returns the numbering scheme.
func (p *Pixelation) Ordering() Ordering { return p.order }

// Angles returns the colatitude
// and the longitude
// (in radians)
// of the center of a pixel.
// The longitude is in the range [0, 2π).
func (p *Pixelation) Angles(pix int) (theta, phi float64) {
	if pix < 0 || pix >= p.npix {
		panic(fmt.Sprintf("healpix: pixel %d out of range [0, %d)", pix, p.npix))
	}
	var z float64
	if p.order == Nested {
		z, phi = p.nestZPhi(pix)
	} else {
		z, phi = p.ringZPhi(pix)
	}
	return math.Acos(z), phi
}

func (p *Pixelation) ringZPhi(pix int) (z, phi float64) {
	switch {
	case pix < p.ncap:
		// north polar cap
		iring := (1 + isqrt(1+2*pix)) >> 1
		iphi := pix + 1 - 2*iring*(iring-1)
		z = 1 - float64(iring*iring)*p.fact2
		phi = (float64(iphi) - 0.5) * math.Pi / 2 / float64(iring)
	case pix < p.npix-p.ncap:
		// equatorial belt
		nl4 := 4 * p.nside
		ip := pix - p.ncap
		tmp := ip / nl4
		iring := tmp + p.nside
		iphi := ip - nl4*tmp + 1
		fodd := 0.5
		if (iring+p.nside)&1 != 0 {
			fodd = 1
		}
		z = float64(2*p.nside-iring) * p.fact1
		phi = (float64(iphi) - fodd) * math.Pi * 0.75 * p.fact1
	default:
		// south polar cap
		ip := p.npix - pix
		iring := (1 + isqrt(2*ip-1)) >> 1
		iphi := 4*iring + 1 - (ip - 2*iring*(iring-1))
		z = float64(iring*iring)*p.fact2 - 1
		phi = (float64(iphi) - 0.5) * math.Pi / 2 / float64(iring)
	}
	return z, phi
}

// Ring and longitude offsets
// of the twelve base pixels.
var (
	jrll = [12]int{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}
	jpll = [12]int{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}
)

func (p *Pixelation) nestZPhi(pix int) (z, phi float64) {
	face := pix / p.nface
	ipf := pix % p.nface
	ix := compress(ipf)
	iy := compress(ipf >> 1)

	nl4 := 4 * p.nside
	jr := jrll[face]*p.nside - ix - iy - 1

	var nr, kshift int
	switch {
	case jr < p.nside:
		nr = jr
		z = 1 - float64(nr*nr)*p.fact2
	case jr > 3*p.nside:
		nr = nl4 - jr
		z = float64(nr*nr)*p.fact2 - 1
	default:
		nr = p.nside
		z = float64(2*p.nside-jr) * p.fact1
		kshift = (jr - p.nside) & 1
	}

	jp := (jpll[face]*nr + ix - iy + 1 + kshift) / 2
	if jp > nl4 {
		jp -= nl4
	}
	if jp < 1 {
		jp += nl4
	}
	phi = (float64(jp) - float64(kshift+1)*0.5) * (math.Pi / 2 / float64(nr))
	return z, phi
}

// compress collects the even bits of v.
func compress(v int) int {
	var r int
	for i := 0; v > 0; i++ {
		r |= (v & 1) << i
		v >>= 2
	}
	return r
}

func isqrt(v int) int {
	r := int(math.Sqrt(float64(v) + 0.5))
	for r*r > v {
		r--
	}
	for (r+1)*(r+1) <= v {
		r++
	}
	return r
}
