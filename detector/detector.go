// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package detector implements the location
// of gravitational-wave detectors
// and the directions used as poles
// for source-relative reference frames.
package detector

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/js-arias/skyframe/frame"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// WGS84 is the reference ellipsoid
// used for detector positions.
var WGS84 = globe.Ellipsoid{
	Er: 6378.137,
	Fl: 1 / 298.257223563,
}

// A Site is the location of a detector.
type Site struct {
	// Tag is the single letter
	// that identifies the detector.
	Tag string

	// Name is the name of the detector
	Name string

	// Geodetic latitude and (east) longitude.
	Lat, Lon unit.Angle

	// Elevation above the ellipsoid,
	// in meters.
	Elevation float64
}

var sites = map[string]Site{
	"H": {Tag: "H", Name: "LIGO Hanford", Lat: unit.AngleFromDeg(46.455147), Lon: unit.AngleFromDeg(-119.407657), Elevation: 142.554},
	"L": {Tag: "L", Name: "LIGO Livingston", Lat: unit.AngleFromDeg(30.562894), Lon: unit.AngleFromDeg(-90.774240), Elevation: -6.574},
	"V": {Tag: "V", Name: "Virgo", Lat: unit.AngleFromDeg(43.631414), Lon: unit.AngleFromDeg(10.504497), Elevation: 51.884},
	"K": {Tag: "K", Name: "KAGRA", Lat: unit.AngleFromDeg(36.411858), Lon: unit.AngleFromDeg(137.305956), Elevation: 414.181},
	"G": {Tag: "G", Name: "GEO600", Lat: unit.AngleFromDeg(52.246813), Lon: unit.AngleFromDeg(9.807193), Elevation: 114.425},
	"I": {Tag: "I", Name: "LIGO India", Lat: unit.AngleFromDeg(19.613), Lon: unit.AngleFromDeg(77.031), Elevation: 440},
}

// Lookup returns the site of a detector.
func Lookup(tag string) (Site, error) {
	s, ok := sites[strings.ToUpper(tag)]
	if !ok {
		return Site{}, fmt.Errorf("unknown detector %q", tag)
	}
	return s, nil
}

// Tags returns the tags of the known detectors.
func Tags() []string {
	tags := make([]string, 0, len(sites))
	for t := range sites {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// Position returns the geocentric position of the site,
// in units of the equatorial radius of the Earth.
func (s Site) Position() (x, y, z float64) {
	ps, pc := WGS84.ParallaxConstants(s.Lat, s.Elevation)
	sl, cl := math.Sincos(s.Lon.Rad())
	return pc * cl, pc * sl, ps
}

// Zenith returns the local vertical of the site
// (the normal to the ellipsoid)
// in Earth-fixed coordinates.
func (s Site) Zenith() frame.Direction {
	return frame.Direction{
		Theta: math.Pi/2 - s.Lat.Rad(),
		Phi:   wrap(s.Lon.Rad()),
	}
}

// A System is a coordinate system
// used to express a pole.
type System int

// Valid coordinate systems.
const (
	// Celestial (equatorial) coordinates,
	// the longitude is the right ascension.
	Celestial System = iota

	// Earth-fixed coordinates,
	// the longitude is the geographic longitude.
	Earth
)

// String returns the tag of the system.
func (s System) String() string {
	if s == Earth {
		return "E"
	}
	return "C"
}

// ParseSystem returns the system
// identified by the given tag.
func ParseSystem(tag string) (System, error) {
	switch tag {
	case "C":
		return Celestial, nil
	case "E":
		return Earth, nil
	}
	return 0, fmt.Errorf("invalid coordinate system %q: want %q or %q", tag, "C", "E")
}

// A Pole is the north pole of a reference frame.
type Pole struct {
	// Name of the frame
	Name string

	frame.Direction
}

// LineOfSight returns the direction
// from the detector a to the detector b
// at time t.
// The time is only used for celestial coordinates.
func LineOfSight(a, b string, sys System, t time.Time) (Pole, error) {
	sa, err := Lookup(a)
	if err != nil {
		return Pole{}, err
	}
	sb, err := Lookup(b)
	if err != nil {
		return Pole{}, err
	}
	if sa.Tag == sb.Tag {
		return Pole{}, fmt.Errorf("line of sight: same detector %q", sa.Tag)
	}

	ax, ay, az := sa.Position()
	bx, by, bz := sb.Position()
	d := frame.FromVector(bx-ax, by-ay, bz-az)

	return Pole{
		Name:      fmt.Sprintf("los-%s-%s", sa.Tag, sb.Tag),
		Direction: toSystem(d, sys, t),
	}, nil
}

// Zenith returns the local vertical of a detector
// at time t.
// The time is only used for celestial coordinates.
func Zenith(tag string, sys System, t time.Time) (Pole, error) {
	s, err := Lookup(tag)
	if err != nil {
		return Pole{}, err
	}
	return Pole{
		Name:      "zenith-" + s.Tag,
		Direction: toSystem(s.Zenith(), sys, t),
	}, nil
}

// toSystem converts an Earth-fixed direction
// into the given system.
func toSystem(d frame.Direction, sys System, t time.Time) frame.Direction {
	if sys == Earth {
		return d
	}
	d.Phi = wrap(d.Phi + GMST(t).Rad())
	return d
}

// GMST returns the Greenwich mean sidereal time
// at a given time,
// as an angle.
func GMST(t time.Time) unit.Angle {
	jd := julian.TimeToJD(t.UTC())
	return sidereal.Mean(jd).Angle()
}

// wrap returns an angle in [-π, π).
func wrap(a float64) float64 {
	a = unit.PMod(a+math.Pi, 2*math.Pi) - math.Pi
	if a >= math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
