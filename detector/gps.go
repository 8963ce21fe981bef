// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package detector

import (
	"math"
	"time"
)

// GPSEpoch is the origin of the GPS time scale.
var GPSEpoch = time.Date(1980, time.January, 6, 0, 0, 0, 0, time.UTC)

// leapSeconds are the UTC dates
// in which a leap second was added
// since the GPS epoch.
var leapSeconds = []time.Time{
	time.Date(1981, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1982, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1983, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1985, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1988, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1991, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1992, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1993, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1994, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1997, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2006, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2009, time.January, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2012, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2015, time.July, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC),
}

// GPSTime returns the UTC time
// of a GPS time given in seconds.
func GPSTime(gps float64) time.Time {
	sec, frac := math.Modf(gps)
	t := GPSEpoch.Add(time.Duration(sec) * time.Second).Add(time.Duration(frac * float64(time.Second)))

	// GPS time does not include leap seconds,
	// so each leap second before t
	// moves UTC one second behind.
	for _, ls := range leapSeconds {
		if t.Before(ls) {
			break
		}
		t = t.Add(-time.Second)
	}
	return t
}
