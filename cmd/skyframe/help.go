// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(colorKeyGuide)
	app.Add(framesGuide)
	app.Add(mapFilesGuide)
	app.Add(projectsGuide)
}

var mapFilesGuide = &command.Command{
	Usage: "map-files",
	Short: "about sky map files",
	Long: `
A sky map is a set of values (usually a probability density) defined on the
pixels of a HEALPix pixelation of the sphere. Skyframe reads sky maps either
as FITS files or as tab-delimited files.

A FITS sky map is a file with a binary table extension. The values of the map
are taken from the first column of the table. The header of the table must
define the resolution of the pixelation with the keyword NSIDE (if it is not
defined, the resolution is inferred from the number of values), and the
pixel ordering with the keyword ORDERING, with the values "RING" or "NESTED"
(by default "RING"). A file is read as a FITS file if its extension is
".fits", ".fit", or ".fts".

Any other file is read as a tab-delimited file with the following columns:

	- nside    the resolution of the pixelation
	- order    the pixel ordering, either "ring" or "nested"
	- pixel    the ID of the pixel
	- density  the value of the pixel

All rows must have the same resolution and ordering. Pixels not listed in the
file have a value of zero. Here is an example file:

	# skyframe sky map
	nside	order	pixel	density
	2	ring	0	0.25
	2	ring	1	0.5
	2	ring	5	0.25

If the file name ends with ".gz" the file will be read as a gzip compressed
file, and if it ends with ".zst" it will be read as a zstandard compressed
file, for example "bayestar.fits.gz".
	`,
}

var framesGuide = &command.Command{
	Usage: "frames",
	Short: "about detector reference frames",
	Long: `
In a sky map, the location of each pixel is given by its colatitude (theta,
the angle from the north pole, from 0 to pi) and its longitude (phi, from -pi
to pi). Skyframe rotates the pixels of a sky map to a new reference frame in
which the north pole is a given direction, and then draws the map in the new
frame, in which the colatitude is the angle from the pole.

For a source detected by a network of detectors, the position of the source
is better constrained in the direction defined by the detectors, so a well
behaved map is expected to show structures centered on the directions
defined by the detectors. Skyframe defines two kinds of frames:

	- los     the line of sight between two detectors, from the first to
	          the second detector. The frame name is "los-" and the codes
	          of the detectors, for example "los-H-L".
	- zenith  the zenith (local vertical) of a detector. The frame name is
	          "zenith-" and the code of the detector, for example
	          "zenith-H".

The known detectors are:

	G  GEO600
	H  LIGO Hanford
	I  LIGO India
	K  KAGRA
	L  LIGO Livingston
	V  Virgo

The direction of the pole can be given in Earth-fixed coordinates ("E"), in
which the longitude is measured from the Greenwich meridian, or in celestial
coordinates ("C"), in which the longitude is the right ascension. As the
Earth rotates, celestial coordinates require the time of the event, which is
given as GPS seconds (the seconds since January 6, 1980 at 00:00 UTC). The
time is converted to Greenwich mean sidereal time to obtain the right
ascension of the pole.

As the direction is always a colatitude, a pole in celestial coordinates has a
colatitude equal to 90 degrees minus the declination.

For each map, the mutual information between the colatitude and longitude in
the new frame can be calculated. If the map has the expected structure, the
density of the map will be independent of the longitude, so the mutual
information distance (mutual information divided by the joint entropy) will
be close to zero.
	`,
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
To reduce the burden of keeping track of many sky maps, a single project file
can be used to hold the reference of all sky maps to be checked. Most of the
time, the best way to edit a project file is by using the command
'skyframe add'.

A project file is a tab-delimited file with the following fields:

	- label  the label used to identify the sky map
	- path   the path of the sky map file

Here is an example file:

	# skyframe project files
	label	path
	bayestar	bayestar.fits.gz
	lalinference	lalinference.fits.gz

The label of each map is used in the name of the output figures, and in the
legend of stacked figures.
	`,
}

var colorKeyGuide = &command.Command{
	Usage: "color-keys",
	Short: "about color keys file",
	Long: `
When several maps are stacked in a single figure, each map is drawn with a
different color, taken from a default color cycle. A color key file can be
defined to set the colors of each map.

A color key file is a tab-delimited file with the following columns:

	-label  the label of the sky map
	-color  a RGB value separated by commas, for example, "125,132,148",
	        or a single letter color code (b: blue, r: red, g: green,
	        c: cyan, m: magenta, y: yellow, k: black).

Any other columns will be ignored.

Here is an example of a key file:

	label	color	comment
	bayestar	0, 26, 51	low latency
	lalinference	r	full parameter estimation
	`,
}
