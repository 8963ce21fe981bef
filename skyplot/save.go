// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package skyplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Default figure size and resolution.
const (
	DefaultWidth  = 9 * vg.Inch
	DefaultHeight = 5 * vg.Inch
	DefaultDPI    = 500
)

// Formats returns the valid image formats.
func Formats() []string {
	return []string{"eps", "jpg", "pdf", "png", "svg", "tiff"}
}

// ValidFormat returns true if format is a valid image format.
func ValidFormat(format string) bool {
	format = normFormat(format)
	return slices.Contains(Formats(), format)
}

func normFormat(format string) string {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	switch format {
	case "jpeg":
		return "jpg"
	case "tif":
		return "tiff"
	}
	return format
}

// newCanvas returns a canvas for a given format.
// The dpi is only used by raster formats.
func newCanvas(format string, w, h vg.Length, dpi int) (vg.CanvasWriterTo, error) {
	raster := func() *vgimg.Canvas {
		return vgimg.NewWith(
			vgimg.UseWH(w, h),
			vgimg.UseDPI(dpi),
			vgimg.UseBackgroundColor(color.White),
		)
	}

	switch normFormat(format) {
	case "png":
		return vgimg.PngCanvas{Canvas: raster()}, nil
	case "jpg":
		return vgimg.JpegCanvas{Canvas: raster()}, nil
	case "tiff":
		return vgimg.TiffCanvas{Canvas: raster()}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	case "eps":
		return vgeps.New(w, h), nil
	}
	return nil, fmt.Errorf("unknown image format %q", format)
}

// Save saves the figure into a file.
// The image format is taken from the file extension.
// If w, h, or dpi are 0,
// default values will be used.
func (f *Figure) Save(name string, w, h vg.Length, dpi int) (err error) {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	c, err := newCanvas(filepath.Ext(name), w, h, dpi)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if err := f.Draw(draw.New(c)); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}

	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := file.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if _, err := c.WriteTo(file); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}
