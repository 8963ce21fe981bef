// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package skymap

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/astrogo/fitsio"
	"github.com/js-arias/skyframe/healpix"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Read reads a sky map from a file.
//
// Files with the extensions ".fits", ".fit", or ".fts"
// are read as FITS files,
// any other file is read as a TSV file.
// If the file name ends with ".gz" or ".zst"
// the file will be decompressed
// using gzip or zstandard.
func Read(name string) (*Map, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	base := strings.ToLower(name)
	switch filepath.Ext(base) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		defer gz.Close()
		r = gz
		base = strings.TrimSuffix(base, ".gz")
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("on file %q: %v", name, err)
		}
		defer dec.Close()
		r = dec
		base = strings.TrimSuffix(base, ".zst")
	}

	var m *Map
	if isFITS(base) {
		m, err = ReadFITS(r)
	} else {
		m, err = ReadTSV(r)
	}
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return m, nil
}

func isFITS(name string) bool {
	switch filepath.Ext(name) {
	case ".fits", ".fit", ".fts":
		return true
	}
	return false
}

// Write writes a sky map into a file.
// The format is selected from the file extension,
// as in Read.
func Write(name string, m *Map) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	var w io.Writer = f
	base := strings.ToLower(name)
	switch filepath.Ext(base) {
	case ".gz":
		gz := gzip.NewWriter(f)
		defer func() {
			e := gz.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = gz
		base = strings.TrimSuffix(base, ".gz")
	case ".zst":
		enc, e := zstd.NewWriter(f)
		if e != nil {
			return fmt.Errorf("on file %q: %v", name, e)
		}
		defer func() {
			e := enc.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = enc
		base = strings.TrimSuffix(base, ".zst")
	}

	if isFITS(base) {
		err = WriteFITS(w, m)
	} else {
		err = WriteTSV(w, m)
	}
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

// ReadFITS reads a sky map from a FITS file.
//
// The map is read from the first column
// of the first binary table of the file.
// Cells of the column can be scalars
// or fixed size arrays
// (as produced by healpy).
// The resolution is taken from the NSIDE keyword,
// or derived from the number of values,
// and the pixel ordering from the ORDERING keyword
// (by default RING).
func ReadFITS(r io.Reader) (*Map, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, hdu := range f.HDUs() {
		if hdu.Type() != fitsio.BINARY_TBL {
			continue
		}
		tbl, ok := hdu.(*fitsio.Table)
		if !ok {
			continue
		}
		return readTable(tbl)
	}
	return nil, errors.New("binary table not found")
}

func readTable(tbl *fitsio.Table) (*Map, error) {
	hdr := tbl.Header()
	order := healpix.Ring
	if c := hdr.Get("ORDERING"); c != nil {
		s, _ := c.Value.(string)
		o, err := healpix.ParseOrdering(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %v", "ORDERING", err)
		}
		order = o
	}
	nside := 0
	if c := hdr.Get("NSIDE"); c != nil {
		v, ok := cardInt(c.Value)
		if !ok {
			return nil, fmt.Errorf("keyword %q: invalid value %v", "NSIDE", c.Value)
		}
		nside = v
	}

	cols := tbl.Cols()
	if len(cols) == 0 {
		return nil, errors.New("binary table without columns")
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// a value for each column
	// as the rows are scanned as a whole
	vals := make([]reflect.Value, len(cols))
	ptrs := make([]any, len(cols))
	for i := range cols {
		vals[i] = reflect.New(cols[i].Type())
		ptrs[i] = vals[i].Interface()
	}

	var prob []float64
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("column %q: %v", cols[0].Name, err)
		}
		prob, err = appendValues(prob, vals[0].Elem())
		if err != nil {
			return nil, fmt.Errorf("column %q: %v", cols[0].Name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if nside > 0 && healpix.NsideToNpix(nside) != len(prob) {
		return nil, fmt.Errorf("keyword %q: got %d pixels, want %d", "NSIDE", len(prob), healpix.NsideToNpix(nside))
	}
	m, err := FromValues(prob, order)
	if err != nil {
		return nil, err
	}
	for px, p := range m.prob {
		if err := m.Set(px, p); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func appendValues(dst []float64, v reflect.Value) ([]float64, error) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return append(dst, v.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return append(dst, float64(v.Int())), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return append(dst, float64(v.Uint())), nil
	case reflect.Array, reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			var err error
			dst, err = appendValues(dst, v.Index(i))
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	}
	return nil, fmt.Errorf("unsupported column type %s", v.Type())
}

func cardInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case float64:
		return int(v), v == float64(int(v))
	}
	return 0, false
}

// WriteFITS writes a sky map as a FITS file
// with a single binary table
// that stores the density of each pixel
// in a column of double precision values.
func WriteFITS(w io.Writer, m *Map) (err error) {
	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	phdu, err := fitsio.NewPrimaryHDU(nil)
	if err != nil {
		return err
	}
	if err := f.Write(phdu); err != nil {
		return err
	}

	cols := []fitsio.Column{
		{Name: "PROB", Format: "D"},
	}
	tbl, err := fitsio.NewTable("SKYMAP", cols, fitsio.BINARY_TBL)
	if err != nil {
		return err
	}
	defer tbl.Close()

	err = tbl.Header().Append(
		fitsio.Card{Name: "PIXTYPE", Value: "HEALPIX", Comment: "HEALPix pixelisation"},
		fitsio.Card{Name: "ORDERING", Value: m.Ordering().String(), Comment: "pixel ordering scheme"},
		fitsio.Card{Name: "NSIDE", Value: m.Nside(), Comment: "resolution parameter"},
		fitsio.Card{Name: "INDXSCHM", Value: "IMPLICIT", Comment: "indexing scheme"},
	)
	if err != nil {
		return err
	}

	for _, p := range m.prob {
		if err := tbl.Write(&p); err != nil {
			return err
		}
	}
	return f.Write(tbl)
}

var header = []string{
	"nside",
	"order",
	"pixel",
	"density",
}

// ReadTSV reads a sky map from a TSV file.
//
// The TSV must contain the following fields:
//
//   - nside, the resolution of the map
//   - order, the pixel ordering (either RING or NESTED)
//   - pixel, the ID of a pixel
//   - density, the probability density at the pixel
//
// Pixels not listed in the file have a density of 0.
// Here is an example file:
//
//	# sky map
//	nside	order	pixel	density
//	2	RING	0	0.125000
//	2	RING	1	0.375000
//	2	RING	17	0.500000
func ReadTSV(r io.Reader) (*Map, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var m *Map
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "nside"
		nside, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "order"
		order, err := healpix.ParseOrdering(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		if m == nil {
			m, err = New(nside, order)
			if err != nil {
				return nil, fmt.Errorf("on row %d: %v", ln, err)
			}
		}
		if m.Nside() != nside {
			return nil, fmt.Errorf("on row %d: field %q: got %d, want %d", ln, "nside", nside, m.Nside())
		}
		if m.Ordering() != order {
			return nil, fmt.Errorf("on row %d: field %q: got %s, want %s", ln, "order", order, m.Ordering())
		}

		f = "pixel"
		px, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "density"
		p, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if err := m.Set(px, p); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	if m == nil {
		return nil, errors.New("empty sky map")
	}
	return m, nil
}

// WriteTSV writes a sky map as a TSV file.
// Only pixels with a density greater than 0
// are written.
func WriteTSV(w io.Writer, m *Map) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# sky map\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}

	nside := strconv.Itoa(m.Nside())
	order := m.Ordering().String()
	for px, p := range m.prob {
		if p == 0 {
			continue
		}
		row := []string{
			nside,
			order,
			strconv.Itoa(px),
			strconv.FormatFloat(p, 'g', -1, 64),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
