// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package framecache indexes raw detector frame files and writes LAL-format
// cache files for downstream analysis tools.
package framecache

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/gwdetchar/gwtrig/segments"
)

// Entry is one frame file: IFO-TAG-GPSSTART-DUR.gwf at Path.
type Entry struct {
	Observatory string
	Tag         string
	Start       float64
	Duration    float64
	Path        string
}

func (e Entry) Segment() segments.Segment {
	return segments.Segment{Start: e.Start, Stop: e.Start + e.Duration}
}

var frameFileName = regexp.MustCompile(`^([A-Z][0-9A-Z]*)-([A-Za-z0-9_]+)-([0-9]+)-([0-9]+)\.gwf$`)

// ParseName parses a frame file name of the conventional form.
func ParseName(path string) (Entry, error) {
	m := frameFileName.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return Entry{}, fmt.Errorf("unparseable frame file name %q", filepath.Base(path))
	}
	start, _ := strconv.ParseFloat(m[3], 64)
	dur, _ := strconv.ParseFloat(m[4], 64)
	return Entry{
		Observatory: m[1],
		Tag:         m[2],
		Start:       start,
		Duration:    dur,
		Path:        path,
	}, nil
}

type Cache []Entry

// Scan walks the given directories for frame files overlapping [start, stop).
// Files with names that do not parse are skipped.
func Scan(dirs []string, start, stop float64) (Cache, error) {
	var cache Cache
	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || filepath.Ext(path) != ".gwf" {
				return nil
			}
			entry, err := ParseName(path)
			if err != nil {
				return nil
			}
			if entry.Start < stop && entry.Start+entry.Duration > start {
				cache = append(cache, entry)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Slice(cache, func(i, j int) bool { return cache[i].Start < cache[j].Start })
	return cache, nil
}

// Coverage is the normalized union of all cached frame spans.
func (c Cache) Coverage() segments.SegmentList {
	var spans segments.SegmentList
	for _, e := range c {
		spans = append(spans, e.Segment())
	}
	return spans.Normalize()
}

// Gaps returns the parts of [start, stop) not covered by any frame file.
func (c Cache) Gaps(start, stop float64) segments.SegmentList {
	covered := c.Coverage()
	var gaps segments.SegmentList
	cursor := start
	for _, s := range covered {
		if s.Start > cursor {
			gaps = append(gaps, segments.Segment{Start: cursor, Stop: s.Start})
		}
		if s.Stop > cursor {
			cursor = s.Stop
		}
	}
	if cursor < stop {
		gaps = append(gaps, segments.Segment{Start: cursor, Stop: stop})
	}
	return gaps.Intersect(segments.SegmentList{{Start: start, Stop: stop}})
}

// Write emits the cache in LAL format, one line per frame file.
func (c Cache) Write(w io.Writer) error {
	for _, e := range c {
		abs, err := filepath.Abs(e.Path)
		if err != nil {
			abs = e.Path
		}
		_, err = fmt.Fprintf(w, "%s %s %d %d file://localhost%s\n",
			e.Observatory, e.Tag, int64(e.Start), int64(e.Duration), abs)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteFile writes a LAL cache file at path.
func (c Cache) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
