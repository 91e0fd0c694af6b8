// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package segments handles detector-state segments: half-open GPS intervals
// during which a data-quality flag was active.
package segments

import (
	"fmt"
	"sort"
)

// Segment is a half-open GPS interval [Start, Stop).
type Segment struct {
	Start float64 `json:"start"`
	Stop  float64 `json:"stop"`
}

func (s Segment) Duration() float64 {
	return s.Stop - s.Start
}

func (s Segment) Contains(t float64) bool {
	return t >= s.Start && t < s.Stop
}

func (s Segment) String() string {
	return fmt.Sprintf("[%v, %v)", s.Start, s.Stop)
}

type SegmentList []Segment

// Normalize sorts the list and coalesces overlapping or touching segments.
// Empty and inverted segments are dropped.
func (l SegmentList) Normalize() SegmentList {
	var sorted SegmentList
	for _, s := range l {
		if s.Stop > s.Start {
			sorted = append(sorted, s)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out SegmentList
	for _, s := range sorted {
		if n := len(out); n > 0 && s.Start <= out[n-1].Stop {
			if s.Stop > out[n-1].Stop {
				out[n-1].Stop = s.Stop
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// Contains reports whether t falls in an active segment.  The list must be
// normalized.
func (l SegmentList) Contains(t float64) bool {
	i := sort.Search(len(l), func(i int) bool { return l[i].Stop > t })
	return i < len(l) && l[i].Contains(t)
}

// Intersect returns the overlap of two normalized lists.
func (l SegmentList) Intersect(other SegmentList) SegmentList {
	var out SegmentList
	i, j := 0, 0
	for i < len(l) && j < len(other) {
		a, b := l[i], other[j]
		start := a.Start
		if b.Start > start {
			start = b.Start
		}
		stop := a.Stop
		if b.Stop < stop {
			stop = b.Stop
		}
		if stop > start {
			out = append(out, Segment{start, stop})
		}
		if a.Stop < b.Stop {
			i++
		} else {
			j++
		}
	}
	return out
}

// Union merges two lists into one normalized list.
func (l SegmentList) Union(other SegmentList) SegmentList {
	return append(append(SegmentList{}, l...), other...).Normalize()
}

// Livetime is the summed duration of all segments.
func (l SegmentList) Livetime() float64 {
	var total float64
	for _, s := range l {
		total += s.Duration()
	}
	return total
}

// Span is the segment covering the whole list.
func (l SegmentList) Span() Segment {
	if len(l) == 0 {
		return Segment{}
	}
	return Segment{l[0].Start, l[len(l)-1].Stop}
}
