// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package trigio

import (
	"errors"
	"math"
	"sort"

	"github.com/gwdetchar/gwtrig/model/trigger"

	"github.com/proio-org/go-proio"
)

var ErrNoTriggers = errors.New("no triggers selected")

// Collect drains a stream into a slice of trigger records.
func Collect(stream <-chan *proio.Event) []*trigger.Trigger {
	var trigs []*trigger.Trigger
	for event := range stream {
		if t := FirstTrigger(event); t != nil {
			trigs = append(trigs, t)
		}
	}
	return trigs
}

// SelectLoudest picks at most max triggers ranked by the given column,
// keeping a minimum time separation of window seconds between any two
// selections.  Candidates are visited loudest first, so within a window the
// loudest trigger wins.  The result is ordered by time.
func SelectLoudest(trigs []*trigger.Trigger, rank string, window float64, max int) ([]*trigger.Trigger, error) {
	ranked := make([]*trigger.Trigger, len(trigs))
	copy(ranked, trigs)
	var rankErr error
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, err := trigger.Column(ranked[i], rank)
		if err != nil {
			rankErr = err
		}
		vj, err := trigger.Column(ranked[j], rank)
		if err != nil {
			rankErr = err
		}
		return vi > vj
	})
	if rankErr != nil {
		return nil, rankErr
	}

	var selected []*trigger.Trigger
	for _, t := range ranked {
		if max > 0 && len(selected) == max {
			break
		}
		if separated(selected, t.Time, window) {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoTriggers
	}

	sort.Slice(selected, func(i, j int) bool { return selected[i].Time < selected[j].Time })
	return selected, nil
}

func separated(selected []*trigger.Trigger, t, window float64) bool {
	for _, s := range selected {
		if math.Abs(s.Time-t) < window {
			return false
		}
	}
	return true
}
