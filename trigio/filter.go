// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package trigio

import (
	"github.com/gwdetchar/gwtrig/model/trigger"
	"github.com/gwdetchar/gwtrig/segments"

	"github.com/proio-org/go-proio"
)

// FirstTrigger returns the first Trigger entry of an event, or nil.
func FirstTrigger(event *proio.Event) *trigger.Trigger {
	for _, entryId := range event.TaggedEntries("Trigger") {
		if t, ok := event.GetEntry(entryId).(*trigger.Trigger); ok {
			return t
		}
	}
	return nil
}

// NewTriggerEvent wraps a single trigger record in a proio event.
func NewTriggerEvent(t *trigger.Trigger) *proio.Event {
	event := proio.NewEvent()
	event.AddEntry("Trigger", t)
	return event
}

// Threshold keeps triggers whose column value is at least min.  Events that
// carry no trigger entry, or an unreadable column, are dropped.
func Threshold(column string, min float64) StreamProcessor {
	return func(input <-chan *proio.Event, output chan<- *proio.Event) {
		for event := range input {
			t := FirstTrigger(event)
			if t == nil {
				continue
			}
			v, err := trigger.Column(t, column)
			if err != nil || v < min {
				continue
			}
			output <- event
		}
	}
}

// Span keeps triggers with time in [start, stop).
func Span(start, stop float64) StreamProcessor {
	return func(input <-chan *proio.Event, output chan<- *proio.Event) {
		for event := range input {
			t := FirstTrigger(event)
			if t == nil || t.Time < start || t.Time >= stop {
				continue
			}
			output <- event
		}
	}
}

// SegmentFilter keeps triggers inside the active segment list, or outside it
// when invert is set (a veto).
func SegmentFilter(active segments.SegmentList, invert bool) StreamProcessor {
	return func(input <-chan *proio.Event, output chan<- *proio.Event) {
		for event := range input {
			t := FirstTrigger(event)
			if t == nil {
				continue
			}
			if active.Contains(t.Time) == invert {
				continue
			}
			output <- event
		}
	}
}
