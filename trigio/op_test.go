// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package trigio

import (
	"testing"
	"time"

	"github.com/gwdetchar/gwtrig/model/trigger"

	"github.com/proio-org/go-proio"
)

func TestEventOpPreservesOrder(t *testing.T) {
	const n = 16
	input := make(chan *proio.Event)
	go func() {
		for i := 0; i < n; i++ {
			input <- NewTriggerEvent(&trigger.Trigger{Time: float64(i)})
		}
		close(input)
	}()

	// Earlier events take longer, so under concurrency later events finish
	// first and the op has to reorder on output.
	op := EventOp{
		Description: "Stamp the rank column",
		EventProcessor: func(event *proio.Event) {
			trig := FirstTrigger(event)
			time.Sleep(time.Duration(n-int(trig.Time)) * time.Millisecond)
			trig.Snr = 2 * trig.Time
		},
		Concurrency: 4,
	}

	var got []*trigger.Trigger
	for event := range op.Run(input) {
		got = append(got, FirstTrigger(event))
	}
	if len(got) != n {
		t.Fatalf("got %d events, want %d", len(got), n)
	}
	for i, trig := range got {
		if trig.Time != float64(i) {
			t.Fatalf("event %d out of order: time %v", i, trig.Time)
		}
		if trig.Snr != 2*trig.Time {
			t.Errorf("event %d not processed: snr %v", i, trig.Snr)
		}
	}
}

func TestOpArrayChainsOps(t *testing.T) {
	input := make(chan *proio.Event)
	go func() {
		for i := 0; i < 6; i++ {
			input <- NewTriggerEvent(&trigger.Trigger{Time: float64(i), Snr: float64(i)})
		}
		close(input)
	}()

	ops := OpArray{
		EventOp{
			Description: "Boost the rank column",
			EventProcessor: func(event *proio.Event) {
				FirstTrigger(event).Snr += 10
			},
			Concurrency: 2,
		},
		StreamOp{
			Description:     "Apply the rank threshold",
			StreamProcessor: Threshold("snr", 13),
		},
	}

	got := Collect(ops.Run(input))
	if len(got) != 3 {
		t.Fatalf("got %d triggers, want 3", len(got))
	}
	for i, trig := range got {
		if want := float64(i + 3); trig.Time != want {
			t.Errorf("trigger %d: time %v, want %v", i, trig.Time, want)
		}
	}
}
