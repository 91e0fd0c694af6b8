// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package live

import (
	"strings"
	"testing"
	"time"

	"github.com/gwdetchar/gwtrig/live/message"
	"github.com/gwdetchar/gwtrig/model/trigger"
)

func TestExecuteSetParams(t *testing.T) {
	show := &TriggerShow{}
	show.Init()

	cmd := &message.Cmd{
		Command: "set params",
		Metadata: map[string]string{
			"nsample":  "100",
			"y column": "snr",
			"log y":    "true",
		},
	}
	if err := show.Execute(cmd); err != nil {
		t.Fatal(err)
	}
	if show.NSample != 100 || show.YColumn != "snr" || !show.LogY {
		t.Errorf("params not applied: %+v", show)
	}

	// invalid values are ignored
	bad := &message.Cmd{
		Command: "set params",
		Metadata: map[string]string{
			"nsample":  "-5",
			"y column": "nonesuch",
		},
	}
	if err := show.Execute(bad); err != nil {
		t.Fatal(err)
	}
	if show.NSample != 100 || show.YColumn != "snr" {
		t.Errorf("invalid params applied: %+v", show)
	}
}

func TestRingTrim(t *testing.T) {
	show := &TriggerShow{NSample: 3, FramePeriod: time.Hour}
	show.Init()

	for i := 0; i < 10; i++ {
		show.AddTrigger(&trigger.Trigger{Time: float64(1000 + i), Frequency: 100, Snr: 8})
	}

	show.Lock()
	n := len(show.ring)
	first := show.ring[0].Time
	show.Unlock()
	if n != 3 {
		t.Fatalf("ring holds %d triggers, want 3", n)
	}
	if first != 1007 {
		t.Errorf("oldest retained trigger at %v, want 1007", first)
	}
}

func TestUpdateFrame(t *testing.T) {
	show := &TriggerShow{FramePeriod: time.Hour}
	show.Init()

	show.AddTrigger(&trigger.Trigger{Time: 1000, Frequency: 100, Snr: 8})
	show.AddTrigger(&trigger.Trigger{Time: 1001, Frequency: 200, Snr: 10})
	show.UpdateFrame()

	frame, count := show.Frame()
	if frame == nil || count == 0 {
		t.Fatal("no frame after UpdateFrame")
	}
	if frame.Type != "frame" {
		t.Errorf("frame type %q", frame.Type)
	}
	if frame.Metadata["ntriggers"] != "2" {
		t.Errorf("ntriggers = %q, want 2", frame.Metadata["ntriggers"])
	}
	if !strings.Contains(string(frame.Payload), "<svg") {
		t.Error("frame payload is not SVG")
	}
}

func TestExecuteReset(t *testing.T) {
	show := &TriggerShow{FramePeriod: time.Hour}
	show.Init()
	show.AddTrigger(&trigger.Trigger{Time: 1000, Frequency: 100, Snr: 8})

	if err := show.Execute(&message.Cmd{Command: "reset"}); err != nil {
		t.Fatal(err)
	}
	show.Lock()
	n := len(show.ring)
	show.Unlock()
	if n != 0 {
		t.Errorf("ring holds %d triggers after reset, want 0", n)
	}
}
