// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package trigger

import "testing"

func TestColumn(t *testing.T) {
	trig := &Trigger{
		Time:      1187008882.43,
		Frequency: 150,
		Snr:       12,
		Amplitude: 1e-21,
		Duration:  0.5,
		Bandwidth: 30,
	}
	for _, test := range []struct {
		name string
		want float64
	}{
		{"time", 1187008882.43},
		{"frequency", 150},
		{"peak_frequency", 150},
		{"central_freq", 150},
		{"snr", 12},
		{"amplitude", 1e-21},
		{"duration", 0.5},
		{"bandwidth", 30},
	} {
		got, err := Column(trig, test.name)
		if err != nil {
			t.Errorf("Column(%q): %v", test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("Column(%q) = %v, want %v", test.name, got, test.want)
		}
	}
}

func TestColumnUnknown(t *testing.T) {
	if _, err := Column(&Trigger{}, "nonesuch"); err == nil {
		t.Error("want error for unknown column")
	}
}
