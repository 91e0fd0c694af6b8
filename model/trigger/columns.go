// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package trigger

import "fmt"

// Column reads a named plottable column from a trigger record.  A few
// historical aliases map onto the same fields.
func Column(t *Trigger, name string) (float64, error) {
	switch name {
	case "time":
		return t.Time, nil
	case "frequency", "peak_frequency", "central_freq":
		return t.Frequency, nil
	case "snr":
		return t.Snr, nil
	case "amplitude":
		return t.Amplitude, nil
	case "duration":
		return t.Duration, nil
	case "bandwidth":
		return t.Bandwidth, nil
	}
	return 0, fmt.Errorf("unknown trigger column %q", name)
}
