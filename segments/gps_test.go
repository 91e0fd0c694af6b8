// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package segments

import (
	"testing"
	"time"
)

func TestGPSToTime(t *testing.T) {
	for _, test := range []struct {
		gps  float64
		want string
	}{
		{0, "1980-01-06T00:00:00Z"},
		// GW150914
		{1126259462, "2015-09-14T09:50:45Z"},
		// GW170817, after the 2017 leap second
		{1187008882, "2017-08-17T12:41:04Z"},
	} {
		want, err := time.Parse(time.RFC3339, test.want)
		if err != nil {
			t.Fatal(err)
		}
		if got := GPSToTime(test.gps); !got.Equal(want) {
			t.Errorf("GPSToTime(%v) = %v, want %v", test.gps, got, want)
		}
	}
}

func TestTimeToGPSRoundTrip(t *testing.T) {
	for _, gps := range []float64{0, 46828801, 1126259462, 1187008882, 1400000000} {
		back := TimeToGPS(GPSToTime(gps))
		if back != gps {
			t.Errorf("round trip of %v gives %v", gps, back)
		}
	}
}
