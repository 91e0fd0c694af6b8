// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package segments

import (
	"math"
	"time"
)

// GPS epoch 1980-01-06T00:00:00Z as a Unix timestamp.
const gpsEpochUnix = 315964800

// GPS times at which a leap second was inserted, through 2017-01-01.
var leapsGPS = []float64{
	46828800,   // 1981-07-01
	78364801,   // 1982-07-01
	109900802,  // 1983-07-01
	173059203,  // 1985-07-01
	252028804,  // 1988-01-01
	315187205,  // 1990-01-01
	346723206,  // 1991-01-01
	393984007,  // 1992-07-01
	425520008,  // 1993-07-01
	457056009,  // 1994-07-01
	504489610,  // 1996-01-01
	551750411,  // 1997-07-01
	599184012,  // 1999-01-01
	820108813,  // 2006-01-01
	914803214,  // 2009-01-01
	1025136015, // 2012-07-01
	1119744016, // 2015-07-01
	1167264017, // 2017-01-01
}

func leapsBefore(gps float64) int {
	n := 0
	for _, leap := range leapsGPS {
		if gps < leap {
			break
		}
		n++
	}
	return n
}

// GPSToTime converts a GPS time to UTC.
func GPSToTime(gps float64) time.Time {
	sec, frac := math.Modf(gps - float64(leapsBefore(gps)))
	return time.Unix(gpsEpochUnix+int64(sec), int64(frac*1e9)).UTC()
}

// TimeToGPS converts a UTC time to GPS seconds.
func TimeToGPS(t time.Time) float64 {
	gps := float64(t.Unix()-gpsEpochUnix) + float64(t.Nanosecond())/1e9
	// the leap count shifts the result past further leaps at most once
	for i := 0; i < 2; i++ {
		gps = float64(t.Unix()-gpsEpochUnix) + float64(t.Nanosecond())/1e9 + float64(leapsBefore(gps))
	}
	return gps
}
